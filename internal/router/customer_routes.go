package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/middleware"
)

// RegisterCustomer registers the booking endpoints of signed-in users.
// Admins may call them too.  Ownership is enforced by the booking service.
func RegisterCustomer(e *echo.Echo, h Handlers, opt Options) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(opt.JWTSecret),
		middleware.RequireRole(middleware.RoleCustomer, middleware.RoleAdmin),
		opt.limiter(),
	)
	g.POST("/bookings", h.Bookings.Create, opt.bookingLimiter())
	g.GET("/my-bookings", h.Bookings.Mine)
	g.GET("/bookings/:id", h.Bookings.Get)
	g.POST("/bookings/:id/cancel", h.Bookings.Cancel)
}
