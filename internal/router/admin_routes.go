package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/cache"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// RegisterAdmin registers the management endpoints under /v1/admin.  All
// routes require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h Handlers, opt Options) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(opt.JWTSecret),
		middleware.RequireRole(middleware.RoleAdmin),
		opt.limiter(),
	)

	// ---- Halls ----
	g.GET("/halls", h.Halls.ListAll, opt.cached(cache.TagHalls))
	g.GET("/halls/:id", h.Halls.Get)
	g.POST("/halls", h.Halls.Create)
	g.PUT("/halls/:id", h.Halls.Update)
	g.PATCH("/halls/:id", h.Halls.Update)
	g.DELETE("/halls/:id", h.Halls.Delete)
	g.PATCH("/halls/:id/toggle", h.Halls.Toggle)

	// ---- Foods ----
	g.GET("/foods", h.Foods.ListAll, opt.cached(cache.TagFoods))
	g.GET("/foods/:id", h.Foods.Get)
	g.POST("/foods", h.Foods.Create)
	g.PUT("/foods/:id", h.Foods.Update)
	g.PATCH("/foods/:id", h.Foods.Update)
	g.DELETE("/foods/:id", h.Foods.Delete)
	g.PATCH("/foods/:id/toggle", h.Foods.Toggle)

	// ---- Themes ----
	g.GET("/themes", h.Themes.ListAll, opt.cached(cache.TagThemes))
	g.GET("/themes/:id", h.Themes.Get)
	g.POST("/themes", h.Themes.Create)
	g.PUT("/themes/:id", h.Themes.Update)
	g.PATCH("/themes/:id", h.Themes.Update)
	g.DELETE("/themes/:id", h.Themes.Delete)
	g.PATCH("/themes/:id/toggle", h.Themes.Toggle)

	// ---- Bookings ----
	bookings := opt.cached(cache.TagBookings)
	g.GET("/bookings", h.Bookings.List, bookings)
	g.GET("/bookings/stats", h.Bookings.Stats, bookings)
	g.GET("/bookings/:id", h.Bookings.Get)
	g.PATCH("/bookings/:id/status", h.Bookings.UpdateStatus)
	g.PATCH("/bookings/:id/payment", h.Bookings.UpdatePayment)
	g.POST("/bookings/:id/cancel", h.Bookings.Cancel)
}
