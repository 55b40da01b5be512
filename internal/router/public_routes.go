package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/cache"
)

// RegisterPublic registers the browse endpoints.  No token is required and
// every response is cached under the tag of the data it shows.
func RegisterPublic(e *echo.Echo, h Handlers, opt Options) {
	g := e.Group("/v1", opt.limiter())

	halls := opt.cached(cache.TagHalls)
	g.GET("/halls", h.Halls.ListActive, halls)
	g.GET("/halls/:id", h.Halls.Get, halls)
	g.GET("/halls/:id/availability", h.Halls.Availability, halls)

	g.GET("/foods", h.Foods.ListAvailable, opt.cached(cache.TagFoods))
	g.GET("/themes", h.Themes.ListAvailable, opt.cached(cache.TagThemes))
}
