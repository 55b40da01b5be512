// Package router registers the HTTP routes of the API on an echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// Handlers bundles the HTTP handlers served by the API.
type Handlers struct {
	Health   *handler.HealthHandler
	Halls    *handler.HallHandler
	Foods    *handler.FoodHandler
	Themes   *handler.ThemeHandler
	Bookings *handler.BookingHandler
}

// Options carries the settings shared by the route groups.  A nil Redis
// disables both the response cache and the rate limiter.
type Options struct {
	JWTSecret string
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Log       *zap.Logger
}

func (o Options) cached(tag string) echo.MiddlewareFunc {
	return middleware.NewRedisCache(o.Cache, o.Redis, tag, o.Log)
}

func (o Options) limiter() echo.MiddlewareFunc {
	return middleware.NewTokenBucket(o.RateLimit, o.Redis, o.Log)
}

// bookingLimiter is a second, smaller bucket in front of booking creation.
func (o Options) bookingLimiter() echo.MiddlewareFunc {
	cfg := o.RateLimit.WithCapacity(o.RateLimit.BookingCapacity, "booking")
	return middleware.NewTokenBucket(cfg, o.Redis, o.Log)
}

// Register mounts every route group.
func Register(e *echo.Echo, h Handlers, opt Options) {
	if opt.Log == nil {
		opt.Log = zap.NewNop()
	}
	e.GET("/healthz", h.Health.Health)
	RegisterPublic(e, h, opt)
	RegisterCustomer(e, h, opt)
	RegisterAdmin(e, h, opt)
}
