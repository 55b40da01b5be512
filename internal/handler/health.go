package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness for load balancers.  When a database is
// configured it is pinged on every call.
type HealthHandler struct {
	db  Pinger
	log *zap.Logger
}

// NewHealthHandler accepts a nil db for the in-memory store.
func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(c echo.Context) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.log.Error("health check failed", zap.Error(err))
			return fail(c, http.StatusServiceUnavailable, "Database unavailable")
		}
	}
	return c.String(http.StatusOK, "ok")
}
