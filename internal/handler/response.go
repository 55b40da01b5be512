// Package handler exposes the HTTP actions of the venue booking API.  Every
// response uses the same envelope: {"success":true,"data":...} on success,
// {"success":true,"message":...} for deletes and {"success":false,"error":...}
// on failure.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/service"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func done(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: msg})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: false, Error: msg})
}

// statusOf maps a service error kind to its HTTP status.
func statusOf(k service.Kind) int {
	switch k {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// failWith reports a service error.  Only the client-safe message is
// written; the cause has already been logged by the service.
func failWith(c echo.Context, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		return fail(c, statusOf(se.Kind), se.Message)
	}
	return fail(c, http.StatusInternalServerError, "Internal server error")
}

func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// bind decodes the request into dst and answers 400 on malformed input.
// The second return is false when a response has already been written.
func bind(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, fail(c, http.StatusBadRequest, "Invalid request body")
	}
	return true, nil
}

// actor builds the caller of a service operation from the claims stored by
// middleware.JWTAuth.
func actor(c echo.Context) (service.Actor, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: id, Admin: middleware.IsAdmin(c)}, true
}

func unauthorized(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "Unauthorized")
}

func invalidID(c echo.Context) error {
	return fail(c, http.StatusBadRequest, "Invalid id")
}
