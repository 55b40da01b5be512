package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/dto"
	"github.com/iliyamo/venue-booking/internal/service"
)

// HallHandler serves the hall directory, both the public browse routes and
// the admin management routes.
type HallHandler struct {
	svc *service.HallService
}

func NewHallHandler(svc *service.HallService) *HallHandler {
	if svc == nil {
		panic("nil service passed to NewHallHandler")
	}
	return &HallHandler{svc: svc}
}

// ListActive handles GET /v1/halls.
func (h *HallHandler) ListActive(c echo.Context) error {
	halls, err := h.svc.ListActiveHalls(c.Request().Context())
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, halls)
}

// ListAll handles GET /v1/admin/halls.
func (h *HallHandler) ListAll(c echo.Context) error {
	halls, err := h.svc.ListAllHalls(c.Request().Context())
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, halls)
}

// Get handles GET /v1/halls/:id and GET /v1/admin/halls/:id.
func (h *HallHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	hall, err := h.svc.GetHall(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, hall)
}

// Availability handles GET /v1/halls/:id/availability?date=&timeSlot=.
func (h *HallHandler) Availability(c echo.Context) error {
	if _, err := pathID(c); err != nil {
		return invalidID(c)
	}
	var q dto.AvailabilityQuery
	if bound, err := bind(c, &q); !bound {
		return err
	}
	av, err := h.svc.CheckAvailability(c.Request().Context(), q)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, av)
}

// Create handles POST /v1/admin/halls.
func (h *HallHandler) Create(c echo.Context) error {
	var req dto.CreateHallRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	hall, err := h.svc.CreateHall(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusCreated, hall)
}

// Update handles PUT and PATCH /v1/admin/halls/:id.
func (h *HallHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	var req dto.UpdateHallRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	hall, err := h.svc.UpdateHall(c.Request().Context(), id, req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, hall)
}

// Delete handles DELETE /v1/admin/halls/:id.
func (h *HallHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	msg, err := h.svc.DeleteHall(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return done(c, msg)
}

// Toggle handles PATCH /v1/admin/halls/:id/toggle.
func (h *HallHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	hall, err := h.svc.ToggleHallStatus(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, hall)
}
