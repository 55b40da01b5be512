package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/dto"
	"github.com/iliyamo/venue-booking/internal/service"
)

// BookingHandler serves the booking ledger.  Customer and admin routes
// share the same actions; the caller's role decides what they may see.
type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{svc: svc}
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	who, authed := actor(c)
	if !authed {
		return unauthorized(c)
	}
	var req dto.CreateBookingRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	b, err := h.svc.CreateBooking(c.Request().Context(), who, req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusCreated, b)
}

// Mine handles GET /v1/my-bookings.
func (h *BookingHandler) Mine(c echo.Context) error {
	who, authed := actor(c)
	if !authed {
		return unauthorized(c)
	}
	list, err := h.svc.GetMyBookings(c.Request().Context(), who)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, list)
}

// Get handles GET /v1/bookings/:id and GET /v1/admin/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	who, authed := actor(c)
	if !authed {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	b, err := h.svc.GetBookingByID(c.Request().Context(), who, id)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, b)
}

// Cancel handles POST /v1/bookings/:id/cancel and its admin twin.
func (h *BookingHandler) Cancel(c echo.Context) error {
	who, authed := actor(c)
	if !authed {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	var req dto.CancelBookingRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	b, err := h.svc.CancelBooking(c.Request().Context(), who, id, req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, b)
}

// List handles GET /v1/admin/bookings?status=&paymentStatus=.
func (h *BookingHandler) List(c echo.Context) error {
	var q dto.BookingListQuery
	if bound, err := bind(c, &q); !bound {
		return err
	}
	list, err := h.svc.GetAllBookings(c.Request().Context(), q)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, list)
}

// Stats handles GET /v1/admin/bookings/stats.
func (h *BookingHandler) Stats(c echo.Context) error {
	st, err := h.svc.GetBookingStats(c.Request().Context())
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, st)
}

// UpdateStatus handles PATCH /v1/admin/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	who, authed := actor(c)
	if !authed {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	var req dto.UpdateBookingStatusRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	b, err := h.svc.UpdateBookingStatus(c.Request().Context(), who, id, req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, b)
}

// UpdatePayment handles PATCH /v1/admin/bookings/:id/payment.
func (h *BookingHandler) UpdatePayment(c echo.Context) error {
	who, authed := actor(c)
	if !authed {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	var req dto.UpdatePaymentStatusRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	b, err := h.svc.UpdatePaymentStatus(c.Request().Context(), who, id, req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, b)
}
