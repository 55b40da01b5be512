package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking/internal/cache"
	"github.com/iliyamo/venue-booking/internal/dto"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/validation"
)

// Messages shared with the booking ledger.
const (
	msgHallNotFound    = "Hall not found"
	msgHallInUse       = "Cannot delete hall with active bookings. Deactivate it instead."
	msgSlotUnavailable = "Hall is not available for the selected date and time slot"
	msgHallInactive    = "Hall is not available for booking"
	msgEventDateInPast = "Event date cannot be in the past"
	msgHallDeleted     = "Hall deleted successfully"
	reasonHallInactive = "Hall is not accepting bookings"
	reasonSlotBooked   = "Hall is already booked for this date and time slot"
)

// HallService implements the hall directory.
type HallService struct {
	halls    HallStore
	bookings SlotChecker
	v        *validation.Validator
	cache    cache.Invalidator
	log      *zap.Logger
	now      func() time.Time
}

// NewHallService wires a HallService.  bookings answers availability
// queries.
func NewHallService(halls HallStore, bookings SlotChecker, v *validation.Validator, inv cache.Invalidator, log *zap.Logger) *HallService {
	return &HallService{halls: halls, bookings: bookings, v: v, cache: inv, log: log, now: time.Now}
}

// invalidate drops cached hall listings plus any extra tags.  Booking
// listings embed the hall summary, so edits and deletes pass TagBookings.
func (s *HallService) invalidate(ctx context.Context, extra ...string) {
	tags := append([]string{cache.TagHalls}, extra...)
	if err := s.cache.Invalidate(ctx, tags...); err != nil {
		s.log.Warn("cache invalidation failed", zap.Strings("tags", tags), zap.Error(err))
	}
}

func (s *HallService) hallError(action string, id uint64, err error) error {
	if errors.Is(err, repository.ErrHallNotFound) {
		return notFound(msgHallNotFound)
	}
	return failure(s.log, action, err, zap.Uint64("hall_id", id))
}

// ListActiveHalls returns the halls customers can book, newest first.
func (s *HallService) ListActiveHalls(ctx context.Context) ([]*model.Hall, error) {
	halls, err := s.halls.ListActive(ctx)
	if err != nil {
		return nil, failure(s.log, "fetch halls", err)
	}
	return halls, nil
}

// ListAllHalls returns every hall with its active booking count.
func (s *HallService) ListAllHalls(ctx context.Context) ([]*model.Hall, error) {
	halls, err := s.halls.ListAll(ctx)
	if err != nil {
		return nil, failure(s.log, "fetch halls", err)
	}
	return halls, nil
}

// GetHall returns a hall with the dates and slots already booked from
// today onwards.
func (s *HallService) GetHall(ctx context.Context, id uint64) (*model.HallDetail, error) {
	h, err := s.halls.GetByID(ctx, id)
	if err != nil {
		return nil, s.hallError("fetch hall", id, err)
	}
	slots, err := s.halls.ListBookedSlots(ctx, id, model.DateOf(s.now()))
	if err != nil {
		return nil, failure(s.log, "fetch hall", err, zap.Uint64("hall_id", id))
	}
	return &model.HallDetail{Hall: *h, Bookings: slots}, nil
}

// CreateHall validates req and stores a new hall.  Halls are active unless
// the request says otherwise.
func (s *HallService) CreateHall(ctx context.Context, req dto.CreateHallRequest) (*model.Hall, error) {
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	h := &model.Hall{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		BasePrice:   req.BasePrice,
		Images:      req.Images,
		Amenities:   req.Amenities,
		IsActive:    true,
	}
	if h.Amenities == nil {
		h.Amenities = []string{}
	}
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}
	if err := s.halls.Create(ctx, h); err != nil {
		return nil, failure(s.log, "create hall", err)
	}
	s.invalidate(ctx)
	return h, nil
}

// UpdateHall applies the fields present in req.
func (s *HallService) UpdateHall(ctx context.Context, id uint64, req dto.UpdateHallRequest) (*model.Hall, error) {
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	h, err := s.halls.GetByID(ctx, id)
	if err != nil {
		return nil, s.hallError("update hall", id, err)
	}
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.Capacity != nil {
		h.Capacity = *req.Capacity
	}
	if req.BasePrice != nil {
		h.BasePrice = *req.BasePrice
	}
	if req.Images != nil {
		h.Images = *req.Images
	}
	if req.Amenities != nil {
		h.Amenities = *req.Amenities
	}
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}
	if err := s.halls.Update(ctx, h); err != nil {
		return nil, s.hallError("update hall", id, err)
	}
	s.invalidate(ctx, cache.TagBookings)
	return h, nil
}

// DeleteHall removes a hall unless it still has PENDING or CONFIRMED
// bookings.
func (s *HallService) DeleteHall(ctx context.Context, id uint64) (string, error) {
	if err := s.halls.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHallHasActiveBookings) {
			return "", conflict(msgHallInUse)
		}
		return "", s.hallError("delete hall", id, err)
	}
	s.invalidate(ctx, cache.TagBookings)
	return msgHallDeleted, nil
}

// ToggleHallStatus flips the active flag.
func (s *HallService) ToggleHallStatus(ctx context.Context, id uint64) (*model.Hall, error) {
	h, err := s.halls.ToggleActive(ctx, id)
	if err != nil {
		return nil, s.hallError("update hall status", id, err)
	}
	s.invalidate(ctx)
	return h, nil
}

// CheckAvailability reports whether the hall can take a booking for the
// date and slot.  Inactive halls are never available.
func (s *HallService) CheckAvailability(ctx context.Context, q dto.AvailabilityQuery) (*model.Availability, error) {
	if err := validate(s.v, q); err != nil {
		return nil, err
	}
	date, err := model.ParseDate(q.Date)
	if err != nil {
		return nil, invalid("Date must be a date in YYYY-MM-DD format")
	}
	if date.Before(model.DateOf(s.now())) {
		return nil, invalid(msgEventDateInPast)
	}
	h, err := s.halls.GetByID(ctx, q.HallID)
	if err != nil {
		return nil, s.hallError("check availability", q.HallID, err)
	}
	out := &model.Availability{HallID: h.ID, EventDate: date, TimeSlot: model.TimeSlot(q.TimeSlot), Available: true}
	if !h.IsActive {
		out.Available, out.Reason = false, reasonHallInactive
		return out, nil
	}
	busy, err := s.bookings.HasConflict(ctx, h.ID, date, out.TimeSlot)
	if err != nil {
		return nil, failure(s.log, "check availability", err, zap.Uint64("hall_id", h.ID))
	}
	if busy {
		out.Available, out.Reason = false, reasonSlotBooked
	}
	return out, nil
}
