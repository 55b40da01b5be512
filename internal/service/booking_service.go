package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking/internal/cache"
	"github.com/iliyamo/venue-booking/internal/dto"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/validation"
)

const (
	msgBookingNotFound   = "Booking not found"
	msgAlreadyCancelled  = "Booking is already cancelled"
	msgCompletedNoCancel = "Completed bookings cannot be cancelled"
	msgTotalOutOfRange   = "Total amount is too large"
	publishTimeout       = 3 * time.Second
)

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID uint64
	Admin  bool
}

// BookingService implements the booking ledger.
type BookingService struct {
	bookings BookingStore
	halls    HallStore
	users    UserStore
	v        *validation.Validator
	cache    cache.Invalidator
	events   EventPublisher
	log      *zap.Logger
	now      func() time.Time
	digits   func() int
}

// NewBookingService wires a BookingService.  events may be nil, in which
// case no lifecycle events are published.
func NewBookingService(bookings BookingStore, halls HallStore, users UserStore, v *validation.Validator,
	inv cache.Invalidator, events EventPublisher, log *zap.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		halls:    halls,
		users:    users,
		v:        v,
		cache:    inv,
		events:   events,
		log:      log,
		now:      time.Now,
		digits:   func() int { return rand.Intn(10000) },
	}
}

// bookingNumber returns BK + YYYYMMDD of today + 4 random digits.
func (s *BookingService) bookingNumber() string {
	return fmt.Sprintf("BK%s%04d", s.now().UTC().Format("20060102"), s.digits())
}

// afterMutation clears cached hall listings (booked slots changed) and
// publishes ev.  Both are best effort: the booking is already committed.
func (s *BookingService) afterMutation(ctx context.Context, typ string, b *model.Booking, note string) {
	if err := s.cache.Invalidate(ctx, cache.TagHalls, cache.TagBookings); err != nil {
		s.log.Warn("cache invalidation failed", zap.Error(err))
	}
	if s.events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(pctx, queue.NewBookingEvent(typ, b, note, s.now())); err != nil {
		s.log.Warn("booking event not published",
			zap.String("type", typ), zap.Uint64("booking_id", b.ID), zap.Error(err))
	}
}

// CreateBooking validates req, prices the booking from the hall and the
// selected extras, and stores it as PENDING/PENDING.  The overlap check is
// repeated by the store under a lock on the hall.
func (s *BookingService) CreateBooking(ctx context.Context, actor Actor, req dto.CreateBookingRequest) (*model.Booking, error) {
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	date, err := model.ParseDate(req.EventDate)
	if err != nil {
		return nil, invalid("Event date must be a date in YYYY-MM-DD format")
	}
	if date.Before(model.DateOf(s.now())) {
		return nil, invalid(msgEventDateInPast)
	}
	h, err := s.halls.GetByID(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return nil, notFound(msgHallNotFound)
		}
		return nil, failure(s.log, "create booking", err, zap.Uint64("hall_id", req.HallID))
	}
	if !h.IsActive {
		return nil, conflict(msgHallInactive)
	}
	if req.GuestCount > h.Capacity {
		return nil, invalid(fmt.Sprintf("Guest count exceeds hall capacity of %d", h.Capacity))
	}

	// Food and theme lines are snapshots of what the customer saw; their
	// prices are taken as submitted and not re-read from the catalog.
	foods, theme := req.Foods(), req.Theme()
	total, err := model.TotalAmount(h.BasePrice, foods, theme)
	if err != nil {
		return nil, invalid(msgTotalOutOfRange)
	}
	b := &model.Booking{
		UserID:          actor.UserID,
		HallID:          h.ID,
		HallName:        h.Name,
		EventDate:       date,
		TimeSlot:        model.TimeSlot(req.TimeSlot),
		GuestCount:      req.GuestCount,
		EventType:       req.EventType,
		SelectedFoods:   foods,
		SelectedTheme:   theme,
		TotalAmount:     total,
		CustomerDetails: req.Customer(),
		SpecialRequests: req.SpecialRequests,
		Status:          model.StatusPending,
		PaymentStatus:   model.PaymentPending,
	}
	if err := s.bookings.Create(ctx, b, s.bookingNumber); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotUnavailable):
			return nil, conflict(msgSlotUnavailable)
		case errors.Is(err, repository.ErrHallNotFound):
			return nil, notFound(msgHallNotFound)
		}
		return nil, failure(s.log, "create booking", err, zap.Uint64("hall_id", h.ID), zap.Uint64("user_id", actor.UserID))
	}
	s.log.Info("booking created",
		zap.String("booking_number", b.BookingNumber), zap.Uint64("hall_id", b.HallID), zap.Int64("total", b.TotalAmount))
	s.afterMutation(ctx, queue.EventCreated, b, "")
	return b, nil
}

// details joins bookings with their hall and user projections.
func (s *BookingService) details(ctx context.Context, list []*model.Booking) ([]*model.BookingDetail, error) {
	var hallIDs, userIDs []uint64
	seenHall, seenUser := map[uint64]bool{}, map[uint64]bool{}
	for _, b := range list {
		if b.HallID != 0 && !seenHall[b.HallID] {
			seenHall[b.HallID] = true
			hallIDs = append(hallIDs, b.HallID)
		}
		if !seenUser[b.UserID] {
			seenUser[b.UserID] = true
			userIDs = append(userIDs, b.UserID)
		}
	}
	halls, err := s.halls.Summaries(ctx, hallIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.users.Summaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	out := make([]*model.BookingDetail, 0, len(list))
	for _, b := range list {
		out = append(out, &model.BookingDetail{Booking: *b, Hall: halls[b.HallID], User: users[b.UserID]})
	}
	return out, nil
}

// GetMyBookings lists the caller's bookings, newest first.
func (s *BookingService) GetMyBookings(ctx context.Context, actor Actor) ([]*model.BookingDetail, error) {
	list, err := s.bookings.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, failure(s.log, "fetch bookings", err, zap.Uint64("user_id", actor.UserID))
	}
	out, err := s.details(ctx, list)
	if err != nil {
		return nil, failure(s.log, "fetch bookings", err)
	}
	return out, nil
}

// GetAllBookings lists every booking matching q, newest first.
func (s *BookingService) GetAllBookings(ctx context.Context, q dto.BookingListQuery) ([]*model.BookingDetail, error) {
	if err := validate(s.v, q); err != nil {
		return nil, err
	}
	list, err := s.bookings.List(ctx, model.BookingFilter{
		Status:        model.BookingStatus(q.Status),
		PaymentStatus: model.PaymentStatus(q.PaymentStatus),
	})
	if err != nil {
		return nil, failure(s.log, "fetch bookings", err)
	}
	out, err := s.details(ctx, list)
	if err != nil {
		return nil, failure(s.log, "fetch bookings", err)
	}
	return out, nil
}

// GetBookingByID returns one booking.  Customers only see their own; a
// foreign booking is reported as missing.  Admins also get the status
// history.
func (s *BookingService) GetBookingByID(ctx context.Context, actor Actor, id uint64) (*model.BookingDetail, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, s.bookingError("fetch booking", id, err)
	}
	if !actor.Admin && b.UserID != actor.UserID {
		return nil, notFound(msgBookingNotFound)
	}
	list, err := s.details(ctx, []*model.Booking{b})
	if err != nil {
		return nil, failure(s.log, "fetch booking", err, zap.Uint64("booking_id", id))
	}
	d := list[0]
	if actor.Admin {
		if d.History, err = s.bookings.History(ctx, id); err != nil {
			return nil, failure(s.log, "fetch booking", err, zap.Uint64("booking_id", id))
		}
	}
	return d, nil
}

func (s *BookingService) bookingError(action string, id uint64, err error) error {
	var se *Error
	switch {
	case errors.As(err, &se):
		return se
	case errors.Is(err, repository.ErrBookingNotFound):
		return notFound(msgBookingNotFound)
	case errors.Is(err, repository.ErrSlotUnavailable):
		return conflict(msgSlotUnavailable)
	case errors.Is(err, repository.ErrHallNotFound):
		return notFound(msgHallNotFound)
	}
	return failure(s.log, action, err, zap.Uint64("booking_id", id))
}

// UpdateBookingStatus sets the lifecycle status (admin).
func (s *BookingService) UpdateBookingStatus(ctx context.Context, actor Actor, id uint64, req dto.UpdateBookingStatusRequest) (*model.Booking, error) {
	if !actor.Admin {
		return nil, forbidden("Only administrators can change booking status")
	}
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	status := model.BookingStatus(req.Status)
	note := req.Note
	if note == "" {
		note = "Status changed to " + req.Status
	}
	b, err := s.bookings.Apply(ctx, id, model.BookingChange{Status: &status, Note: note, ChangedBy: actor.UserID}, nil)
	if err != nil {
		return nil, s.bookingError("update booking status", id, err)
	}
	s.afterMutation(ctx, queue.EventStatusChanged, b, note)
	return b, nil
}

// UpdatePaymentStatus records a payment outcome (admin).  PAID confirms the
// booking whatever its previous status.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, actor Actor, id uint64, req dto.UpdatePaymentStatusRequest) (*model.Booking, error) {
	if !actor.Admin {
		return nil, forbidden("Only administrators can change payment status")
	}
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	payment := model.PaymentStatus(req.PaymentStatus)
	ch := model.BookingChange{PaymentStatus: &payment, Note: "Payment " + req.PaymentStatus, ChangedBy: actor.UserID}
	if req.PaymentID != "" {
		ch.PaymentID = &req.PaymentID
	}
	b, err := s.bookings.Apply(ctx, id, ch, nil)
	if err != nil {
		return nil, s.bookingError("update payment status", id, err)
	}
	s.afterMutation(ctx, queue.EventPaymentUpdated, b, ch.Note)
	return b, nil
}

// CancelBooking cancels a booking.  Customers may only cancel their own.
// The reason is appended to specialRequests and recorded in the history.
func (s *BookingService) CancelBooking(ctx context.Context, actor Actor, id uint64, req dto.CancelBookingRequest) (*model.Booking, error) {
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	cancelled := model.StatusCancelled
	note := "Booking cancelled"
	ch := model.BookingChange{Status: &cancelled, Note: note, ChangedBy: actor.UserID}
	if req.Reason != "" {
		ch.AppendRequest = "Cancellation reason: " + req.Reason
		ch.Note = ch.AppendRequest
	}
	b, err := s.bookings.Apply(ctx, id, ch, func(cur *model.Booking) error {
		if !actor.Admin && cur.UserID != actor.UserID {
			return notFound(msgBookingNotFound)
		}
		switch cur.Status {
		case model.StatusCancelled:
			return conflict(msgAlreadyCancelled)
		case model.StatusCompleted:
			return conflict(msgCompletedNoCancel)
		}
		return nil
	})
	if err != nil {
		return nil, s.bookingError("cancel booking", id, err)
	}
	s.afterMutation(ctx, queue.EventCancelled, b, ch.Note)
	return b, nil
}

// GetBookingStats aggregates the ledger.
func (s *BookingService) GetBookingStats(ctx context.Context) (model.BookingStats, error) {
	st, err := s.bookings.Stats(ctx)
	if err != nil {
		return st, failure(s.log, "fetch booking statistics", err)
	}
	return st, nil
}
