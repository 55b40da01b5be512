package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
)

const maxNumberAttempts = 5

// Bookings implements service.BookingStore.
type Bookings struct{ s *Store }

// conflict reports whether an active booking other than excludeID overlaps
// slot on the hall and date.
func (s *Store) conflict(hallID uint64, date model.Date, slot model.TimeSlot, excludeID uint64) bool {
	for _, b := range s.bookings {
		if b.ID != excludeID && b.HallID == hallID && b.EventDate.Equal(date) && b.Status.IsActive() && b.TimeSlot.Overlaps(slot) {
			return true
		}
	}
	return false
}

func (r *Bookings) HasConflict(_ context.Context, hallID uint64, date model.Date, slot model.TimeSlot) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.conflict(hallID, date, slot, 0), nil
}

// Create checks the hall, the overlap rule and the booking number under
// the store lock, then inserts b with its first history entry.
func (r *Bookings) Create(_ context.Context, b *model.Booking, newNumber func() string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.halls[b.HallID]; !ok {
		return repository.ErrHallNotFound
	}
	if r.s.conflict(b.HallID, b.EventDate, b.TimeSlot, 0) {
		return repository.ErrSlotUnavailable
	}
	number := ""
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		if n := newNumber(); !r.s.numbers[n] {
			number = n
			break
		}
	}
	if number == "" {
		return repository.ErrBookingNumberExhausted
	}
	r.s.numbers[number] = true

	b.ID = r.s.next("bookings")
	b.BookingNumber = number
	b.CreatedAt = r.s.stamp()
	b.UpdatedAt = b.CreatedAt
	if b.SelectedFoods == nil {
		b.SelectedFoods = []model.FoodSelection{}
	}
	r.s.bookings[b.ID] = cloneBooking(b)
	r.s.record(model.StatusChange{
		BookingID:     b.ID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Note:          "Booking created",
		ChangedBy:     b.UserID,
	})
	return nil
}

func (s *Store) record(h model.StatusChange) {
	h.ID = s.next("history")
	h.CreatedAt = s.stamp()
	s.history = append(s.history, h)
}

func (r *Bookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *Bookings) filtered(keep func(*model.Booking) bool) []*model.Booking {
	out := []*model.Booking{}
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	newestFirst(out, func(b *model.Booking) time.Time { return b.CreatedAt }, func(b *model.Booking) uint64 { return b.ID })
	return out
}

func (r *Bookings) ListByUser(_ context.Context, userID uint64) ([]*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filtered(func(b *model.Booking) bool { return b.UserID == userID }), nil
}

func (r *Bookings) List(_ context.Context, f model.BookingFilter) ([]*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filtered(f.Matches), nil
}

func (r *Bookings) History(_ context.Context, bookingID uint64) ([]model.StatusChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.StatusChange{}
	for _, h := range r.s.history {
		if h.BookingID == bookingID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Apply runs check against the current row, then applies ch and records
// the history entry, all under the store lock.  Reactivating a cancelled
// or completed booking fails with ErrSlotUnavailable when its slot has
// been taken since.
func (r *Bookings) Apply(_ context.Context, id uint64, ch model.BookingChange, check func(*model.Booking) error) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	if check != nil {
		if err := check(cloneBooking(b)); err != nil {
			return nil, err
		}
	}
	next := cloneBooking(b)
	ch.Apply(next)
	if !b.Status.IsActive() && next.Status.IsActive() && next.HallID != 0 &&
		r.s.conflict(next.HallID, next.EventDate, next.TimeSlot, next.ID) {
		return nil, repository.ErrSlotUnavailable
	}
	*b = *next
	b.UpdatedAt = r.s.stamp()
	r.s.record(ch.HistoryEntry(b))
	return cloneBooking(b), nil
}

func (r *Bookings) Stats(context.Context) (model.BookingStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var st model.BookingStats
	for _, b := range r.s.bookings {
		st.Add(b.Status, 1)
		if b.PaymentStatus == model.PaymentPaid {
			st.Revenue += b.TotalAmount
		}
	}
	return st, nil
}
