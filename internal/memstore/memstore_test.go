package memstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
)

func seedHall(t *testing.T, s *Store) *model.Hall {
	t.Helper()
	h := &model.Hall{Name: "Lotus", Capacity: 100, BasePrice: 1000, Images: []string{"https://x/y.jpg"}, IsActive: true}
	require.NoError(t, s.Halls().Create(context.Background(), h))
	return h
}

func booking(hallID uint64, date string, slot model.TimeSlot) *model.Booking {
	d, _ := model.ParseDate(date)
	return &model.Booking{HallID: hallID, HallName: "Lotus", EventDate: d, TimeSlot: slot, UserID: 1,
		Status: model.StatusPending, PaymentStatus: model.PaymentPending}
}

func counter() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("BK20310101%04d", n.Add(1)) }
}

func TestConcurrentCreatesBookOnce(t *testing.T) {
	s := New()
	h := seedHall(t, s)
	next := counter()

	var wg sync.WaitGroup
	var ok, taken atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Bookings().Create(context.Background(), booking(h.ID, "2031-01-01", model.SlotEvening), next)
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, repository.ErrSlotUnavailable):
				taken.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(19), taken.Load())
}

func TestCreateRegeneratesDuplicateNumbers(t *testing.T) {
	s := New()
	h := seedHall(t, s)
	ctx := context.Background()

	first := booking(h.ID, "2031-01-01", model.SlotMorning)
	require.NoError(t, s.Bookings().Create(ctx, first, func() string { return "BK203101010001" }))

	calls := 0
	second := booking(h.ID, "2031-01-01", model.SlotEvening)
	require.NoError(t, s.Bookings().Create(ctx, second, func() string {
		calls++
		if calls < 3 {
			return "BK203101010001"
		}
		return "BK203101010002"
	}))
	assert.Equal(t, "BK203101010002", second.BookingNumber)

	third := booking(h.ID, "2031-01-02", model.SlotEvening)
	err := s.Bookings().Create(ctx, third, func() string { return "BK203101010001" })
	assert.ErrorIs(t, err, repository.ErrBookingNumberExhausted)
}

func TestHallDeleteKeepsHistoricBookings(t *testing.T) {
	s := New()
	h := seedHall(t, s)
	ctx := context.Background()

	b := booking(h.ID, "2031-01-01", model.SlotFullDay)
	require.NoError(t, s.Bookings().Create(ctx, b, counter()))
	require.ErrorIs(t, s.Halls().Delete(ctx, h.ID), repository.ErrHallHasActiveBookings)

	done := model.StatusCompleted
	_, err := s.Bookings().Apply(ctx, b.ID, model.BookingChange{Status: &done}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Halls().Delete(ctx, h.ID))

	got, err := s.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, got.HallID)
	assert.Equal(t, "Lotus", got.HallName)

	history, err := s.Bookings().History(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.StatusCompleted, history[1].Status)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	s := New()
	h := seedHall(t, s)
	ctx := context.Background()

	got, err := s.Halls().GetByID(ctx, h.ID)
	require.NoError(t, err)
	got.Images[0] = "mutated"
	got.Name = "mutated"

	again, err := s.Halls().GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lotus", again.Name)
	assert.Equal(t, "https://x/y.jpg", again.Images[0])
}

func TestBookedSlotsFollowSlotOrder(t *testing.T) {
	s := New()
	h := seedHall(t, s)
	next := counter()
	ctx := context.Background()
	for _, b := range []*model.Booking{
		booking(h.ID, "2031-03-02", model.SlotEvening),
		booking(h.ID, "2031-03-02", model.SlotMorning),
		booking(h.ID, "2031-03-01", model.SlotFullDay),
	} {
		require.NoError(t, s.Bookings().Create(ctx, b, next))
	}

	from, _ := model.ParseDate("2031-01-01")
	slots, err := s.Halls().ListBookedSlots(ctx, h.ID, from)
	require.NoError(t, err)
	got := make([]string, 0, len(slots))
	for _, sl := range slots {
		got = append(got, sl.EventDate.String()+" "+string(sl.TimeSlot))
	}
	assert.Equal(t, []string{"2031-03-01 Full Day", "2031-03-02 Morning", "2031-03-02 Evening"}, got)
}

func TestApplyRefusesReinstatingIntoTakenSlot(t *testing.T) {
	s := New()
	h := seedHall(t, s)
	next := counter()
	ctx := context.Background()

	first := booking(h.ID, "2031-03-01", model.SlotMorning)
	require.NoError(t, s.Bookings().Create(ctx, first, next))
	cancelled := model.StatusCancelled
	_, err := s.Bookings().Apply(ctx, first.ID, model.BookingChange{Status: &cancelled}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Bookings().Create(ctx, booking(h.ID, "2031-03-01", model.SlotFullDay), next))

	paid := model.PaymentPaid
	_, err = s.Bookings().Apply(ctx, first.ID, model.BookingChange{PaymentStatus: &paid}, nil)
	require.ErrorIs(t, err, repository.ErrSlotUnavailable)

	got, err := s.Bookings().GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, got.Status)
	assert.Equal(t, model.PaymentPending, got.PaymentStatus)
	history, err := s.Bookings().History(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
