package service

import (
	"context"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
)

// HallStore is implemented by repository.HallRepo and memstore.Halls.
type HallStore interface {
	ListActive(ctx context.Context) ([]*model.Hall, error)
	ListAll(ctx context.Context) ([]*model.Hall, error)
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	ListBookedSlots(ctx context.Context, hallID uint64, from model.Date) ([]model.BookedSlot, error)
	Summaries(ctx context.Context, ids []uint64) (map[uint64]*model.HallSummary, error)
	Create(ctx context.Context, h *model.Hall) error
	Update(ctx context.Context, h *model.Hall) error
	ToggleActive(ctx context.Context, id uint64) (*model.Hall, error)
	Delete(ctx context.Context, id uint64) error
}

// FoodStore is implemented by repository.FoodRepo and memstore.Foods.
type FoodStore interface {
	List(ctx context.Context, filter model.FoodFilter) ([]*model.FoodItem, error)
	GetByID(ctx context.Context, id uint64) (*model.FoodItem, error)
	Create(ctx context.Context, f *model.FoodItem) error
	Update(ctx context.Context, f *model.FoodItem) error
	ToggleAvailability(ctx context.Context, id uint64) (*model.FoodItem, error)
	Delete(ctx context.Context, id uint64) error
}

// ThemeStore is implemented by repository.ThemeRepo and memstore.Themes.
type ThemeStore interface {
	List(ctx context.Context, onlyAvailable bool) ([]*model.Theme, error)
	GetByID(ctx context.Context, id uint64) (*model.Theme, error)
	Create(ctx context.Context, t *model.Theme) error
	Update(ctx context.Context, t *model.Theme) error
	ToggleAvailability(ctx context.Context, id uint64) (*model.Theme, error)
	Delete(ctx context.Context, id uint64) error
}

// SlotChecker answers overlap queries against active bookings.
type SlotChecker interface {
	HasConflict(ctx context.Context, hallID uint64, date model.Date, slot model.TimeSlot) (bool, error)
}

// BookingStore is implemented by repository.BookingRepo and
// memstore.Bookings.  Create must perform the overlap check and the insert
// atomically.
type BookingStore interface {
	SlotChecker
	Create(ctx context.Context, b *model.Booking, newNumber func() string) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error)
	List(ctx context.Context, f model.BookingFilter) ([]*model.Booking, error)
	History(ctx context.Context, bookingID uint64) ([]model.StatusChange, error)
	Apply(ctx context.Context, id uint64, ch model.BookingChange, check func(*model.Booking) error) (*model.Booking, error)
	Stats(ctx context.Context) (model.BookingStats, error)
}

// UserStore resolves user projections for booking listings.
type UserStore interface {
	Summaries(ctx context.Context, ids []uint64) (map[uint64]*model.UserSummary, error)
}

// EventPublisher is implemented by queue.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}
