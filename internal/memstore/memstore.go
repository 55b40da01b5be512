// Package memstore keeps every entity in process memory.  It backs
// STORE_DRIVER=memory and the service and handler tests, and follows the
// same rules as the MySQL repositories: overlap rejection under one lock,
// delete blocking for halls with active bookings, and the same sentinel
// errors.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// Store owns all tables.  A single mutex plays the role of the row locks
// the SQL repositories take.
type Store struct {
	mu       sync.Mutex
	now      func() time.Time
	seq      map[string]uint64
	halls    map[uint64]*model.Hall
	foods    map[uint64]*model.FoodItem
	themes   map[uint64]*model.Theme
	bookings map[uint64]*model.Booking
	numbers  map[string]bool
	history  []model.StatusChange
	users    map[uint64]*model.UserSummary
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		now:      time.Now,
		seq:      map[string]uint64{},
		halls:    map[uint64]*model.Hall{},
		foods:    map[uint64]*model.FoodItem{},
		themes:   map[uint64]*model.Theme{},
		bookings: map[uint64]*model.Booking{},
		numbers:  map[string]bool{},
		users:    map[uint64]*model.UserSummary{},
	}
}

func (s *Store) next(table string) uint64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) stamp() time.Time { return s.now().UTC() }

// Halls, Foods, Themes, Bookings and Users expose the store through the
// interfaces the services expect.
func (s *Store) Halls() *Halls { return &Halls{s} }
func (s *Store) Foods() *Foods { return &Foods{s} }
func (s *Store) Themes() *Themes { return &Themes{s} }
func (s *Store) Bookings() *Bookings { return &Bookings{s} }
func (s *Store) Users() *Users { return &Users{s} }

func cloneHall(h *model.Hall) *model.Hall {
	c := *h
	c.Images = slices.Clone(h.Images)
	c.Amenities = slices.Clone(h.Amenities)
	c.ActiveBookings = nil
	return &c
}

func cloneBooking(b *model.Booking) *model.Booking {
	c := *b
	c.SelectedFoods = slices.Clone(b.SelectedFoods)
	if c.SelectedFoods == nil {
		c.SelectedFoods = []model.FoodSelection{}
	}
	if b.SelectedTheme != nil {
		t := *b.SelectedTheme
		c.SelectedTheme = &t
	}
	return &c
}

func cloneTheme(t *model.Theme) *model.Theme {
	c := *t
	c.Images = slices.Clone(t.Images)
	return &c
}

// newestFirst orders by creation time, then id, both descending.
func newestFirst[T any](items []T, created func(T) time.Time, id func(T) uint64) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
}

// Halls implements service.HallStore.
type Halls struct{ s *Store }

func (r *Halls) sorted(keep func(*model.Hall) bool) []*model.Hall {
	out := []*model.Hall{}
	for _, h := range r.s.halls {
		if keep(h) {
			out = append(out, cloneHall(h))
		}
	}
	newestFirst(out, func(h *model.Hall) time.Time { return h.CreatedAt }, func(h *model.Hall) uint64 { return h.ID })
	return out
}

func (r *Halls) ListActive(context.Context) ([]*model.Hall, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(h *model.Hall) bool { return h.IsActive }), nil
}

func (r *Halls) ListAll(context.Context) ([]*model.Hall, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.sorted(func(*model.Hall) bool { return true })
	for _, h := range out {
		n := r.s.activeBookings(h.ID)
		h.ActiveBookings = &n
	}
	return out, nil
}

func (s *Store) activeBookings(hallID uint64) int {
	n := 0
	for _, b := range s.bookings {
		if b.HallID == hallID && b.Status.IsActive() {
			n++
		}
	}
	return n
}

func (r *Halls) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.halls[id]
	if !ok {
		return nil, repository.ErrHallNotFound
	}
	return cloneHall(h), nil
}

func (r *Halls) ListBookedSlots(_ context.Context, hallID uint64, from model.Date) ([]model.BookedSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.BookedSlot{}
	for _, b := range r.s.bookings {
		if b.HallID == hallID && b.Status.IsActive() && !b.EventDate.Before(from) {
			out = append(out, model.BookedSlot{EventDate: b.EventDate, TimeSlot: b.TimeSlot})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return slices.Index(model.TimeSlots, out[i].TimeSlot) < slices.Index(model.TimeSlots, out[j].TimeSlot)
	})
	return out, nil
}

func (r *Halls) Summaries(_ context.Context, ids []uint64) (map[uint64]*model.HallSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uint64]*model.HallSummary, len(ids))
	for _, id := range ids {
		if h, ok := r.s.halls[id]; ok {
			out[id] = &model.HallSummary{ID: h.ID, Name: h.Name, Images: slices.Clone(h.Images), BasePrice: h.BasePrice}
		}
	}
	return out, nil
}

func (r *Halls) Create(_ context.Context, h *model.Hall) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h.ID = r.s.next("halls")
	h.CreatedAt = r.s.stamp()
	h.UpdatedAt = h.CreatedAt
	r.s.halls[h.ID] = cloneHall(h)
	return nil
}

func (r *Halls) Update(_ context.Context, h *model.Hall) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.halls[h.ID]
	if !ok {
		return repository.ErrHallNotFound
	}
	h.CreatedAt = cur.CreatedAt
	h.UpdatedAt = r.s.stamp()
	r.s.halls[h.ID] = cloneHall(h)
	return nil
}

func (r *Halls) ToggleActive(_ context.Context, id uint64) (*model.Hall, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.halls[id]
	if !ok {
		return nil, repository.ErrHallNotFound
	}
	h.IsActive = !h.IsActive
	h.UpdatedAt = r.s.stamp()
	return cloneHall(h), nil
}

// Delete mirrors ON DELETE SET NULL: surviving bookings lose their hall id
// but keep the hall name snapshot.
func (r *Halls) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.halls[id]; !ok {
		return repository.ErrHallNotFound
	}
	if r.s.activeBookings(id) > 0 {
		return repository.ErrHallHasActiveBookings
	}
	delete(r.s.halls, id)
	for _, b := range r.s.bookings {
		if b.HallID == id {
			b.HallID = 0
		}
	}
	return nil
}

// Foods implements service.FoodStore.
type Foods struct{ s *Store }

func (r *Foods) List(_ context.Context, filter model.FoodFilter) ([]*model.FoodItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*model.FoodItem{}
	for _, f := range r.s.foods {
		if filter.Matches(f) {
			c := *f
			out = append(out, &c)
		}
	}
	order := map[model.FoodCategory]int{}
	for i, c := range model.FoodCategories {
		order[c] = i
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return order[out[i].Category] < order[out[j].Category]
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *Foods) GetByID(_ context.Context, id uint64) (*model.FoodItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.foods[id]
	if !ok {
		return nil, repository.ErrFoodItemNotFound
	}
	c := *f
	return &c, nil
}

func (r *Foods) Create(_ context.Context, f *model.FoodItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.ID = r.s.next("foods")
	f.CreatedAt = r.s.stamp()
	f.UpdatedAt = f.CreatedAt
	c := *f
	r.s.foods[f.ID] = &c
	return nil
}

func (r *Foods) Update(_ context.Context, f *model.FoodItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.foods[f.ID]
	if !ok {
		return repository.ErrFoodItemNotFound
	}
	f.CreatedAt = cur.CreatedAt
	f.UpdatedAt = r.s.stamp()
	c := *f
	r.s.foods[f.ID] = &c
	return nil
}

func (r *Foods) ToggleAvailability(_ context.Context, id uint64) (*model.FoodItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.foods[id]
	if !ok {
		return nil, repository.ErrFoodItemNotFound
	}
	f.IsAvailable = !f.IsAvailable
	f.UpdatedAt = r.s.stamp()
	c := *f
	return &c, nil
}

func (r *Foods) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.foods[id]; !ok {
		return repository.ErrFoodItemNotFound
	}
	delete(r.s.foods, id)
	return nil
}

// Themes implements service.ThemeStore.
type Themes struct{ s *Store }

func (r *Themes) List(_ context.Context, onlyAvailable bool) ([]*model.Theme, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*model.Theme{}
	for _, t := range r.s.themes {
		if !onlyAvailable || t.IsAvailable {
			out = append(out, cloneTheme(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Themes) GetByID(_ context.Context, id uint64) (*model.Theme, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.themes[id]
	if !ok {
		return nil, repository.ErrThemeNotFound
	}
	return cloneTheme(t), nil
}

func (r *Themes) Create(_ context.Context, t *model.Theme) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.next("themes")
	t.CreatedAt = r.s.stamp()
	t.UpdatedAt = t.CreatedAt
	r.s.themes[t.ID] = cloneTheme(t)
	return nil
}

func (r *Themes) Update(_ context.Context, t *model.Theme) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.themes[t.ID]
	if !ok {
		return repository.ErrThemeNotFound
	}
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = r.s.stamp()
	r.s.themes[t.ID] = cloneTheme(t)
	return nil
}

func (r *Themes) ToggleAvailability(_ context.Context, id uint64) (*model.Theme, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.themes[id]
	if !ok {
		return nil, repository.ErrThemeNotFound
	}
	t.IsAvailable = !t.IsAvailable
	t.UpdatedAt = r.s.stamp()
	return cloneTheme(t), nil
}

func (r *Themes) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.themes[id]; !ok {
		return repository.ErrThemeNotFound
	}
	delete(r.s.themes, id)
	return nil
}

// Users implements service.UserStore.  Accounts live upstream; Seed stands
// in for them locally.
type Users struct{ s *Store }

// Seed registers user projections.
func (r *Users) Seed(users ...model.UserSummary) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range users {
		u := u
		r.s.users[u.ID] = &u
	}
}

func (r *Users) Summaries(_ context.Context, ids []uint64) (map[uint64]*model.UserSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uint64]*model.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			c := *u
			out[id] = &c
		}
	}
	return out, nil
}
