package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions

	"github.com/iliyamo/venue-booking/internal/model"
)

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("hall not found")

// HallRepo provides methods to create, retrieve and remove halls.  It
// embeds a database handle to perform queries and commands.
type HallRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

const hallColumns = `h.id, h.name, h.description, h.capacity, h.base_price, h.images, h.amenities, h.is_active, h.created_at, h.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHall(row rowScanner, extra ...any) (*model.Hall, error) {
	var (
		h                 model.Hall
		images, amenities []byte
	)
	dest := []any{&h.ID, &h.Name, &h.Description, &h.Capacity, &h.BasePrice, &images, &amenities, &h.IsActive, &h.CreatedAt, &h.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	h.Images, h.Amenities = []string{}, []string{}
	if err := scanJSON(images, &h.Images); err != nil {
		return nil, err
	}
	if err := scanJSON(amenities, &h.Amenities); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListActive returns halls visible to customers, newest first.
func (r *HallRepo) ListActive(ctx context.Context) ([]*model.Hall, error) {
	q := `SELECT ` + hallColumns + ` FROM halls h WHERE h.is_active = TRUE ORDER BY h.created_at DESC, h.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Hall{}
	for rows.Next() {
		h, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every hall, newest first, with the number of active
// bookings attached for the admin dashboard.
func (r *HallRepo) ListAll(ctx context.Context) ([]*model.Hall, error) {
	q := `SELECT ` + hallColumns + `,
	             (SELECT COUNT(*) FROM bookings b
	               WHERE b.hall_id = h.id AND b.status IN ('PENDING', 'CONFIRMED')) AS active_bookings
	      FROM halls h
	      ORDER BY h.created_at DESC, h.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Hall{}
	for rows.Next() {
		var active int
		h, err := scanHall(rows, &active)
		if err != nil {
			return nil, err
		}
		h.ActiveBookings = &active
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a hall by its ID.  It returns ErrHallNotFound when no
// row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	q := `SELECT ` + hallColumns + ` FROM halls h WHERE h.id = ?`
	h, err := scanHall(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return h, nil
}

// ListBookedSlots returns the dates and slots held by active bookings on
// the hall from the given day onwards, in date order.
func (r *HallRepo) ListBookedSlots(ctx context.Context, hallID uint64, from model.Date) ([]model.BookedSlot, error) {
	const q = `SELECT event_date, time_slot FROM bookings
	           WHERE hall_id = ? AND event_date >= ? AND status IN ('PENDING', 'CONFIRMED')
	           ORDER BY event_date, time_slot`
	rows, err := r.db.QueryContext(ctx, q, hallID, from.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookedSlot{}
	for rows.Next() {
		var (
			s    model.BookedSlot
			date sql.NullTime
			slot string
		)
		if err := rows.Scan(&date, &slot); err != nil {
			return nil, err
		}
		s.EventDate = model.DateOf(date.Time)
		s.TimeSlot = model.TimeSlot(slot)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new hall.  After insert the row is read back so the ID,
// timestamps and defaults of h are populated.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	images, err := jsonValue(h.Images)
	if err != nil {
		return err
	}
	amenities, err := jsonValue(h.Amenities)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO halls (name, description, capacity, base_price, images, amenities, is_active)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.Name, h.Description, h.Capacity, h.BasePrice, images, amenities, h.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*h = *fresh
	return nil
}

// Update writes every editable column of h.  Returns ErrHallNotFound when
// the row does not exist.
func (r *HallRepo) Update(ctx context.Context, h *model.Hall) error {
	images, err := jsonValue(h.Images)
	if err != nil {
		return err
	}
	amenities, err := jsonValue(h.Amenities)
	if err != nil {
		return err
	}
	const q = `UPDATE halls
	           SET name = ?, description = ?, capacity = ?, base_price = ?, images = ?, amenities = ?, is_active = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, h.Name, h.Description, h.Capacity, h.BasePrice, images, amenities, h.IsActive, h.ID); err != nil {
		return err
	}
	// MySQL reports 0 affected rows for no-op updates, so existence is
	// checked by reading the row back.
	fresh, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *fresh
	return nil
}

// ToggleActive flips is_active and returns the updated hall.
func (r *HallRepo) ToggleActive(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `UPDATE halls SET is_active = NOT is_active, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrHallNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a hall that has no active bookings.  The check and the
// delete share a transaction and the hall row is locked so a booking
// cannot slip in between.  Historic bookings keep their hall_name snapshot;
// their hall_id is cleared by the ON DELETE SET NULL foreign key.
func (r *HallRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var locked uint64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM halls WHERE id = ? FOR UPDATE`, id).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHallNotFound
		}
		return err
	}
	var active int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE hall_id = ? AND status IN ('PENDING', 'CONFIRMED')`, id).
		Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrHallHasActiveBookings
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM halls WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// Summaries returns the booking-view projection of the given halls keyed
// by id.  Deleted halls are missing from the map.
func (r *HallRepo) Summaries(ctx context.Context, ids []uint64) (map[uint64]*model.HallSummary, error) {
	out := make(map[uint64]*model.HallSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := `SELECT h.id, h.name, h.images, h.base_price FROM halls h WHERE h.id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			s      model.HallSummary
			images []byte
		)
		if err := rows.Scan(&s.ID, &s.Name, &images, &s.BasePrice); err != nil {
			return nil, err
		}
		s.Images = []string{}
		if err := scanJSON(images, &s.Images); err != nil {
			return nil, err
		}
		out[s.ID] = &s
	}
	return out, rows.Err()
}
