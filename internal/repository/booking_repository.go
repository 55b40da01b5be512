package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// maxNumberAttempts bounds booking-number regeneration after unique-key
// collisions.
const maxNumberAttempts = 5

// BookingRepo persists bookings and their append-only status history.
// All timestamp fields are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, booking_number, user_id, hall_id, hall_name, event_date, time_slot, guest_count, event_type,
	selected_foods, selected_theme, total_amount, customer_details, special_requests, status, payment_status,
	payment_id, created_at, updated_at`

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		b                     model.Booking
		hallID                sql.NullInt64
		eventDate             time.Time
		foods, theme, contact []byte
		requests, paymentID   sql.NullString
	)
	if err := row.Scan(&b.ID, &b.BookingNumber, &b.UserID, &hallID, &b.HallName, &eventDate, &b.TimeSlot,
		&b.GuestCount, &b.EventType, &foods, &theme, &b.TotalAmount, &contact, &requests, &b.Status,
		&b.PaymentStatus, &paymentID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if hallID.Valid {
		b.HallID = uint64(hallID.Int64)
	}
	b.EventDate = model.DateOf(eventDate)
	b.SpecialRequests = requests.String
	b.PaymentID = paymentID.String
	b.SelectedFoods = []model.FoodSelection{}
	if err := scanJSON(foods, &b.SelectedFoods); err != nil {
		return nil, err
	}
	if len(theme) > 0 && string(theme) != "null" {
		b.SelectedTheme = &model.ThemeSelection{}
		if err := scanJSON(theme, b.SelectedTheme); err != nil {
			return nil, err
		}
	}
	if err := scanJSON(contact, &b.CustomerDetails); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conflictQuery counts active bookings that overlap the slot.  The slot
// list comes from TimeSlot.ConflictingSlots.  A non-zero excludeID leaves
// that booking out of the count.
func conflictQuery(slot model.TimeSlot, excludeID uint64) (string, []model.TimeSlot) {
	slots := slot.ConflictingSlots()
	q := fmt.Sprintf(`SELECT COUNT(*) FROM bookings
	                  WHERE hall_id = ? AND event_date = ? AND status IN ('PENDING', 'CONFIRMED')
	                    AND time_slot IN (%s)`, placeholders(len(slots)))
	if excludeID != 0 {
		q += ` AND id <> ?`
	}
	return q, slots
}

func hasConflict(ctx context.Context, qr querier, hallID uint64, date model.Date, slot model.TimeSlot, excludeID uint64) (bool, error) {
	q, slots := conflictQuery(slot, excludeID)
	args := []any{hallID, date.String()}
	for _, s := range slots {
		args = append(args, string(s))
	}
	if excludeID != 0 {
		args = append(args, excludeID)
	}
	var n int
	if err := qr.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// lockHall takes a row lock on the hall for the rest of tx.
func lockHall(ctx context.Context, tx *sql.Tx, hallID uint64) error {
	var locked uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM halls WHERE id = ? FOR UPDATE`, hallID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrHallNotFound
	}
	return err
}

// HasConflict reports whether an active booking on the hall and date
// overlaps slot.
func (r *BookingRepo) HasConflict(ctx context.Context, hallID uint64, date model.Date, slot model.TimeSlot) (bool, error) {
	return hasConflict(ctx, r.db, hallID, date, slot, 0)
}

func insertHistory(ctx context.Context, tx *sql.Tx, h model.StatusChange) error {
	var changedBy any
	if h.ChangedBy != 0 {
		changedBy = h.ChangedBy
	}
	const q = `INSERT INTO booking_status_history (booking_id, status, payment_status, note, changed_by)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, h.BookingID, string(h.Status), string(h.PaymentStatus), h.Note, changedBy)
	return err
}

// Create stores b as a new booking.  The hall row is locked for the
// duration of the transaction and the overlap check is repeated under the
// lock, so two concurrent requests for the same slot cannot both succeed.
// newNumber is called for each insert attempt; a duplicate booking number
// is retried with a fresh one.  The first history row is written in the
// same transaction.  On success b is refreshed from the stored row.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, newNumber func() string) (err error) {
	foods, err := jsonValue(b.SelectedFoods)
	if err != nil {
		return err
	}
	var theme any
	if b.SelectedTheme != nil {
		if theme, err = jsonValue(b.SelectedTheme); err != nil {
			return err
		}
	}
	contact, err := jsonValue(b.CustomerDetails)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockHall(ctx, tx, b.HallID); err != nil {
		return err
	}
	busy, err := hasConflict(ctx, tx, b.HallID, b.EventDate, b.TimeSlot, 0)
	if err != nil {
		return err
	}
	if busy {
		return ErrSlotUnavailable
	}

	var paymentID any
	if b.PaymentID != "" {
		paymentID = b.PaymentID
	}
	const qInsert = `INSERT INTO bookings (booking_number, user_id, hall_id, hall_name, event_date, time_slot, guest_count,
	                   event_type, selected_foods, selected_theme, total_amount, customer_details, special_requests,
	                   status, payment_status, payment_id)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var res sql.Result
	for attempt := 0; ; attempt++ {
		if attempt == maxNumberAttempts {
			return ErrBookingNumberExhausted
		}
		b.BookingNumber = newNumber()
		res, err = tx.ExecContext(ctx, qInsert, b.BookingNumber, b.UserID, b.HallID, b.HallName, b.EventDate.String(),
			string(b.TimeSlot), b.GuestCount, b.EventType, foods, theme, b.TotalAmount, contact, b.SpecialRequests,
			string(b.Status), string(b.PaymentStatus), paymentID)
		if err == nil {
			break
		}
		if !isDuplicateKey(err) {
			return err
		}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	if err = insertHistory(ctx, tx, model.StatusChange{
		BookingID:     b.ID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Note:          "Booking created",
		ChangedBy:     b.UserID,
	}); err != nil {
		return err
	}
	fresh, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, b.ID))
	if err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	*b = *fresh
	return nil
}

// GetByID loads one booking.  Returns ErrBookingNotFound when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

// List returns all bookings matching f, newest first.
func (r *BookingRepo) List(ctx context.Context, f model.BookingFilter) ([]*model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1 = 1`
	var args []any
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.PaymentStatus != "" {
		q += ` AND payment_status = ?`
		args = append(args, string(f.PaymentStatus))
	}
	q += ` ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, args...)
}

// History returns the status changes of a booking in the order they were
// recorded.
func (r *BookingRepo) History(ctx context.Context, bookingID uint64) ([]model.StatusChange, error) {
	const q = `SELECT id, booking_id, status, payment_status, note, changed_by, created_at
	           FROM booking_status_history WHERE booking_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.StatusChange{}
	for rows.Next() {
		var (
			h         model.StatusChange
			note      sql.NullString
			changedBy sql.NullInt64
		)
		if err := rows.Scan(&h.ID, &h.BookingID, &h.Status, &h.PaymentStatus, &note, &changedBy, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.Note = note.String
		if changedBy.Valid {
			h.ChangedBy = uint64(changedBy.Int64)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Apply locks the booking, lets check veto the change against the current
// row, applies ch and records a history entry, all in one transaction.
// check may be nil.  A change that makes a cancelled or completed booking
// active again locks the hall and fails with ErrSlotUnavailable when
// another active booking now overlaps it.  The updated booking is
// returned.
func (r *BookingRepo) Apply(ctx context.Context, id uint64, ch model.BookingChange, check func(*model.Booking) error) (_ *model.Booking, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if check != nil {
		if err = check(b); err != nil {
			return nil, err
		}
	}
	wasActive := b.Status.IsActive()
	ch.Apply(b)
	if !wasActive && b.Status.IsActive() && b.HallID != 0 {
		if err = lockHall(ctx, tx, b.HallID); err != nil {
			return nil, err
		}
		var busy bool
		if busy, err = hasConflict(ctx, tx, b.HallID, b.EventDate, b.TimeSlot, b.ID); err != nil {
			return nil, err
		}
		if busy {
			return nil, ErrSlotUnavailable
		}
	}

	var paymentID any
	if b.PaymentID != "" {
		paymentID = b.PaymentID
	}
	const q = `UPDATE bookings
	           SET status = ?, payment_status = ?, payment_id = ?, special_requests = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q, string(b.Status), string(b.PaymentStatus), paymentID, b.SpecialRequests, id); err != nil {
		return nil, err
	}
	if err = insertHistory(ctx, tx, ch.HistoryEntry(b)); err != nil {
		return nil, err
	}
	fresh, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Stats aggregates booking counts per status and the revenue of paid
// bookings.
func (r *BookingRepo) Stats(ctx context.Context) (model.BookingStats, error) {
	var s model.BookingStats
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status model.BookingStatus
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return s, err
		}
		s.Add(status, n)
	}
	if err := rows.Err(); err != nil {
		return s, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE payment_status = 'PAID'`).
		Scan(&s.Revenue); err != nil {
		return s, err
	}
	return s, nil
}
