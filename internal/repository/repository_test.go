package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/model"
)

var bookingCols = []string{"id", "booking_number", "user_id", "hall_id", "hall_name", "event_date", "time_slot",
	"guest_count", "event_type", "selected_foods", "selected_theme", "total_amount", "customer_details",
	"special_requests", "status", "payment_status", "payment_id", "created_at", "updated_at"}

func q(s string) string { return regexp.QuoteMeta(s) }

func newMock(t *testing.T) (sqlmock.Sqlmock, func() *BookingRepo, func() *HallRepo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, func() *BookingRepo { return NewBookingRepo(db) }, func() *HallRepo { return NewHallRepo(db) }
}

func bookingRow(id uint64, number string, status model.BookingStatus, payment model.PaymentStatus, paymentID driver.Value) *sqlmock.Rows {
	now := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookingCols).AddRow(
		id, number, 9, 3, "Grand Ballroom", time.Date(2031, 2, 14, 0, 0, 0, 0, time.UTC), "Morning",
		120, "Wedding", `[{"id":1,"name":"Paneer Tikka","quantity":2,"price":200}]`, nil, int64(50400),
		`{"name":"Asha","email":"asha@example.com","phone":"9876543210"}`, nil, string(status), string(payment),
		paymentID, now, now,
	)
}

func newBooking() *model.Booking {
	date, _ := model.ParseDate("2031-02-14")
	return &model.Booking{
		UserID:        9,
		HallID:        3,
		HallName:      "Grand Ballroom",
		EventDate:     date,
		TimeSlot:      model.SlotMorning,
		GuestCount:    120,
		EventType:     "Wedding",
		SelectedFoods: []model.FoodSelection{{ID: 1, Name: "Paneer Tikka", Quantity: 2, Price: 200}},
		TotalAmount:   50400,
		CustomerDetails: model.CustomerDetails{
			Name: "Asha", Email: "asha@example.com", Phone: "9876543210",
		},
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentPending,
	}
}

func TestHallDelete_BlockedWhileBookingsActive(t *testing.T) {
	mock, _, halls := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM halls WHERE id = ? FOR UPDATE")).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM bookings WHERE hall_id = ?")).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectRollback()

	err := halls().Delete(context.Background(), 7)
	require.ErrorIs(t, err, ErrHallHasActiveBookings)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHallDelete(t *testing.T) {
	mock, _, halls := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(q("SELECT COUNT(*)")).WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(q("DELETE FROM halls WHERE id = ?")).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, halls().Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHallDelete_Missing(t *testing.T) {
	mock, _, halls := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).WithArgs(8).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	assert.ErrorIs(t, halls().Delete(context.Background(), 8), ErrHallNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHallListActive_DecodesJSONColumns(t *testing.T) {
	mock, _, halls := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(q("WHERE h.is_active = TRUE")).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "description", "capacity", "base_price", "images", "amenities",
			"is_active", "created_at", "updated_at"}).
			AddRow(1, "Grand Ballroom", "A large hall", 300, int64(50000),
				`["https://cdn.example.com/a.jpg"]`, nil, true, now, now))

	list, err := halls().ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, list[0].Images)
	assert.Equal(t, []string{}, list[0].Amenities)
	assert.Nil(t, list[0].ActiveBookings)
}

func TestBookingCreate_SlotTaken(t *testing.T) {
	mock, bookings, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM halls WHERE id = ? FOR UPDATE")).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(q("AND time_slot IN (?, ?)")).
		WithArgs(3, "2031-02-14", "Morning", "Full Day").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	err := bookings().Create(context.Background(), newBooking(), func() string { return "BK203102140001" })
	require.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreate_RetriesDuplicateNumber(t *testing.T) {
	mock, bookings, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).WithArgs(3).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM bookings")).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(q("INSERT INTO bookings")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectExec(q("INSERT INTO bookings")).WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(q("INSERT INTO booking_status_history")).
		WithArgs(42, "PENDING", "PENDING", "Booking created", 9).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(q("FROM bookings WHERE id = ?")).WithArgs(42).
		WillReturnRows(bookingRow(42, "BK203102140002", model.StatusPending, model.PaymentPending, nil))
	mock.ExpectCommit()

	n := 0
	b := newBooking()
	err := bookings().Create(context.Background(), b, func() string {
		n++
		return []string{"BK203102140001", "BK203102140002"}[n-1]
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(42), b.ID)
	assert.Equal(t, "BK203102140002", b.BookingNumber)
	assert.Equal(t, "2031-02-14", b.EventDate.String())
	assert.Nil(t, b.SelectedTheme)
	assert.Equal(t, "Asha", b.CustomerDetails.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	mock, bookings, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(q("SELECT COUNT(*)")).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	for i := 0; i < maxNumberAttempts; i++ {
		mock.ExpectExec(q("INSERT INTO bookings")).WillReturnError(&mysql.MySQLError{Number: 1062})
	}
	mock.ExpectRollback()

	err := bookings().Create(context.Background(), newBooking(), func() string { return "BK203102140001" })
	assert.ErrorIs(t, err, ErrBookingNumberExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingApply_PaidConfirms(t *testing.T) {
	mock, bookings, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM bookings WHERE id = ? FOR UPDATE")).WithArgs(42).
		WillReturnRows(bookingRow(42, "BK203102140001", model.StatusPending, model.PaymentPending, nil))
	mock.ExpectExec(q("UPDATE bookings")).
		WithArgs("CONFIRMED", "PAID", "pay_123", "", 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("INSERT INTO booking_status_history")).
		WithArgs(42, "CONFIRMED", "PAID", "Payment PAID", 1).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(q("FROM bookings WHERE id = ?")).WithArgs(42).
		WillReturnRows(bookingRow(42, "BK203102140001", model.StatusConfirmed, model.PaymentPaid, "pay_123"))
	mock.ExpectCommit()

	paid := model.PaymentPaid
	ref := "pay_123"
	b, err := bookings().Apply(context.Background(), 42, model.BookingChange{
		PaymentStatus: &paid, PaymentID: &ref, Note: "Payment PAID", ChangedBy: 1,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, b.Status)
	assert.Equal(t, "pay_123", b.PaymentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingApply_CheckVetoes(t *testing.T) {
	mock, bookings, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).WithArgs(42).
		WillReturnRows(bookingRow(42, "BK203102140001", model.StatusCancelled, model.PaymentPending, nil))
	mock.ExpectRollback()

	veto := errors.New("already cancelled")
	cancelled := model.StatusCancelled
	_, err := bookings().Apply(context.Background(), 42, model.BookingChange{Status: &cancelled},
		func(b *model.Booking) error {
			if b.Status == model.StatusCancelled {
				return veto
			}
			return nil
		})
	assert.ErrorIs(t, err, veto)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetByID_Missing(t *testing.T) {
	mock, bookings, _ := newMock(t)
	mock.ExpectQuery(q("FROM bookings WHERE id = ?")).WithArgs(5).WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := bookings().GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingStats(t *testing.T) {
	mock, bookings, _ := newMock(t)
	mock.ExpectQuery(q("GROUP BY status")).WillReturnRows(sqlmock.NewRows([]string{"status", "n"}).
		AddRow("PENDING", 3).AddRow("CONFIRMED", 2).AddRow("CANCELLED", 1))
	mock.ExpectQuery(q("WHERE payment_status = 'PAID'")).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(106800)))

	s, err := bookings().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.BookingStats{Total: 6, Pending: 3, Confirmed: 2, Cancelled: 1, Revenue: 106800}, s)
}

func TestBookingList_Filters(t *testing.T) {
	mock, bookings, _ := newMock(t)
	mock.ExpectQuery(q("AND status = ? AND payment_status = ? ORDER BY created_at DESC")).
		WithArgs("CONFIRMED", "PAID").
		WillReturnRows(bookingRow(1, "BK203102140001", model.StatusConfirmed, model.PaymentPaid, "p"))

	list, err := bookings().List(context.Background(), model.BookingFilter{
		Status: model.StatusConfirmed, PaymentStatus: model.PaymentPaid,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint64(3), list[0].HallID)
	assert.Len(t, list[0].SelectedFoods, 1)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestBookingHasConflict_SlotArgs(t *testing.T) {
	date, _ := model.ParseDate("2031-02-14")
	cases := []struct {
		slot model.TimeSlot
		in   string
		args []driver.Value
	}{
		{model.SlotMorning, "IN (?, ?)", []driver.Value{3, "2031-02-14", "Morning", "Full Day"}},
		{model.SlotEvening, "IN (?, ?)", []driver.Value{3, "2031-02-14", "Evening", "Full Day"}},
		{model.SlotFullDay, "IN (?, ?, ?)", []driver.Value{3, "2031-02-14", "Morning", "Evening", "Full Day"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.slot), func(t *testing.T) {
			mock, bookings, _ := newMock(t)
			mock.ExpectQuery(q("status IN ('PENDING', 'CONFIRMED')") + `\s+AND time_slot ` + q(tc.in) + `$`).
				WithArgs(tc.args...).
				WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

			busy, err := bookings().HasConflict(context.Background(), 3, date, tc.slot)
			require.NoError(t, err)
			assert.False(t, busy)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingListByUser(t *testing.T) {
	mock, bookings, _ := newMock(t)
	mock.ExpectQuery(q("FROM bookings WHERE user_id = ? ORDER BY created_at DESC")).WithArgs(9).
		WillReturnRows(bookingRow(4, "BK203102140004", model.StatusPending, model.PaymentPending, nil))

	list, err := bookings().ListByUser(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "", list[0].PaymentID)
	assert.Equal(t, "", list[0].SpecialRequests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingHistory_NullableColumns(t *testing.T) {
	mock, bookings, _ := newMock(t)
	now := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q("FROM booking_status_history WHERE booking_id = ? ORDER BY id")).WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "status", "payment_status", "note", "changed_by", "created_at"}).
			AddRow(1, 4, "PENDING", "PENDING", "Booking created", 9, now).
			AddRow(2, 4, "CANCELLED", "PENDING", nil, nil, now))

	h, err := bookings().History(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, uint64(9), h[0].ChangedBy)
	assert.Equal(t, model.StatusCancelled, h[1].Status)
	assert.Equal(t, "", h[1].Note)
	assert.Zero(t, h[1].ChangedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingApply_ReinstateRechecksSlot(t *testing.T) {
	confirmed := model.StatusConfirmed
	change := model.BookingChange{Status: &confirmed, Note: "Status changed to CONFIRMED", ChangedBy: 1}

	t.Run("taken", func(t *testing.T) {
		mock, bookings, _ := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(q("FROM bookings WHERE id = ? FOR UPDATE")).WithArgs(42).
			WillReturnRows(bookingRow(42, "BK203102140001", model.StatusCancelled, model.PaymentPending, nil))
		mock.ExpectQuery(q("SELECT id FROM halls WHERE id = ? FOR UPDATE")).WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery(q("AND time_slot IN (?, ?) AND id <> ?")).
			WithArgs(3, "2031-02-14", "Morning", "Full Day", 42).
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
		mock.ExpectRollback()

		_, err := bookings().Apply(context.Background(), 42, change, nil)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("free", func(t *testing.T) {
		mock, bookings, _ := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(q("FROM bookings WHERE id = ? FOR UPDATE")).WithArgs(42).
			WillReturnRows(bookingRow(42, "BK203102140001", model.StatusCancelled, model.PaymentPending, nil))
		mock.ExpectQuery(q("SELECT id FROM halls WHERE id = ? FOR UPDATE")).WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery(q("AND id <> ?")).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
		mock.ExpectExec(q("UPDATE bookings")).
			WithArgs("CONFIRMED", "PENDING", nil, "", 42).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q("INSERT INTO booking_status_history")).
			WithArgs(42, "CONFIRMED", "PENDING", "Status changed to CONFIRMED", 1).
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectQuery(q("FROM bookings WHERE id = ?")).WithArgs(42).
			WillReturnRows(bookingRow(42, "BK203102140001", model.StatusConfirmed, model.PaymentPending, nil))
		mock.ExpectCommit()

		b, err := bookings().Apply(context.Background(), 42, change, nil)
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, b.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
