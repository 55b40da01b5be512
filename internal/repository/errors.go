// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services to distinguish between different failure scenarios. ErrConflict
// signals that an operation cannot proceed because of existing dependent
// records (e.g. deleting a hall that still has active bookings); the more
// specific conflicts below wrap it.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a write cannot be performed because of
// conflicting state.
var ErrConflict = errors.New("conflict")

// ErrHallHasActiveBookings is returned by HallRepo.Delete while the hall
// still has PENDING or CONFIRMED bookings.
var ErrHallHasActiveBookings = fmt.Errorf("%w: hall has active bookings", ErrConflict)

// ErrSlotUnavailable is returned by BookingRepo.Create when an active
// booking already overlaps the requested date and time slot.
var ErrSlotUnavailable = fmt.Errorf("%w: time slot unavailable", ErrConflict)

// ErrBookingNumberExhausted is returned when every generated booking
// number collided with an existing one.
var ErrBookingNumberExhausted = errors.New("could not allocate a unique booking number")

// isDuplicateKey reports whether err is a MySQL unique-key violation (1062).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
