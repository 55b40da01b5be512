package model

import (
	"errors"
	"math"
	"strings"
	"time"
)

// TimeSlot is the part of the day a booking occupies.
type TimeSlot string

const (
	SlotMorning TimeSlot = "Morning"
	SlotEvening TimeSlot = "Evening"
	SlotFullDay TimeSlot = "Full Day"
)

// TimeSlots lists every valid slot.
var TimeSlots = []TimeSlot{SlotMorning, SlotEvening, SlotFullDay}

// Valid reports whether s is one of TimeSlots.
func (s TimeSlot) Valid() bool {
	return s == SlotMorning || s == SlotEvening || s == SlotFullDay
}

// Overlaps reports whether two bookings in slots s and o on the same hall
// and date collide.  Full Day collides with everything; Morning and
// Evening only collide with themselves.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s == SlotFullDay || o == SlotFullDay || s == o
}

// ConflictingSlots returns every slot that Overlaps s.  Repositories use it
// to build the IN (...) list of the availability query.
func (s TimeSlot) ConflictingSlots() []TimeSlot {
	out := make([]TimeSlot, 0, len(TimeSlots))
	for _, o := range TimeSlots {
		if s.Overlaps(o) {
			out = append(out, o)
		}
	}
	return out
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ActiveStatuses are the statuses that hold a hall slot.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether a booking in status s occupies its slot.
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// PaymentStatus tracks the payment side of a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentPartial  PaymentStatus = "PARTIAL"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Valid reports whether p is a known payment status.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentPartial, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// FoodSelection is a snapshot of a food item taken when the booking was
// made.  Later catalog edits do not change it.
type FoodSelection struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// ThemeSelection is a snapshot of the chosen theme.
type ThemeSelection struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// CustomerDetails is the contact record supplied with a booking.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// Booking is a customer's reservation of a hall for one date and slot.
// TotalAmount is computed once at creation and never recomputed.
type Booking struct {
	ID              uint64          `json:"id"`              // bookings.id
	BookingNumber   string          `json:"bookingNumber"`   // bookings.booking_number (unique)
	UserID          uint64          `json:"userId"`          // bookings.user_id
	HallID          uint64          `json:"hallId"`          // bookings.hall_id (0 once the hall is deleted)
	HallName        string          `json:"hallName"`        // bookings.hall_name
	EventDate       Date            `json:"eventDate"`       // bookings.event_date
	TimeSlot        TimeSlot        `json:"timeSlot"`        // bookings.time_slot
	GuestCount      int             `json:"guestCount"`      // bookings.guest_count
	EventType       string          `json:"eventType"`       // bookings.event_type
	SelectedFoods   []FoodSelection `json:"selectedFoods"`   // bookings.selected_foods
	SelectedTheme   *ThemeSelection `json:"selectedTheme"`   // bookings.selected_theme (nullable)
	TotalAmount     int64           `json:"totalAmount"`     // bookings.total_amount
	CustomerDetails CustomerDetails `json:"customerDetails"` // bookings.customer_details
	SpecialRequests string          `json:"specialRequests"` // bookings.special_requests
	Status          BookingStatus   `json:"status"`          // bookings.status
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`   // bookings.payment_status
	PaymentID       string          `json:"paymentId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ErrAmountOverflow is returned by TotalAmount when the sum does not fit in
// an int64.
var ErrAmountOverflow = errors.New("booking total out of range")

// TotalAmount prices a booking: hall base price, plus quantity × price for
// every food line, plus the theme price when one is chosen.  Quantities and
// prices are expected to be non-negative.
func TotalAmount(basePrice int64, foods []FoodSelection, theme *ThemeSelection) (int64, error) {
	total := basePrice
	add := func(v int64) bool {
		if v > math.MaxInt64-total {
			return false
		}
		total += v
		return true
	}
	for _, f := range foods {
		if f.Quantity > 0 && f.Price > math.MaxInt64/int64(f.Quantity) {
			return 0, ErrAmountOverflow
		}
		if !add(int64(f.Quantity) * f.Price) {
			return 0, ErrAmountOverflow
		}
	}
	if theme != nil && !add(theme.Price) {
		return 0, ErrAmountOverflow
	}
	return total, nil
}

// BookingDetail is a booking joined with its hall and user projections.
// History is only filled for single-booking reads.
type BookingDetail struct {
	Booking
	Hall    *HallSummary   `json:"hall,omitempty"`
	User    *UserSummary   `json:"user,omitempty"`
	History []StatusChange `json:"history,omitempty"`
}

// BookingFilter narrows the admin booking listing.
type BookingFilter struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
}

// Matches reports whether f selects b.
func (f BookingFilter) Matches(b *Booking) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return f.PaymentStatus == "" || b.PaymentStatus == f.PaymentStatus
}

// StatusChange is one row of the append-only booking history.
type StatusChange struct {
	ID            uint64        `json:"id"`
	BookingID     uint64        `json:"bookingId"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Note          string        `json:"note,omitempty"`
	ChangedBy     uint64        `json:"changedBy,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// BookingChange describes a lifecycle mutation.  Nil fields are left
// untouched.  AppendRequest is added as a new line to SpecialRequests.
type BookingChange struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	PaymentID     *string
	AppendRequest string
	Note          string
	ChangedBy     uint64
}

// Apply mutates b according to ch.  A payment moving to PAID forces the
// booking to CONFIRMED whatever its previous status.
func (ch BookingChange) Apply(b *Booking) {
	if ch.Status != nil {
		b.Status = *ch.Status
	}
	if ch.PaymentStatus != nil {
		b.PaymentStatus = *ch.PaymentStatus
		if *ch.PaymentStatus == PaymentPaid {
			b.Status = StatusConfirmed
		}
	}
	if ch.PaymentID != nil {
		b.PaymentID = *ch.PaymentID
	}
	if ch.AppendRequest != "" {
		if strings.TrimSpace(b.SpecialRequests) == "" {
			b.SpecialRequests = ch.AppendRequest
		} else {
			b.SpecialRequests = b.SpecialRequests + "\n" + ch.AppendRequest
		}
	}
}

// HistoryEntry builds the audit row recorded alongside ch once it has been
// applied to b.
func (ch BookingChange) HistoryEntry(b *Booking) StatusChange {
	return StatusChange{
		BookingID:     b.ID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Note:          ch.Note,
		ChangedBy:     ch.ChangedBy,
	}
}

// BookingStats aggregates the booking ledger for the admin dashboard.
type BookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Revenue   int64 `json:"revenue"`
}

// Add counts one booking with the given status.
func (s *BookingStats) Add(status BookingStatus, n int64) {
	s.Total += n
	switch status {
	case StatusPending:
		s.Pending += n
	case StatusConfirmed:
		s.Confirmed += n
	case StatusCompleted:
		s.Completed += n
	case StatusCancelled:
		s.Cancelled += n
	}
}
