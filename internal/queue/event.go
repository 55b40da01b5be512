// Package queue defines message payloads exchanged over the message broker
// together with the publisher and the consumer that move them.
package queue

import (
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// BookingQueue is the durable queue every booking lifecycle event goes to.
const BookingQueue = "booking.events"

// Event types.
const (
	EventCreated        = "booking.created"
	EventStatusChanged  = "booking.status_changed"
	EventPaymentUpdated = "booking.payment_updated"
	EventCancelled      = "booking.cancelled"
)

// BookingEvent is published after a booking mutation commits.  It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type BookingEvent struct {
	Type          string `json:"type"`
	BookingID     uint64 `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	UserID        uint64 `json:"user_id"`
	HallID        uint64 `json:"hall_id"`
	HallName      string `json:"hall_name"`
	EventDate     string `json:"event_date"`
	TimeSlot      string `json:"time_slot"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	TotalAmount   int64  `json:"total_amount"`
	Note          string `json:"note,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}

// NewBookingEvent snapshots b for an event of the given type.
func NewBookingEvent(typ string, b *model.Booking, note string, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          typ,
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		UserID:        b.UserID,
		HallID:        b.HallID,
		HallName:      b.HallName,
		EventDate:     b.EventDate.String(),
		TimeSlot:      string(b.TimeSlot),
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		TotalAmount:   b.TotalAmount,
		Note:          note,
		OccurredAt:    at.UTC().Format(time.RFC3339),
	}
}
