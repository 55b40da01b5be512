package model

import "time"

// Hall represents a bookable venue hall.  Halls are created and edited by
// administrators and browsed by customers.  A hall with IsActive=false is
// hidden from the customer listing and cannot receive new bookings.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the hall.
//  Description – free text shown on the hall page.
//  Capacity    – maximum number of guests.
//  BasePrice   – rental price for one booking, in whole currency units.
//  Images      – list of image URLs (JSON column).
//  Amenities   – list of amenity labels (JSON column).
//  IsActive    – whether the hall accepts bookings.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Hall struct {
	ID          uint64    `json:"id"`          // halls.id
	Name        string    `json:"name"`        // halls.name
	Description string    `json:"description"` // halls.description
	Capacity    int       `json:"capacity"`    // halls.capacity
	BasePrice   int64     `json:"basePrice"`   // halls.base_price
	Images      []string  `json:"images"`      // halls.images
	Amenities   []string  `json:"amenities"`   // halls.amenities
	IsActive    bool      `json:"isActive"`    // halls.is_active
	CreatedAt   time.Time `json:"createdAt"`   // halls.created_at
	UpdatedAt   time.Time `json:"updatedAt"`   // halls.updated_at

	// ActiveBookings is only populated by the admin listing.
	ActiveBookings *int `json:"activeBookings,omitempty"`
}

// BookedSlot is a (date, slot) pair occupied by an active booking.
type BookedSlot struct {
	EventDate Date     `json:"eventDate"`
	TimeSlot  TimeSlot `json:"timeSlot"`
}

// HallDetail is a hall together with the slots already taken on it.
type HallDetail struct {
	Hall
	Bookings []BookedSlot `json:"bookings"`
}

// HallSummary is the hall projection embedded in booking responses.
type HallSummary struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Images    []string `json:"images"`
	BasePrice int64    `json:"basePrice"`
}

// Availability is the answer to an availability query for one hall, date
// and time slot.
type Availability struct {
	HallID    uint64   `json:"hallId"`
	EventDate Date     `json:"eventDate"`
	TimeSlot  TimeSlot `json:"timeSlot"`
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
}
