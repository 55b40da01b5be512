package dto

import "github.com/iliyamo/venue-booking/internal/model"

// FoodSelection is one menu line of a booking request.
type FoodSelection struct {
	ID       uint64 `json:"id" validate:"required" label:"Food item"`
	Name     string `json:"name" validate:"required" label:"Food name"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000" label:"Quantity"`
	Price    int64  `json:"price" validate:"gt=0,max=10000000" label:"Food price"`
}

// ThemeSelection is the optional theme of a booking request.
type ThemeSelection struct {
	ID    uint64 `json:"id" validate:"required" label:"Theme"`
	Name  string `json:"name" validate:"required" label:"Theme name"`
	Price int64  `json:"price" validate:"gt=0,max=100000000" label:"Theme price"`
}

// CustomerDetails is the contact block of a booking request.
type CustomerDetails struct {
	Name    string `json:"name" validate:"required,min=2" label:"Name"`
	Email   string `json:"email" validate:"required,email" label:"Email"`
	Phone   string `json:"phone" validate:"required,min=10,max=15" label:"Phone"`
	Address string `json:"address" validate:"omitempty,max=300" label:"Address"`
}

// CreateBookingRequest is the body of POST /v1/bookings.
type CreateBookingRequest struct {
	HallID          uint64          `json:"hallId" validate:"required" label:"Hall"`
	EventDate       string          `json:"eventDate" validate:"required,datetime=2006-01-02" label:"Event date"`
	TimeSlot        string          `json:"timeSlot" validate:"required,oneof=Morning Evening 'Full Day'" label:"Time slot"`
	GuestCount      int             `json:"guestCount" validate:"min=1" label:"Guest count"`
	EventType       string          `json:"eventType" validate:"required,min=2,max=64" label:"Event type"`
	SelectedFoods   []FoodSelection `json:"selectedFoods" validate:"omitempty,max=100,dive" label:"Selected foods"`
	SelectedTheme   *ThemeSelection `json:"selectedTheme" label:"Selected theme"`
	CustomerDetails CustomerDetails `json:"customerDetails" label:"Customer details"`
	SpecialRequests string          `json:"specialRequests" validate:"omitempty,max=1000" label:"Special requests"`
}

// Foods converts the request lines into booking snapshots.
func (r CreateBookingRequest) Foods() []model.FoodSelection {
	out := make([]model.FoodSelection, 0, len(r.SelectedFoods))
	for _, f := range r.SelectedFoods {
		out = append(out, model.FoodSelection{ID: f.ID, Name: f.Name, Quantity: f.Quantity, Price: f.Price})
	}
	return out
}

// Theme converts the optional theme into a booking snapshot.
func (r CreateBookingRequest) Theme() *model.ThemeSelection {
	if r.SelectedTheme == nil {
		return nil
	}
	return &model.ThemeSelection{ID: r.SelectedTheme.ID, Name: r.SelectedTheme.Name, Price: r.SelectedTheme.Price}
}

// Customer converts the contact block.
func (r CreateBookingRequest) Customer() model.CustomerDetails {
	c := r.CustomerDetails
	return model.CustomerDetails{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

// UpdateBookingStatusRequest is the body of PATCH /v1/admin/bookings/:id/status.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED" label:"Status"`
	Note   string `json:"note" validate:"omitempty,max=500" label:"Note"`
}

// UpdatePaymentStatusRequest is the body of PATCH /v1/admin/bookings/:id/payment.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=PENDING PAID PARTIAL FAILED REFUNDED" label:"Payment status"`
	PaymentID     string `json:"paymentId" validate:"omitempty,max=128" label:"Payment ID"`
}

// CancelBookingRequest is the body of POST /v1/bookings/:id/cancel.
type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500" label:"Reason"`
}

// BookingListQuery filters the admin booking listing.
type BookingListQuery struct {
	Status        string `query:"status" validate:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED" label:"Status"`
	PaymentStatus string `query:"paymentStatus" validate:"omitempty,oneof=PENDING PAID PARTIAL FAILED REFUNDED" label:"Payment status"`
}
