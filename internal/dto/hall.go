package dto

// CreateHallRequest is the body of POST /v1/admin/halls.
type CreateHallRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=120" label:"Name"`
	Description string   `json:"description" validate:"required,min=10" label:"Description"`
	Capacity    int      `json:"capacity" validate:"min=1" label:"Capacity"`
	BasePrice   int64    `json:"basePrice" validate:"gt=0" label:"Base price"`
	Images      []string `json:"images" validate:"min=1,dive,url" label:"Images"`
	Amenities   []string `json:"amenities" validate:"omitempty,dive,min=1" label:"Amenities"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateHallRequest is the body of PUT/PATCH /v1/admin/halls/:id.  Every
// field is optional; present fields obey the same rules as on create.
type UpdateHallRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=3,max=120" label:"Name"`
	Description *string   `json:"description" validate:"omitempty,min=10" label:"Description"`
	Capacity    *int      `json:"capacity" validate:"omitempty,min=1" label:"Capacity"`
	BasePrice   *int64    `json:"basePrice" validate:"omitempty,gt=0" label:"Base price"`
	Images      *[]string `json:"images" validate:"omitempty,min=1,dive,url" label:"Images"`
	Amenities   *[]string `json:"amenities" validate:"omitempty,dive,min=1" label:"Amenities"`
	IsActive    *bool     `json:"isActive"`
}

// AvailabilityQuery is bound from GET /v1/halls/:id/availability.
type AvailabilityQuery struct {
	HallID   uint64 `param:"id" validate:"required" label:"Hall"`
	Date     string `query:"date" validate:"required,datetime=2006-01-02" label:"Date"`
	TimeSlot string `query:"timeSlot" validate:"required,oneof=Morning Evening 'Full Day'" label:"Time slot"`
}
