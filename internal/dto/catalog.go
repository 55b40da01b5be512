package dto

// CreateFoodItemRequest is the body of POST /v1/admin/foods.
type CreateFoodItemRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120" label:"Name"`
	Category    string `json:"category" validate:"required,oneof=Appetizer 'Main Course' Dessert Beverage" label:"Category"`
	Price       int64  `json:"price" validate:"gt=0" label:"Price"`
	IsVeg       bool   `json:"isVeg"`
	Description string `json:"description" validate:"omitempty,max=500" label:"Description"`
	Image       string `json:"image" validate:"omitempty,url" label:"Image"`
	IsAvailable *bool  `json:"isAvailable"`
}

// UpdateFoodItemRequest is the partial variant of CreateFoodItemRequest.
type UpdateFoodItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=120" label:"Name"`
	Category    *string `json:"category" validate:"omitempty,oneof=Appetizer 'Main Course' Dessert Beverage" label:"Category"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0" label:"Price"`
	IsVeg       *bool   `json:"isVeg"`
	Description *string `json:"description" validate:"omitempty,max=500" label:"Description"`
	Image       *string `json:"image" validate:"omitempty,url" label:"Image"`
	IsAvailable *bool   `json:"isAvailable"`
}

// FoodListQuery filters food listings by category.
type FoodListQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=Appetizer 'Main Course' Dessert Beverage" label:"Category"`
}

// CreateThemeRequest is the body of POST /v1/admin/themes.
type CreateThemeRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=120" label:"Name"`
	Description string   `json:"description" validate:"required,min=10" label:"Description"`
	Price       int64    `json:"price" validate:"gt=0" label:"Price"`
	Images      []string `json:"images" validate:"min=1,dive,url" label:"Images"`
	IsAvailable *bool    `json:"isAvailable"`
}

// UpdateThemeRequest is the partial variant of CreateThemeRequest.
type UpdateThemeRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=3,max=120" label:"Name"`
	Description *string   `json:"description" validate:"omitempty,min=10" label:"Description"`
	Price       *int64    `json:"price" validate:"omitempty,gt=0" label:"Price"`
	Images      *[]string `json:"images" validate:"omitempty,min=1,dive,url" label:"Images"`
	IsAvailable *bool     `json:"isAvailable"`
}
