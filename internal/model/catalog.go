package model

import "time"

// FoodCategory groups menu items on the booking page.
type FoodCategory string

const (
	CategoryAppetizer  FoodCategory = "Appetizer"
	CategoryMainCourse FoodCategory = "Main Course"
	CategoryDessert    FoodCategory = "Dessert"
	CategoryBeverage   FoodCategory = "Beverage"
)

// FoodCategories lists every valid category in menu order.
var FoodCategories = []FoodCategory{CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage}

// Valid reports whether c is one of FoodCategories.
func (c FoodCategory) Valid() bool {
	for _, v := range FoodCategories {
		if v == c {
			return true
		}
	}
	return false
}

// FoodItem is a menu entry that customers can add to a booking.
type FoodItem struct {
	ID          uint64       `json:"id"`          // food_items.id
	Name        string       `json:"name"`        // food_items.name
	Category    FoodCategory `json:"category"`    // food_items.category
	Price       int64        `json:"price"`       // food_items.price
	IsVeg       bool         `json:"isVeg"`       // food_items.is_veg
	Description string       `json:"description"` // food_items.description
	Image       string       `json:"image"`       // food_items.image
	IsAvailable bool         `json:"isAvailable"` // food_items.is_available
	CreatedAt   time.Time    `json:"createdAt"`   // food_items.created_at
	UpdatedAt   time.Time    `json:"updatedAt"`   // food_items.updated_at
}

// FoodFilter narrows food listings.  The zero value lists everything.
type FoodFilter struct {
	Category      FoodCategory
	OnlyAvailable bool
}

// Matches reports whether f selects item.
func (f FoodFilter) Matches(item *FoodItem) bool {
	if f.OnlyAvailable && !item.IsAvailable {
		return false
	}
	return f.Category == "" || item.Category == f.Category
}

// Theme is a decoration package that can be attached to a booking.
type Theme struct {
	ID          uint64    `json:"id"`          // themes.id
	Name        string    `json:"name"`        // themes.name
	Description string    `json:"description"` // themes.description
	Price       int64     `json:"price"`       // themes.price
	Images      []string  `json:"images"`      // themes.images
	IsAvailable bool      `json:"isAvailable"` // themes.is_available
	CreatedAt   time.Time `json:"createdAt"`   // themes.created_at
	UpdatedAt   time.Time `json:"updatedAt"`   // themes.updated_at
}
