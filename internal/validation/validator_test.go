package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/dto"
	"github.com/iliyamo/venue-booking/internal/validation"
)

func validFood() dto.CreateFoodItemRequest {
	return dto.CreateFoodItemRequest{Name: "Paneer Tikka", Category: "Appetizer", Price: 200}
}

func validBooking() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		HallID:     1,
		EventDate:  "2031-02-14",
		TimeSlot:   "Full Day",
		GuestCount: 120,
		EventType:  "Wedding",
		SelectedFoods: []dto.FoodSelection{
			{ID: 1, Name: "Paneer Tikka", Quantity: 2, Price: 200},
		},
		CustomerDetails: dto.CustomerDetails{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"},
	}
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	return ve.Message
}

func TestFoodItemRules(t *testing.T) {
	v := validation.New()

	require.NoError(t, v.Struct(validFood()))

	zero := validFood()
	zero.Price = 0
	assert.Equal(t, "Price must be positive", messageOf(t, v.Struct(zero)))

	badCat := validFood()
	badCat.Category = "Snacks"
	assert.Equal(t, "Category must be one of: Appetizer, Main Course, Dessert, Beverage", messageOf(t, v.Struct(badCat)))

	short := validFood()
	short.Name = "P"
	assert.Equal(t, "Name must be at least 2 characters", messageOf(t, v.Struct(short)))

	badImage := validFood()
	badImage.Image = "not a url"
	assert.Equal(t, "Image must be a valid URL", messageOf(t, v.Struct(badImage)))
}

func TestHallRules(t *testing.T) {
	v := validation.New()
	ok := dto.CreateHallRequest{
		Name:        "Grand Ballroom",
		Description: "A large hall for weddings",
		Capacity:    300,
		BasePrice:   50000,
		Images:      []string{"https://cdn.example.com/hall.jpg"},
	}
	require.NoError(t, v.Struct(ok))

	noImages := ok
	noImages.Images = nil
	assert.Equal(t, "Images must not be empty", messageOf(t, v.Struct(noImages)))

	badURL := ok
	badURL.Images = []string{"ftp//broken"}
	assert.Contains(t, messageOf(t, v.Struct(badURL)), "must be a valid URL")

	noCap := ok
	noCap.Capacity = 0
	assert.Equal(t, "Capacity must be at least 1", messageOf(t, v.Struct(noCap)))
}

func TestPartialUpdateKeepsConstraints(t *testing.T) {
	v := validation.New()

	require.NoError(t, v.Struct(dto.UpdateHallRequest{}), "empty patch is valid")

	name := "Lotus Hall"
	require.NoError(t, v.Struct(dto.UpdateHallRequest{Name: &name}))

	zero := int64(0)
	assert.Equal(t, "Base price must be positive", messageOf(t, v.Struct(dto.UpdateHallRequest{BasePrice: &zero})))

	empty := []string{}
	assert.Equal(t, "Images must not be empty", messageOf(t, v.Struct(dto.UpdateHallRequest{Images: &empty})))

	cat := "Snacks"
	assert.Contains(t, messageOf(t, v.Struct(dto.UpdateFoodItemRequest{Category: &cat})), "Category must be one of")
}

func TestBookingRules(t *testing.T) {
	v := validation.New()
	require.NoError(t, v.Struct(validBooking()))

	slot := validBooking()
	slot.TimeSlot = "Night"
	assert.Equal(t, "Time slot must be one of: Morning, Evening, Full Day", messageOf(t, v.Struct(slot)))

	date := validBooking()
	date.EventDate = "14-02-2031"
	assert.Equal(t, "Event date must be a date in YYYY-MM-DD format", messageOf(t, v.Struct(date)))

	email := validBooking()
	email.CustomerDetails.Email = "asha"
	assert.Equal(t, "Invalid email address", messageOf(t, v.Struct(email)))

	qty := validBooking()
	qty.SelectedFoods[0].Quantity = 0
	assert.Equal(t, "Quantity must be at least 1", messageOf(t, v.Struct(qty)))

	theme := validBooking()
	theme.SelectedTheme = &dto.ThemeSelection{ID: 2, Name: "Royal"}
	assert.Equal(t, "Theme price must be positive", messageOf(t, v.Struct(theme)))

	guests := validBooking()
	guests.GuestCount = 0
	assert.Equal(t, "Guest count must be at least 1", messageOf(t, v.Struct(guests)))
}
