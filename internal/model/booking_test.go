package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotOverlaps(t *testing.T) {
	tests := []struct {
		a, b TimeSlot
		want bool
	}{
		{SlotFullDay, SlotMorning, true},
		{SlotFullDay, SlotEvening, true},
		{SlotFullDay, SlotFullDay, true},
		{SlotMorning, SlotFullDay, true},
		{SlotEvening, SlotFullDay, true},
		{SlotMorning, SlotMorning, true},
		{SlotEvening, SlotEvening, true},
		{SlotMorning, SlotEvening, false},
		{SlotEvening, SlotMorning, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.a)+"/"+string(tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestConflictingSlots(t *testing.T) {
	assert.ElementsMatch(t, []TimeSlot{SlotMorning, SlotEvening, SlotFullDay}, SlotFullDay.ConflictingSlots())
	assert.ElementsMatch(t, []TimeSlot{SlotMorning, SlotFullDay}, SlotMorning.ConflictingSlots())
	assert.ElementsMatch(t, []TimeSlot{SlotEvening, SlotFullDay}, SlotEvening.ConflictingSlots())
}

func TestTotalAmount(t *testing.T) {
	t.Run("hall, two paneer and a theme", func(t *testing.T) {
		foods := []FoodSelection{{ID: 1, Name: "Paneer Tikka", Quantity: 2, Price: 200}}
		theme := &ThemeSelection{ID: 1, Name: "Royal", Price: 3000}
		total, err := TotalAmount(50000, foods, theme)
		require.NoError(t, err)
		assert.Equal(t, int64(53400), total)
	})

	t.Run("hall only", func(t *testing.T) {
		total, err := TotalAmount(50000, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), total)
	})

	t.Run("several food lines", func(t *testing.T) {
		foods := []FoodSelection{
			{ID: 1, Quantity: 3, Price: 150},
			{ID: 2, Quantity: 10, Price: 40},
		}
		total, err := TotalAmount(1000, foods, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1000+450+400), total)
	})

	t.Run("line product overflows", func(t *testing.T) {
		_, err := TotalAmount(1000, []FoodSelection{{ID: 1, Quantity: 4, Price: math.MaxInt64 / 2}}, nil)
		assert.ErrorIs(t, err, ErrAmountOverflow)
	})

	t.Run("sum overflows", func(t *testing.T) {
		foods := []FoodSelection{{ID: 1, Quantity: 1, Price: math.MaxInt64 - 500}}
		_, err := TotalAmount(1000, foods, nil)
		assert.ErrorIs(t, err, ErrAmountOverflow)

		_, err = TotalAmount(math.MaxInt64-10, nil, &ThemeSelection{ID: 1, Price: 11})
		assert.ErrorIs(t, err, ErrAmountOverflow)
	})

	t.Run("exact upper edge", func(t *testing.T) {
		total, err := TotalAmount(math.MaxInt64-10, nil, &ThemeSelection{ID: 1, Price: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), total)
	})
}

func TestBookingChangeApply(t *testing.T) {
	t.Run("paid forces confirmed regardless of prior status", func(t *testing.T) {
		for _, prior := range []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
			b := &Booking{Status: prior, PaymentStatus: PaymentPending}
			paid := PaymentPaid
			BookingChange{PaymentStatus: &paid}.Apply(b)
			assert.Equal(t, StatusConfirmed, b.Status, "prior %s", prior)
			assert.Equal(t, PaymentPaid, b.PaymentStatus)
		}
	})

	t.Run("other payment statuses keep status", func(t *testing.T) {
		b := &Booking{Status: StatusPending}
		partial := PaymentPartial
		ref := "pay_123"
		BookingChange{PaymentStatus: &partial, PaymentID: &ref}.Apply(b)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, "pay_123", b.PaymentID)
	})

	t.Run("append request keeps previous text", func(t *testing.T) {
		b := &Booking{SpecialRequests: "Extra chairs"}
		BookingChange{AppendRequest: "Cancellation reason: moved"}.Apply(b)
		assert.Equal(t, "Extra chairs\nCancellation reason: moved", b.SpecialRequests)

		empty := &Booking{}
		BookingChange{AppendRequest: "Cancellation reason: moved"}.Apply(empty)
		assert.Equal(t, "Cancellation reason: moved", empty.SpecialRequests)
	})
}

func TestBookingStatsAdd(t *testing.T) {
	var s BookingStats
	s.Add(StatusPending, 2)
	s.Add(StatusConfirmed, 3)
	s.Add(StatusCancelled, 1)
	assert.Equal(t, BookingStats{Total: 6, Pending: 2, Confirmed: 3, Cancelled: 1}, s)
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2030-05-17")
	require.NoError(t, err)

	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2030-05-17"}`, string(b))

	var back struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.D.Equal(d))

	_, err = ParseDate("17/05/2030")
	assert.Error(t, err)
}

func TestFilters(t *testing.T) {
	item := &FoodItem{Category: CategoryDessert, IsAvailable: false}
	assert.True(t, FoodFilter{}.Matches(item))
	assert.False(t, FoodFilter{OnlyAvailable: true}.Matches(item))
	assert.False(t, FoodFilter{Category: CategoryBeverage}.Matches(item))

	b := &Booking{Status: StatusPending, PaymentStatus: PaymentPaid}
	assert.True(t, BookingFilter{Status: StatusPending}.Matches(b))
	assert.False(t, BookingFilter{PaymentStatus: PaymentFailed}.Matches(b))
}
