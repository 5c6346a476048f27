package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGSTRateBrackets(t *testing.T) {
	cases := []struct {
		rate float64
		want float64
	}{
		{0, 0},
		{999, 0},
		{1000, 0.12},
		{4200, 0.12},
		{7500, 0.12},
		{7501, 0.18},
		{25000, 0.18},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GSTRateFor(tc.rate), "nightly rate %v", tc.rate)
	}
}

func TestSafeNights(t *testing.T) {
	assert.Equal(t, 1, SafeNights(0))
	assert.Equal(t, 1, SafeNights(-3))
	assert.Equal(t, 1, SafeNights(1))
	assert.Equal(t, 7, SafeNights(7))
}

func TestAddonAggregation(t *testing.T) {
	t.Run("per-day addon recurs every night", func(t *testing.T) {
		amount := AddonAmount(AddonSelection{Price: 500, Quantity: 1, PerDay: true}, 3, 2)
		assert.Equal(t, 1500.0, amount)
	})

	t.Run("one-time addon charges once", func(t *testing.T) {
		amount := AddonAmount(AddonSelection{Price: 200, Quantity: 2}, 3, 2)
		assert.Equal(t, 400.0, amount)
	})

	t.Run("per-person per-day addon multiplies both ways", func(t *testing.T) {
		amount := AddonAmount(AddonSelection{Price: 300, Quantity: 1, PerDay: true, PerPerson: true, PersonCount: 2}, 2, 4)
		assert.Equal(t, 1200.0, amount)
	})

	t.Run("person count is capped at total guests", func(t *testing.T) {
		amount := AddonAmount(AddonSelection{Price: 100, Quantity: 1, PerPerson: true, PersonCount: 9}, 1, 2)
		assert.Equal(t, 200.0, amount)
	})

	t.Run("person count floors at one", func(t *testing.T) {
		amount := AddonAmount(AddonSelection{Price: 100, Quantity: 1, PerPerson: true, PersonCount: 0}, 1, 2)
		assert.Equal(t, 100.0, amount)
	})

	t.Run("negative price coerces to zero", func(t *testing.T) {
		amount := AddonAmount(AddonSelection{Price: -50, Quantity: 3}, 1, 1)
		assert.Equal(t, 0.0, amount)
	})
}

func TestComputeQuote(t *testing.T) {
	t.Run("zero-GST stay", func(t *testing.T) {
		q := ComputeQuote(900, 2, nil, GuestCounts{Adults: 2})
		assert.Equal(t, 1800.0, q.RoomBaseAmount)
		assert.Equal(t, 0.0, q.GSTRate)
		assert.Equal(t, 0.0, q.TotalGST)
		assert.Equal(t, 1800.0, q.BookingTotal)
	})

	t.Run("mid bracket with addons", func(t *testing.T) {
		addons := []AddonSelection{
			{Price: 500, Quantity: 1, PerDay: true},
			{Price: 200, Quantity: 2},
		}
		q := ComputeQuote(5000, 3, addons, GuestCounts{Adults: 2})
		assert.Equal(t, 15000.0, q.RoomBaseAmount)
		assert.Equal(t, 1900.0, q.AddonsTotal)
		assert.Equal(t, 16900.0, q.Subtotal)
		assert.Equal(t, 0.12, q.GSTRate)
		assert.Equal(t, 2028.0, q.TotalGST)
		assert.Equal(t, 18928.0, q.BookingTotal)
	})

	t.Run("high bracket", func(t *testing.T) {
		q := ComputeQuote(9000, 1, nil, GuestCounts{Adults: 1})
		assert.Equal(t, 0.18, q.GSTRate)
		assert.Equal(t, 1620.0, q.TotalGST)
	})

	t.Run("zero nights still prices one night", func(t *testing.T) {
		q := ComputeQuote(2000, 0, nil, GuestCounts{})
		assert.Equal(t, 1, q.Nights)
		assert.Equal(t, 2000.0, q.RoomBaseAmount)
	})

	// The halves are rounded independently of the total, so an odd total
	// may miss it by one unit. That figure is what users see today.
	t.Run("cgst plus sgst within one unit of total", func(t *testing.T) {
		rates := []float64{1000, 1037, 2999, 5500.5, 7500, 7501, 8123.45}
		for _, rate := range rates {
			for nights := 1; nights <= 5; nights++ {
				q := ComputeQuote(rate, nights, nil, GuestCounts{Adults: 2})
				diff := math.Abs(q.CGST + q.SGST - q.TotalGST)
				assert.LessOrEqual(t, diff, 1.0, "rate=%v nights=%d", rate, nights)
				assert.Equal(t, q.CGST, q.SGST)
			}
		}
	})
}
