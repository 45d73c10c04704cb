package search

import (
	"testing"

	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/stretchr/testify/assert"
)

func amt(v float64) *float64 { return &v }

func listing(code, city string, amount float64) *models.Property {
	return &models.Property{
		Code:         code,
		Name:         "Listing " + code,
		Type:         models.TypeFlat,
		BHK:          "2BHK",
		Furnishing:   models.SemiFurnished,
		MinAmount:    amount,
		MaxAmount:    amount,
		City:         city,
		Availability: models.AvailabilityAvailable,
	}
}

func TestEmptyFilterAcceptsEverything(t *testing.T) {
	pool := []*models.Property{
		listing("P1", "Bangalore", 1400),
		listing("P2", "Pune", 2579),
		listing("P3", "Delhi", 35000),
	}
	for _, p := range pool {
		assert.True(t, Filters{}.Matches(p), "empty filter must accept %s", p.Code)
	}
}

func TestMinAmountLowerBound(t *testing.T) {
	p := listing("P1", "Bangalore", 1400)
	assert.False(t, Filters{MinAmount: amt(1500)}.Matches(p))
	assert.True(t, Filters{MinAmount: amt(1400)}.Matches(p), "bound is inclusive")
	assert.True(t, Filters{MinAmount: amt(1000)}.Matches(p))
}

func TestMaxAmountUpperBound(t *testing.T) {
	p := listing("P1", "Bangalore", 2579)
	assert.True(t, Filters{MaxAmount: amt(2579)}.Matches(p))
	assert.False(t, Filters{MaxAmount: amt(2000)}.Matches(p))
}

func TestCityAndTypeMatchCaseInsensitive(t *testing.T) {
	p := listing("P1", "Bangalore", 1400)

	assert.True(t, Filters{City: "bangalore"}.Matches(p))
	assert.True(t, Filters{City: "BANGALORE"}.Matches(p))
	assert.False(t, Filters{City: "Pune"}.Matches(p))

	assert.True(t, Filters{PropertyType: "Flat"}.Matches(p))
	assert.False(t, Filters{PropertyType: "villa"}.Matches(p))
}

func TestExactMatchFields(t *testing.T) {
	p := listing("P1", "Bangalore", 1400)

	assert.True(t, Filters{BHKType: "2BHK"}.Matches(p))
	assert.False(t, Filters{BHKType: "3BHK"}.Matches(p))

	assert.True(t, Filters{Furnishing: string(models.SemiFurnished)}.Matches(p))
	assert.False(t, Filters{Furnishing: string(models.FullFurnished)}.Matches(p))

	assert.True(t, Filters{Availability: models.AvailabilityAvailable}.Matches(p))
	assert.False(t, Filters{Availability: models.AvailabilityOccupied}.Matches(p))
}

func TestContradictoryBoundsYieldEmptySet(t *testing.T) {
	pool := []*models.Property{
		listing("P1", "Bangalore", 1400),
		listing("P2", "Bangalore", 2579),
	}
	// minAmount > maxAmount is not an error, just an unsatisfiable filter.
	out := Filters{MinAmount: amt(3000), MaxAmount: amt(1000)}.Apply(pool)
	assert.Empty(t, out)
}

func TestApplyPreservesOrderAndInput(t *testing.T) {
	pool := []*models.Property{
		listing("P1", "Bangalore", 1400),
		listing("P2", "Pune", 2579),
		listing("P3", "Bangalore", 1800),
	}
	out := Filters{City: "Bangalore"}.Apply(pool)

	assert.Len(t, out, 2)
	assert.Equal(t, "P1", out[0].Code)
	assert.Equal(t, "P3", out[1].Code)
	assert.Len(t, pool, 3, "input pool must not change")
}
