package search

import (
	"strings"

	"github.com/mvk-codes/rental_marketplace/backend/models"
)

// Filters is the recognized filter surface for property search. Nil or
// zero-valued fields impose no constraint. Amount bounds are inclusive and
// compared against the property's advertised monthly amount; a lower bound
// above the upper bound is not an error, it simply matches nothing.
type Filters struct {
	City         string              `json:"city,omitempty"`
	PropertyType string              `json:"propertyType,omitempty"`
	MinAmount    *float64            `json:"minAmount,omitempty"`
	MaxAmount    *float64            `json:"maxAmount,omitempty"`
	BHKType      string              `json:"bhkType,omitempty"`
	Furnishing   string              `json:"furnishing,omitempty"`
	Availability models.Availability `json:"availability,omitempty"`
}

// Matches decides whether a single property passes the filter set. Pure:
// no side effects on either argument.
func (f Filters) Matches(p *models.Property) bool {
	if f.City != "" && !strings.EqualFold(f.City, p.City) {
		return false
	}
	if f.PropertyType != "" && !strings.EqualFold(f.PropertyType, string(p.Type)) {
		return false
	}
	if f.MinAmount != nil && p.MonthlyAmount() < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && p.MonthlyAmount() > *f.MaxAmount {
		return false
	}
	if f.BHKType != "" && f.BHKType != p.BHK {
		return false
	}
	if f.Furnishing != "" && f.Furnishing != string(p.Furnishing) {
		return false
	}
	if f.Availability != "" && f.Availability != p.Availability {
		return false
	}
	return true
}

// Apply narrows the candidate pool to properties matching f, preserving
// insertion order. The input slice and its records are never mutated.
func (f Filters) Apply(pool []*models.Property) []*models.Property {
	matched := make([]*models.Property, 0, len(pool))
	for _, p := range pool {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}
