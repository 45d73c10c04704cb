package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mvk-codes/rental_marketplace/backend/models"
)

// newCode mints a prefixed business identifier, e.g. "PROP-1b9d6bcd".
func newCode(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func validateProperty(p *models.Property) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: property name is required", ErrInvalidInput)
	}
	if p.Type == "" {
		return fmt.Errorf("%w: property type is required", ErrInvalidInput)
	}
	if p.MinAmount < 0 || p.MaxAmount < 0 {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	}
	if p.MinAmount > 0 && p.MaxAmount > 0 && p.MinAmount > p.MaxAmount {
		return fmt.Errorf("%w: minAmount %v exceeds maxAmount %v", ErrInvalidInput, p.MinAmount, p.MaxAmount)
	}
	return nil
}

func validateRoom(r *models.Room) error {
	if r.PropertyCode == "" {
		return fmt.Errorf("%w: room needs a property code", ErrInvalidInput)
	}
	if r.Rent <= 0 {
		return fmt.Errorf("%w: room rent must be positive", ErrInvalidInput)
	}
	return nil
}

func validateAgreement(a *models.RentalAgreement) error {
	if a.TenantID == "" || a.PropertyCode == "" {
		return fmt.Errorf("%w: agreement needs a tenant and a property", ErrInvalidInput)
	}
	if !a.StartDate.Before(a.EndDate) {
		return fmt.Errorf("%w: startDate must precede endDate", ErrInvalidInput)
	}
	if a.RentAmount <= 0 {
		return fmt.Errorf("%w: rentAmount must be positive", ErrInvalidInput)
	}
	return nil
}

func validatePayment(p *models.RentPayment) error {
	if p.AgreementCode == "" {
		return fmt.Errorf("%w: payment needs an agreement code", ErrInvalidInput)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}
	return nil
}

func validateComplaint(c *models.Complaint) error {
	if c.PropertyCode == "" || c.TenantID == "" {
		return fmt.Errorf("%w: complaint needs a property and a tenant", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: complaint title is required", ErrInvalidInput)
	}
	switch c.Priority {
	case "", models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, c.Priority)
	}
	return nil
}

func validateReview(r *models.Review) error {
	if r.PropertyCode == "" || r.UserID == "" {
		return fmt.Errorf("%w: review needs a property and a user", ErrInvalidInput)
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

// normalizeGeo recomputes the geohash whenever coordinates arrive without
// one, so the index field can never drift from the raw coordinates.
func normalizeGeo(p *models.Property) {
	if p.Geo != nil && p.Geo.Geohash == "" {
		p.Geo = models.NewGeoPoint(p.Geo.Latitude, p.Geo.Longitude)
	}
}
