package store

import (
	"context"
	"fmt"
	"time"

	"github.com/mvk-codes/rental_marketplace/backend/models"
)

// Seed loads a small fixture set into the store so mock mode serves
// believable data from the first request. It is only ever called on a fresh
// store owned by the caller.
func Seed(ctx context.Context, s Store) error {
	owners := []*models.User{
		{UserID: "owner-asha", Email: "asha@example.com", Role: models.RoleOwner},
		{UserID: "owner-ravi", Email: "ravi@example.com", Role: models.RoleOwner},
	}
	tenants := []*models.User{
		{UserID: "tenant-meera", Email: "meera@example.com", Role: models.RoleTenant},
		{UserID: "tenant-karan", Email: "karan@example.com", Role: models.RoleTenant},
	}
	for _, u := range append(owners, tenants...) {
		if err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.UserID, err)
		}
	}

	properties := []*models.Property{
		{
			Code: "PROP-blr-001", Name: "Lakeview Residency", Type: models.TypeFlat,
			BHK: "2BHK", AreaSqFt: 950, Furnishing: models.SemiFurnished,
			MinAmount: 1400, MaxAmount: 1800,
			Features: []string{"parking", "lift", "power backup"},
			Address:  "12 Lake Rd", City: "Bangalore", State: "Karnataka",
			Country: "India", Pincode: "560034",
			Geo:     models.NewGeoPoint(12.9352, 77.6245),
			OwnerID: "owner-asha",
		},
		{
			Code: "PROP-blr-002", Name: "Indiranagar Nest", Type: models.TypeFlat,
			BHK: "2BHK", AreaSqFt: 1100, Furnishing: models.FullFurnished,
			MinAmount: 2579, MaxAmount: 2579,
			Features: []string{"parking", "gym", "lift"},
			Address:  "100 Ft Rd", City: "Bangalore", State: "Karnataka",
			Country: "India", Pincode: "560038",
			Geo:     models.NewGeoPoint(12.9719, 77.6412),
			OwnerID: "owner-asha",
		},
		{
			Code: "PROP-blr-003", Name: "Whitefield Grande Villa", Type: models.TypeVilla,
			BHK: "4BHK", AreaSqFt: 3200, Furnishing: models.FullFurnished,
			MinAmount: 35000, MaxAmount: 42000,
			Features: []string{"garden", "parking", "pool"},
			Address:  "7 Palm Ave", City: "Bangalore", State: "Karnataka",
			Country: "India", Pincode: "560066",
			Geo:     models.NewGeoPoint(12.9698, 77.7500),
			OwnerID: "owner-ravi",
		},
		{
			Code: "PROP-pun-001", Name: "Kothrud Comfort PG", Type: models.TypePG,
			BHK: "1RK", AreaSqFt: 220, Furnishing: models.SemiFurnished,
			MinAmount: 800, MaxAmount: 1200,
			Features: []string{"wifi", "meals", "laundry"},
			Address:  "5 Paud Rd", City: "Pune", State: "Maharashtra",
			Country: "India", Pincode: "411038",
			OwnerID: "owner-ravi",
		},
	}
	for _, p := range properties {
		if err := s.CreateProperty(ctx, p); err != nil {
			return fmt.Errorf("seed property %s: %w", p.Code, err)
		}
	}

	rooms := []*models.Room{
		{Code: "ROOM-blr-001-a", PropertyCode: "PROP-blr-001", Rent: 1400,
			SecurityDeposit: 4200, Furnishing: models.SemiFurnished,
			MaxOccupancy: 2, AreaSqFt: 180},
		{Code: "ROOM-blr-001-b", PropertyCode: "PROP-blr-001", Rent: 1800,
			SecurityDeposit: 5400, Furnishing: models.FullFurnished,
			MaxOccupancy: 2, AreaSqFt: 220},
		{Code: "ROOM-pun-001-a", PropertyCode: "PROP-pun-001", Rent: 800,
			SecurityDeposit: 1600, Furnishing: models.SemiFurnished,
			MaxOccupancy: 1, AreaSqFt: 110},
	}
	for _, r := range rooms {
		if err := s.AddRoom(ctx, r); err != nil {
			return fmt.Errorf("seed room %s: %w", r.Code, err)
		}
	}

	agreement := &models.RentalAgreement{
		Code:         "AGR-0001",
		TenantID:     "tenant-meera",
		PropertyCode: "PROP-blr-001",
		RoomCode:     "ROOM-blr-001-a",
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount:   1400, SecurityDeposit: 4200,
	}
	if err := s.CreateAgreement(ctx, agreement); err != nil {
		return fmt.Errorf("seed agreement: %w", err)
	}
	for _, next := range []models.AgreementStatus{models.AgreementPending, models.AgreementActive} {
		if _, err := s.UpdateAgreementStatus(ctx, agreement.Code, next); err != nil {
			return fmt.Errorf("seed agreement status: %w", err)
		}
	}

	payment := &models.RentPayment{
		Code:          "PAY-0001",
		AgreementCode: agreement.Code,
		Period:        "2026-01",
		Amount:        1400,
		DueDate:       time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := s.CreatePayment(ctx, payment); err != nil {
		return fmt.Errorf("seed payment: %w", err)
	}

	reviews := []*models.Review{
		{PropertyCode: "PROP-blr-001", UserID: "tenant-meera", Rating: 4,
			Comment: "Quiet street, responsive owner."},
		{PropertyCode: "PROP-blr-002", UserID: "tenant-karan", Rating: 5,
			Comment: "Great location, fully furnished as listed."},
	}
	for _, r := range reviews {
		if err := s.AddReview(ctx, r); err != nil {
			return fmt.Errorf("seed review: %w", err)
		}
	}
	return nil
}
