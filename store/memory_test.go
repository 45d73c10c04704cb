package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	require.NoError(t, Seed(context.Background(), s))
	return s
}

func TestGetPropertyByCodeUnknownSignalsNotFound(t *testing.T) {
	s := seededStore(t)

	p, err := s.GetPropertyByCode(context.Background(), "nonexistent-id")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNotFound, "absence must be a typed failure, never a silent nil")
}

func TestGetSimilarPropertiesUnknownTarget(t *testing.T) {
	s := seededStore(t)

	_, err := s.GetSimilarProperties(context.Background(), "nonexistent-id", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchExcludesArchivedProperties(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	require.NoError(t, s.ArchiveProperty(ctx, "PROP-blr-003", "owner-ravi"))

	res, err := s.SearchProperties(ctx, search.Filters{City: "Bangalore"},
		search.Pagination{Page: 1, Limit: 10}, search.Sort{})
	require.NoError(t, err)
	for _, p := range res.Data {
		assert.NotEqual(t, "PROP-blr-003", p.Code)
	}
	assert.Equal(t, 2, res.Total)
}

func TestArchiveIsOwnerGated(t *testing.T) {
	s := seededStore(t)
	err := s.ArchiveProperty(context.Background(), "PROP-blr-003", "owner-asha")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreatePropertyAssignsCodeAndGeohash(t *testing.T) {
	s := NewMemoryStore()
	p := &models.Property{
		Name: "Test Flat", Type: models.TypeFlat, City: "Pune",
		MinAmount: 1000, MaxAmount: 1500,
		Geo: &models.GeoPoint{Latitude: 18.5204, Longitude: 73.8567},
	}
	require.NoError(t, s.CreateProperty(context.Background(), p))

	assert.NotEmpty(t, p.Code)
	assert.NotEmpty(t, p.Geo.Geohash)
	assert.Equal(t, models.AvailabilityAvailable, p.Availability)
}

func TestCreatePropertyRejectsInvertedBand(t *testing.T) {
	s := NewMemoryStore()
	p := &models.Property{Name: "Bad", Type: models.TypeFlat, MinAmount: 2000, MaxAmount: 1000}
	assert.ErrorIs(t, s.CreateProperty(context.Background(), p), ErrInvalidInput)
}

func TestUpdatePropertyPartialAndImmutableCode(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	name := "Lakeview Residency Renewed"
	updated, err := s.UpdateProperty(ctx, "PROP-blr-001", "owner-asha", PropertyUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "PROP-blr-001", updated.Code)
	assert.Equal(t, 1400.0, updated.MinAmount, "untouched fields stay")

	_, err = s.UpdateProperty(ctx, "PROP-blr-001", "tenant-meera", PropertyUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRejectedUpdateLeavesRecordUntouched(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	// Inverted band: min above the existing max must be rejected as a whole.
	min := 5000.0
	_, err := s.UpdateProperty(ctx, "PROP-blr-001", "owner-asha", PropertyUpdate{MinAmount: &min})
	assert.ErrorIs(t, err, ErrInvalidInput)

	p, err := s.GetPropertyByCode(ctx, "PROP-blr-001")
	require.NoError(t, err)
	assert.Equal(t, 1400.0, p.MinAmount, "failed update must not leave partial state behind")
	assert.Equal(t, 1800.0, p.MaxAmount)
}

func TestReadResultsDetachedFromStore(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	res, err := s.SearchProperties(ctx, search.Filters{City: "Bangalore"},
		search.Pagination{Page: 1, Limit: 10}, search.Sort{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Data)

	res.Data[0].MinAmount = 1
	res.Data[0].Features = append(res.Data[0].Features, "helipad")

	p, err := s.GetPropertyByCode(ctx, res.Data[0].Code)
	require.NoError(t, err)
	assert.Equal(t, 1400.0, p.MinAmount, "results must not alias stored records")
	assert.NotContains(t, p.Features, "helipad")

	p.MinAmount = 1
	again, err := s.GetPropertyByCode(ctx, p.Code)
	require.NoError(t, err)
	assert.Equal(t, 1400.0, again.MinAmount)
}

func TestConcurrentSearchAndUpdate(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if n%2 == 0 {
					_, err := s.SearchProperties(ctx, search.Filters{City: "Bangalore"},
						search.Pagination{Page: 1, Limit: 10}, search.Sort{Key: search.SortByPrice})
					assert.NoError(t, err)
					continue
				}
				min := 1400.0 + float64(j)
				_, err := s.UpdateProperty(ctx, "PROP-blr-001", "owner-asha", PropertyUpdate{MinAmount: &min})
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestAgreementLifecycle(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	a := &models.RentalAgreement{
		TenantID:     "tenant-karan",
		PropertyCode: "PROP-blr-001",
		RoomCode:     "ROOM-blr-001-b",
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC),
		RentAmount:   1800,
	}
	require.NoError(t, s.CreateAgreement(ctx, a))
	assert.Equal(t, models.AgreementDraft, a.Status)
	assert.Equal(t, "owner-asha", a.OwnerID, "owner resolved from the property")

	// Forward progression only: DRAFT cannot jump to ACTIVE or TERMINATED.
	_, err := s.UpdateAgreementStatus(ctx, a.Code, models.AgreementActive)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = s.UpdateAgreementStatus(ctx, a.Code, models.AgreementPending)
	require.NoError(t, err)
	_, err = s.UpdateAgreementStatus(ctx, a.Code, models.AgreementActive)
	require.NoError(t, err)

	room, err := s.UpdateRoomStatus(ctx, "ROOM-blr-001-b", models.RoomAvailable)
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, room.Status)

	_, err = s.UpdateAgreementStatus(ctx, a.Code, models.AgreementTerminated)
	require.NoError(t, err)

	// TERMINATED is terminal.
	_, err = s.UpdateAgreementStatus(ctx, a.Code, models.AgreementActive)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOneActiveAgreementPerRoom(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	// ROOM-blr-001-a is already held by the seeded ACTIVE agreement.
	second := &models.RentalAgreement{
		TenantID:     "tenant-karan",
		PropertyCode: "PROP-blr-001",
		RoomCode:     "ROOM-blr-001-a",
		StartDate:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2027, 5, 31, 0, 0, 0, 0, time.UTC),
		RentAmount:   1400,
	}
	require.NoError(t, s.CreateAgreement(ctx, second))
	_, err := s.UpdateAgreementStatus(ctx, second.Code, models.AgreementPending)
	require.NoError(t, err)

	_, err = s.UpdateAgreementStatus(ctx, second.Code, models.AgreementActive)
	assert.ErrorIs(t, err, ErrRoomOccupied)
}

func TestAgreementValidation(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	bad := &models.RentalAgreement{
		TenantID:     "tenant-karan",
		PropertyCode: "PROP-blr-001",
		StartDate:    time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RentAmount:   1400,
	}
	assert.ErrorIs(t, s.CreateAgreement(ctx, bad), ErrInvalidInput)

	bad.EndDate = time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC)
	bad.RentAmount = 0
	assert.ErrorIs(t, s.CreateAgreement(ctx, bad), ErrInvalidInput)
}

func TestRoomOccupancyDrivesPropertyAvailability(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	// PROP-blr-001 has two rooms; one is occupied by the seeded agreement.
	p, err := s.GetPropertyByCode(ctx, "PROP-blr-001")
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityAvailable, p.Availability)

	_, err = s.UpdateRoomStatus(ctx, "ROOM-blr-001-b", models.RoomMaintenance)
	require.NoError(t, err)

	p, err = s.GetPropertyByCode(ctx, "PROP-blr-001")
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityOccupied, p.Availability,
		"zero available rooms must not advertise as available")

	_, err = s.UpdateRoomStatus(ctx, "ROOM-blr-001-b", models.RoomAvailable)
	require.NoError(t, err)
	p, _ = s.GetPropertyByCode(ctx, "PROP-blr-001")
	assert.Equal(t, models.AvailabilityAvailable, p.Availability)
}

func TestPaymentLifecycle(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	paidAt := time.Date(2026, 1, 4, 10, 0, 0, 0, time.UTC)
	p, err := s.PayPayment(ctx, "PAY-0001", paidAt)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, p.Status)
	require.NotNil(t, p.PaymentDate)
	assert.Equal(t, paidAt, *p.PaymentDate)
	assert.NotEmpty(t, p.ReceiptNumber)

	// PAID is terminal.
	_, err = s.PayPayment(ctx, "PAY-0001", paidAt)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOverdueSweepAndLatePayment(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	late := &models.RentPayment{
		AgreementCode: "AGR-0001",
		Period:        "2026-02",
		Amount:        1400,
		DueDate:       time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.CreatePayment(ctx, late))
	assert.Nil(t, late.PaymentDate, "paymentDate only set once PAID")

	marked, err := s.MarkOverduePayments(ctx, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, marked) // seeded PAY-0001 is also past due

	got, err := s.ListPaymentsByAgreement(ctx, "AGR-0001")
	require.NoError(t, err)
	for _, p := range got {
		assert.Equal(t, models.PaymentOverdue, p.Status)
	}

	// Settling an overdue period is still allowed.
	paid, err := s.PayPayment(ctx, late.Code, time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.Status)
}

func TestComplaintLifecycle(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	c := &models.Complaint{
		AgreementCode: "AGR-0001",
		PropertyCode:  "PROP-blr-001",
		TenantID:      "tenant-meera",
		Title:         "Leaking tap in kitchen",
		Category:      "plumbing",
		Priority:      models.PriorityHigh,
	}
	require.NoError(t, s.FileComplaint(ctx, c))
	assert.Equal(t, models.ComplaintOpen, c.Status)

	_, err := s.UpdateComplaintStatus(ctx, c.Code, models.ComplaintResolved)
	assert.ErrorIs(t, err, ErrInvalidTransition, "OPEN cannot skip IN_PROGRESS")

	_, err = s.UpdateComplaintStatus(ctx, c.Code, models.ComplaintInProgress)
	require.NoError(t, err)
	got, err := s.UpdateComplaintStatus(ctx, c.Code, models.ComplaintResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintResolved, got.Status)

	_, err = s.UpdateComplaintStatus(ctx, c.Code, models.ComplaintInProgress)
	assert.ErrorIs(t, err, ErrInvalidTransition, "RESOLVED is terminal")
}

func TestReviewAggregationAndDuplicates(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddReview(ctx, &models.Review{
		PropertyCode: "PROP-blr-001", UserID: "tenant-karan", Rating: 2,
		Comment: "Water pressure issues on the top floor.",
	}))

	p, err := s.GetPropertyByCode(ctx, "PROP-blr-001")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, p.Rating, 1e-9) // seeded 4 and new 2
	assert.Equal(t, 2, p.ReviewCount)

	err = s.AddReview(ctx, &models.Review{
		PropertyCode: "PROP-blr-001", UserID: "tenant-karan", Rating: 5,
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)

	err = s.AddReview(ctx, &models.Review{
		PropertyCode: "PROP-blr-001", UserID: "owner-ravi", Rating: 6,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFavorites(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, "tenant-meera", "PROP-blr-002"))
	assert.ErrorIs(t, s.AddFavorite(ctx, "tenant-meera", "PROP-blr-002"), ErrDuplicateFavorite)
	assert.ErrorIs(t, s.AddFavorite(ctx, "tenant-meera", "nonexistent-id"), ErrNotFound)

	favs, err := s.ListFavorites(ctx, "tenant-meera")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "PROP-blr-002", favs[0].Code)

	require.NoError(t, s.RemoveFavorite(ctx, "tenant-meera", "PROP-blr-002"))
	assert.ErrorIs(t, s.RemoveFavorite(ctx, "tenant-meera", "PROP-blr-002"), ErrNotFound)
}

func TestSimilarPropertiesFromStore(t *testing.T) {
	s := seededStore(t)

	ranking, err := s.GetSimilarProperties(context.Background(), "PROP-blr-001", 2)
	require.NoError(t, err)
	require.NotEmpty(t, ranking.Candidates)
	assert.Equal(t, "PROP-blr-002", ranking.Candidates[0].Property.Code,
		"the other Bangalore 2BHK flat should rank first")
	for _, c := range ranking.Candidates {
		assert.NotEqual(t, "PROP-blr-001", c.Property.Code)
	}
}
