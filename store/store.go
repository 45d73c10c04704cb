// Package store is the data boundary of the marketplace. The pure search
// core never touches a datastore; it is handed candidate pools by one of the
// Store implementations, chosen once at composition time: an in-memory
// fixture-backed adapter for mock mode and tests, or the MongoDB adapter.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/search"
)

var (
	// ErrNotFound is returned for unknown codes on single-entity lookups;
	// lookups never signal absence with a silent nil.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition rejects a status change the current status does
	// not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRoomOccupied rejects activating an agreement for a room that
	// already has an active one.
	ErrRoomOccupied = errors.New("room already has an active agreement")

	// ErrDuplicateReview enforces one review per user per property.
	ErrDuplicateReview = errors.New("user already reviewed this property")

	// ErrDuplicateFavorite rejects shortlisting the same property twice.
	ErrDuplicateFavorite = errors.New("property already in favorites")

	// ErrForbidden marks owner-gated mutations attempted by someone else.
	ErrForbidden = errors.New("not the property owner")

	// ErrInvalidInput covers malformed domain values (rating out of range,
	// non-positive rent, inverted date ranges).
	ErrInvalidInput = errors.New("invalid input")
)

// PropertyUpdate is a partial update; nil fields are left untouched. Code,
// owner and creation time are immutable through this path.
type PropertyUpdate struct {
	Name         *string              `json:"name,omitempty"`
	MinAmount    *float64             `json:"minAmount,omitempty"`
	MaxAmount    *float64             `json:"maxAmount,omitempty"`
	Furnishing   *models.Furnishing   `json:"furnishing,omitempty"`
	Features     []string             `json:"features,omitempty"`
	Availability *models.Availability `json:"availability,omitempty"`
}

// Store is the service facade the HTTP layer and the search core depend on.
type Store interface {
	CreateProperty(ctx context.Context, p *models.Property) error
	GetPropertyByCode(ctx context.Context, code string) (*models.Property, error)
	UpdateProperty(ctx context.Context, code, ownerID string, upd PropertyUpdate) (*models.Property, error)
	ArchiveProperty(ctx context.Context, code, ownerID string) error
	ListPropertiesByOwner(ctx context.Context, ownerID string) ([]*models.Property, error)
	SearchProperties(ctx context.Context, f search.Filters, pg search.Pagination, s search.Sort) (*search.Result, error)
	GetSimilarProperties(ctx context.Context, code string, limit int) (*search.Ranking, error)

	AddRoom(ctx context.Context, room *models.Room) error
	UpdateRoomStatus(ctx context.Context, code string, next models.RoomStatus) (*models.Room, error)
	ListRooms(ctx context.Context, propertyCode string) ([]*models.Room, error)

	CreateAgreement(ctx context.Context, a *models.RentalAgreement) error
	UpdateAgreementStatus(ctx context.Context, code string, next models.AgreementStatus) (*models.RentalAgreement, error)
	ListAgreementsByUser(ctx context.Context, userID string) ([]*models.RentalAgreement, error)

	CreatePayment(ctx context.Context, p *models.RentPayment) error
	PayPayment(ctx context.Context, code string, at time.Time) (*models.RentPayment, error)
	MarkOverduePayments(ctx context.Context, now time.Time) (int, error)
	ListPaymentsByAgreement(ctx context.Context, agreementCode string) ([]*models.RentPayment, error)

	FileComplaint(ctx context.Context, c *models.Complaint) error
	UpdateComplaintStatus(ctx context.Context, code string, next models.ComplaintStatus) (*models.Complaint, error)
	ListComplaintsByProperty(ctx context.Context, propertyCode string) ([]*models.Complaint, error)

	AddReview(ctx context.Context, r *models.Review) error
	ListReviews(ctx context.Context, propertyCode string) ([]*models.Review, error)

	AddFavorite(ctx context.Context, userID, propertyCode string) error
	RemoveFavorite(ctx context.Context, userID, propertyCode string) error
	ListFavorites(ctx context.Context, userID string) ([]*models.Property, error)

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
