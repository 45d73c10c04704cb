package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/search"
)

// MemoryStore is the mock adapter: an explicit, mutex-guarded repository
// object scoped to whoever constructed it. Nothing here is process-wide, so
// test runs and mock-mode servers never share state. Insertion order is
// preserved because the search contract keys its default ordering off it.
// Every read path hands out copies of the stored records, matching the mongo
// adapter's decode-per-call behavior, so callers can hold and serialize
// results without the store's lock.
type MemoryStore struct {
	mu sync.RWMutex

	properties []*models.Property
	propByCode map[string]*models.Property

	rooms      []*models.Room
	roomByCode map[string]*models.Room

	agreements      []*models.RentalAgreement
	agreementByCode map[string]*models.RentalAgreement

	payments      []*models.RentPayment
	paymentByCode map[string]*models.RentPayment

	complaints      []*models.Complaint
	complaintByCode map[string]*models.Complaint

	reviews   []*models.Review
	favorites []*models.Favorite

	usersByID    map[string]*models.User
	usersByEmail map[string]*models.User
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		propByCode:      make(map[string]*models.Property),
		roomByCode:      make(map[string]*models.Room),
		agreementByCode: make(map[string]*models.RentalAgreement),
		paymentByCode:   make(map[string]*models.RentPayment),
		complaintByCode: make(map[string]*models.Complaint),
		usersByID:       make(map[string]*models.User),
		usersByEmail:    make(map[string]*models.User),
	}
}

// --- properties ---

func (m *MemoryStore) CreateProperty(ctx context.Context, p *models.Property) error {
	if err := validateProperty(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.Code == "" {
		p.Code = newCode("PROP")
	}
	if _, exists := m.propByCode[p.Code]; exists {
		return fmt.Errorf("%w: property code %s taken", ErrInvalidInput, p.Code)
	}
	normalizeGeo(p)
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Availability == "" {
		p.Availability = models.AvailabilityAvailable
	}
	m.properties = append(m.properties, p)
	m.propByCode[p.Code] = p
	return nil
}

func (m *MemoryStore) GetPropertyByCode(ctx context.Context, code string) (*models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, err := m.propertyLocked(code)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (m *MemoryStore) propertyLocked(code string) (*models.Property, error) {
	p, ok := m.propByCode[code]
	if !ok {
		return nil, fmt.Errorf("property %s: %w", code, ErrNotFound)
	}
	return p, nil
}

func (m *MemoryStore) UpdateProperty(ctx context.Context, code, ownerID string, upd PropertyUpdate) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.propertyLocked(code)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	// Merge into a scratch copy and validate that, so a rejected update
	// leaves the stored record untouched.
	merged := p.Clone()
	if upd.Name != nil {
		merged.Name = *upd.Name
	}
	if upd.MinAmount != nil {
		merged.MinAmount = *upd.MinAmount
	}
	if upd.MaxAmount != nil {
		merged.MaxAmount = *upd.MaxAmount
	}
	if upd.Furnishing != nil {
		merged.Furnishing = *upd.Furnishing
	}
	if upd.Features != nil {
		merged.Features = append([]string(nil), upd.Features...)
	}
	if upd.Availability != nil {
		merged.Availability = *upd.Availability
	}
	if err := validateProperty(merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = time.Now()
	*p = *merged
	return p.Clone(), nil
}

func (m *MemoryStore) ArchiveProperty(ctx context.Context, code, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.propertyLocked(code)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return ErrForbidden
	}
	p.IsArchived = true
	p.Availability = models.AvailabilityArchived
	p.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) ListPropertiesByOwner(ctx context.Context, ownerID string) ([]*models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Property
	for _, p := range m.properties {
		if p.OwnerID == ownerID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// candidatePoolLocked is what search and similarity operate over: every
// non-archived property in insertion order. Records are cloned so the pool
// stays coherent after the read lock is released; callers and the pure core
// never touch live store state.
func (m *MemoryStore) candidatePoolLocked() []*models.Property {
	pool := make([]*models.Property, 0, len(m.properties))
	for _, p := range m.properties {
		if !p.IsArchived {
			pool = append(pool, p.Clone())
		}
	}
	return pool
}

func (m *MemoryStore) SearchProperties(ctx context.Context, f search.Filters, pg search.Pagination, s search.Sort) (*search.Result, error) {
	m.mu.RLock()
	pool := m.candidatePoolLocked()
	m.mu.RUnlock()
	return search.Search(pool, f, pg, s)
}

func (m *MemoryStore) GetSimilarProperties(ctx context.Context, code string, limit int) (*search.Ranking, error) {
	m.mu.RLock()
	target, err := m.propertyLocked(code)
	if err != nil {
		m.mu.RUnlock()
		return nil, err
	}
	target = target.Clone()
	pool := m.candidatePoolLocked()
	m.mu.RUnlock()
	return search.RankSimilar(target, pool, limit, search.DefaultWeights), nil
}

// --- rooms ---

func (m *MemoryStore) AddRoom(ctx context.Context, room *models.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.propertyLocked(room.PropertyCode); err != nil {
		return err
	}
	if room.Code == "" {
		room.Code = newCode("ROOM")
	}
	if _, exists := m.roomByCode[room.Code]; exists {
		return fmt.Errorf("%w: room code %s taken", ErrInvalidInput, room.Code)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	room.CreatedAt = time.Now()
	m.rooms = append(m.rooms, room)
	m.roomByCode[room.Code] = room
	m.refreshAvailabilityLocked(room.PropertyCode)
	return nil
}

func (m *MemoryStore) UpdateRoomStatus(ctx context.Context, code string, next models.RoomStatus) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.roomByCode[code]
	if !ok {
		return nil, fmt.Errorf("room %s: %w", code, ErrNotFound)
	}
	if !room.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: room %s %s -> %s", ErrInvalidTransition, code, room.Status, next)
	}
	room.Status = next
	m.refreshAvailabilityLocked(room.PropertyCode)
	out := *room
	return &out, nil
}

func (m *MemoryStore) ListRooms(ctx context.Context, propertyCode string) ([]*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Room
	for _, r := range m.rooms {
		if r.PropertyCode == propertyCode {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// refreshAvailabilityLocked keeps the advertised availability consistent
// with room occupancy: a property whose rooms are all taken must not be
// advertised as available.
func (m *MemoryStore) refreshAvailabilityLocked(propertyCode string) {
	p, ok := m.propByCode[propertyCode]
	if !ok || p.IsArchived {
		return
	}
	total, available := 0, 0
	for _, r := range m.rooms {
		if r.PropertyCode != propertyCode {
			continue
		}
		total++
		if r.Status == models.RoomAvailable {
			available++
		}
	}
	if total > 0 && available == 0 {
		p.Availability = models.AvailabilityOccupied
	} else {
		p.Availability = models.AvailabilityAvailable
	}
	p.UpdatedAt = time.Now()
}

// --- agreements ---

func (m *MemoryStore) CreateAgreement(ctx context.Context, a *models.RentalAgreement) error {
	if err := validateAgreement(a); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.propertyLocked(a.PropertyCode)
	if err != nil {
		return err
	}
	if a.RoomCode != "" {
		if _, ok := m.roomByCode[a.RoomCode]; !ok {
			return fmt.Errorf("room %s: %w", a.RoomCode, ErrNotFound)
		}
	}
	if a.Code == "" {
		a.Code = newCode("AGR")
	}
	if _, exists := m.agreementByCode[a.Code]; exists {
		return fmt.Errorf("%w: agreement code %s taken", ErrInvalidInput, a.Code)
	}
	a.OwnerID = p.OwnerID
	a.Status = models.AgreementDraft
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.agreements = append(m.agreements, a)
	m.agreementByCode[a.Code] = a
	return nil
}

func (m *MemoryStore) UpdateAgreementStatus(ctx context.Context, code string, next models.AgreementStatus) (*models.RentalAgreement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.agreementByCode[code]
	if !ok {
		return nil, fmt.Errorf("agreement %s: %w", code, ErrNotFound)
	}
	if !a.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: agreement %s %s -> %s", ErrInvalidTransition, code, a.Status, next)
	}

	if next == models.AgreementActive && a.RoomCode != "" {
		for _, other := range m.agreements {
			if other.Code != a.Code && other.RoomCode == a.RoomCode && other.Status == models.AgreementActive {
				return nil, fmt.Errorf("%w: room %s held by agreement %s", ErrRoomOccupied, a.RoomCode, other.Code)
			}
		}
		if room, ok := m.roomByCode[a.RoomCode]; ok && room.Status == models.RoomAvailable {
			room.Status = models.RoomOccupied
			m.refreshAvailabilityLocked(room.PropertyCode)
		}
	}
	if next == models.AgreementTerminated && a.RoomCode != "" {
		if room, ok := m.roomByCode[a.RoomCode]; ok && room.Status == models.RoomOccupied {
			room.Status = models.RoomAvailable
			m.refreshAvailabilityLocked(room.PropertyCode)
		}
	}

	a.Status = next
	a.UpdatedAt = time.Now()
	out := *a
	return &out, nil
}

func (m *MemoryStore) ListAgreementsByUser(ctx context.Context, userID string) ([]*models.RentalAgreement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.RentalAgreement
	for _, a := range m.agreements {
		if a.TenantID == userID || a.OwnerID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- payments ---

func (m *MemoryStore) CreatePayment(ctx context.Context, p *models.RentPayment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.agreementByCode[p.AgreementCode]; !ok {
		return fmt.Errorf("agreement %s: %w", p.AgreementCode, ErrNotFound)
	}
	if p.Code == "" {
		p.Code = newCode("PAY")
	}
	if _, exists := m.paymentByCode[p.Code]; exists {
		return fmt.Errorf("%w: payment code %s taken", ErrInvalidInput, p.Code)
	}
	p.Status = models.PaymentPending
	p.PaymentDate = nil
	p.CreatedAt = time.Now()
	m.payments = append(m.payments, p)
	m.paymentByCode[p.Code] = p
	return nil
}

func (m *MemoryStore) PayPayment(ctx context.Context, code string, at time.Time) (*models.RentPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.paymentByCode[code]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", code, ErrNotFound)
	}
	if !p.Status.CanTransitionTo(models.PaymentPaid) {
		return nil, fmt.Errorf("%w: payment %s %s -> %s", ErrInvalidTransition, code, p.Status, models.PaymentPaid)
	}
	p.Status = models.PaymentPaid
	p.PaymentDate = &at
	p.ReceiptNumber = newCode("RCPT")
	return clonePayment(p), nil
}

func clonePayment(p *models.RentPayment) *models.RentPayment {
	out := *p
	if p.PaymentDate != nil {
		t := *p.PaymentDate
		out.PaymentDate = &t
	}
	return &out
}

func (m *MemoryStore) MarkOverduePayments(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	marked := 0
	for _, p := range m.payments {
		if p.Status == models.PaymentPending && p.DueDate.Before(now) {
			p.Status = models.PaymentOverdue
			marked++
		}
	}
	return marked, nil
}

func (m *MemoryStore) ListPaymentsByAgreement(ctx context.Context, agreementCode string) ([]*models.RentPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.RentPayment
	for _, p := range m.payments {
		if p.AgreementCode == agreementCode {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

// --- complaints ---

func (m *MemoryStore) FileComplaint(ctx context.Context, c *models.Complaint) error {
	if err := validateComplaint(c); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.propertyLocked(c.PropertyCode); err != nil {
		return err
	}
	if c.Code == "" {
		c.Code = newCode("CMP")
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	c.Status = models.ComplaintOpen
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.complaints = append(m.complaints, c)
	m.complaintByCode[c.Code] = c
	return nil
}

func (m *MemoryStore) UpdateComplaintStatus(ctx context.Context, code string, next models.ComplaintStatus) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.complaintByCode[code]
	if !ok {
		return nil, fmt.Errorf("complaint %s: %w", code, ErrNotFound)
	}
	if !c.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: complaint %s %s -> %s", ErrInvalidTransition, code, c.Status, next)
	}
	c.Status = next
	c.UpdatedAt = time.Now()
	out := *c
	return &out, nil
}

func (m *MemoryStore) ListComplaintsByProperty(ctx context.Context, propertyCode string) ([]*models.Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Complaint
	for _, c := range m.complaints {
		if c.PropertyCode == propertyCode {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- reviews ---

func (m *MemoryStore) AddReview(ctx context.Context, r *models.Review) error {
	if err := validateReview(r); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.propertyLocked(r.PropertyCode)
	if err != nil {
		return err
	}
	for _, existing := range m.reviews {
		if existing.PropertyCode == r.PropertyCode && existing.UserID == r.UserID {
			return ErrDuplicateReview
		}
	}
	if r.Code == "" {
		r.Code = newCode("REV")
	}
	r.CreatedAt = time.Now()
	m.reviews = append(m.reviews, r)

	ratings := make(stats.Float64Data, 0, len(m.reviews))
	for _, rev := range m.reviews {
		if rev.PropertyCode == r.PropertyCode {
			ratings = append(ratings, float64(rev.Rating))
		}
	}
	mean, _ := stats.Mean(ratings)
	p.Rating = mean
	p.ReviewCount = len(ratings)
	p.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) ListReviews(ctx context.Context, propertyCode string) ([]*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Review
	for _, r := range m.reviews {
		if r.PropertyCode == propertyCode {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- favorites ---

func (m *MemoryStore) AddFavorite(ctx context.Context, userID, propertyCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.propertyLocked(propertyCode); err != nil {
		return err
	}
	for _, f := range m.favorites {
		if f.UserID == userID && f.PropertyCode == propertyCode {
			return ErrDuplicateFavorite
		}
	}
	m.favorites = append(m.favorites, &models.Favorite{
		UserID:       userID,
		PropertyCode: propertyCode,
		CreatedAt:    time.Now(),
	})
	return nil
}

func (m *MemoryStore) RemoveFavorite(ctx context.Context, userID, propertyCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, f := range m.favorites {
		if f.UserID == userID && f.PropertyCode == propertyCode {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("favorite %s: %w", propertyCode, ErrNotFound)
}

func (m *MemoryStore) ListFavorites(ctx context.Context, userID string) ([]*models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Property
	for _, f := range m.favorites {
		if f.UserID != userID {
			continue
		}
		if p, ok := m.propByCode[f.PropertyCode]; ok {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// --- users ---

func (m *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.UserID == "" || u.Email == "" {
		return fmt.Errorf("%w: userID and email are required", ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.usersByID[u.UserID]; exists {
		return fmt.Errorf("%w: userID %s taken", ErrInvalidInput, u.UserID)
	}
	if _, exists := m.usersByEmail[u.Email]; exists {
		return fmt.Errorf("%w: email %s taken", ErrInvalidInput, u.Email)
	}
	u.CreatedAt = time.Now()
	m.usersByID[u.UserID] = u
	m.usersByEmail[u.Email] = u
	return nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.usersByID[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return u, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return u, nil
}
