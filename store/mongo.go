package store

import (
	"context"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/search"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the live adapter. It owns the raw bson plumbing; filtering,
// ranking and pagination semantics stay in the search package so both
// adapters answer identically.
type MongoStore struct {
	properties *mongo.Collection
	rooms      *mongo.Collection
	agreements *mongo.Collection
	payments   *mongo.Collection
	complaints *mongo.Collection
	reviews    *mongo.Collection
	favorites  *mongo.Collection
	users      *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		properties: db.Collection("properties"),
		rooms:      db.Collection("rooms"),
		agreements: db.Collection("agreements"),
		payments:   db.Collection("payments"),
		complaints: db.Collection("complaints"),
		reviews:    db.Collection("reviews"),
		favorites:  db.Collection("favorites"),
		users:      db.Collection("users"),
	}
}

func notFound(entity, code string, err error) error {
	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("%s %s: %w", entity, code, ErrNotFound)
	}
	return fmt.Errorf("%s %s: %v", entity, code, err)
}

// --- properties ---

func (m *MongoStore) CreateProperty(ctx context.Context, p *models.Property) error {
	if err := validateProperty(p); err != nil {
		return err
	}
	if p.Code == "" {
		p.Code = newCode("PROP")
	}
	normalizeGeo(p)
	p.ID = primitive.NewObjectID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Availability == "" {
		p.Availability = models.AvailabilityAvailable
	}
	_, err := m.properties.InsertOne(ctx, p)
	return err
}

func (m *MongoStore) GetPropertyByCode(ctx context.Context, code string) (*models.Property, error) {
	var p models.Property
	if err := m.properties.FindOne(ctx, bson.M{"code": code}).Decode(&p); err != nil {
		return nil, notFound("property", code, err)
	}
	return &p, nil
}

func (m *MongoStore) UpdateProperty(ctx context.Context, code, ownerID string, upd PropertyUpdate) (*models.Property, error) {
	p, err := m.GetPropertyByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		p.Name = *upd.Name
	}
	if upd.MinAmount != nil {
		set["minAmount"] = *upd.MinAmount
		p.MinAmount = *upd.MinAmount
	}
	if upd.MaxAmount != nil {
		set["maxAmount"] = *upd.MaxAmount
		p.MaxAmount = *upd.MaxAmount
	}
	if upd.Furnishing != nil {
		set["furnishing"] = *upd.Furnishing
		p.Furnishing = *upd.Furnishing
	}
	if upd.Features != nil {
		set["features"] = upd.Features
		p.Features = upd.Features
	}
	if upd.Availability != nil {
		set["availability"] = *upd.Availability
		p.Availability = *upd.Availability
	}
	if err := validateProperty(p); err != nil {
		return nil, err
	}

	res, err := m.properties.UpdateOne(ctx, bson.M{"code": code, "ownerID": ownerID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update property %s: %v", code, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("property %s: %w", code, ErrNotFound)
	}
	return m.GetPropertyByCode(ctx, code)
}

func (m *MongoStore) ArchiveProperty(ctx context.Context, code, ownerID string) error {
	p, err := m.GetPropertyByCode(ctx, code)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return ErrForbidden
	}
	_, err = m.properties.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": bson.M{
		"isArchived":   true,
		"availability": models.AvailabilityArchived,
		"updatedAt":    time.Now(),
	}})
	return err
}

func (m *MongoStore) ListPropertiesByOwner(ctx context.Context, ownerID string) ([]*models.Property, error) {
	return m.findProperties(ctx, bson.M{"ownerID": ownerID})
}

func (m *MongoStore) findProperties(ctx context.Context, filter bson.M) ([]*models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := m.properties.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find properties: %v", err)
	}
	defer cursor.Close(ctx)

	var out []*models.Property
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode properties: %v", err)
	}
	return out, nil
}

// candidatePool pulls every non-archived listing in creation order; the
// search core owns everything after that.
func (m *MongoStore) candidatePool(ctx context.Context) ([]*models.Property, error) {
	return m.findProperties(ctx, bson.M{"isArchived": false})
}

func (m *MongoStore) SearchProperties(ctx context.Context, f search.Filters, pg search.Pagination, s search.Sort) (*search.Result, error) {
	pool, err := m.candidatePool(ctx)
	if err != nil {
		return nil, err
	}
	return search.Search(pool, f, pg, s)
}

func (m *MongoStore) GetSimilarProperties(ctx context.Context, code string, limit int) (*search.Ranking, error) {
	target, err := m.GetPropertyByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	pool, err := m.candidatePool(ctx)
	if err != nil {
		return nil, err
	}
	return search.RankSimilar(target, pool, limit, search.DefaultWeights), nil
}

// --- rooms ---

func (m *MongoStore) AddRoom(ctx context.Context, room *models.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}
	if _, err := m.GetPropertyByCode(ctx, room.PropertyCode); err != nil {
		return err
	}
	if room.Code == "" {
		room.Code = newCode("ROOM")
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	room.ID = primitive.NewObjectID()
	room.CreatedAt = time.Now()
	if _, err := m.rooms.InsertOne(ctx, room); err != nil {
		return fmt.Errorf("insert room: %v", err)
	}
	return m.refreshAvailability(ctx, room.PropertyCode)
}

func (m *MongoStore) UpdateRoomStatus(ctx context.Context, code string, next models.RoomStatus) (*models.Room, error) {
	var room models.Room
	if err := m.rooms.FindOne(ctx, bson.M{"code": code}).Decode(&room); err != nil {
		return nil, notFound("room", code, err)
	}
	if !room.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: room %s %s -> %s", ErrInvalidTransition, code, room.Status, next)
	}
	_, err := m.rooms.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": bson.M{"status": next}})
	if err != nil {
		return nil, fmt.Errorf("update room %s: %v", code, err)
	}
	room.Status = next
	if err := m.refreshAvailability(ctx, room.PropertyCode); err != nil {
		return nil, err
	}
	return &room, nil
}

func (m *MongoStore) ListRooms(ctx context.Context, propertyCode string) ([]*models.Room, error) {
	cursor, err := m.rooms.Find(ctx, bson.M{"propertyCode": propertyCode})
	if err != nil {
		return nil, fmt.Errorf("find rooms: %v", err)
	}
	defer cursor.Close(ctx)

	var out []*models.Room
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode rooms: %v", err)
	}
	return out, nil
}

func (m *MongoStore) refreshAvailability(ctx context.Context, propertyCode string) error {
	total, err := m.rooms.CountDocuments(ctx, bson.M{"propertyCode": propertyCode})
	if err != nil {
		return fmt.Errorf("count rooms: %v", err)
	}
	available, err := m.rooms.CountDocuments(ctx, bson.M{
		"propertyCode": propertyCode,
		"status":       models.RoomAvailable,
	})
	if err != nil {
		return fmt.Errorf("count available rooms: %v", err)
	}

	availability := models.AvailabilityAvailable
	if total > 0 && available == 0 {
		availability = models.AvailabilityOccupied
	}
	_, err = m.properties.UpdateOne(ctx,
		bson.M{"code": propertyCode, "isArchived": false},
		bson.M{"$set": bson.M{"availability": availability, "updatedAt": time.Now()}})
	return err
}

// --- agreements ---

func (m *MongoStore) CreateAgreement(ctx context.Context, a *models.RentalAgreement) error {
	if err := validateAgreement(a); err != nil {
		return err
	}
	p, err := m.GetPropertyByCode(ctx, a.PropertyCode)
	if err != nil {
		return err
	}
	if a.RoomCode != "" {
		if err := m.rooms.FindOne(ctx, bson.M{"code": a.RoomCode}).Err(); err != nil {
			return notFound("room", a.RoomCode, err)
		}
	}
	if a.Code == "" {
		a.Code = newCode("AGR")
	}
	a.ID = primitive.NewObjectID()
	a.OwnerID = p.OwnerID
	a.Status = models.AgreementDraft
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err = m.agreements.InsertOne(ctx, a)
	return err
}

func (m *MongoStore) UpdateAgreementStatus(ctx context.Context, code string, next models.AgreementStatus) (*models.RentalAgreement, error) {
	var a models.RentalAgreement
	if err := m.agreements.FindOne(ctx, bson.M{"code": code}).Decode(&a); err != nil {
		return nil, notFound("agreement", code, err)
	}
	if !a.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: agreement %s %s -> %s", ErrInvalidTransition, code, a.Status, next)
	}

	if next == models.AgreementActive && a.RoomCode != "" {
		count, err := m.agreements.CountDocuments(ctx, bson.M{
			"roomCode": a.RoomCode,
			"status":   models.AgreementActive,
			"code":     bson.M{"$ne": a.Code},
		})
		if err != nil {
			return nil, fmt.Errorf("check active agreements: %v", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: room %s", ErrRoomOccupied, a.RoomCode)
		}
		var room models.Room
		if err := m.rooms.FindOne(ctx, bson.M{"code": a.RoomCode}).Decode(&room); err == nil &&
			room.Status == models.RoomAvailable {
			if _, err := m.UpdateRoomStatus(ctx, a.RoomCode, models.RoomOccupied); err != nil {
				return nil, err
			}
		}
	}
	if next == models.AgreementTerminated && a.RoomCode != "" {
		var room models.Room
		if err := m.rooms.FindOne(ctx, bson.M{"code": a.RoomCode}).Decode(&room); err == nil &&
			room.Status == models.RoomOccupied {
			if _, err := m.UpdateRoomStatus(ctx, a.RoomCode, models.RoomAvailable); err != nil {
				return nil, err
			}
		}
	}

	_, err := m.agreements.UpdateOne(ctx, bson.M{"code": code},
		bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}})
	if err != nil {
		return nil, fmt.Errorf("update agreement %s: %v", code, err)
	}
	a.Status = next
	return &a, nil
}

func (m *MongoStore) ListAgreementsByUser(ctx context.Context, userID string) ([]*models.RentalAgreement, error) {
	cursor, err := m.agreements.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"tenantID": userID},
		bson.M{"ownerID": userID},
	}})
	if err != nil {
		return nil, fmt.Errorf("find agreements: %v", err)
	}
	defer cursor.Close(ctx)

	var out []*models.RentalAgreement
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode agreements: %v", err)
	}
	return out, nil
}

// --- payments ---

func (m *MongoStore) CreatePayment(ctx context.Context, p *models.RentPayment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	if err := m.agreements.FindOne(ctx, bson.M{"code": p.AgreementCode}).Err(); err != nil {
		return notFound("agreement", p.AgreementCode, err)
	}
	if p.Code == "" {
		p.Code = newCode("PAY")
	}
	p.ID = primitive.NewObjectID()
	p.Status = models.PaymentPending
	p.PaymentDate = nil
	p.CreatedAt = time.Now()
	_, err := m.payments.InsertOne(ctx, p)
	return err
}

func (m *MongoStore) PayPayment(ctx context.Context, code string, at time.Time) (*models.RentPayment, error) {
	var p models.RentPayment
	if err := m.payments.FindOne(ctx, bson.M{"code": code}).Decode(&p); err != nil {
		return nil, notFound("payment", code, err)
	}
	if !p.Status.CanTransitionTo(models.PaymentPaid) {
		return nil, fmt.Errorf("%w: payment %s %s -> %s", ErrInvalidTransition, code, p.Status, models.PaymentPaid)
	}
	receipt := newCode("RCPT")
	_, err := m.payments.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": bson.M{
		"status":        models.PaymentPaid,
		"paymentDate":   at,
		"receiptNumber": receipt,
	}})
	if err != nil {
		return nil, fmt.Errorf("update payment %s: %v", code, err)
	}
	p.Status = models.PaymentPaid
	p.PaymentDate = &at
	p.ReceiptNumber = receipt
	return &p, nil
}

func (m *MongoStore) MarkOverduePayments(ctx context.Context, now time.Time) (int, error) {
	res, err := m.payments.UpdateMany(ctx,
		bson.M{"status": models.PaymentPending, "dueDate": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": models.PaymentOverdue}})
	if err != nil {
		return 0, fmt.Errorf("mark overdue payments: %v", err)
	}
	return int(res.ModifiedCount), nil
}

func (m *MongoStore) ListPaymentsByAgreement(ctx context.Context, agreementCode string) ([]*models.RentPayment, error) {
	cursor, err := m.payments.Find(ctx, bson.M{"agreementCode": agreementCode})
	if err != nil {
		return nil, fmt.Errorf("find payments: %v", err)
	}
	defer cursor.Close(ctx)

	var out []*models.RentPayment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode payments: %v", err)
	}
	return out, nil
}

// --- complaints ---

func (m *MongoStore) FileComplaint(ctx context.Context, c *models.Complaint) error {
	if err := validateComplaint(c); err != nil {
		return err
	}
	if _, err := m.GetPropertyByCode(ctx, c.PropertyCode); err != nil {
		return err
	}
	if c.Code == "" {
		c.Code = newCode("CMP")
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	c.ID = primitive.NewObjectID()
	c.Status = models.ComplaintOpen
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := m.complaints.InsertOne(ctx, c)
	return err
}

func (m *MongoStore) UpdateComplaintStatus(ctx context.Context, code string, next models.ComplaintStatus) (*models.Complaint, error) {
	var c models.Complaint
	if err := m.complaints.FindOne(ctx, bson.M{"code": code}).Decode(&c); err != nil {
		return nil, notFound("complaint", code, err)
	}
	if !c.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: complaint %s %s -> %s", ErrInvalidTransition, code, c.Status, next)
	}
	_, err := m.complaints.UpdateOne(ctx, bson.M{"code": code},
		bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}})
	if err != nil {
		return nil, fmt.Errorf("update complaint %s: %v", code, err)
	}
	c.Status = next
	return &c, nil
}

func (m *MongoStore) ListComplaintsByProperty(ctx context.Context, propertyCode string) ([]*models.Complaint, error) {
	cursor, err := m.complaints.Find(ctx, bson.M{"propertyCode": propertyCode})
	if err != nil {
		return nil, fmt.Errorf("find complaints: %v", err)
	}
	defer cursor.Close(ctx)

	var out []*models.Complaint
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode complaints: %v", err)
	}
	return out, nil
}

// --- reviews ---

func (m *MongoStore) AddReview(ctx context.Context, r *models.Review) error {
	if err := validateReview(r); err != nil {
		return err
	}
	if _, err := m.GetPropertyByCode(ctx, r.PropertyCode); err != nil {
		return err
	}
	err := m.reviews.FindOne(ctx, bson.M{"propertyCode": r.PropertyCode, "userID": r.UserID}).Err()
	if err == nil {
		return ErrDuplicateReview
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("check reviews: %v", err)
	}

	if r.Code == "" {
		r.Code = newCode("REV")
	}
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now()
	if _, err := m.reviews.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert review: %v", err)
	}
	return m.recomputeRating(ctx, r.PropertyCode)
}

func (m *MongoStore) recomputeRating(ctx context.Context, propertyCode string) error {
	reviews, err := m.ListReviews(ctx, propertyCode)
	if err != nil {
		return err
	}
	ratings := make(stats.Float64Data, len(reviews))
	for i, rev := range reviews {
		ratings[i] = float64(rev.Rating)
	}
	mean, _ := stats.Mean(ratings)
	_, err = m.properties.UpdateOne(ctx, bson.M{"code": propertyCode}, bson.M{"$set": bson.M{
		"rating":      mean,
		"reviewCount": len(reviews),
		"updatedAt":   time.Now(),
	}})
	return err
}

func (m *MongoStore) ListReviews(ctx context.Context, propertyCode string) ([]*models.Review, error) {
	cursor, err := m.reviews.Find(ctx, bson.M{"propertyCode": propertyCode})
	if err != nil {
		return nil, fmt.Errorf("find reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var out []*models.Review
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reviews: %v", err)
	}
	return out, nil
}

// --- favorites ---

func (m *MongoStore) AddFavorite(ctx context.Context, userID, propertyCode string) error {
	if _, err := m.GetPropertyByCode(ctx, propertyCode); err != nil {
		return err
	}
	filter := bson.M{"userID": userID, "propertyCode": propertyCode}
	err := m.favorites.FindOne(ctx, filter).Err()
	if err == nil {
		return ErrDuplicateFavorite
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("check favorites: %v", err)
	}
	_, err = m.favorites.InsertOne(ctx, &models.Favorite{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		PropertyCode: propertyCode,
		CreatedAt:    time.Now(),
	})
	return err
}

func (m *MongoStore) RemoveFavorite(ctx context.Context, userID, propertyCode string) error {
	res, err := m.favorites.DeleteOne(ctx, bson.M{"userID": userID, "propertyCode": propertyCode})
	if err != nil {
		return fmt.Errorf("remove favorite: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("favorite %s: %w", propertyCode, ErrNotFound)
	}
	return nil
}

func (m *MongoStore) ListFavorites(ctx context.Context, userID string) ([]*models.Property, error) {
	pipeline := mongo.Pipeline{
		{
			{Key: "$match", Value: bson.M{"userID": userID}},
		},
		{
			{Key: "$lookup", Value: bson.M{
				"from":         "properties",
				"localField":   "propertyCode",
				"foreignField": "code",
				"as":           "propertyDetails",
			}},
		},
		{
			{Key: "$unwind", Value: "$propertyDetails"},
		},
		{
			{Key: "$replaceRoot", Value: bson.M{"newRoot": "$propertyDetails"}},
		},
	}

	cursor, err := m.favorites.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate favorites: %v", err)
	}
	defer cursor.Close(ctx)

	var out []*models.Property
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode favorites: %v", err)
	}
	return out, nil
}

// --- users ---

func (m *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.UserID == "" || u.Email == "" {
		return fmt.Errorf("%w: userID and email are required", ErrInvalidInput)
	}
	if err := m.users.FindOne(ctx, bson.M{"userID": u.UserID}).Err(); err == nil {
		return fmt.Errorf("%w: userID %s taken", ErrInvalidInput, u.UserID)
	}
	if err := m.users.FindOne(ctx, bson.M{"email": u.Email}).Err(); err == nil {
		return fmt.Errorf("%w: email %s taken", ErrInvalidInput, u.Email)
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	_, err := m.users.InsertOne(ctx, u)
	return err
}

func (m *MongoStore) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := m.users.FindOne(ctx, bson.M{"userID": userID}).Decode(&u); err != nil {
		return nil, notFound("user", userID, err)
	}
	return &u, nil
}

func (m *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, notFound("user", email, err)
	}
	return &u, nil
}
