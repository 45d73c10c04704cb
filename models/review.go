package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is immutable once created; the owning property's aggregate rating
// is recomputed on every insert.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code         string             `bson:"code" json:"code"`
	PropertyCode string             `bson:"propertyCode" json:"propertyCode"`
	UserID       string             `bson:"userID" json:"userID"`
	Rating       int                `bson:"rating" json:"rating"` // 1..5
	Comment      string             `bson:"comment" json:"comment"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
