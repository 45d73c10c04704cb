package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is a user's shortlist entry for a property.
type Favorite struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID       string             `bson:"userID" json:"userID"`
	PropertyCode string             `bson:"propertyCode" json:"propertyCode"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
