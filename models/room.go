package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// CanTransitionTo reports whether a room may move to the given status.
// Occupied rooms must be vacated before entering maintenance.
func (s RoomStatus) CanTransitionTo(next RoomStatus) bool {
	switch s {
	case RoomAvailable:
		return next == RoomOccupied || next == RoomMaintenance
	case RoomOccupied:
		return next == RoomAvailable
	case RoomMaintenance:
		return next == RoomAvailable
	}
	return false
}

type Room struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code            string             `bson:"code" json:"code"`
	PropertyCode    string             `bson:"propertyCode" json:"propertyCode"`
	Rent            float64            `bson:"rent" json:"rent"`
	SecurityDeposit float64            `bson:"securityDeposit" json:"securityDeposit"`
	Furnishing      Furnishing         `bson:"furnishing" json:"furnishing"`
	MaxOccupancy    int                `bson:"maxOccupancy" json:"maxOccupancy"`
	AreaSqFt        float64            `bson:"areaSqFt" json:"areaSqFt"`
	Status          RoomStatus         `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
