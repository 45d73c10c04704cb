package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "OPEN"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintRejected   ComplaintStatus = "REJECTED"
)

// CanTransitionTo: OPEN -> IN_PROGRESS -> RESOLVED, with REJECTED reachable
// from either non-terminal state. RESOLVED and REJECTED are terminal.
func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	switch s {
	case ComplaintOpen:
		return next == ComplaintInProgress || next == ComplaintRejected
	case ComplaintInProgress:
		return next == ComplaintResolved || next == ComplaintRejected
	}
	return false
}

type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "LOW"
	PriorityMedium ComplaintPriority = "MEDIUM"
	PriorityHigh   ComplaintPriority = "HIGH"
)

// Priority is an independent axis: it never gates a status transition.
type Complaint struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code          string             `bson:"code" json:"code"`
	AgreementCode string             `bson:"agreementCode" json:"agreementCode"`
	PropertyCode  string             `bson:"propertyCode" json:"propertyCode"`
	TenantID      string             `bson:"tenantID" json:"tenantID"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	Priority      ComplaintPriority  `bson:"priority" json:"priority"`
	Status        ComplaintStatus    `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
