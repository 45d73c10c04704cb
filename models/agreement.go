package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AgreementStatus string

const (
	AgreementDraft      AgreementStatus = "DRAFT"
	AgreementPending    AgreementStatus = "PENDING"
	AgreementActive     AgreementStatus = "ACTIVE"
	AgreementTerminated AgreementStatus = "TERMINATED"
)

// CanTransitionTo enforces the monotonic forward progression
// DRAFT -> PENDING -> ACTIVE -> TERMINATED. TERMINATED is terminal.
func (s AgreementStatus) CanTransitionTo(next AgreementStatus) bool {
	switch s {
	case AgreementDraft:
		return next == AgreementPending
	case AgreementPending:
		return next == AgreementActive
	case AgreementActive:
		return next == AgreementTerminated
	}
	return false
}

type RentalAgreement struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code            string             `bson:"code" json:"code"`
	TenantID        string             `bson:"tenantID" json:"tenantID"`
	OwnerID         string             `bson:"ownerID" json:"ownerID"`
	PropertyCode    string             `bson:"propertyCode" json:"propertyCode"`
	RoomCode        string             `bson:"roomCode" json:"roomCode"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	EndDate         time.Time          `bson:"endDate" json:"endDate"`
	RentAmount      float64            `bson:"rentAmount" json:"rentAmount"`
	SecurityDeposit float64            `bson:"securityDeposit" json:"securityDeposit"`
	Status          AgreementStatus    `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

// CanTransitionTo allows PENDING -> PAID, PENDING -> OVERDUE and
// OVERDUE -> PAID; a settled payment never changes again.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentPaid || next == PaymentOverdue
	case PaymentOverdue:
		return next == PaymentPaid
	}
	return false
}

type RentPayment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code          string             `bson:"code" json:"code"`
	AgreementCode string             `bson:"agreementCode" json:"agreementCode"`
	Period        string             `bson:"period" json:"period"` // "2026-08"
	Amount        float64            `bson:"amount" json:"amount"`
	DueDate       time.Time          `bson:"dueDate" json:"dueDate"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	PaymentDate   *time.Time         `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	ReceiptNumber string             `bson:"receiptNumber,omitempty" json:"receiptNumber,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
