package models

import "time"

// PaymentType is what a payment is for.
type PaymentType string

const (
	PaymentMembershipFee   PaymentType = "MEMBERSHIP_FEE"
	PaymentClassFee        PaymentType = "CLASS_FEE"
	PaymentTrainingSession PaymentType = "TRAINING_SESSION"
)

// PaymentMethod is how a payment is made.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentOnline       PaymentMethod = "ONLINE"
)

// PaymentStatus is the lifecycle state of a payment.
//
// Allowed transitions: PENDING -> COMPLETED (process), PENDING -> CANCELLED,
// COMPLETED -> REFUNDED. Everything else is rejected.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// Payment is a charge against a user's account.
type Payment struct {
	ID            int64         `json:"id"`
	User          UserRef       `json:"user"`
	Type          PaymentType   `json:"type"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	Amount        float64       `json:"amount"`
	Description   string        `json:"description,omitempty"`
	TransactionID string        `json:"transactionId"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
	DueDate       *time.Time    `json:"dueDate,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
