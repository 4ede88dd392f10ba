package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusCaptured PaymentStatus = "CAPTURED"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID       int32  `json:"id"`
	RentalID int32  `json:"rental_id"`
	UserID   int32  `json:"user_id"`
	// PaymentIntentID is empty for payment methods that never touch the
	// gateway (e.g. pending manual charges).
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          PaymentStatus   `json:"status"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}

// GatewayCharge is a charge record as reported by the payment gateway.
type GatewayCharge struct {
	ChargeID        string          `json:"charge_id"`
	PaymentIntentID string          `json:"payment_intent_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	Refunded        bool            `json:"refunded"`
	CreatedAt       time.Time       `json:"created_at"`
}
