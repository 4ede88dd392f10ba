package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscrepancyType string

const (
	DiscrepancyMissingInStripe   DiscrepancyType = "MISSING_IN_STRIPE"
	DiscrepancyMissingInDatabase DiscrepancyType = "MISSING_IN_DATABASE"
	DiscrepancyAmountMismatch    DiscrepancyType = "AMOUNT_MISMATCH"
	DiscrepancyStatusMismatch    DiscrepancyType = "STATUS_MISMATCH"
)

// Discrepancy is a detected mismatch between the local payment ledger and
// the gateway's ledger. Computed per run, never persisted by the core.
type Discrepancy struct {
	ID              string          `json:"id"`
	Type            DiscrepancyType `json:"type"`
	PaymentID       int32           `json:"payment_id,omitempty"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	ChargeID        string          `json:"charge_id,omitempty"`
	LocalAmount     decimal.Decimal `json:"local_amount"`
	RemoteAmount    decimal.Decimal `json:"remote_amount"`
	LocalStatus     PaymentStatus   `json:"local_status,omitempty"`
	RemoteStatus    string          `json:"remote_status,omitempty"`
	Description     string          `json:"description"`
}

type ReconciliationReport struct {
	ID               string        `json:"id"`
	Date             time.Time     `json:"date"`
	LocalCount       int           `json:"local_count"`
	RemoteCount      int           `json:"remote_count"`
	Discrepancies    []Discrepancy `json:"discrepancies"`
	HasDiscrepancies bool          `json:"has_discrepancies"`
	RanAt            time.Time     `json:"ran_at"`
}
