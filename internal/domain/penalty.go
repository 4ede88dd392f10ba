package domain

import "github.com/shopspring/decimal"

// PenaltyResult is the outcome of a late-return penalty calculation.
// It is derived on demand and never persisted as-is.
type PenaltyResult struct {
	RentalID    int32            `json:"rental_id"`
	Amount      decimal.Decimal  `json:"amount"`
	DailyRate   decimal.Decimal  `json:"daily_rate"`
	Currency    string           `json:"currency"`
	LateHours   int              `json:"late_hours"`
	LateDays    int              `json:"late_days"`
	Status      LateReturnStatus `json:"status"`
	Breakdown   string           `json:"breakdown"`
	CappedAtMax bool             `json:"capped_at_max"`
}
