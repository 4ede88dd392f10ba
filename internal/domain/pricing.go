package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingContext carries everything a pricing strategy may look at.
// Constructed fresh per pricing request.
type PricingContext struct {
	CarID        int32
	Category     CarCategory
	BasePrice    decimal.Decimal
	Currency     string
	StartDate    time.Time
	EndDate      time.Time
	BookingDate  time.Time
	RentalDays   int
	LeadTimeDays int
}

// PriceModifier is the output of a single pricing strategy. Multiplier must
// be > 0; strategies compose by multiplication, never addition.
type PriceModifier struct {
	Strategy    string          `json:"strategy"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	Description string          `json:"description"`
	IsDiscount  bool            `json:"is_discount"`
}

type PricingResult struct {
	CarID              int32           `json:"car_id"`
	BasePrice          decimal.Decimal `json:"base_price"`
	Currency           string          `json:"currency"`
	RentalDays         int             `json:"rental_days"`
	Modifiers          []PriceModifier `json:"modifiers"`
	CombinedMultiplier decimal.Decimal `json:"combined_multiplier"`
	FinalPrice         decimal.Decimal `json:"final_price"`
}
