package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusReserved  RentalStatus = "RESERVED"
	RentalStatusInUse     RentalStatus = "IN_USE"
	RentalStatusReturned  RentalStatus = "RETURNED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// LateReturnStatus tracks how far past its scheduled return a rental is.
// Severity is monotonically non-decreasing as late time grows.
type LateReturnStatus string

const (
	LateStatusOnTime       LateReturnStatus = "ON_TIME"
	LateStatusGracePeriod  LateReturnStatus = "GRACE_PERIOD"
	LateStatusLate         LateReturnStatus = "LATE"
	LateStatusSeverelyLate LateReturnStatus = "SEVERELY_LATE"
)

type Rental struct {
	ID        int32        `json:"id"`
	CarID     int32        `json:"car_id"`
	UserID    int32        `json:"user_id"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Status    RentalStatus `json:"status"`
	// Price snapshot fields — captured from the car at rental creation time.
	// Penalty calculations use these snapshots, not live car prices.
	DailyPrice decimal.Decimal `json:"daily_price"`
	Currency   string          `json:"currency"`
	TotalPrice decimal.Decimal `json:"total_price"`

	LateStatus     LateReturnStatus `json:"late_status"`
	LateHours      int              `json:"late_hours"`
	LateDetectedAt *time.Time       `json:"late_detected_at,omitempty"`

	Deleted   bool      `json:"deleted"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// RentalWindow is the immutable slice of a rental the penalty calculator
// operates on. ScheduledEnd carries the date only; the calculator interprets
// it as end-of-day.
type RentalWindow struct {
	RentalID     int32
	ScheduledEnd time.Time
	DailyRate    decimal.Decimal
	Currency     string
}
