package penalty

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
)

// Crossover from hourly to daily penalty accrual, in late hours.
const hourlyTierMaxHours = 24

// HourlyFormula computes the penalty for a rental still inside the hourly
// tier, given the daily rate and the number of late hours.
type HourlyFormula func(dailyRate decimal.Decimal, lateHours int) decimal.Decimal

// DailyFormula computes the penalty for a rental past the hourly tier, given
// the daily rate and the number of late days.
type DailyFormula func(dailyRate decimal.Decimal, lateDays int) decimal.Decimal

// Config contains the externally supplied penalty thresholds. The tier
// formulas and cap multiple have no meaningful zero values, so callers load
// them from validated configuration.
type Config struct {
	GracePeriodMinutes         int
	SeverelyLateThresholdHours int
	HourlyRateFraction         decimal.Decimal
	DailyRateMultiplier        decimal.Decimal
	MaxPenaltyMultiple         decimal.Decimal
}

// Calculator derives late-return status and penalty amounts from a rental
// window and a reference instant. All methods are pure.
type Calculator struct {
	cfg    Config
	hourly HourlyFormula
	daily  DailyFormula
}

// New creates a calculator with the default tier formulas: the hourly tier
// charges dailyRate × hourlyRateFraction per late hour, the daily tier
// charges dailyRate × dailyRateMultiplier per late day.
func New(cfg Config) *Calculator {
	return &Calculator{
		cfg: cfg,
		hourly: func(dailyRate decimal.Decimal, lateHours int) decimal.Decimal {
			return dailyRate.Mul(cfg.HourlyRateFraction).Mul(decimal.NewFromInt(int64(lateHours)))
		},
		daily: func(dailyRate decimal.Decimal, lateDays int) decimal.Decimal {
			return dailyRate.Mul(cfg.DailyRateMultiplier).Mul(decimal.NewFromInt(int64(lateDays)))
		},
	}
}

// NewWithFormulas creates a calculator with caller-supplied tier formulas.
func NewWithFormulas(cfg Config, hourly HourlyFormula, daily DailyFormula) *Calculator {
	return &Calculator{cfg: cfg, hourly: hourly, daily: daily}
}

// endOfDay interprets the scheduled end date as 23:59:59.999999999.
func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999999, d.Location())
}

func (c *Calculator) minutesLate(w domain.RentalWindow, now time.Time) int {
	eod := endOfDay(w.ScheduledEnd)
	if !now.After(eod) {
		return 0
	}
	return int(now.Sub(eod).Minutes())
}

// LateStatus classifies how overdue the rental is at the reference instant.
// Returning exactly at the grace-period boundary is still GRACE_PERIOD.
func (c *Calculator) LateStatus(w domain.RentalWindow, now time.Time) (domain.LateReturnStatus, error) {
	if w.ScheduledEnd.IsZero() {
		return "", fmt.Errorf("rental %d has no scheduled end date", w.RentalID)
	}

	minsLate := c.minutesLate(w, now)
	if minsLate == 0 && !now.After(endOfDay(w.ScheduledEnd)) {
		return domain.LateStatusOnTime, nil
	}
	if minsLate <= c.cfg.GracePeriodMinutes {
		return domain.LateStatusGracePeriod, nil
	}

	lateHours, err := c.LateHours(w, now)
	if err != nil {
		return "", err
	}
	if lateHours >= c.cfg.SeverelyLateThresholdHours {
		return domain.LateStatusSeverelyLate, nil
	}
	return domain.LateStatusLate, nil
}

// LateHours counts hours elapsed beyond the grace period, rounded up.
// The grace period itself never counts as late hours.
func (c *Calculator) LateHours(w domain.RentalWindow, now time.Time) (int, error) {
	if w.ScheduledEnd.IsZero() {
		return 0, fmt.Errorf("rental %d has no scheduled end date", w.RentalID)
	}

	minsLate := c.minutesLate(w, now)
	minsAfterGrace := minsLate - c.cfg.GracePeriodMinutes
	if minsAfterGrace <= 0 {
		return 0, nil
	}
	return (minsAfterGrace + 59) / 60, nil
}

// LateDays is LateHours rounded up to whole days.
func (c *Calculator) LateDays(w domain.RentalWindow, now time.Time) (int, error) {
	hours, err := c.LateHours(w, now)
	if err != nil {
		return 0, err
	}
	return (hours + 23) / 24, nil
}

// Calculate produces the full penalty result for a rental at the reference
// instant. The raw penalty uses the hourly formula for the first
// hourlyTierMaxHours late hours and the daily formula beyond that, then is
// capped at MaxPenaltyMultiple × dailyRate.
func (c *Calculator) Calculate(w domain.RentalWindow, now time.Time) (domain.PenaltyResult, error) {
	if w.ScheduledEnd.IsZero() {
		return domain.PenaltyResult{}, fmt.Errorf("rental %d has no scheduled end date", w.RentalID)
	}
	if !w.DailyRate.IsPositive() {
		return domain.PenaltyResult{}, fmt.Errorf("rental %d has non-positive daily rate %s", w.RentalID, w.DailyRate)
	}

	status, err := c.LateStatus(w, now)
	if err != nil {
		return domain.PenaltyResult{}, err
	}
	lateHours, err := c.LateHours(w, now)
	if err != nil {
		return domain.PenaltyResult{}, err
	}
	lateDays, err := c.LateDays(w, now)
	if err != nil {
		return domain.PenaltyResult{}, err
	}

	result := domain.PenaltyResult{
		RentalID:  w.RentalID,
		DailyRate: w.DailyRate,
		Currency:  w.Currency,
		LateHours: lateHours,
		LateDays:  lateDays,
		Status:    status,
	}

	if lateHours == 0 {
		result.Amount = decimal.Zero
		result.Breakdown = "no penalty: returned within grace period"
		return result, nil
	}

	var raw decimal.Decimal
	var breakdown string
	if lateHours <= hourlyTierMaxHours {
		raw = c.hourly(w.DailyRate, lateHours)
		breakdown = fmt.Sprintf("hourly tier: %d late hour(s) at %s/hour = %s %s",
			lateHours,
			w.DailyRate.Mul(c.cfg.HourlyRateFraction).Round(2),
			raw.Round(2), w.Currency)
	} else {
		raw = c.daily(w.DailyRate, lateDays)
		breakdown = fmt.Sprintf("daily tier: %d late day(s) at %s/day = %s %s",
			lateDays,
			w.DailyRate.Mul(c.cfg.DailyRateMultiplier).Round(2),
			raw.Round(2), w.Currency)
	}

	amount, capped := c.applyPenaltyCap(raw, w.DailyRate)
	if capped {
		breakdown += fmt.Sprintf("; capped at %s × daily rate = %s %s",
			c.cfg.MaxPenaltyMultiple, amount, w.Currency)
	}

	result.Amount = amount
	result.Breakdown = breakdown
	result.CappedAtMax = capped
	return result, nil
}

// applyPenaltyCap limits the raw penalty to MaxPenaltyMultiple × dailyRate.
func (c *Calculator) applyPenaltyCap(raw, dailyRate decimal.Decimal) (decimal.Decimal, bool) {
	max := dailyRate.Mul(c.cfg.MaxPenaltyMultiple).Round(2)
	rounded := raw.Round(2)
	if rounded.GreaterThan(max) {
		return max, true
	}
	return rounded, false
}
