package pricing

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/config"
	"carrental-backend/internal/domain"
)

// registeredStrategy pairs a strategy with its configured run order.
type registeredStrategy struct {
	strategy Strategy
	order    int
}

// Engine composes the enabled pricing strategies into a single price.
// Composition is pure multiplication, so strategy order only affects the
// reported modifier sequence, never the numeric result.
type Engine struct {
	strategies    []registeredStrategy
	minDailyPrice decimal.Decimal
	maxDailyPrice decimal.Decimal
}

// NewEngine builds an engine from the full strategy set and the pricing
// configuration. Strategies absent from the config or flagged disabled are
// not registered at all.
func NewEngine(cfg config.PricingConfig, available []Strategy) *Engine {
	e := &Engine{
		minDailyPrice: decimal.NewFromFloat(cfg.MinDailyPrice),
		maxDailyPrice: decimal.NewFromFloat(cfg.MaxDailyPrice),
	}

	for _, s := range available {
		sc, ok := cfg.Strategies[s.Name()]
		if !ok || !sc.Enabled {
			continue
		}
		e.strategies = append(e.strategies, registeredStrategy{strategy: s, order: sc.Order})
	}
	sort.SliceStable(e.strategies, func(i, j int) bool {
		return e.strategies[i].order < e.strategies[j].order
	})

	return e
}

// DefaultStrategies returns every strategy the engine ships with.
func DefaultStrategies() []Strategy {
	return []Strategy{
		NewSeasonalStrategy(),
		NewLeadTimeStrategy(),
		NewDurationStrategy(),
		NewCategoryDemandStrategy(),
	}
}

// BuildContext derives the per-request pricing context from the car and the
// requested dates. End date must not precede start date, and the booking
// date must not be after the start date.
func BuildContext(car *domain.Car, startDate, endDate, bookingDate time.Time) (domain.PricingContext, error) {
	if endDate.Before(startDate) {
		return domain.PricingContext{}, fmt.Errorf("end date %s is before start date %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}
	// Compare at day granularity: a booking made today for a rental starting
	// today is a valid zero-lead-time request even though the booking
	// instant is later in the day.
	leadTimeDays := daysBetween(bookingDate, startDate)
	if leadTimeDays < 0 {
		return domain.PricingContext{}, fmt.Errorf("start date %s is before booking date %s",
			startDate.Format("2006-01-02"), bookingDate.Format("2006-01-02"))
	}

	rentalDays := daysBetween(startDate, endDate) + 1

	return domain.PricingContext{
		CarID:        car.ID,
		Category:     car.Category,
		BasePrice:    car.DailyPrice,
		Currency:     car.Currency,
		StartDate:    startDate,
		EndDate:      endDate,
		BookingDate:  bookingDate,
		RentalDays:   rentalDays,
		LeadTimeDays: leadTimeDays,
	}, nil
}

// daysBetween counts whole calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// Calculate runs every registered strategy over the context, multiplies the
// modifiers together and applies the daily-price floor and ceiling.
func (e *Engine) Calculate(ctx domain.PricingContext) domain.PricingResult {
	combined := decimal.NewFromInt(1)
	var modifiers []domain.PriceModifier

	for _, rs := range e.strategies {
		mod := rs.strategy.Calculate(ctx)
		modifiers = append(modifiers, mod)
		combined = combined.Mul(mod.Multiplier)
	}

	days := decimal.NewFromInt(int64(ctx.RentalDays))
	calculated := ctx.BasePrice.Mul(days).Mul(combined).Round(2)
	final := e.applyDailyCaps(calculated, ctx.RentalDays)

	return domain.PricingResult{
		CarID:              ctx.CarID,
		BasePrice:          ctx.BasePrice,
		Currency:           ctx.Currency,
		RentalDays:         ctx.RentalDays,
		Modifiers:          modifiers,
		CombinedMultiplier: combined,
		FinalPrice:         final,
	}
}

// applyDailyCaps clamps the derived daily price into [min, max] so the caps
// scale with rental length. A zero max means no ceiling.
func (e *Engine) applyDailyCaps(total decimal.Decimal, rentalDays int) decimal.Decimal {
	days := decimal.NewFromInt(int64(rentalDays))
	dailyPrice := total.Div(days).Round(2)

	if e.minDailyPrice.IsPositive() && dailyPrice.LessThan(e.minDailyPrice) {
		return e.minDailyPrice.Mul(days).Round(2)
	}
	if e.maxDailyPrice.IsPositive() && dailyPrice.GreaterThan(e.maxDailyPrice) {
		return e.maxDailyPrice.Mul(days).Round(2)
	}
	return total
}
