package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
)

// Strategy is one pricing rule. Calculate inspects the request context and
// returns a multiplicative modifier; implementations must return a
// multiplier > 0.
type Strategy interface {
	Name() string
	Calculate(ctx domain.PricingContext) domain.PriceModifier
}

func neutral(name string) domain.PriceModifier {
	return domain.PriceModifier{
		Strategy:    name,
		Multiplier:  decimal.NewFromInt(1),
		Description: "no adjustment",
	}
}

// SeasonalStrategy applies a surcharge during peak travel months.
type SeasonalStrategy struct {
	PeakMonths     []time.Month
	PeakMultiplier decimal.Decimal
}

func NewSeasonalStrategy() *SeasonalStrategy {
	return &SeasonalStrategy{
		PeakMonths:     []time.Month{time.June, time.July, time.August, time.December},
		PeakMultiplier: decimal.NewFromFloat(1.2),
	}
}

func (s *SeasonalStrategy) Name() string { return "seasonal" }

func (s *SeasonalStrategy) Calculate(ctx domain.PricingContext) domain.PriceModifier {
	for _, m := range s.PeakMonths {
		if ctx.StartDate.Month() == m {
			return domain.PriceModifier{
				Strategy:    s.Name(),
				Multiplier:  s.PeakMultiplier,
				Description: fmt.Sprintf("peak season surcharge (%s)", ctx.StartDate.Month()),
			}
		}
	}
	return neutral(s.Name())
}

// LeadTimeStrategy discounts early bookings and surcharges last-minute ones.
type LeadTimeStrategy struct {
	EarlyBirdDays        int
	EarlyBirdMultiplier  decimal.Decimal
	LastMinuteDays       int
	LastMinuteMultiplier decimal.Decimal
}

func NewLeadTimeStrategy() *LeadTimeStrategy {
	return &LeadTimeStrategy{
		EarlyBirdDays:        30,
		EarlyBirdMultiplier:  decimal.NewFromFloat(0.9),
		LastMinuteDays:       3,
		LastMinuteMultiplier: decimal.NewFromFloat(1.15),
	}
}

func (s *LeadTimeStrategy) Name() string { return "lead_time" }

func (s *LeadTimeStrategy) Calculate(ctx domain.PricingContext) domain.PriceModifier {
	if ctx.LeadTimeDays >= s.EarlyBirdDays {
		return domain.PriceModifier{
			Strategy:    s.Name(),
			Multiplier:  s.EarlyBirdMultiplier,
			Description: fmt.Sprintf("early-bird discount (booked %d days ahead)", ctx.LeadTimeDays),
			IsDiscount:  true,
		}
	}
	if ctx.LeadTimeDays < s.LastMinuteDays {
		return domain.PriceModifier{
			Strategy:    s.Name(),
			Multiplier:  s.LastMinuteMultiplier,
			Description: fmt.Sprintf("last-minute surcharge (booked %d days ahead)", ctx.LeadTimeDays),
		}
	}
	return neutral(s.Name())
}

// DurationStrategy discounts long rentals.
type DurationStrategy struct {
	WeeklyDays        int
	WeeklyMultiplier  decimal.Decimal
	MonthlyDays       int
	MonthlyMultiplier decimal.Decimal
}

func NewDurationStrategy() *DurationStrategy {
	return &DurationStrategy{
		WeeklyDays:        7,
		WeeklyMultiplier:  decimal.NewFromFloat(0.95),
		MonthlyDays:       28,
		MonthlyMultiplier: decimal.NewFromFloat(0.85),
	}
}

func (s *DurationStrategy) Name() string { return "duration" }

func (s *DurationStrategy) Calculate(ctx domain.PricingContext) domain.PriceModifier {
	if ctx.RentalDays >= s.MonthlyDays {
		return domain.PriceModifier{
			Strategy:    s.Name(),
			Multiplier:  s.MonthlyMultiplier,
			Description: fmt.Sprintf("monthly rental discount (%d days)", ctx.RentalDays),
			IsDiscount:  true,
		}
	}
	if ctx.RentalDays >= s.WeeklyDays {
		return domain.PriceModifier{
			Strategy:    s.Name(),
			Multiplier:  s.WeeklyMultiplier,
			Description: fmt.Sprintf("weekly rental discount (%d days)", ctx.RentalDays),
			IsDiscount:  true,
		}
	}
	return neutral(s.Name())
}

// CategoryDemandStrategy surcharges body types in consistently high demand.
type CategoryDemandStrategy struct {
	Multipliers map[domain.CarCategory]decimal.Decimal
}

func NewCategoryDemandStrategy() *CategoryDemandStrategy {
	return &CategoryDemandStrategy{
		Multipliers: map[domain.CarCategory]decimal.Decimal{
			domain.CarCategorySUV:    decimal.NewFromFloat(1.1),
			domain.CarCategoryLuxury: decimal.NewFromFloat(1.25),
		},
	}
}

func (s *CategoryDemandStrategy) Name() string { return "category_demand" }

func (s *CategoryDemandStrategy) Calculate(ctx domain.PricingContext) domain.PriceModifier {
	if m, ok := s.Multipliers[ctx.Category]; ok {
		return domain.PriceModifier{
			Strategy:    s.Name(),
			Multiplier:  m,
			Description: fmt.Sprintf("high-demand category surcharge (%s)", ctx.Category),
		}
	}
	return neutral(s.Name())
}
