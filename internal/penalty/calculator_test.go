package penalty

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
)

func testConfig() Config {
	return Config{
		GracePeriodMinutes:         60,
		SeverelyLateThresholdHours: 72,
		HourlyRateFraction:         decimal.NewFromFloat(0.1),
		DailyRateMultiplier:        decimal.NewFromFloat(1.5),
		MaxPenaltyMultiple:         decimal.NewFromFloat(5.0),
	}
}

func testWindow() domain.RentalWindow {
	return domain.RentalWindow{
		RentalID:     1,
		ScheduledEnd: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		DailyRate:    decimal.NewFromInt(100),
		Currency:     "USD",
	}
}

func TestLateStatus(t *testing.T) {
	calc := New(testConfig())
	w := testWindow()

	tests := []struct {
		name     string
		now      time.Time
		expected domain.LateReturnStatus
	}{
		{"Before end of day", time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC), domain.LateStatusOnTime},
		{"Exactly at end of day", time.Date(2025, 6, 10, 23, 59, 59, 999999999, time.UTC), domain.LateStatusOnTime},
		{"Days before end", time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC), domain.LateStatusOnTime},
		{"Within grace period", time.Date(2025, 6, 11, 0, 30, 0, 0, time.UTC), domain.LateStatusGracePeriod},
		{"Exactly at grace boundary", time.Date(2025, 6, 11, 0, 59, 59, 999999999, time.UTC), domain.LateStatusGracePeriod},
		{"Just past grace period", time.Date(2025, 6, 11, 1, 5, 0, 0, time.UTC), domain.LateStatusLate},
		{"A day late", time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC), domain.LateStatusLate},
		{"Severely late", time.Date(2025, 6, 14, 2, 0, 0, 0, time.UTC), domain.LateStatusSeverelyLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := calc.LateStatus(w, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}

	t.Run("Missing end date fails fast", func(t *testing.T) {
		_, err := calc.LateStatus(domain.RentalWindow{RentalID: 2}, time.Now())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no scheduled end date")
	})
}

func TestLateHours(t *testing.T) {
	calc := New(testConfig())
	w := testWindow()

	t.Run("Zero before end of day", func(t *testing.T) {
		hours, err := calc.LateHours(w, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 0, hours)
	})

	t.Run("Zero inside grace period", func(t *testing.T) {
		hours, err := calc.LateHours(w, time.Date(2025, 6, 11, 0, 45, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 0, hours)
	})

	t.Run("Grace period never counts as late hours", func(t *testing.T) {
		// 90 minutes past end of day, 60 of which are grace
		hours, err := calc.LateHours(w, time.Date(2025, 6, 11, 1, 30, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 1, hours)
	})

	t.Run("Partial hours round up", func(t *testing.T) {
		// 3h05m past grace
		hours, err := calc.LateHours(w, time.Date(2025, 6, 11, 4, 5, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 4, hours)
	})

	t.Run("Monotonically non-decreasing", func(t *testing.T) {
		prev := 0
		now := time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)
		for i := 0; i < 100; i++ {
			now = now.Add(37 * time.Minute)
			hours, err := calc.LateHours(w, now)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, hours, prev)
			prev = hours
		}
	})
}

func TestLateDays(t *testing.T) {
	calc := New(testConfig())
	w := testWindow()

	t.Run("Matches ceil of late hours over 24", func(t *testing.T) {
		now := time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)
		for i := 0; i < 120; i++ {
			now = now.Add(53 * time.Minute)
			hours, err := calc.LateHours(w, now)
			require.NoError(t, err)
			days, err := calc.LateDays(w, now)
			require.NoError(t, err)
			assert.Equal(t, (hours+23)/24, days)
		}
	})
}

func TestSeverelyLateExample(t *testing.T) {
	// Rental ends 2025-06-10, grace 60 min, severe threshold 72h. Roughly
	// three days later the rental crosses 72 late hours and becomes
	// severely late.
	calc := New(testConfig())
	w := testWindow()
	now := time.Date(2025, 6, 14, 0, 59, 30, 0, time.UTC)

	hours, err := calc.LateHours(w, now)
	require.NoError(t, err)
	assert.Equal(t, 72, hours)

	status, err := calc.LateStatus(w, now)
	require.NoError(t, err)
	assert.Equal(t, domain.LateStatusSeverelyLate, status)
}

func TestCalculate(t *testing.T) {
	calc := New(testConfig())
	w := testWindow()

	t.Run("No penalty within grace", func(t *testing.T) {
		result, err := calc.Calculate(w, time.Date(2025, 6, 11, 0, 30, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, result.Amount.IsZero())
		assert.Equal(t, domain.LateStatusGracePeriod, result.Status)
		assert.False(t, result.CappedAtMax)
	})

	t.Run("Hourly tier", func(t *testing.T) {
		// 5 late hours at 100 × 0.1 = 50.00
		result, err := calc.Calculate(w, time.Date(2025, 6, 11, 6, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 5, result.LateHours)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(50)), "got %s", result.Amount)
		assert.Contains(t, result.Breakdown, "hourly tier")
		assert.False(t, result.CappedAtMax)
	})

	t.Run("Daily tier past 24 hours", func(t *testing.T) {
		// 26 late hours → 2 late days at 100 × 1.5 = 300.00
		result, err := calc.Calculate(w, time.Date(2025, 6, 12, 3, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 26, result.LateHours)
		assert.Equal(t, 2, result.LateDays)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(300)), "got %s", result.Amount)
		assert.Contains(t, result.Breakdown, "daily tier")
	})

	t.Run("Penalty capped at max multiple", func(t *testing.T) {
		// 11 late days at 150/day = 1650, capped at 5 × 100 = 500
		result, err := calc.Calculate(w, time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(500)), "got %s", result.Amount)
		assert.True(t, result.CappedAtMax)
		assert.Contains(t, result.Breakdown, "capped")
	})

	t.Run("On-time rental has zero penalty", func(t *testing.T) {
		result, err := calc.Calculate(w, time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, result.Amount.IsZero())
		assert.Equal(t, 0, result.LateHours)
		assert.Equal(t, domain.LateStatusOnTime, result.Status)
	})

	t.Run("Non-positive daily rate fails fast", func(t *testing.T) {
		bad := testWindow()
		bad.DailyRate = decimal.Zero
		_, err := calc.Calculate(bad, time.Now())
		assert.Error(t, err)
	})
}

func TestCustomFormulas(t *testing.T) {
	flatHourly := func(dailyRate decimal.Decimal, lateHours int) decimal.Decimal {
		return decimal.NewFromInt(int64(lateHours) * 7)
	}
	flatDaily := func(dailyRate decimal.Decimal, lateDays int) decimal.Decimal {
		return decimal.NewFromInt(int64(lateDays) * 80)
	}

	calc := NewWithFormulas(testConfig(), flatHourly, flatDaily)
	w := testWindow()

	result, err := calc.Calculate(w, time.Date(2025, 6, 11, 4, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, result.LateHours)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(21)), "got %s", result.Amount)
}
