package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/config"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

// ErrRateUnavailable means neither the live source nor the fallback table
// could supply the requested currency pair.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

const crossRateBase = "USD"

// Converter converts amounts between currencies using cached live rate
// tables with static fallback data when the upstream source is unreachable.
type Converter struct {
	source   RateSource
	cache    *rateCache
	fallback domain.RateTable
	decimals map[string]int
}

// NewConverter builds a converter. The configured fallback table is USD-based;
// cross-rate derivation makes it serve any currency pair.
func NewConverter(source RateSource, cfg config.CurrencyConfig) *Converter {
	fallbackRates := make(map[string]decimal.Decimal, len(cfg.FallbackRates))
	for code, rate := range cfg.FallbackRates {
		fallbackRates[code] = decimal.NewFromFloat(rate)
	}

	return &Converter{
		source: source,
		cache:  newRateCache(time.Duration(cfg.CacheTTLMinutes) * time.Minute),
		fallback: domain.RateTable{
			Base:       crossRateBase,
			Rates:      fallbackRates,
			Provenance: domain.RateProvenanceFallback,
		},
		decimals: cfg.CurrencyDecimals,
	}
}

// Convert converts amount from one currency to another. Same-currency
// conversions short-circuit with rate 1 and never touch the rate source.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (domain.ConversionResult, error) {
	if from == to {
		return domain.ConversionResult{
			Amount:    amount,
			Converted: amount,
			Rate: domain.ExchangeRate{
				From:       from,
				To:         to,
				Rate:       decimal.NewFromInt(1),
				Timestamp:  time.Now(),
				Provenance: domain.RateProvenanceLive,
			},
		}, nil
	}

	rate, err := c.GetRate(ctx, from, to)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	converted := amount.Mul(rate.Rate).Round(int32(c.decimalPlaces(to)))
	return domain.ConversionResult{
		Amount:    amount,
		Converted: converted,
		Rate:      rate,
	}, nil
}

// GetRate returns the exchange rate between two currencies, deriving a cross
// rate via the USD table when the pair is not published directly.
func (c *Converter) GetRate(ctx context.Context, from, to string) (domain.ExchangeRate, error) {
	if from == to {
		return domain.ExchangeRate{
			From:       from,
			To:         to,
			Rate:       decimal.NewFromInt(1),
			Timestamp:  time.Now(),
			Provenance: domain.RateProvenanceLive,
		}, nil
	}

	// A missing or unavailable base table falls through to cross-rate
	// derivation, which only needs the USD table.
	if table, err := c.ratesFor(ctx, from); err == nil {
		if rate, ok := table.Rates[to]; ok {
			return domain.ExchangeRate{
				From:       from,
				To:         to,
				Rate:       rate,
				Timestamp:  table.FetchedAt,
				Provenance: table.Provenance,
			}, nil
		}
	}

	return c.crossRate(ctx, from, to)
}

// crossRate derives from→to through the USD table: (to/USD) ÷ (from/USD),
// rounded to 6 decimal places. This handles any currency pair without every
// pairwise rate being published.
func (c *Converter) crossRate(ctx context.Context, from, to string) (domain.ExchangeRate, error) {
	usdTable, err := c.ratesFor(ctx, crossRateBase)
	if err != nil {
		return domain.ExchangeRate{}, err
	}

	toUSD, okTo := usdTable.Rates[to]
	fromUSD, okFrom := usdTable.Rates[from]
	if !okTo || !okFrom || fromUSD.IsZero() {
		return domain.ExchangeRate{}, fmt.Errorf("%w: no %s rate for %s/%s", ErrRateUnavailable, crossRateBase, from, to)
	}

	rate := toUSD.Div(fromUSD).Round(6)
	return domain.ExchangeRate{
		From:       from,
		To:         to,
		Rate:       rate,
		Timestamp:  usdTable.FetchedAt,
		Provenance: usdTable.Provenance,
	}, nil
}

// ratesFor returns the rate table for a base currency, consulting cache,
// live source and fallback in that order.
func (c *Converter) ratesFor(ctx context.Context, base string) (domain.RateTable, error) {
	if table, ok := c.cache.get(base); ok {
		return table, nil
	}

	table, err := c.source.FetchRates(ctx, base)
	if err != nil {
		logger.Warn("Rate source unavailable, using fallback table", "base", base, "error", err)
		return c.fallbackFor(base)
	}

	c.cache.put(table)
	return table, nil
}

// fallbackFor serves the configured fallback table. Only the USD base table
// is configured; other bases resolve through cross rates.
func (c *Converter) fallbackFor(base string) (domain.RateTable, error) {
	if base != c.fallback.Base {
		return domain.RateTable{}, fmt.Errorf("%w: no fallback table for base %s", ErrRateUnavailable, base)
	}
	table := c.fallback
	table.FetchedAt = time.Now()
	return table, nil
}

// RefreshRates evicts all cached tables and eagerly re-fetches the USD base
// table. After a refresh every lookup sees fresh data.
func (c *Converter) RefreshRates(ctx context.Context) error {
	c.cache.evictAll()

	table, err := c.source.FetchRates(ctx, crossRateBase)
	if err != nil {
		return fmt.Errorf("failed to refresh %s rates: %w", crossRateBase, err)
	}
	c.cache.put(table)

	logger.Info("Exchange rates refreshed", "base", crossRateBase, "currencies", len(table.Rates))
	return nil
}

// decimalPlaces returns the configured minor-unit count for a currency,
// defaulting to 2.
func (c *Converter) decimalPlaces(code string) int {
	if places, ok := c.decimals[code]; ok {
		return places
	}
	return 2
}
