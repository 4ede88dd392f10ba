package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateProvenance records whether an exchange rate came from the live
// upstream source or the static fallback table.
type RateProvenance string

const (
	RateProvenanceLive     RateProvenance = "LIVE"
	RateProvenanceFallback RateProvenance = "FALLBACK"
)

type ExchangeRate struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	Rate       decimal.Decimal `json:"rate"`
	Timestamp  time.Time       `json:"timestamp"`
	Provenance RateProvenance  `json:"provenance"`
}

// RateTable holds all published rates for a single base currency.
type RateTable struct {
	Base       string                     `json:"base"`
	Rates      map[string]decimal.Decimal `json:"rates"`
	FetchedAt  time.Time                  `json:"fetched_at"`
	Provenance RateProvenance             `json:"provenance"`
}

type ConversionResult struct {
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
	Rate      ExchangeRate    `json:"rate"`
}
