package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
)

// RateSource supplies a full rate table for a base currency.
type RateSource interface {
	FetchRates(ctx context.Context, base string) (domain.RateTable, error)
}

// HTTPRateSource fetches rate tables from an exchangerate.host-style JSON
// endpoint: GET {baseURL}?base=XXX returning {"base": "...", "rates": {...}}.
type HTTPRateSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRateSource(baseURL string) *HTTPRateSource {
	return &HTTPRateSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (s *HTTPRateSource) FetchRates(ctx context.Context, base string) (domain.RateTable, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("invalid rate source url: %w", err)
	}
	q := u.Query()
	q.Set("base", base)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.RateTable{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("rate source unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.RateTable{}, fmt.Errorf("rate source returned status %d for base %s", resp.StatusCode, base)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to decode rate table: %w", err)
	}

	rates := make(map[string]decimal.Decimal, len(body.Rates))
	for code, rate := range body.Rates {
		rates[code] = decimal.NewFromFloat(rate)
	}

	return domain.RateTable{
		Base:       base,
		Rates:      rates,
		FetchedAt:  time.Now(),
		Provenance: domain.RateProvenanceLive,
	}, nil
}
