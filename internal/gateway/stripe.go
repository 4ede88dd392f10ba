package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
	"github.com/stripe/stripe-go/v72/webhook"

	"carrental-backend/internal/domain"
)

const listPageSize = 100

// StripeGateway lists charges from the Stripe API.
type StripeGateway struct {
	currencyDecimals map[string]int
}

// NewStripeGateway configures the package-level Stripe client and returns
// the gateway. currencyDecimals maps currency codes to their minor-unit
// count; unlisted currencies default to 2.
func NewStripeGateway(apiKey string, currencyDecimals map[string]int) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{currencyDecimals: currencyDecimals}
}

// ListCharges pages through all charges created in [from, to).
func (g *StripeGateway) ListCharges(ctx context.Context, from, to time.Time) ([]domain.GatewayCharge, error) {
	params := &stripe.ChargeListParams{
		CreatedRange: &stripe.RangeQueryParams{
			GreaterThanOrEqual: from.Unix(),
			LesserThan:         to.Unix(),
		},
	}
	params.Context = ctx
	params.Limit = stripe.Int64(listPageSize)

	var charges []domain.GatewayCharge
	iter := charge.List(params)
	for iter.Next() {
		ch := iter.Charge()
		charges = append(charges, g.chargeToDomain(ch))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list stripe charges: %w", err)
	}

	return charges, nil
}

func (g *StripeGateway) chargeToDomain(ch *stripe.Charge) domain.GatewayCharge {
	gc := domain.GatewayCharge{
		ChargeID: ch.ID,
		// Stripe reports amounts in the currency's minor units, so a
		// zero-decimal currency like JPY arrives in whole units.
		Amount:    decimal.New(ch.Amount, -int32(g.minorUnits(string(ch.Currency)))),
		Currency:  string(ch.Currency),
		Status:    string(ch.Status),
		Refunded:  ch.Refunded,
		CreatedAt: time.Unix(ch.Created, 0).UTC(),
	}
	if ch.PaymentIntent != nil {
		gc.PaymentIntentID = ch.PaymentIntent.ID
	}
	return gc
}

// minorUnits returns the configured decimal-place count for a currency,
// defaulting to 2. Stripe sends currency codes in lower case.
func (g *StripeGateway) minorUnits(code string) int {
	if places, ok := g.currencyDecimals[strings.ToUpper(code)]; ok {
		return places
	}
	return 2
}

// VerifyWebhookSignature checks the Stripe-Signature header against the
// endpoint secret and returns the parsed event.
func VerifyWebhookSignature(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, secret)
}
