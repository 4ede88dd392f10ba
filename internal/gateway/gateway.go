package gateway

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

// Gateway is the payment-gateway collaborator: a paged listing of remote
// charge records for a date window.
type Gateway interface {
	ListCharges(ctx context.Context, from, to time.Time) ([]domain.GatewayCharge, error)
}
