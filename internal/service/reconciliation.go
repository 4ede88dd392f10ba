package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/gateway"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type reconciliationService struct {
	paymentRepo repository.PaymentRepository
	gateway     gateway.Gateway
	now         func() time.Time
}

func NewReconciliationService(paymentRepo repository.PaymentRepository, gw gateway.Gateway) ReconciliationService {
	return &reconciliationService{
		paymentRepo: paymentRepo,
		gateway:     gw,
		now:         time.Now,
	}
}

// RunDailyReconciliation compares the local payment ledger against the
// gateway's charges for one calendar day. Any fetch failure aborts the run;
// a partial report is worse than no report.
func (s *reconciliationService) RunDailyReconciliation(ctx context.Context, date time.Time) (*domain.ReconciliationReport, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	local, err := s.paymentRepo.ListByDateRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, &ReconciliationError{Date: dayStart, Err: fmt.Errorf("fetching local payments: %w", err)}
	}

	remote, err := s.gateway.ListCharges(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, &ReconciliationError{Date: dayStart, Err: fmt.Errorf("fetching gateway charges: %w", err)}
	}

	discrepancies := ComparePayments(local, remote)

	report := &domain.ReconciliationReport{
		ID:               uuid.New().String(),
		Date:             dayStart,
		LocalCount:       len(local),
		RemoteCount:      len(remote),
		Discrepancies:    discrepancies,
		HasDiscrepancies: len(discrepancies) > 0,
		RanAt:            s.now(),
	}

	logger.Info("Daily reconciliation completed",
		"date", dayStart.Format("2006-01-02"),
		"local_count", report.LocalCount,
		"remote_count", report.RemoteCount,
		"discrepancies", len(discrepancies))
	return report, nil
}

// ComparePayments indexes both ledgers by payment-intent id and classifies
// every mismatch. Local payments without a gateway identifier never touched
// the gateway and are excluded from comparison entirely.
func ComparePayments(local []domain.Payment, remote []domain.GatewayCharge) []domain.Discrepancy {
	remoteByIntent := make(map[string]domain.GatewayCharge, len(remote))
	for _, ch := range remote {
		remoteByIntent[ch.PaymentIntentID] = ch
	}

	var discrepancies []domain.Discrepancy
	matchedIntents := make(map[string]struct{})

	for _, p := range local {
		if p.PaymentIntentID == "" {
			continue
		}

		ch, ok := remoteByIntent[p.PaymentIntentID]
		if !ok {
			discrepancies = append(discrepancies, domain.Discrepancy{
				ID:              uuid.New().String(),
				Type:            domain.DiscrepancyMissingInStripe,
				PaymentID:       p.ID,
				PaymentIntentID: p.PaymentIntentID,
				LocalAmount:     p.Amount,
				LocalStatus:     p.Status,
				Description:     fmt.Sprintf("payment %d (%s) has no matching gateway charge", p.ID, p.PaymentIntentID),
			})
			continue
		}
		matchedIntents[p.PaymentIntentID] = struct{}{}

		if !p.Amount.Equal(ch.Amount) {
			discrepancies = append(discrepancies, domain.Discrepancy{
				ID:              uuid.New().String(),
				Type:            domain.DiscrepancyAmountMismatch,
				PaymentID:       p.ID,
				PaymentIntentID: p.PaymentIntentID,
				ChargeID:        ch.ChargeID,
				LocalAmount:     p.Amount,
				RemoteAmount:    ch.Amount,
				LocalStatus:     p.Status,
				RemoteStatus:    ch.Status,
				Description:     fmt.Sprintf("payment %d amount %s differs from gateway amount %s", p.ID, p.Amount, ch.Amount),
			})
		}

		if normalizeGatewayStatus(ch) != p.Status {
			discrepancies = append(discrepancies, domain.Discrepancy{
				ID:              uuid.New().String(),
				Type:            domain.DiscrepancyStatusMismatch,
				PaymentID:       p.ID,
				PaymentIntentID: p.PaymentIntentID,
				ChargeID:        ch.ChargeID,
				LocalAmount:     p.Amount,
				RemoteAmount:    ch.Amount,
				LocalStatus:     p.Status,
				RemoteStatus:    ch.Status,
				Description:     fmt.Sprintf("payment %d status %s differs from gateway status %s", p.ID, p.Status, ch.Status),
			})
		}
	}

	for _, ch := range remote {
		if _, ok := matchedIntents[ch.PaymentIntentID]; ok {
			continue
		}
		discrepancies = append(discrepancies, domain.Discrepancy{
			ID:              uuid.New().String(),
			Type:            domain.DiscrepancyMissingInDatabase,
			PaymentIntentID: ch.PaymentIntentID,
			ChargeID:        ch.ChargeID,
			RemoteAmount:    ch.Amount,
			RemoteStatus:    ch.Status,
			Description:     fmt.Sprintf("gateway charge %s (%s) has no matching payment record", ch.ChargeID, ch.PaymentIntentID),
		})
	}

	return discrepancies
}

// normalizeGatewayStatus maps the gateway's status vocabulary onto the local
// one before comparison. A refunded charge reports REFUNDED regardless of
// its underlying status.
func normalizeGatewayStatus(ch domain.GatewayCharge) domain.PaymentStatus {
	if ch.Refunded {
		return domain.PaymentStatusRefunded
	}
	switch ch.Status {
	case "succeeded":
		return domain.PaymentStatusCaptured
	case "pending":
		return domain.PaymentStatusPending
	case "failed", "canceled":
		return domain.PaymentStatusFailed
	default:
		return domain.PaymentStatus(ch.Status)
	}
}
