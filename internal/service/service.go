package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
)

var (
	ErrCarNotFound    = errors.New("car not found")
	ErrRentalNotFound = errors.New("rental not found")
)

// ReconciliationError wraps any failure during a reconciliation run with the
// target date, so callers know which day produced no report.
type ReconciliationError struct {
	Date time.Time
	Err  error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation for %s failed: %v", e.Date.Format("2006-01-02"), e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

type PricingService interface {
	CalculatePrice(ctx context.Context, carID int32, startDate, endDate, bookingDate time.Time) (*domain.PricingResult, error)
	PreviewPrice(ctx context.Context, carID int32, startDate, endDate time.Time) (*domain.PricingResult, error)
	CalculatePriceIn(ctx context.Context, carID int32, startDate, endDate, bookingDate time.Time, displayCurrency string) (*domain.PricingResult, error)
}

// DetectionSummary reports one late-return detection sweep.
type DetectionSummary struct {
	Scanned int
	Updated int
	Failed  int
}

type LateReturnService interface {
	DetectLateReturns(ctx context.Context) (DetectionSummary, error)
}

type ReconciliationService interface {
	RunDailyReconciliation(ctx context.Context, date time.Time) (*domain.ReconciliationReport, error)
}

type WebhookService interface {
	IsEventAlreadyProcessed(ctx context.Context, eventID string) (bool, error)
	ProcessEvent(ctx context.Context, eventID, eventType string, payload []byte) error
}
