package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/repository/postgres"
)

// ErrUnknownEventType is returned for gateway event types the service has no
// handler for. The event is still tracked so redeliveries are recognized.
var ErrUnknownEventType = errors.New("unknown webhook event type")

type webhookService struct {
	eventRepo   repository.WebhookEventRepository
	paymentRepo repository.PaymentRepository
	now         func() time.Time
}

func NewWebhookService(eventRepo repository.WebhookEventRepository, paymentRepo repository.PaymentRepository) WebhookService {
	return &webhookService{
		eventRepo:   eventRepo,
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

// IsEventAlreadyProcessed reports whether an event id has been seen before.
// A redelivery of an already-processed event flips the tracked record to
// DUPLICATE; a previously failed event is allowed to retry.
func (s *webhookService) IsEventAlreadyProcessed(ctx context.Context, eventID string) (bool, error) {
	event, err := s.eventRepo.GetByEventID(ctx, eventID)
	if errors.Is(err, postgres.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch event.Status {
	case domain.WebhookStatusProcessed:
		if err := s.eventRepo.UpdateStatus(ctx, eventID, domain.WebhookStatusDuplicate, "", event.ProcessedAt); err != nil {
			return true, err
		}
		logger.Warn("Duplicate delivery of processed webhook event", "event_id", eventID)
		return true, nil
	case domain.WebhookStatusProcessing, domain.WebhookStatusDuplicate:
		return true, nil
	case domain.WebhookStatusFailed:
		return false, nil
	default:
		return false, fmt.Errorf("webhook event %s has unexpected status %s", eventID, event.Status)
	}
}

// ProcessEvent applies one gateway event exactly once. The tracking record's
// insert doubles as the test-and-set: losing the insert race means another
// delivery of the same event is already in flight.
func (s *webhookService) ProcessEvent(ctx context.Context, eventID, eventType string, payload []byte) error {
	duplicate, err := s.IsEventAlreadyProcessed(ctx, eventID)
	if err != nil {
		return err
	}
	if duplicate {
		logger.Info("Skipping duplicate webhook event", "event_id", eventID, "event_type", eventType)
		return nil
	}

	event := &domain.WebhookEvent{
		EventID:   eventID,
		EventType: eventType,
		Payload:   string(payload),
	}
	inserted, err := s.eventRepo.CreateIfAbsent(ctx, event)
	if err != nil {
		return err
	}
	if !inserted {
		// The record exists. Only a FAILED record may be reclaimed for a
		// retry; anything else means a concurrent delivery won the insert
		// race and owns the event.
		reclaimed, err := s.eventRepo.ReclaimFailed(ctx, eventID)
		if err != nil {
			return err
		}
		if !reclaimed {
			logger.Info("Skipping duplicate webhook event", "event_id", eventID, "event_type", eventType)
			return nil
		}
	}

	if err := s.applyEvent(ctx, eventType, payload); err != nil {
		if updErr := s.eventRepo.UpdateStatus(ctx, eventID, domain.WebhookStatusFailed, err.Error(), nil); updErr != nil {
			logger.Error("Failed to mark webhook event as failed", "event_id", eventID, "error", updErr)
		}
		return fmt.Errorf("applying webhook event %s: %w", eventID, err)
	}

	processedAt := s.now()
	if err := s.eventRepo.UpdateStatus(ctx, eventID, domain.WebhookStatusProcessed, "", &processedAt); err != nil {
		return err
	}

	logger.Info("Webhook event processed", "event_id", eventID, "event_type", eventType)
	return nil
}

// eventObject is the slice of the gateway payload the handlers need: the
// object id and, for charge events, the owning payment intent.
type eventObject struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
}

func (s *webhookService) applyEvent(ctx context.Context, eventType string, payload []byte) error {
	var obj eventObject
	if err := json.Unmarshal(payload, &obj); err != nil {
		return fmt.Errorf("malformed event payload: %w", err)
	}

	switch eventType {
	case "payment_intent.succeeded":
		return s.updatePaymentStatus(ctx, obj.ID, domain.PaymentStatusCaptured)
	case "payment_intent.payment_failed":
		return s.updatePaymentStatus(ctx, obj.ID, domain.PaymentStatusFailed)
	case "payment_intent.canceled":
		return s.updatePaymentStatus(ctx, obj.ID, domain.PaymentStatusFailed)
	case "charge.refunded":
		return s.updatePaymentStatus(ctx, obj.PaymentIntent, domain.PaymentStatusRefunded)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEventType, eventType)
	}
}

func (s *webhookService) updatePaymentStatus(ctx context.Context, paymentIntentID string, status domain.PaymentStatus) error {
	if paymentIntentID == "" {
		return fmt.Errorf("event carries no payment intent id")
	}

	payment, err := s.paymentRepo.GetByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		return fmt.Errorf("looking up payment for intent %s: %w", paymentIntentID, err)
	}

	return s.paymentRepo.UpdateStatus(ctx, payment.ID, status)
}
