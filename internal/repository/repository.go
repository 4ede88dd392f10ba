package repository

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	// ListOverdueInUse pages through non-deleted IN_USE rentals whose end
	// date is before asOf.
	ListOverdueInUse(ctx context.Context, asOf time.Time, page, pageSize int32) ([]domain.Rental, int32, error)
	// UpdateLateState persists the late-return fields only.
	UpdateLateState(ctx context.Context, rental *domain.Rental) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int32, status domain.PaymentStatus) error
	// ListByDateRange returns payments created in [from, to).
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Payment, error)
}

type WebhookEventRepository interface {
	// CreateIfAbsent atomically records a new event in PROCESSING state.
	// It reports whether the row was inserted; false means the event id was
	// already tracked.
	CreateIfAbsent(ctx context.Context, event *domain.WebhookEvent) (bool, error)
	// ReclaimFailed atomically moves a FAILED event back to PROCESSING.
	// It reports whether the event was reclaimed; false means the event is
	// in some other state and this delivery must not process it.
	ReclaimFailed(ctx context.Context, eventID string) (bool, error)
	GetByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error)
	UpdateStatus(ctx context.Context, eventID string, status domain.WebhookEventStatus, errMsg string, processedAt *time.Time) error
}
