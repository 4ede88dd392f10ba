package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type webhookEventRepository struct {
	db *sql.DB
}

func NewWebhookEventRepository(db *sql.DB) repository.WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

// CreateIfAbsent relies on the unique constraint on event_id: the insert is
// the test-and-set, so two concurrent deliveries of the same event cannot
// both pass.
func (r *webhookEventRepository) CreateIfAbsent(ctx context.Context, e *domain.WebhookEvent) (bool, error) {
	query := `INSERT INTO webhook_events (event_id, event_type, payload, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (event_id) DO NOTHING
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query, e.EventID, e.EventType, e.Payload, domain.WebhookStatusProcessing, time.Now(), time.Now()).Scan(&e.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	e.Status = domain.WebhookStatusProcessing
	return true, nil
}

// ReclaimFailed is the retry counterpart of CreateIfAbsent: the status guard
// in the WHERE clause makes the transition FAILED -> PROCESSING atomic, so a
// delivery racing a concurrent one cannot take over a record it does not own.
func (r *webhookEventRepository) ReclaimFailed(ctx context.Context, eventID string) (bool, error) {
	query := `UPDATE webhook_events SET status=$1, error='', updated_on=$2 WHERE event_id=$3 AND status=$4`
	result, err := r.db.ExecContext(ctx, query, domain.WebhookStatusProcessing, time.Now(), eventID, domain.WebhookStatusFailed)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *webhookEventRepository) GetByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error) {
	e := &domain.WebhookEvent{}
	query := `SELECT id, event_id, event_type, payload, status, error, processed_at, created_on, updated_on
	          FROM webhook_events WHERE event_id = $1`
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(&e.ID, &e.EventID, &e.EventType, &e.Payload, &e.Status, &e.Error, &e.ProcessedAt, &e.CreatedOn, &e.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *webhookEventRepository) UpdateStatus(ctx context.Context, eventID string, status domain.WebhookEventStatus, errMsg string, processedAt *time.Time) error {
	query := `UPDATE webhook_events SET status=$1, error=$2, processed_at=$3, updated_on=$4 WHERE event_id=$5`
	_, err := r.db.ExecContext(ctx, query, status, errMsg, processedAt, time.Now(), eventID)
	return err
}
