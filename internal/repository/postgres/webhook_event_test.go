package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository/postgres"
)

func TestWebhookEventRepository_CreateIfAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewWebhookEventRepository(db)
	ctx := context.Background()

	t.Run("Inserted", func(t *testing.T) {
		event := &domain.WebhookEvent{
			EventID:   "evt_1",
			EventType: "payment_intent.succeeded",
			Payload:   `{"id": "pi_1"}`,
		}

		mock.ExpectQuery("INSERT INTO webhook_events").
			WithArgs(event.EventID, event.EventType, event.Payload, domain.WebhookStatusProcessing, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		inserted, err := repo.CreateIfAbsent(ctx, event)
		assert.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, int32(1), event.ID)
		assert.Equal(t, domain.WebhookStatusProcessing, event.Status)
	})

	t.Run("ConflictReportsNotInserted", func(t *testing.T) {
		event := &domain.WebhookEvent{
			EventID:   "evt_1",
			EventType: "payment_intent.succeeded",
			Payload:   `{"id": "pi_1"}`,
		}

		// ON CONFLICT DO NOTHING yields no row, which must not be an error.
		mock.ExpectQuery("INSERT INTO webhook_events").
			WithArgs(event.EventID, event.EventType, event.Payload, domain.WebhookStatusProcessing, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		inserted, err := repo.CreateIfAbsent(ctx, event)
		assert.NoError(t, err)
		assert.False(t, inserted)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookEventRepository_ReclaimFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewWebhookEventRepository(db)
	ctx := context.Background()

	t.Run("FailedRecordReclaimed", func(t *testing.T) {
		mock.ExpectExec("UPDATE webhook_events SET").
			WithArgs(domain.WebhookStatusProcessing, sqlmock.AnyArg(), "evt_1", domain.WebhookStatusFailed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		reclaimed, err := repo.ReclaimFailed(ctx, "evt_1")
		assert.NoError(t, err)
		assert.True(t, reclaimed)
	})

	t.Run("NonFailedRecordNotReclaimed", func(t *testing.T) {
		// The status guard matches no row when another delivery owns the
		// record.
		mock.ExpectExec("UPDATE webhook_events SET").
			WithArgs(domain.WebhookStatusProcessing, sqlmock.AnyArg(), "evt_1", domain.WebhookStatusFailed).
			WillReturnResult(sqlmock.NewResult(0, 0))

		reclaimed, err := repo.ReclaimFailed(ctx, "evt_1")
		assert.NoError(t, err)
		assert.False(t, reclaimed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookEventRepository_GetByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewWebhookEventRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		processedAt := now.Add(-time.Hour)
		mock.ExpectQuery("FROM webhook_events").
			WithArgs("evt_1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "event_type", "payload", "status", "error", "processed_at", "created_on", "updated_on"}).
				AddRow(1, "evt_1", "charge.refunded", "{}", "PROCESSED", "", processedAt, now, now))

		event, err := repo.GetByEventID(ctx, "evt_1")
		assert.NoError(t, err)
		assert.Equal(t, domain.WebhookStatusProcessed, event.Status)
		assert.NotNil(t, event.ProcessedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM webhook_events").
			WithArgs("evt_missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByEventID(ctx, "evt_missing")
		assert.ErrorIs(t, err, postgres.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookEventRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewWebhookEventRepository(db)
	ctx := context.Background()

	processedAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE webhook_events SET").
		WithArgs(domain.WebhookStatusProcessed, "", processedAt, sqlmock.AnyArg(), "evt_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatus(ctx, "evt_1", domain.WebhookStatusProcessed, "", &processedAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
