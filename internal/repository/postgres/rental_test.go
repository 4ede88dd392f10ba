package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository/postgres"
)

var rentalRows = []string{"id", "car_id", "user_id", "start_date", "end_date", "status", "daily_price", "currency", "total_price", "late_status", "late_hours", "late_detected_at", "deleted", "created_on", "updated_on"}

func TestRentalRepository_ListOverdueInUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	asOf := time.Date(2025, 6, 20, 2, 0, 0, 0, time.UTC)
	// The repository truncates the cutoff to the calendar date.
	cutoff := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT count").
			WithArgs(domain.RentalStatusInUse, cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("FROM rentals").
			WithArgs(domain.RentalStatusInUse, cutoff, int32(50), int32(0)).
			WillReturnRows(sqlmock.NewRows(rentalRows).
				AddRow(1, 10, 100, now.AddDate(0, 0, -7), now.AddDate(0, 0, -2), "IN_USE", "150.00", "USD", "750.00", "ON_TIME", 0, nil, false, now, now).
				AddRow(2, 11, 101, now.AddDate(0, 0, -5), now.AddDate(0, 0, -1), "IN_USE", "89.99", "USD", "449.95", "GRACE_PERIOD", 0, now, false, now, now))

		rentals, total, err := repo.ListOverdueInUse(ctx, asOf, 1, 50)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), total)
		assert.Len(t, rentals, 2)
		assert.Equal(t, int32(1), rentals[0].ID)
		assert.Nil(t, rentals[0].LateDetectedAt)
		assert.Equal(t, domain.LateStatusGracePeriod, rentals[1].LateStatus)
		assert.NotNil(t, rentals[1].LateDetectedAt)
	})

	t.Run("SecondPageOffset", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs(domain.RentalStatusInUse, cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery("FROM rentals").
			WithArgs(domain.RentalStatusInUse, cutoff, int32(2), int32(2)).
			WillReturnRows(sqlmock.NewRows(rentalRows))

		rentals, total, err := repo.ListOverdueInUse(ctx, asOf, 2, 2)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), total)
		assert.Empty(t, rentals)
	})

	t.Run("CountError", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs(domain.RentalStatusInUse, cutoff).
			WillReturnError(errors.New("connection reset"))

		_, _, err := repo.ListOverdueInUse(ctx, asOf, 1, 50)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_UpdateLateState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	detectedAt := time.Date(2025, 6, 20, 2, 0, 0, 0, time.UTC)
	rt := &domain.Rental{
		ID:             7,
		LateStatus:     domain.LateStatusLate,
		LateHours:      5,
		LateDetectedAt: &detectedAt,
	}

	mock.ExpectExec("UPDATE rentals SET late_status").
		WithArgs(domain.LateStatusLate, 5, detectedAt, sqlmock.AnyArg(), int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateLateState(ctx, rt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM rentals").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(rentalRows))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, postgres.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
