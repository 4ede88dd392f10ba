package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, car_id, user_id, start_date, end_date, status, daily_price, currency, total_price, late_status, late_hours, late_detected_at, deleted, created_on, updated_on`

func scanRental(row interface{ Scan(...interface{}) error }, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.CarID, &rt.UserID, &rt.StartDate, &rt.EndDate, &rt.Status, &rt.DailyPrice, &rt.Currency, &rt.TotalPrice, &rt.LateStatus, &rt.LateHours, &rt.LateDetectedAt, &rt.Deleted, &rt.CreatedOn, &rt.UpdatedOn)
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (car_id, user_id, start_date, end_date, status, daily_price, currency, total_price, late_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rt.CarID, rt.UserID, rt.StartDate, rt.EndDate, rt.Status, rt.DailyPrice, rt.Currency, rt.TotalPrice, domain.LateStatusOnTime, time.Now(), time.Now()).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 AND deleted = false`
	err := scanRental(r.db.QueryRowContext(ctx, query, id), rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, end_date=$2, total_price=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, rt.Status, rt.EndDate, rt.TotalPrice, time.Now(), rt.ID)
	return err
}

func (r *rentalRepository) ListOverdueInUse(ctx context.Context, asOf time.Time, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize

	// end_date is date-valued: compare against the truncated date so rentals
	// ending today are not scanned until tomorrow.
	cutoff := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())

	var count int32
	countQuery := `SELECT count(*) FROM rentals WHERE status = $1 AND end_date < $2 AND deleted = false`
	if err := r.db.QueryRowContext(ctx, countQuery, domain.RentalStatusInUse, cutoff).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = $1 AND end_date < $2 AND deleted = false
	          ORDER BY end_date ASC, id ASC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusInUse, cutoff, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) UpdateLateState(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET late_status=$1, late_hours=$2, late_detected_at=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, rt.LateStatus, rt.LateHours, rt.LateDetectedAt, time.Now(), rt.ID)
	return err
}
