package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (make, model, year, category, license_plate, daily_price, currency, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Make, c.Model, c.Year, c.Category, c.LicensePlate, c.DailyPrice, c.Currency, c.Status, time.Now(), time.Now()).Scan(&c.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	c := &domain.Car{}
	query := `SELECT id, make, model, year, category, license_plate, daily_price, currency, status, deleted, created_on, updated_on
	          FROM cars WHERE id = $1 AND deleted = false`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.Category, &c.LicensePlate, &c.DailyPrice, &c.Currency, &c.Status, &c.Deleted, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET make=$1, model=$2, year=$3, category=$4, daily_price=$5, currency=$6, status=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, c.Make, c.Model, c.Year, c.Category, c.DailyPrice, c.Currency, c.Status, time.Now(), c.ID)
	return err
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	query := `UPDATE cars SET deleted=true, updated_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *carRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Car, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM cars WHERE deleted = false`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, make, model, year, category, license_plate, daily_price, currency, status, deleted, created_on, updated_on
	          FROM cars WHERE deleted = false ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.Category, &c.LicensePlate, &c.DailyPrice, &c.Currency, &c.Status, &c.Deleted, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		cars = append(cars, c)
	}
	return cars, count, rows.Err()
}
