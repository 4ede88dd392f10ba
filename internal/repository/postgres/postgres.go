package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"carrental-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.CarRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.WebhookEventRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		CarRepository:          NewCarRepository(db),
		RentalRepository:       NewRentalRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		WebhookEventRepository: NewWebhookEventRepository(db),
	}
}
