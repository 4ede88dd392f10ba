package service

import (
	"context"
	"errors"
	"time"

	"carrental-backend/internal/currency"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/pricing"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/repository/postgres"
)

type pricingService struct {
	carRepo   repository.CarRepository
	engine    *pricing.Engine
	converter *currency.Converter
	now       func() time.Time
}

func NewPricingService(carRepo repository.CarRepository, engine *pricing.Engine, converter *currency.Converter) PricingService {
	return &pricingService{
		carRepo:   carRepo,
		engine:    engine,
		converter: converter,
		now:       time.Now,
	}
}

func (s *pricingService) CalculatePrice(ctx context.Context, carID int32, startDate, endDate, bookingDate time.Time) (*domain.PricingResult, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	pctx, err := pricing.BuildContext(car, startDate, endDate, bookingDate)
	if err != nil {
		return nil, err
	}

	result := s.engine.Calculate(pctx)
	return &result, nil
}

// PreviewPrice is CalculatePrice with the booking date fixed to today.
func (s *pricingService) PreviewPrice(ctx context.Context, carID int32, startDate, endDate time.Time) (*domain.PricingResult, error) {
	return s.CalculatePrice(ctx, carID, startDate, endDate, s.now())
}

// CalculatePriceIn converts the final price into the display currency when
// it differs from the car's native currency; the base price and modifiers
// stay native.
func (s *pricingService) CalculatePriceIn(ctx context.Context, carID int32, startDate, endDate, bookingDate time.Time, displayCurrency string) (*domain.PricingResult, error) {
	result, err := s.CalculatePrice(ctx, carID, startDate, endDate, bookingDate)
	if err != nil {
		return nil, err
	}
	if displayCurrency == "" || displayCurrency == result.Currency {
		return result, nil
	}

	conv, err := s.converter.Convert(ctx, result.FinalPrice, result.Currency, displayCurrency)
	if err != nil {
		return nil, err
	}
	result.FinalPrice = conv.Converted
	result.Currency = displayCurrency
	return result, nil
}
