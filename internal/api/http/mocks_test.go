package http_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

// MockPricingService
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) CalculatePrice(ctx context.Context, carID int32, startDate, endDate, bookingDate time.Time) (*domain.PricingResult, error) {
	args := m.Called(ctx, carID, startDate, endDate, bookingDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingResult), args.Error(1)
}
func (m *MockPricingService) PreviewPrice(ctx context.Context, carID int32, startDate, endDate time.Time) (*domain.PricingResult, error) {
	args := m.Called(ctx, carID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingResult), args.Error(1)
}
func (m *MockPricingService) CalculatePriceIn(ctx context.Context, carID int32, startDate, endDate, bookingDate time.Time, displayCurrency string) (*domain.PricingResult, error) {
	args := m.Called(ctx, carID, startDate, endDate, bookingDate, displayCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingResult), args.Error(1)
}

// MockReconciliationService
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) RunDailyReconciliation(ctx context.Context, date time.Time) (*domain.ReconciliationReport, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationReport), args.Error(1)
}

var _ service.PricingService = (*MockPricingService)(nil)
var _ service.ReconciliationService = (*MockReconciliationService)(nil)
