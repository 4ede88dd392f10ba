package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/penalty"
	"carrental-backend/internal/repository"
)

type lateReturnService struct {
	rentalRepo repository.RentalRepository
	calculator *penalty.Calculator
	pageSize   int32
	now        func() time.Time
}

func NewLateReturnService(rentalRepo repository.RentalRepository, calculator *penalty.Calculator, pageSize int32) LateReturnService {
	return &lateReturnService{
		rentalRepo: rentalRepo,
		calculator: calculator,
		pageSize:   pageSize,
		now:        time.Now,
	}
}

// DetectLateReturns scans all overdue in-use rentals in fixed-size pages and
// records late-status transitions. A failure on one rental is logged and
// skipped; the sweep continues. Re-running with no elapsed time is a no-op
// because a rental is only written when its computed status differs from the
// stored one.
func (s *lateReturnService) DetectLateReturns(ctx context.Context) (DetectionSummary, error) {
	log := logger.WithService("late_return")
	now := s.now()
	summary := DetectionSummary{}

	for page := int32(1); ; page++ {
		rentals, total, err := s.rentalRepo.ListOverdueInUse(ctx, now, page, s.pageSize)
		if err != nil {
			return summary, err
		}

		for i := range rentals {
			summary.Scanned++
			updated, err := s.processRental(ctx, &rentals[i], now)
			if err != nil {
				summary.Failed++
				log.Error("Failed to process overdue rental",
					"rental_id", rentals[i].ID,
					"error", err)
				continue
			}
			if updated {
				summary.Updated++
			}
		}

		if int32(summary.Scanned) >= total || len(rentals) == 0 {
			break
		}
	}

	log.Info("Late-return detection completed",
		"scanned", summary.Scanned,
		"updated", summary.Updated,
		"failed", summary.Failed)
	return summary, nil
}

func (s *lateReturnService) processRental(ctx context.Context, rt *domain.Rental, now time.Time) (bool, error) {
	window := domain.RentalWindow{
		RentalID:     rt.ID,
		ScheduledEnd: rt.EndDate,
		DailyRate:    rt.DailyPrice,
		Currency:     rt.Currency,
	}

	status, err := s.calculator.LateStatus(window, now)
	if err != nil {
		return false, err
	}
	if status == rt.LateStatus {
		return false, nil
	}

	lateHours, err := s.calculator.LateHours(window, now)
	if err != nil {
		return false, err
	}

	rt.LateStatus = status
	rt.LateHours = lateHours
	if rt.LateDetectedAt == nil && status != domain.LateStatusOnTime {
		detectedAt := now
		rt.LateDetectedAt = &detectedAt
	}

	if err := s.rentalRepo.UpdateLateState(ctx, rt); err != nil {
		return false, err
	}

	logger.Debug("Rental late status updated",
		"rental_id", rt.ID,
		"late_status", status,
		"late_hours", lateHours)
	return true, nil
}
