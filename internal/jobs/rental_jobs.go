package jobs

import (
	"context"

	"carrental-backend/internal/logger"
)

// DetectLateReturns sweeps overdue in-use rentals and records late-status
// transitions via the late-return service.
func (jr *JobRunner) DetectLateReturns() {
	jr.runWithRecovery("DetectLateReturns", func() {
		ctx := context.Background()

		summary, err := jr.lateReturn.DetectLateReturns(ctx)
		if err != nil {
			logger.Error("Late-return detection failed", "error", err)
			return
		}

		logger.Info("Late-return detection summary",
			"scanned", summary.Scanned,
			"updated", summary.Updated,
			"failed", summary.Failed)
	})
}
