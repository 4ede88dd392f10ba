package jobs

import (
	"context"
	"time"

	"carrental-backend/internal/logger"
)

// RunDailyReconciliation reconciles yesterday's payment ledger against the
// gateway. Yesterday is used so the day under comparison is complete.
func (jr *JobRunner) RunDailyReconciliation() {
	jr.runWithRecovery("RunDailyReconciliation", func() {
		ctx := context.Background()
		date := time.Now().AddDate(0, 0, -1)

		report, err := jr.reconciliation.RunDailyReconciliation(ctx, date)
		if err != nil {
			logger.Error("Daily reconciliation failed", "error", err)
			return
		}

		if report.HasDiscrepancies {
			logger.Warn("Reconciliation found discrepancies",
				"report_id", report.ID,
				"date", report.Date.Format("2006-01-02"),
				"count", len(report.Discrepancies))
			for _, d := range report.Discrepancies {
				logger.Warn("Discrepancy detected",
					"report_id", report.ID,
					"type", d.Type,
					"payment_intent_id", d.PaymentIntentID,
					"description", d.Description)
			}
		}
	})
}

// RefreshExchangeRates evicts the rate cache and re-fetches the USD table.
func (jr *JobRunner) RefreshExchangeRates() {
	jr.runWithRecovery("RefreshExchangeRates", func() {
		ctx := context.Background()

		if err := jr.converter.RefreshRates(ctx); err != nil {
			logger.Error("Exchange rate refresh failed", "error", err)
		}
	})
}
