package http

import (
	"encoding/json"
	"net/http"
	"time"

	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
)

// ReconciliationHandler lets an operator trigger a reconciliation run for a
// specific day and inspect the report.
type ReconciliationHandler struct {
	reconciliationSvc service.ReconciliationService
}

func NewReconciliationHandler(reconciliationSvc service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationSvc: reconciliationSvc}
}

// HandleRunReconciliation runs reconciliation for the requested date.
// POST /admin/reconciliation?date=2006-01-02 (default: yesterday)
func (h *ReconciliationHandler) HandleRunReconciliation(w http.ResponseWriter, r *http.Request) {
	date := time.Now().AddDate(0, 0, -1)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "invalid date, expected yyyy-mm-dd", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	report, err := h.reconciliationSvc.RunDailyReconciliation(r.Context(), date)
	if err != nil {
		logger.Error("Manual reconciliation failed", "date", date.Format("2006-01-02"), "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.Error("Failed to encode reconciliation report", "error", err)
	}
}
