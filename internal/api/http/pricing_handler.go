package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
)

// PricingHandler exposes price previews for a car and date range.
type PricingHandler struct {
	pricingSvc service.PricingService
}

func NewPricingHandler(pricingSvc service.PricingService) *PricingHandler {
	return &PricingHandler{pricingSvc: pricingSvc}
}

// HandlePreviewPrice computes the price a booking made today would pay.
// GET /cars/{id}/price?start=2006-01-02&end=2006-01-02[&currency=EUR]
func (h *PricingHandler) HandlePreviewPrice(w http.ResponseWriter, r *http.Request) {
	carID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "invalid car id", http.StatusBadRequest)
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "invalid start date, expected yyyy-mm-dd", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "invalid end date, expected yyyy-mm-dd", http.StatusBadRequest)
		return
	}

	displayCurrency := r.URL.Query().Get("currency")

	var result interface{}
	if displayCurrency != "" {
		result, err = h.pricingSvc.CalculatePriceIn(r.Context(), int32(carID), start, end, time.Now(), displayCurrency)
	} else {
		result, err = h.pricingSvc.PreviewPrice(r.Context(), int32(carID), start, end)
	}
	if err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			http.Error(w, "car not found", http.StatusNotFound)
			return
		}
		logger.Error("Price preview failed", "car_id", carID, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Error("Failed to encode pricing response", "error", err)
	}
}
