package http

import (
	"io"
	"net/http"

	"carrental-backend/internal/gateway"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
)

const maxWebhookBodyBytes = int64(65536)

// WebhookHandler receives asynchronous payment-gateway events.
type WebhookHandler struct {
	webhookSvc    service.WebhookService
	webhookSecret string
}

func NewWebhookHandler(webhookSvc service.WebhookService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		webhookSvc:    webhookSvc,
		webhookSecret: webhookSecret,
	}
}

// HandleStripeWebhook verifies the event signature, then hands the event to
// the webhook service. Duplicates are acknowledged with 200 so the gateway
// stops redelivering.
func (h *WebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read webhook body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, err := gateway.VerifyWebhookSignature(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		logger.Warn("Invalid webhook signature", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.webhookSvc.ProcessEvent(r.Context(), event.ID, string(event.Type), event.Data.Raw); err != nil {
		logger.Error("Failed to process webhook event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
