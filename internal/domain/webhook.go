package domain

import "time"

type WebhookEventStatus string

const (
	WebhookStatusProcessing WebhookEventStatus = "PROCESSING"
	WebhookStatusProcessed  WebhookEventStatus = "PROCESSED"
	WebhookStatusFailed     WebhookEventStatus = "FAILED"
	WebhookStatusDuplicate  WebhookEventStatus = "DUPLICATE"
)

// WebhookEvent tracks one inbound gateway event by its external id so a
// redelivery is recognized and never reapplied.
type WebhookEvent struct {
	ID          int32              `json:"id"`
	EventID     string             `json:"event_id"`
	EventType   string             `json:"event_type"`
	Payload     string             `json:"payload"`
	Status      WebhookEventStatus `json:"status"`
	Error       string             `json:"error,omitempty"`
	ProcessedAt *time.Time         `json:"processed_at,omitempty"`
	CreatedOn   time.Time          `json:"created_on"`
	UpdatedOn   time.Time          `json:"updated_on"`
}
