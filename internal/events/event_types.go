package events

import (
	"time"

	"github.com/spec-kit/carmarket-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventServiceCreated      EventType = "service_created"
	EventServiceUpdated      EventType = "service_updated"
	EventServiceCompleted    EventType = "service_completed"
	EventServiceMessageAdded EventType = "service_message_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ServiceCreatedPayload payload.
type ServiceCreatedPayload struct {
	CarID         string     `json:"car_id"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

// ServiceUpdatedPayload payload.
type ServiceUpdatedPayload struct {
	OldStatus      domain.ServiceStatus `json:"old_status"`
	NewStatus      domain.ServiceStatus `json:"new_status"`
	TotalQuotation float64              `json:"total_quotation"`
	FinalAmount    float64              `json:"final_amount"`
}

// ServiceMessageAddedPayload payload.
type ServiceMessageAddedPayload struct {
	MessageID   string `json:"message_id"`
	BodyPreview string `json:"body_preview"`
}
