package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// EventPublisher is the broker-facing surface the catalog services need.
// *rabbitmq.Client satisfies it; tests substitute a testify mock.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CatalogEvent is the envelope published after every successful mutation.
type CatalogEvent struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

const catalogEventsQueue = "catalog_events"

// publishEvent sends a catalog event through the default exchange. A nil
// publisher disables eventing; publish failures are logged and never fail
// the mutation that triggered them.
func publishEvent(pub EventPublisher, eventType string, payload interface{}) {
	if pub == nil {
		return
	}

	event := CatalogEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now(),
		Payload:    payload,
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}

	if err := pub.Publish("", catalogEventsQueue, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
