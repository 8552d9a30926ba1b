package services

import (
	"log"

	"bazaar/pkg/events"
)

// publishEvent sends an event if a publisher is configured. Failures are
// logged and never surface to the caller.
func publishEvent(publisher events.Publisher, producer, eventType, correlationID string, payload any) {
	if publisher == nil {
		return
	}
	ev, err := events.New(eventType, producer, correlationID, payload)
	if err != nil {
		log.Printf("Failed to build %s event for %s: %v", eventType, correlationID, err)
		return
	}
	if err := publisher.Publish(ev); err != nil {
		log.Printf("Warning: Failed to publish %s event for %s: %v", eventType, correlationID, err)
		return
	}
	log.Printf("Published %s event for %s", eventType, correlationID)
}
