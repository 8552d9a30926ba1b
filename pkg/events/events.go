// Package events defines the order event envelope shared by the publishers.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// Envelope wraps every event published by the service.
type Envelope struct {
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	EventVersion  int             `json:"eventVersion"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlationId,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// OrderCreatedPayload is published once per order written by checkout.
type OrderCreatedPayload struct {
	OrderID           string  `json:"orderId"`
	MaterialID        string  `json:"materialId"`
	VendorID          string  `json:"vendorId"`
	ServiceProviderID string  `json:"serviceProviderId"`
	Quantity          int     `json:"quantity"`
	TotalPrice        float64 `json:"totalPrice"`
	Status            string  `json:"status"`
}

// OrderStatusChangedPayload is published after every accepted transition.
type OrderStatusChangedPayload struct {
	OrderID   string `json:"orderId"`
	VendorID  string `json:"vendorId"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changedBy"`
}

// Publisher delivers envelopes to a broker.
type Publisher interface {
	Publish(ev Envelope) error
}

// New builds a version 1 envelope around payload.
func New(eventType, producer, correlationID string, payload any) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       body,
	}, nil
}

// UnwrapPayload decodes the payload of an envelope into T.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
