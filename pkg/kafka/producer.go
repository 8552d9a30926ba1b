// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bazaar/pkg/events"

	"github.com/segmentio/kafka-go"
)

// Producer writes envelopes keyed by order id so one order's events stay ordered.
type Producer struct {
	w       *kafka.Writer
	timeout time.Duration
}

// NewProducer returns a synchronous producer for topic.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		timeout: 5 * time.Second,
	}
}

// Message converts an envelope to the Kafka message written for it.
func Message(ev events.Envelope) (kafka.Message, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return kafka.Message{
		Key:   []byte(ev.CorrelationID),
		Value: body,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(ev.EventType)},
			{Key: "x-event-id", Value: []byte(ev.EventID)},
		},
	}, nil
}

// Publish implements events.Publisher.
func (p *Producer) Publish(ev events.Envelope) error {
	msg, err := Message(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s to kafka: %w", ev.EventType, err)
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *Producer) Close() error {
	return p.w.Close()
}
