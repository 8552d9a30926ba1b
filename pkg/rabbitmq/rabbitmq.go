package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"bazaar/pkg/events"

	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex // guards channel publishes
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable order queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = "order_queue"
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declare(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected and %s declared.", cfg.Queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

func declare(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", queue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publishing builds the persistent AMQP message for an envelope.
func Publishing(ev events.Envelope) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event to JSON: %w", err)
	}
	return amqp.Publishing{
		ContentType:   "application/json",
		Body:          body,
		DeliveryMode:  amqp.Persistent,
		Timestamp:     ev.OccurredAt,
		MessageId:     ev.EventID,
		Type:          ev.EventType,
		CorrelationId: ev.CorrelationID,
		AppId:         ev.Producer,
	}, nil
}

// Publish implements events.Publisher by sending the envelope to the order queue.
func (c *Client) Publish(ev events.Envelope) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	msg, err := Publishing(ev)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Default exchange, routed by queue name.
	if err := c.channel.Publish("", c.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.EventType, err)
	}
	return nil
}

// Decode reads the envelope carried by a delivery.
func Decode(msg amqp.Delivery) (events.Envelope, error) {
	var ev events.Envelope
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		return ev, fmt.Errorf("failed to decode delivery %d: %w", msg.DeliveryTag, err)
	}
	return ev, nil
}

// ConsumeOrderEvents starts a goroutine that hands every delivery on the order
// queue to messageHandler, acking on success and nacking otherwise.
// Undecodable messages are dropped rather than requeued.
func (c *Client) ConsumeOrderEvents(messageHandler func(ev events.Envelope) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declare(c.channel, c.queue)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for order events on %s", queue.Name)

	go func() {
		for msg := range msgs {
			ev, err := Decode(msg)
			if err != nil {
				log.Printf("Dropping message: %v", err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if err := messageHandler(ev); err != nil {
				log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, requeueErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
		log.Printf("Order event consumer on %s stopped", queue.Name)
	}()

	return nil
}
