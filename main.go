package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bazaar/internal/applog"
	"bazaar/internal/config"
	"bazaar/pkg/events"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			log.Fatalf("Failed to open log file %s: %v", cfg.LogFile, err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	a, err := newApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer a.Close()

	if a.mqClient != nil {
		log.Println("Starting RabbitMQ consumer for orders...")
		if err := a.mqClient.ConsumeOrderEvents(auditOrderEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := a.app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := a.app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// auditOrderEvent records every order event received from the broker.
func auditOrderEvent(ev events.Envelope) error {
	applog.Info(nil, "events.received", map[string]any{
		"event_id":   ev.EventID,
		"event_type": ev.EventType,
		"order_id":   ev.CorrelationID,
		"producer":   ev.Producer,
	})
	return nil
}
