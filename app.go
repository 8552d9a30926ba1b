package main

import (
	"fmt"
	"log"
	"time"

	"bazaar/internal/config"
	"bazaar/internal/handlers"
	"bazaar/internal/middleware"
	"bazaar/internal/repositories"
	"bazaar/internal/seed"
	"bazaar/internal/services"
	"bazaar/pkg/events"
	"bazaar/pkg/kafka"
	"bazaar/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// application is the wired service together with the resources it owns.
type application struct {
	app      *fiber.App
	mqClient *rabbitmq.Client
	closers  []func() error
}

type stores struct {
	users     repositories.UserRepository
	materials repositories.MaterialRepository
	orders    repositories.OrderRepository
	sessions  repositories.SessionRepository
}

// Close releases brokers, caches and database handles in reverse order.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
	a.closers = nil
}

func newApp(cfg config.Config) (*application, error) {
	a := &application{}
	s, err := a.openStores(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := seed.Load(s.users, s.materials, s.orders); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}
	publisher, err := a.openPublisher(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(s.users, s.sessions, cfg.JWTSecret, cfg.TokenTTL)
	materialService := services.NewMaterialService(s.materials)
	cartService := services.NewCartService(s.materials, s.orders, publisher, cfg.ServiceName)
	orderService := services.NewOrderService(s.orders, publisher, cfg.ServiceName)
	receiptService := services.NewReceiptService(orderService, cfg.JWTSecret)
	analyticsService := services.NewAnalyticsService(s.orders, s.materials)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, middleware.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst))
	materialHandler := handlers.NewMaterialHandler(materialService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, cartService, receiptService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	app := fiber.New(fiber.Config{AppName: cfg.ServiceName})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.SimulatedLatency(cfg.MockLatency))

	health := healthHandler(cfg)
	app.Get("/health", health)

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/health", health)
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	materialHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	analyticsHandler.RegisterRoutes(protected)

	a.app = app
	return a, nil
}

func healthHandler(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"storage":  cfg.StorageDriver,
			"sessions": cfg.SessionDriver,
			"events":   cfg.EventsDriver,
		})
	}
}

func (a *application) openStores(cfg config.Config) (stores, error) {
	var s stores
	switch cfg.StorageDriver {
	case "", "memory":
		s.users = repositories.NewMockUserRepository()
		s.materials = repositories.NewMockMaterialRepository()
		s.orders = repositories.NewMockOrderRepository()
	case "sqlite", "postgres":
		db, err := repositories.OpenDB(cfg.StorageDriver, cfg.DatabaseDSN)
		if err != nil {
			return s, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return s, fmt.Errorf("failed to get database handle: %w", err)
		}
		a.closers = append(a.closers, sqlDB.Close)
		s.users = repositories.NewGORMUserRepository(db)
		s.materials = repositories.NewGORMMaterialRepository(db)
		s.orders = repositories.NewGORMOrderRepository(db)
	default:
		return s, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	switch cfg.SessionDriver {
	case "", "memory":
		s.sessions = repositories.NewMockSessionRepository()
	case "redis":
		rdb := repositories.NewRedisClient(cfg.RedisAddr)
		a.closers = append(a.closers, rdb.Close)
		sessions := repositories.NewRedisSessionRepository(rdb)
		if err := sessions.Ping(); err != nil {
			return s, err
		}
		s.sessions = sessions
	default:
		return s, fmt.Errorf("unsupported session driver %q", cfg.SessionDriver)
	}
	log.Printf("Using %s storage with %s sessions", cfg.StorageDriver, cfg.SessionDriver)
	return s, nil
}

func (a *application) openPublisher(cfg config.Config) (events.Publisher, error) {
	switch cfg.EventsDriver {
	case "", "none":
		log.Println("No event broker configured. Skipping event publication.")
		return nil, nil
	case "rabbitmq":
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			return nil, err
		}
		a.mqClient = mqClient
		a.closers = append(a.closers, mqClient.Close)
		return mqClient, nil
	case "kafka":
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, producer.Close)
		return producer, nil
	default:
		return nil, fmt.Errorf("unsupported events driver %q", cfg.EventsDriver)
	}
}
