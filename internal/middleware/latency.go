package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SimulatedLatency delays mutating requests by d. Reads are never delayed.
func SimulatedLatency(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d > 0 && c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead && c.Method() != fiber.MethodOptions {
			time.Sleep(d)
		}
		return c.Next()
	}
}
