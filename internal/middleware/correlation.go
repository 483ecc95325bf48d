package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	CorrelationIDHeader = "X-Correlation-ID"
	CorrelationIDKey    = "correlationID" // Key for storing the id in fiber.Ctx locals
)

// CorrelationID honors an incoming X-Correlation-ID header or mints a
// fresh UUID, stores it in the request locals and echoes it on the
// response so clients can stitch logs together.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		correlationID := c.Get(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		c.Locals(CorrelationIDKey, correlationID)
		c.Set(CorrelationIDHeader, correlationID)

		return c.Next()
	}
}

// CorrelationIDFromContext returns the request's correlation id, or an
// empty string when the middleware did not run.
func CorrelationIDFromContext(c *fiber.Ctx) string {
	if id, ok := c.Locals(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}
