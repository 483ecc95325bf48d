package middleware

import (
	"time"

	"quizforge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one structured line per request once the handler
// chain has finished. Errors are routed through the app's error
// handler first so the logged status is the one the client saw.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if correlationID := CorrelationIDFromContext(c); correlationID != "" {
			fields = append(fields, zap.String("correlation_id", correlationID))
		}
		if chainErr != nil {
			fields = append(fields, zap.Error(chainErr))
		}

		logger.Get().Info("Request completed", fields...)
		return nil
	}
}
