package middleware

import (
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// rateLimitBucketLayout is the UTC minute bucket in the counter key.
const rateLimitBucketLayout = "200601021504"

// RateLimiter applies a per-IP, per-minute request budget backed by a
// Redis counter. Keys expire after two minutes so stale buckets clean
// themselves up. When the counter backend is unreachable the request
// is allowed through; rate limiting degrades before availability does.
func RateLimiter(counter domain.Cache, perMinute int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if perMinute <= 0 {
			return c.Next()
		}

		bucket := time.Now().UTC().Format(rateLimitBucketLayout)
		key := fmt.Sprintf("ratelimit:%s:%s", c.IP(), bucket)

		count, err := counter.Incr(c.Context(), key)
		if err != nil {
			logger.Get().Warn("Rate limit counter unavailable, allowing request",
				zap.String("key", key),
				zap.Error(err),
			)
			return c.Next()
		}

		if count == 1 {
			if err := counter.Expire(c.Context(), key, 2*time.Minute); err != nil {
				logger.Get().Warn("Failed to set rate limit key expiry",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}

		if count > int64(perMinute) {
			return domain.NewRateLimitedError("Rate limit exceeded")
		}

		return c.Next()
	}
}
