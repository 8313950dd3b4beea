package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/ratelimit"
)

// RateLimit answers 429 once the client IP has used up its bucket.
func RateLimit(l *ratelimit.Keyed, retryAfterSec int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.Allow(c.IP()) {
			return c.Next()
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSec))
		return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
	}
}
