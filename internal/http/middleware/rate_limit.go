package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/logging"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/ratelimit"
)

// RateLimit applies the sliding-window limiter keyed by client IP. With a
// shared API key the address is the only stable client identity available.
func RateLimit(l *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Enabled() {
			return c.Next()
		}
		if !l.Allow(c.IP()) {
			logging.Warn("Rate limit exceeded", "client", c.IP(), "path", c.Path())
			return domain.E(domain.KindRateLimited, "Too many requests, retry later")
		}
		return c.Next()
	}
}
