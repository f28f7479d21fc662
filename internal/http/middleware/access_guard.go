package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/config"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/logging"
)

// AccessGuard enforces the optional IP allow-list and API key. The origin
// check runs first so a blocked address learns nothing about key validity.
// With no API key configured the service runs open.
func AccessGuard(cfg config.Config) fiber.Handler {
	allowed := make(map[string]struct{}, len(cfg.Auth.AllowedIPs))
	for _, ip := range cfg.Auth.AllowedIPs {
		allowed[strings.TrimSpace(ip)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if len(allowed) > 0 {
			if _, ok := allowed[c.IP()]; !ok {
				logging.Warn("Source address rejected", "ip", c.IP(), "path", c.Path())
				return domain.E(domain.KindForbidden, "Source address not allowed")
			}
		}

		if cfg.Auth.APIKey == "" {
			return c.Next()
		}

		key := clientKey(c)
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.Auth.APIKey)) != 1 {
			logging.Warn("Invalid API key", "ip", c.IP(), "path", c.Path())
			return domain.E(domain.KindUnauthorized, "Invalid or missing API key")
		}
		return c.Next()
	}
}

// clientKey pulls the credential from the X-API-Key header, falling back to
// an api_key field when the body is JSON.
func clientKey(c *fiber.Ctx) string {
	if key := c.Get("X-API-Key"); key != "" {
		return key
	}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var body struct {
			APIKey string `json:"api_key"`
		}
		if err := json.Unmarshal(c.Body(), &body); err == nil {
			return body.APIKey
		}
	}
	return ""
}
