package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/config"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// Health reports service status and the effective conversion limits, without
// leaking credentials.
func Health(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":                 "ok",
			"api_key_required":       cfg.Auth.APIKey != "",
			"allowed_ips_configured": len(cfg.Auth.AllowedIPs) > 0,
			"rate_limit_per_minute":  cfg.RateLimit.PerMinute,
			"max_size_mb":            domain.MaxFileBytes >> 20,
			"max_pages":              domain.MaxPages,
			"image_quality":          cfg.Image.Quality,
			"image_dpi":              cfg.Image.DPI,
		})
	}
}
