package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/config"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/http/handlers"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/http/middleware"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/logging"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/ratelimit"
)

// Deps carries the assembled dependencies for the HTTP app.
type Deps struct {
	Config  config.Config
	Limiter *ratelimit.Limiter
}

// New creates and configures a new Fiber app instance.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// Accepts the largest allowed document plus multipart overhead;
		// anything bigger is rejected before a handler runs.
		BodyLimit:    domain.MaxFileBytes + 8<<20,
		ErrorHandler: errorHandler,
	})

	middleware.Register(app)
	registerRoutes(app, deps)

	// Ensure all responses, including 404s, return JSON
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

// registerRoutes mounts all route handlers to the app.
func registerRoutes(app *fiber.App, deps Deps) {
	cv := handlers.NewConverter(deps.Config)

	app.Get("/health", handlers.Health(deps.Config))
	app.Get("/monitor", monitor.New())

	convert := app.Group("/convert",
		middleware.AccessGuard(deps.Config),
		middleware.RateLimit(deps.Limiter),
	)
	convert.Post("/", cv.HandleConvert)
	convert.Post("/url", cv.HandleConvertURL)
	convert.Post("/supabase", cv.HandleConvertSupabase)
	convert.Post("/s3", cv.HandleConvertS3)
}

// errorHandler renders every failure as the JSON error envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	kind := domain.KindInternal
	msg := "Internal Server Error"

	var derr *domain.Error
	var ferr *fiber.Error
	switch {
	case errors.As(err, &derr):
		kind = derr.Kind
		status = statusForKind(derr.Kind, err)
		msg = derr.Error()
	case errors.As(err, &ferr):
		status = ferr.Code
		kind = kindForStatus(ferr.Code)
		msg = ferr.Message
	}

	logging.Warn("Request failed", "path", c.Path(), "status", status, "kind", string(kind), "message", msg)

	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    status,
			"kind":    string(kind),
			"message": msg,
		},
	})
}

// statusForKind maps a failure kind to its HTTP status. Upstream timeouts
// are distinguished from upstream refusals.
func statusForKind(kind domain.Kind, err error) int {
	switch kind {
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindRateLimited:
		return fiber.StatusTooManyRequests
	case domain.KindBadInput, domain.KindInvalidDocument:
		return fiber.StatusBadRequest
	case domain.KindDocumentTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case domain.KindTooManyPages:
		return fiber.StatusUnprocessableEntity
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindFetchError, domain.KindStorageError:
		if errors.Is(err, context.DeadlineExceeded) {
			return fiber.StatusGatewayTimeout
		}
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// kindForStatus classifies errors raised by fiber itself, such as the 404
// fallback or the body size limit.
func kindForStatus(code int) domain.Kind {
	switch code {
	case fiber.StatusUnauthorized:
		return domain.KindUnauthorized
	case fiber.StatusForbidden:
		return domain.KindForbidden
	case fiber.StatusNotFound:
		return domain.KindNotFound
	case fiber.StatusRequestEntityTooLarge:
		return domain.KindDocumentTooLarge
	case fiber.StatusTooManyRequests:
		return domain.KindRateLimited
	default:
		if code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError {
			return domain.KindBadInput
		}
		return domain.KindInternal
	}
}
