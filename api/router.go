package api

import (
	"context"
	"strings"
	"time"

	"github.com/geekhub/mainframe/mainframe/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ServerConfig struct {
	AllowOrigins []string
	Version      string
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(cfg ServerConfig, handler *Handler, db Pinger, collector *metrics.Collector) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Mainframe",
		ServerHeader: "Mainframe",
		ErrorHandler: ErrorHandler,
	})

	app.Use(LoggingMiddleware(collector))
	app.Use(recover.New())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	origins := "*"
	if len(cfg.AllowOrigins) > 0 {
		origins = strings.Join(cfg.AllowOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	app.Get("/health", healthCheck(db, cfg.Version))
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))

	mf := app.Group("/mainframe")
	mf.Post("/login-widget", handler.LoginWidget)
	mf.Post("/check-in", handler.CheckIn)
	mf.Post("/gacha", handler.Gacha)
	mf.Post("/change-card", handler.ChangeCard)
	mf.Post("/get-cards", handler.GetCards)
	mf.Post("/get-available-cards", handler.AvailableCards)
	mf.Post("/catalog", handler.Catalog)
	mf.Post("/user-profile", handler.UserProfile)
	mf.Post("/send-action", handler.SendAction)
	mf.Post("/ranking", handler.Ranking)
	mf.Post("/flight-report", handler.FlightReport)

	return app
}

func healthCheck(db Pinger, version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return SendError(c, fiber.StatusServiceUnavailable, "TRANSIENT_STORE", "Database unreachable", nil)
		}
		return SendSuccess(c, fiber.Map{
			"status":    "healthy",
			"version":   version,
			"timestamp": time.Now().UTC(),
		}, "Service is healthy")
	}
}
