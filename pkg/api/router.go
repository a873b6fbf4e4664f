package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RouteConfig bundles dependencies for route registration
type RouteConfig struct {
	Health     *HealthHandler
	Attendance *AttendanceHandler
}

// RegisterRoutes wires HTTP routes
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	apiGroup := app.Group("/api")
	apiGroup.Get("/dashboard", cfg.Attendance.Dashboard)
	apiGroup.Get("/overview", cfg.Attendance.Overview)
	apiGroup.Get("/volunteers/:id", cfg.Attendance.Volunteer)
}

// NewApp builds the fiber app with middlewares and routes registered
func NewApp(logger *zap.Logger, timeout time.Duration, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "attendance",
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, timeout)
	RegisterRoutes(app, routes)
	return app
}
