package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/collegium/collegium-api/internal/config"
	"github.com/collegium/collegium-api/internal/handler"
	"github.com/collegium/collegium-api/internal/middleware"
	"github.com/collegium/collegium-api/internal/observability"
	"github.com/collegium/collegium-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AttendanceHandler *handler.AttendanceHandler
	MarksHandler      *handler.MarksHandler
	ResultHandler     *handler.ResultHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Role checks on
// the write paths also live in the services; the router guard rejects
// unauthenticated and plainly unauthorized callers before any body parsing.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AttendanceHandler != nil {
		attendance := api.Group("/attendance", jwtMiddleware)
		deps.AttendanceHandler.Register(attendance)
	}

	if deps.MarksHandler != nil {
		marks := api.Group("/marks", jwtMiddleware, middleware.RequireRole(service.RoleProfessor, service.RoleAdmin))
		deps.MarksHandler.Register(marks)
	}

	if deps.ResultHandler != nil {
		results := api.Group("/results", jwtMiddleware)
		deps.ResultHandler.Register(results)
	}
}
