package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk-service/internal/api/http/handlers"
	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Reference      *handlers.ReferenceHandler
	AdminUsers     *handlers.AdminUsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/auth/register", cfg.Auth.Register)
	app.Post("/auth/login", cfg.Auth.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authed.Post("/auth/logout", cfg.Auth.Logout)

	authed.Get("/reference", cfg.Reference.List)

	authed.Get("/tickets", cfg.Tickets.Dashboard)
	authed.Post("/tickets", cfg.Tickets.Create)
	authed.Get("/tickets/:id", cfg.Tickets.Detail)
	authed.Post("/tickets/:id", cfg.Tickets.Update)

	admin := authed.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/users", cfg.AdminUsers.List)
	admin.Post("/users/:id", cfg.AdminUsers.Edit)
	admin.Post("/users/:id/delete", cfg.AdminUsers.Delete)
}
