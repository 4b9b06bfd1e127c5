package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wildhaven/cms-auth/internal/api/http/handlers"
	"github.com/wildhaven/cms-auth/internal/auth"
	"github.com/wildhaven/cms-auth/internal/domain"
	"github.com/wildhaven/cms-auth/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	Limiter        *ratelimit.Limiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", RateLimitMiddleware(cfg.Limiter, ratelimit.PurposeRegister), cfg.Auth.Register)
	authGroup.Post("/login", RateLimitMiddleware(cfg.Limiter, ratelimit.PurposeLogin), cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	adminGroup := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	adminGroup.Get("/users", cfg.Admin.ListUsers)
	adminGroup.Patch("/users/:id", cfg.Admin.UpdateUser)
}
