package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/primemotors/inventory-service/internal/api/http/handlers"
	"github.com/primemotors/inventory-service/internal/auth"
	"github.com/primemotors/inventory-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Inventory      *handlers.InventoryHandler
	AuthMiddleware *auth.AuthMiddleware
	EditGuard      *auth.EditPasswordGuard
	EditPolicy     auth.EditPolicy
	Metrics        *observability.Metrics
	UploadDir      string
}

// RegisterRoutes wires HTTP routes. Every protected route lists its guards in order.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	authn := cfg.AuthMiddleware

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		// rejection counts reveal guessing activity
		app.Get("/health/metrics", auth.Chain(func(c *fiber.Ctx) error {
			return c.JSON(cfg.Metrics.Snapshot())
		}, authn.Authenticate, auth.RequireRole(auth.DisclosureRoles...)))
	}

	// SI photos are sensitive sales documents; clients fetch them with the bearer token.
	if cfg.UploadDir != "" {
		app.Group("/uploads", authn.Handle).Static("/", cfg.UploadDir)
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", auth.Chain(cfg.Auth.Logout, authn.Authenticate))
	authGroup.Get("/me", auth.Chain(cfg.Auth.Me, authn.Authenticate))
	authGroup.Get("/rotating-password", auth.Chain(cfg.Auth.RotatingPassword,
		authn.Authenticate,
		auth.RequireRole(auth.DisclosureRoles...),
	))

	mutation := func(op auth.Operation, h fiber.Handler) fiber.Handler {
		return auth.Chain(h, cfg.EditPolicy.Guards(op, authn, cfg.EditGuard)...)
	}

	inventory := api.Group("/inventory")
	inventory.Get("/", auth.Chain(cfg.Inventory.List, authn.Authenticate))
	inventory.Get("/transferred", auth.Chain(cfg.Inventory.ListTransferred, authn.Authenticate))
	inventory.Post("/", mutation(auth.OpCreate, cfg.Inventory.Create))
	inventory.Post("/transfer", mutation(auth.OpTransfer, cfg.Inventory.Transfer))
	inventory.Put("/:id", mutation(auth.OpUpdate, cfg.Inventory.Update))
	inventory.Delete("/:id", mutation(auth.OpDelete, cfg.Inventory.Delete))
}
