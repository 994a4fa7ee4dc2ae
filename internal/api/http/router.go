package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grmlab/services-exchange/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
	Orders *handlers.OrdersHandler
	Offers *handlers.OffersHandler
}

// RegisterRoutes wires HTTP routes. Count routes precede the pk routes so
// "/count" never parses as a primary key.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Index)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Get("/count", cfg.Users.Count)
	users.Get("/:pk", cfg.Users.Get)
	users.Post("/", cfg.Users.Create)
	users.Put("/:pk", cfg.Users.Update)
	users.Delete("/:pk", cfg.Users.Delete)

	orders := app.Group("/orders")
	orders.Get("/", cfg.Orders.List)
	orders.Get("/count", cfg.Orders.Count)
	orders.Get("/:pk", cfg.Orders.Get)
	orders.Post("/", cfg.Orders.Create)
	orders.Put("/:pk", cfg.Orders.Update)
	orders.Delete("/:pk", cfg.Orders.Delete)

	offers := app.Group("/offers")
	offers.Get("/", cfg.Offers.List)
	offers.Get("/count", cfg.Offers.Count)
	offers.Get("/:pk", cfg.Offers.Get)
	offers.Post("/", cfg.Offers.Create)
	offers.Put("/:pk", cfg.Offers.Update)
	offers.Delete("/:pk", cfg.Offers.Delete)
}
