package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grmlab/services-exchange/internal/config"
	"github.com/grmlab/services-exchange/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes plus the root
// connectivity check.
type HealthHandler struct {
	app   config.AppConfig
	pg    *persistence.Postgres
	redis *persistence.Redis
}

// NewHealthHandler constructs handler.
func NewHealthHandler(app config.AppConfig, pg *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{app: app, pg: pg, redis: redis}
}

// Index GET /: reports service identity and a database connectivity result.
func (h *HealthHandler) Index(c *fiber.Ctx) error {
	connResult := "not connected"
	if pool := h.pg.PoolHandle(); pool != nil {
		var sum int
		if err := pool.QueryRow(c.Context(), "SELECT 1 + 1").Scan(&sum); err != nil {
			connResult = err.Error()
		} else {
			connResult = "ok"
		}
	}
	return c.JSON(fiber.Map{
		"service":                h.app.Name,
		"version":                h.app.Version,
		"test_connection_result": connResult,
	})
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready: pings the backing stores.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}

	if pool := h.pg.PoolHandle(); pool != nil {
		if err := pool.Ping(c.Context()); err != nil {
			checks["postgres"] = err.Error()
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "not configured"
	}

	if err := h.redis.Ping(c.Context()); err != nil {
		checks["redis"] = err.Error()
	} else {
		checks["redis"] = "ok"
	}

	return c.JSON(fiber.Map{"status": "ok", "checks": checks})
}
