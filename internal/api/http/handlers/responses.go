package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// All routes answer HTTP 200; business failures ride the body as
// {"status":"error","message":...}. Transport status codes carry no
// application meaning.

func statusOK(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "message": nil})
}

func statusError(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"status": "error", "message": message})
}

// queryPK reads an optional integer query parameter. Absent or non-integer
// values yield nil, which downgrades pk-dependent filters to the default.
func queryPK(c *fiber.Ctx, key string) *int64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	pk, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &pk
}

// paramPK reads the path primary key. A non-integer segment yields false.
func paramPK(c *fiber.Ctx) (int64, bool) {
	pk, err := strconv.ParseInt(c.Params("pk"), 10, 64)
	if err != nil {
		return 0, false
	}
	return pk, true
}
