package http

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/grmlab/services-exchange/internal/observability"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics) {
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

// errorHandlingMiddleware turns panics and stray handler errors into the
// uniform 200 + {"status":"error"} envelope the API promises.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = nil
				metrics.RecordError(c.Path(), c.Method(), "PANIC")
				_ = c.Status(fiber.StatusOK).JSON(fiber.Map{
					"status":  "error",
					"message": "internal server error",
				})
				return
			}
			if err != nil {
				logger.Error("request failed", zap.Error(err))
				metrics.RecordError(c.Path(), c.Method(), "INTERNAL")
				_ = c.Status(fiber.StatusOK).JSON(fiber.Map{
					"status":  "error",
					"message": err.Error(),
				})
				err = nil
			}
		}()
		return c.Next()
	}
}
