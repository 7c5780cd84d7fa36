package middlewares

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-level Fiber error handler. Unexpected errors are
// logged and collapsed into a generic message so internals never leak to the
// client.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	if code == fiber.StatusInternalServerError {
		slog.Error("unhandled error", "path", ctx.Path(), "error", err)
		message = "internal server error"
	}
	return ctx.Status(code).JSON(fiber.Map{"message": message})
}
