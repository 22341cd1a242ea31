package transport

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mystarhq/notify-api/internal/domain"
	"go.uber.org/zap"
)

// ErrorHandler renders every error as the storefront contract expects:
// a JSON body with success=false and an error string, never an
// unhandled fault.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFromError(err)

		logger.Error("request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}

func statusFromError(err error) int {
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	default:
		// Delivery, configuration, and unexpected faults all surface
		// as 500 with the detail preserved in the error string.
		return fiber.StatusInternalServerError
	}
}
