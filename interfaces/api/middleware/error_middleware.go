package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

// ErrorHandler turns errors that escape the handlers into {message} bodies,
// never a raw stack trace.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		logger.ErrorContext(c.UserContext(), "Unhandled request error", "error", err, "status", code)

		return utils.ErrorResponse(c, code, message)
	}
}
