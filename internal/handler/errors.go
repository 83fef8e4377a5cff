package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventrsvp-backend/internal/apperror"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	"go.uber.org/zap"
)

// respondError writes err as a JSON error response. Internal failures are
// logged and reported without detail.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := apperror.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(models.ErrorResponse(apperror.PublicMessage(err)))
}

// ErrorHandler is the fiber-wide fallback for errors returned by handlers
// and middleware.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(models.ErrorResponse(fe.Message))
		}
		return respondError(c, log, err)
	}
}
