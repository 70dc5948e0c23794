package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"souschef/domain"
	"souschef/pkg/capture"
	"souschef/pkg/validation"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var policy *validation.PasswordPolicyError
	switch {
	case domain.IsValidationError(err), errors.As(err, &policy):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrSignIn),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrSignUp):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrScanSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, capture.ErrInvalidTransition),
		errors.Is(err, capture.ErrSessionClosed),
		errors.Is(err, capture.ErrStaleCapture),
		errors.Is(err, capture.ErrSlotFull),
		errors.Is(err, capture.ErrCameraReleased):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidImageFormat):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrMalformedRecipe):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
