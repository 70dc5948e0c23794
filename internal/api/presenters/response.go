package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"souschef/domain"
	"souschef/internal/utils/logger"
	"souschef/pkg/validation"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type passwordError struct {
	Reason string                  `json:"reason"`
	Rules  []validation.RuleResult `json:"rules"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes a failure. Validation problems are reported per field.
// Storage failures and any other 5xx cause are logged and replaced by a
// generic message.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	if err != nil && statusCode >= fiber.StatusInternalServerError {
		logger.FromContext(c.UserContext()).Error("http.internal_error", zap.Int("status", statusCode), zap.Error(err))
	}
	return c.Status(statusCode).JSON(Response{
		Status:  false,
		Message: message,
		Error:   errorBody(statusCode, err),
	})
}

func errorBody(statusCode int, err error) any {
	if err == nil {
		return nil
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fieldError{Field: ve.Field, Reason: ve.Err.Error()}
	}

	var pe *validation.PasswordPolicyError
	if errors.As(err, &pe) {
		return passwordError{Reason: domain.MessagePasswordPolicy, Rules: pe.Results()}
	}

	if statusCode >= fiber.StatusInternalServerError || errors.Is(err, domain.ErrPersistence) {
		return domain.MessageFailedPersistence
	}
	return err.Error()
}
