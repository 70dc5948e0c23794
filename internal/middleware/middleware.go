package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"souschef/domain"
	"souschef/internal/api/presenters"
	"souschef/internal/utils/logger"
	"souschef/internal/utils/metrics"
)

type (
	Authenticator interface {
		Authenticate(ctx context.Context, token string) (domain.Principal, error)
	}

	Middleware interface {
		CORSMiddleware() fiber.Handler
		RequestLogger() fiber.Handler
		AuthMiddleware(auth Authenticator) fiber.Handler
	}

	middleware struct {
		log     *zap.Logger
		metrics *metrics.Metrics
	}
)

// NewMiddleware builds the shared middleware. m may be nil.
func NewMiddleware(log *zap.Logger, m *metrics.Metrics) Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &middleware{log: log, metrics: m}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// RequestLogger attaches a request-scoped zap logger to the user context,
// logs the outcome of every request and records it in the HTTP metrics.
// Handler errors are rendered here so the logged status is the one sent.
func (m *middleware) RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		log := m.log.With(zap.String("request_id", requestID))
		c.SetUserContext(logger.NewContext(c.UserContext(), log))

		// the error handler writes the final status, so run it before reading
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		m.metrics.ObserveRequest(c.Method(), c.Route().Path, status, elapsed)
		log.Info("http.request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Int64("duration_ms", elapsed.Milliseconds()),
		)
		return nil
	}
}

func (m *middleware) AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		principal, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", principal.UserID)
		c.Locals("email", principal.Email)
		c.Locals("role", principal.Role)
		c.SetUserContext(logger.NewContext(c.UserContext(),
			logger.FromContext(c.UserContext()).With(zap.String("user_id", principal.UserID)),
		))
		return c.Next()
	}
}
