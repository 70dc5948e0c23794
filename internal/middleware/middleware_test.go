package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"souschef/domain"
	"souschef/internal/utils/metrics"
)

type authenticatorFunc func(ctx context.Context, token string) (domain.Principal, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	return f(ctx, token)
}

func newAuthApp(auth Authenticator) *fiber.App {
	app := fiber.New()
	m := NewMiddleware(zap.NewNop(), nil)
	app.Get("/me", m.AuthMiddleware(auth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"email":   c.Locals("email"),
		})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	auth := authenticatorFunc(func(_ context.Context, token string) (domain.Principal, error) {
		if token != "good" {
			return domain.Principal{}, domain.ErrTokenInvalid
		}
		return domain.Principal{UserID: "u1", Email: "u1@example.com", Role: "user"}, nil
	})
	app := newAuthApp(auth)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"empty bearer", "Bearer  ", fiber.StatusUnauthorized},
		{"rejected token", "Bearer bad", fiber.StatusUnauthorized},
		{"valid token", "Bearer good", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewMiddleware(zap.New(core), nil)

	app := fiber.New()
	app.Use(m.RequestLogger())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, "req-42", resp.Header.Get(fiber.HeaderXRequestID))
	entries := logs.FilterMessage("http.request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.EqualValues(t, fiber.StatusNoContent, fields["status"])
	assert.Equal(t, "/ping", fields["path"])
}

func TestRequestLogger_RecordsStatusFromReturnedError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reg := metrics.New()
	m := NewMiddleware(zap.New(core), reg)

	app := fiber.New()
	app.Use(m.RequestLogger())
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("http.request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, fiber.StatusNotFound, entries[0].ContextMap()["status"])

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `souschef_http_requests_total{method="GET",route="/items/:id",status="404"} 1`)
}
