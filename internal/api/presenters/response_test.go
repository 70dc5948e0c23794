package presenters

import (
	"encoding/json"
	"errors"
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
	"souschef/internal/utils/logger"
)

func errorApp(statusCode int, err error, log *zap.Logger) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.SetUserContext(logger.NewContext(c.UserContext(), log))
		return ErrorResponse(c, statusCode, "failed", err)
	})
	return app
}

func decode(t *testing.T, app *fiber.App) (int, Response) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var r Response
	require.NoError(t, json.Unmarshal(raw, &r), string(raw))
	return resp.StatusCode, r
}

func TestErrorResponse_HidesInternalCause(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	cause := errors.New("upload receipt: s3 bucket souschef-scans unreachable")

	status, r := decode(t, errorApp(fiber.StatusInternalServerError, cause, zap.New(core)))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.False(t, r.Status)
	assert.Equal(t, domain.MessageFailedPersistence, r.Error)

	entries := logs.FilterMessage("http.internal_error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, cause.Error(), entries[0].ContextMap()["error"])
}

func TestErrorResponse_ClientErrorsKeepReason(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	status, r := decode(t, errorApp(fiber.StatusConflict, domain.ErrProfileExists, zap.New(core)))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, domain.ErrProfileExists.Error(), r.Error)

	_, r = decode(t, errorApp(fiber.StatusBadRequest, domain.NewValidationError("name", domain.ErrMissingField), zap.New(core)))
	assert.Equal(t, map[string]any{"field": "name", "reason": domain.ErrMissingField.Error()}, r.Error)

	assert.Zero(t, logs.Len())
}
