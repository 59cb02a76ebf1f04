package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h echo.HandlerFunc, target string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/ping", h)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestRequestLogger_Success(t *testing.T) {
	entry := serve(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}, "/ping?x=1")

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ping", entry["uri"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "x=1", entry["query"])
}

func TestRequestLogger_ErrorLevelFollowsStatus(t *testing.T) {
	entry := serve(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad")
	}, "/ping")
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(400), entry["status"])

	entry = serve(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	}, "/ping")
	assert.Equal(t, "ERROR", entry["level"])
}
