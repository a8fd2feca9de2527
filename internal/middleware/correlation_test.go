package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func correlationApp() *fiber.App {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetCorrelationID(c))
	})
	return app
}

func TestCorrelationIDReusesClientHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationHeader, "lesson-sync-42")

	resp, err := correlationApp().Test(req)
	require.NoError(t, err)
	require.Equal(t, "lesson-sync-42", resp.Header.Get(CorrelationHeader))
}

func TestCorrelationIDFallsBackToRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req_7")

	resp, err := correlationApp().Test(req)
	require.NoError(t, err)
	require.Equal(t, "req_7", resp.Header.Get(CorrelationHeader))
}

func TestCorrelationIDReplacesMalformedIDs(t *testing.T) {
	for _, incoming := range []string{"bad id\nforged=1", strings.Repeat("a", maxCorrelationLength+1)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(CorrelationHeader, incoming)

		resp, err := correlationApp().Test(req)
		require.NoError(t, err)
		issued := resp.Header.Get(CorrelationHeader)
		require.NotEqual(t, incoming, issued)
		require.Len(t, issued, 36)
	}
}
