package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesDomainCollectors(t *testing.T) {
	app := fiber.New()
	app.Get("/metrics", MetricsHandler())

	StudentsArchived().WithLabelValues("payment").Inc()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `drivedesk_students_archived_total{trigger="payment"}`)
	require.Contains(t, string(body), "drivedesk_upload_latency_seconds")
}
