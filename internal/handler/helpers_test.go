package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/middleware"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    json.RawMessage   `json:"meta"`
	Errors  map[string]string `json:"errors"`
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, target))
}

// authenticated fakes JWTProtected and applies the office scope.
func authenticated(app *fiber.App, prefix, role string, officeID uint) fiber.Router {
	return app.Group(prefix, func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_role", role)
		if officeID != 0 {
			c.Locals("office_id", officeID)
		}
		return c.Next()
	}, middleware.OfficeScope())
}
