package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func scopeApp(role string, officeID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_role", role)
		if officeID != 0 {
			c.Locals("office_id", officeID)
		}
		return c.Next()
	})
	app.Use(OfficeScope())
	app.Get("/scope", func(c *fiber.Ctx) error {
		scoped := ScopedOffice(c)
		if scoped == nil {
			return c.SendString("all")
		}
		return c.SendString(fmt.Sprintf("%d", *scoped))
	})
	return app
}

func readScope(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	return resp.StatusCode, string(body[:n])
}

func TestOfficeScopePinsSecretaryToTokenOffice(t *testing.T) {
	status, body := readScope(t, scopeApp("secretary", 7), "/scope?office_id=9")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "7", body)
}

func TestOfficeScopeRejectsUnboundSecretary(t *testing.T) {
	status, _ := readScope(t, scopeApp("secretary", 0), "/scope")
	require.Equal(t, fiber.StatusForbidden, status)
}

func TestOfficeScopeHonoursQueryForAdmins(t *testing.T) {
	app := scopeApp("admin", 0)

	status, body := readScope(t, app, "/scope?office_id=3")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "3", body)

	status, body = readScope(t, app, "/scope")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "all", body)

	status, _ = readScope(t, app, "/scope?office_id=abc")
	require.Equal(t, fiber.StatusBadRequest, status)
}
