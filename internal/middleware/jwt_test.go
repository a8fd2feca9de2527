package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestJWTProtectedStoresClaims(t *testing.T) {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/me", func(c *fiber.Ctx) error {
		require.Equal(t, uint(4), c.Locals("user_id"))
		require.Equal(t, "secretary", c.Locals("user_role"))
		require.Equal(t, uint(2), c.Locals("office_id"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	token := signToken(t, jwt.MapClaims{
		"sub":       "4",
		"role":      "Secretary",
		"office_id": 2,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestJWTProtectedAcceptsQueryTokenWithoutHeader(t *testing.T) {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/stream", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	token := signToken(t, jwt.MapClaims{"sub": "1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/stream?access_token="+token, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestJWTProtectedRejectsExpiredAndMissingTokens(t *testing.T) {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	expired := signToken(t, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Hour).Unix()})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
