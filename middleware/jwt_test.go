package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{JWTKey: "unit-secret", JWTTTLHours: 1}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestGenerateAndParseJWT(t *testing.T) {
	useConfig(t)

	token, err := GenerateJWT(42, "Jo", "student", "jo@lms.test")
	require.NoError(t, err)

	id, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	config.AppConfig.JWTKey = "rotated"
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	useConfig(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 1,
		"exp":    time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("unit-secret"))
	require.NoError(t, err)
	_, err = ParseJWT(signed)
	assert.Error(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	signed, err = noSubject.SignedString([]byte("unit-secret"))
	require.NoError(t, err)
	_, err = ParseJWT(signed)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	useConfig(t)

	app := fiber.New()
	app.Get("/private", JWTMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": c.Locals("userId")})
	})

	token, err := GenerateJWT(7, "Jo", "student", "jo@lms.test")
	require.NoError(t, err)

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Token " + token, http.StatusUnauthorized},
		{"Bearer nonsense", http.StatusUnauthorized},
		{"Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.header)
	}
}

func TestErrorHandlerUsesEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
