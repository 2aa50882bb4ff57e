package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/config"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New()
	app.Get("/protected", JWTProtected(cfg), func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.JSON(fiber.Map{"user_id": userID.String()})
	})
	return app
}

func signToken(t *testing.T, secret string, expiry time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "ada@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(expiry).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func errorMessage(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	assert.True(t, resp.Error)
	return resp.Message
}

func TestJWTProtected_MissingToken(t *testing.T) {
	app := protectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, errorMessage(t, resp.Body), "missing or malformed")
}

func TestJWTProtected_MalformedToken(t *testing.T) {
	app := protectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtected_ExpiredTokenIsDistinguished(t *testing.T) {
	app := protectedApp(t)

	token := signToken(t, testSecret, -1*time.Minute)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, errorMessage(t, resp.Body), "expired")
}

func TestJWTProtected_WrongSignature(t *testing.T) {
	app := protectedApp(t)

	token := signToken(t, "other-secret", time.Hour)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, errorMessage(t, resp.Body), "invalid token")
}

func TestJWTProtected_ValidTokenReachesHandler(t *testing.T) {
	app := protectedApp(t)

	token := signToken(t, testSecret, time.Hour)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_, err = uuid.Parse(body["user_id"])
	assert.NoError(t, err)
}
