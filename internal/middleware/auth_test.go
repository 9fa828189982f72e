package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devlink/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-used-only-in-unit-tests"

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	app.Get("/protected", AuthRequired(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app
}

func signToken(t *testing.T, mutate func(jwt.MapClaims)) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"id":       float64(7),
		"username": "jdoe",
		"avatar":   "http://www.gravatar.com/avatar/x",
		"iss":      TokenIssuer,
		"aud":      TokenAudience,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthRequired_ValidToken(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, nil))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{
			"expired token",
			"Bearer " + signToken(t, func(c jwt.MapClaims) {
				c["exp"] = time.Now().Add(-time.Minute).Unix()
			}),
		},
		{
			"wrong issuer",
			"Bearer " + signToken(t, func(c jwt.MapClaims) {
				c["iss"] = "someone-else"
			}),
		},
		{
			"wrong audience",
			"Bearer " + signToken(t, func(c jwt.MapClaims) {
				c["aud"] = "other-client"
			}),
		},
		{
			"missing id claim",
			"Bearer " + signToken(t, func(c jwt.MapClaims) {
				delete(c, "id")
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthRequired_WrongSigningKey(t *testing.T) {
	app := testApp(t)

	claims := jwt.MapClaims{
		"id":  float64(7),
		"iss": TokenIssuer,
		"aud": TokenAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("attacker-key"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", forged))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
