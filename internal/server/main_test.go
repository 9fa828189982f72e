package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/internal/config"
	"devlink/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a server backed by a fresh in-memory database and
// returns the Fiber app with all routes mounted. Rate limiting is bypassed
// via the test environment.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret-used-only-in-unit-tests",
		Env:       "test",
	}

	s := NewServerWithDeps(cfg, db, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func jsonRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates an account through the API and returns the bearer
// token for it.
func registerAndLogin(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", fiber.Map{
		"username": username,
		"fullname": "Test User " + username,
		"email":    email,
		"password": "correct-horse-battery",
		"gender":   "female",
	}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "register %s", username)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", fiber.Map{
		"username": username,
		"password": "correct-horse-battery",
	}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "login %s", username)

	var body struct {
		Success string `json:"success"`
		Token   string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

// createPost creates a post through the API and returns its id.
func createPost(t *testing.T, app *fiber.App, token, text string) uint {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/", fiber.Map{
		"text": text,
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &post)
	require.NotZero(t, post.ID)
	return post.ID
}

func postPath(id uint) string {
	return fmt.Sprintf("/api/posts/%d", id)
}
