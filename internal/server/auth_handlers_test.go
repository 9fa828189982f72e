package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGravatarURL(t *testing.T) {
	// Hash is over the trimmed, lowercased email.
	a := gravatarURL("JDoe@Example.com ")
	b := gravatarURL("jdoe@example.com")
	assert.Equal(t, a, b)
	assert.Contains(t, a, "s=200")
	assert.Contains(t, a, "r=pg")
	assert.Contains(t, a, "d=mm")

	assert.Equal(t, "http://www.gravatar.com/avatar/?d=mm", gravatarURL(""))
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, "M", normalizeGender("male"))
	assert.Equal(t, "M", normalizeGender(" Male "))
	assert.Equal(t, "F", normalizeGender("FEMALE"))
	assert.Equal(t, "N", normalizeGender("other"))
	assert.Equal(t, "N", normalizeGender(""))
}

func TestRegister(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", fiber.Map{
		"username": "jdoe",
		"fullname": "Jane Doe",
		"email":    "jdoe@example.com",
		"password": "supersecret1",
		"gender":   "female",
	}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "jdoe", body["username"])
	assert.Equal(t, "F", body["gender"])
	assert.Contains(t, body["avatar"], "gravatar.com/avatar/")
	// The password hash must never be serialized.
	_, leaked := body["password"]
	assert.False(t, leaked)
}

func TestRegister_ValidationErrors(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", fiber.Map{
		"username": "jd",
		"fullname": "",
		"email":    "not-an-email",
		"password": "short",
		"gender":   "",
	}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Username must be between 3 and 30 characters long", body.Errors["username"])
	assert.Equal(t, "Fullname should not be empty", body.Errors["fullname"])
	assert.Equal(t, "Email is invalid", body.Errors["email"])
	assert.Equal(t, "Password must be more than 8 characters long", body.Errors["password"])
	assert.Equal(t, "Gender should not be empty", body.Errors["gender"])
}

func TestRegister_DuplicateIdentity(t *testing.T) {
	_, app := newTestServer(t)
	registerAndLogin(t, app, "jdoe", "jdoe@example.com")

	t.Run("email taken", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", fiber.Map{
			"username": "otheruser",
			"fullname": "Other User",
			"email":    "jdoe@example.com",
			"password": "supersecret1",
			"gender":   "male",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Email already exists", body.Errors["email"])
	})

	t.Run("username taken", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", fiber.Map{
			"username": "jdoe",
			"fullname": "Other User",
			"email":    "other@example.com",
			"password": "supersecret1",
			"gender":   "male",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Username already exists", body.Errors["username"])
	})
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)
	registerAndLogin(t, app, "jdoe", "jdoe@example.com")

	t.Run("by username", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", fiber.Map{
			"username": "jdoe",
			"password": "correct-horse-battery",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "true", body["success"])
		assert.True(t, strings.HasPrefix(body["token"], "Bearer "))
	})

	t.Run("by email", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", fiber.Map{
			"username": "jdoe@example.com",
			"password": "correct-horse-battery",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", fiber.Map{
			"username": "jdoe",
			"password": "wrong-password",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Incorrect username or password", body.Errors["login"])
	})

	t.Run("unknown account gets the same message", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", fiber.Map{
			"username": "nobody",
			"password": "whatever-password",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Incorrect username or password", body.Errors["login"])
	})
}

func TestCurrentUser(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "jdoe", "jdoe@example.com")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/current", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "jdoe", body["username"])
	assert.Equal(t, "jdoe@example.com", body["email"])

	t.Run("requires auth", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/current", nil, ""))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
