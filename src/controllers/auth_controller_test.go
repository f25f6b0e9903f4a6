package controllers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidromero/Backend-LinkHub/src/controllers"
	"github.com/davidromero/Backend-LinkHub/src/middleware"
	"github.com/davidromero/Backend-LinkHub/src/repository"
	"github.com/davidromero/Backend-LinkHub/src/routes"
)

func newAuthApp(t *testing.T) *testApp {
	t.Helper()
	store := repository.NewMemoryStore()
	users := store.UserRepository()
	controllers.Init(slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	app := fiber.New()
	protect := middleware.Protect(users, testSecret)
	routes.AuthRoutes(app, controllers.NewAuthController(users, testSecret), protect)

	return &testApp{app: app, store: store, users: users}
}

func TestRegisterLoginMe(t *testing.T) {
	ta := newAuthApp(t)

	resp := ta.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"firstName": "Alice",
		"lastName":  "Anderson",
		"email":     "Alice@Example.com",
		"password":  "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[map[string]json.RawMessage](t, resp)
	require.Contains(t, created, "token")
	require.Contains(t, created, "user")

	// The stored email is lowercased; login is case-insensitive on input.
	resp = ta.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeJSON[struct {
		Token string `json:"token"`
	}](t, resp)
	require.NotEmpty(t, login.Token)

	resp = ta.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, "alice@example.com", me["email"])
	// The password hash never leaves the server.
	assert.NotContains(t, me, "password")
}

func TestRegisterValidation(t *testing.T) {
	ta := newAuthApp(t)

	resp := ta.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"firstName": "Alice", "lastName": "Anderson", "email": "a@b.c", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ta.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"firstName": "", "lastName": "Anderson", "email": "a@b.c", "password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ta := newAuthApp(t)
	body := fiber.Map{
		"firstName": "Alice", "lastName": "Anderson",
		"email": "alice@example.com", "password": "hunter22",
	}

	resp := ta.do(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ta.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	ta := newAuthApp(t)
	resp := ta.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"firstName": "Alice", "lastName": "Anderson",
		"email": "alice@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ta.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msg := decodeJSON[map[string]string](t, resp)
	assert.Equal(t, "Invalid credentials", msg["message"])

	resp = ta.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "nobody@example.com", "password": "whatever",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msg = decodeJSON[map[string]string](t, resp)
	assert.Equal(t, "Invalid credentials", msg["message"])
}
