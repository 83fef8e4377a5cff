package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventrsvp-backend/internal/apperror"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthenticator map[string]models.Identity

func (s stubAuthenticator) Authenticate(token string) (*models.Identity, error) {
	identity, ok := s[token]
	if !ok {
		return nil, apperror.Auth("Invalid token")
	}
	return &identity, nil
}

func newTestApp() *fiber.App {
	auth := stubAuthenticator{
		"user-token":  {UserID: 1},
		"admin-token": {UserID: 2, IsAdmin: true},
	}

	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop()))
	protected := app.Group("/p", AuthMiddleware(auth, zap.NewNop()))
	protected.Get("/me", func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"user_id": identity.UserID, "token": TokenFrom(c)})
	})
	protected.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantBody: "Authorization header is required"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantBody: "Invalid authorization header format"},
		{name: "no token", header: "Bearer", wantStatus: http.StatusUnauthorized, wantBody: "Invalid authorization header format"},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
		{name: "valid token", header: "Bearer user-token", wantStatus: http.StatusOK, wantBody: `"user_id":1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, "/p/me", tt.header)
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, body, tt.wantBody)
		})
	}
}

func TestAuthMiddlewareExposesToken(t *testing.T) {
	status, body := doRequest(t, newTestApp(), "/p/me", "Bearer user-token")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"token":"user-token"`)
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApp()

	status, body := doRequest(t, app, "/p/admin", "Bearer user-token")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, "Admin access required")

	status, body = doRequest(t, app, "/p/admin", "Bearer admin-token")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}
