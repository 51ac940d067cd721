package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/pkg/jwt"
)

const testSecret = "test-secret-no-usar-en-prod"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/me", AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		return c.JSON(fiber.Map{"user_id": p.UserID, "email": p.Email, "roles": p.Roles})
	})
	app.Get("/admin", AuthMiddleware(testSecret), RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string, path string) (*nethttp.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func validToken(t *testing.T, roles ...string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "marketplace-test", jwt.TokenInput{
		UserID: "user-1",
		Email:  "ana@example.com",
		Active: true,
		Roles:  roles,
	}, 1)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := newTestApp(t)
	resp, body := doRequest(t, app, "", "/me")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "MISSING_TOKEN", e.Code)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := newTestApp(t)
	resp, body := doRequest(t, app, "Basic abc123", "/me")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "INVALID_TOKEN", e.Code)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := newTestApp(t)
	resp, body := doRequest(t, app, "Bearer no-es-un-jwt", "/me")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "INVALID_TOKEN", e.Code)
}

func TestAuthMiddleware_FirmaDeOtroSecreto(t *testing.T) {
	otro, err := jwt.Generate("otro-secreto", "marketplace-test", jwt.TokenInput{
		UserID: "user-1", Email: "ana@example.com", Active: true,
	}, 1)
	require.NoError(t, err)

	app := newTestApp(t)
	resp, _ := doRequest(t, app, "Bearer "+otro, "/me")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoExponeElPrincipal(t *testing.T) {
	app := newTestApp(t)
	resp, body := doRequest(t, app, "Bearer "+validToken(t, entity.RoleCustomer), "/me")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got struct {
		UserID string   `json:"user_id"`
		Email  string   `json:"email"`
		Roles  []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, []string{entity.RoleCustomer}, got.Roles)
}

func TestRequireRole_SinRolDevuelve403(t *testing.T) {
	app := newTestApp(t)
	resp, body := doRequest(t, app, "Bearer "+validToken(t, entity.RoleCustomer), "/admin")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "FORBIDDEN", e.Code)
}

func TestRequireRole_ConRolPasa(t *testing.T) {
	app := newTestApp(t)
	resp, _ := doRequest(t, app, "Bearer "+validToken(t, entity.RoleAdmin), "/admin")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_SinPrincipalDevuelve401(t *testing.T) {
	// RequireRole sin AuthMiddleware delante: principal anónimo → 401.
	app := fiber.New()
	app.Get("/solo", RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp, body := doRequest(t, app, "", "/solo")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "MISSING_ROLE", e.Code)
}

func TestGetPrincipal_RutaPublicaEsAnonimo(t *testing.T) {
	app := fiber.New()
	var got authz.Principal
	app.Get("/public", func(c *fiber.Ctx) error {
		got = GetPrincipal(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, _ := doRequest(t, app, "", "/public")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, authz.Anonymous(), got)
}
