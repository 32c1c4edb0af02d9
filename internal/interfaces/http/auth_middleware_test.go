package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
	apphttp "github.com/tu-usuario/tailor-pro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/tailor-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tailor-pro-test"
	testExpMin    = 60
)

// testStore levanta un store hidratado con los usuarios dados.
func testStore(t *testing.T, users ...entity.User) *store.Store {
	t.Helper()
	s := store.New()
	require.NoError(t, s.Hydrate(&entity.State{Users: users}))
	return s
}

// buildTestApp construye una app Fiber mínima con AuthMiddleware +
// RequirePermission y un handler dummy que devuelve 200 si pasa ambos.
func buildTestApp(s *store.Store, tag permission.Tag) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, s),
		apphttp.RequirePermission(tag),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"user": apphttp.GetUser(c).Username,
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario dado.
func tokenFor(t *testing.T, u entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp(testStore(t), permission.ViewDashboard)
	resp := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenMalformado(t *testing.T) {
	app := buildTestApp(testStore(t), permission.ViewDashboard)
	resp := doRequest(t, app, "Bearer esto-no-es-un-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token válido de una cuenta ya eliminada: 401 en la siguiente petición.
func TestAuthMiddleware_CuentaEliminada(t *testing.T) {
	ghost := entity.User{ID: "U9", Username: "ghost", Role: entity.RoleAdmin, Active: true}
	app := buildTestApp(testStore(t), permission.ViewDashboard)
	resp := doRequest(t, app, tokenFor(t, ghost))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Cuenta desactivada con token vigente: 403, el token no la revive.
func TestAuthMiddleware_CuentaDesactivada(t *testing.T) {
	u := entity.User{ID: "U1", Username: "sara", Role: entity.RoleAdmin, Active: false}
	app := buildTestApp(testStore(t, u), permission.ViewDashboard)
	resp := doRequest(t, app, tokenFor(t, u))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_OK(t *testing.T) {
	u := entity.User{ID: "U1", Username: "owner", Role: entity.RoleAdmin, Active: true}
	app := buildTestApp(testStore(t, u), permission.ViewDashboard)
	resp := doRequest(t, app, tokenFor(t, u))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "owner", out["user"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// El permiso se resuelve contra el usuario vivo, no contra el rol del token:
// un Staff con token viejo no gana permisos por el claim.
func TestRequirePermission_StaffSinPermiso(t *testing.T) {
	u := entity.User{ID: "U1", Username: "sara", Role: entity.RoleStaff, Active: true}
	app := buildTestApp(testStore(t, u), permission.ManageUsers)
	resp := doRequest(t, app, tokenFor(t, u))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Lista explícita de permisos: manda sobre el rol aunque el rol sea Admin.
func TestRequirePermission_ListaExplicitaRecorta(t *testing.T) {
	u := entity.User{
		ID: "U1", Username: "owner", Role: entity.RoleAdmin, Active: true,
		Permissions: []string{string(permission.ViewDashboard)},
	}
	app := buildTestApp(testStore(t, u), permission.ManageUsers)
	resp := doRequest(t, app, tokenFor(t, u))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequirePermission_PermisoExplicitoConcedido(t *testing.T) {
	u := entity.User{
		ID: "U1", Username: "sara", Role: entity.RoleStaff, Active: true,
		Permissions: []string{string(permission.ViewAllOrders)},
	}
	app := buildTestApp(testStore(t, u), permission.ViewAllOrders)
	resp := doRequest(t, app, tokenFor(t, u))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
