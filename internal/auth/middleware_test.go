package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskwatch/riskwatch/internal/directory"
	"github.com/riskwatch/riskwatch/internal/token"
)

func newGateApp(issuer *token.Issuer) *fiber.App {
	app := fiber.New()

	app.Get("/public", func(c *fiber.Ctx) error {
		return c.SendString("public")
	})

	app.Get("/private", RequireAuthenticated(issuer), func(c *fiber.Ctx) error {
		claims := ClaimsFromContext(c)
		return c.JSON(fiber.Map{"subject": claims.Subject})
	})

	app.Get("/admin", RequireRole(issuer, "Administrators"), func(c *fiber.Ctx) error {
		return c.SendString("admin")
	})

	return app
}

func issueFor(t *testing.T, issuer *token.Issuer, roles ...string) string {
	t.Helper()

	raw, _, err := issuer.Issue(&directory.Profile{
		ID:       "42",
		Username: "bob",
		Roles:    roles,
	})
	require.NoError(t, err)

	return raw
}

func gateRequest(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestGate_PublicRouteBypassesChecks(t *testing.T) {
	issuer := token.NewIssuer([]byte("key"), "riskwatch", "riskwatch-clients", time.Hour)
	app := newGateApp(issuer)

	resp := gateRequest(t, app, "/public", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGate_DenyMatrix(t *testing.T) {
	issuer := token.NewIssuer([]byte("key"), "riskwatch", "riskwatch-clients", time.Hour)
	app := newGateApp(issuer)

	expired := token.NewIssuer([]byte("key"), "riskwatch", "riskwatch-clients", -time.Minute)
	foreign := token.NewIssuer([]byte("other-key"), "riskwatch", "riskwatch-clients", time.Hour)
	wrongIssuer := token.NewIssuer([]byte("key"), "intruder", "riskwatch-clients", time.Hour)
	wrongAudience := token.NewIssuer([]byte("key"), "riskwatch", "other-clients", time.Hour)

	tests := []struct {
		name          string
		path          string
		authorization string
		wantStatus    int
	}{
		{"no header", "/private", "", http.StatusUnauthorized},
		{"not a bearer scheme", "/private", "Basic Zm9vOmJhcg==", http.StatusUnauthorized},
		{"empty bearer value", "/private", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "/private", "Bearer not.a.token", http.StatusUnauthorized},
		{"expired token", "/private", "Bearer " + issueFor(t, expired, "Users"), http.StatusUnauthorized},
		{"wrong signing key", "/private", "Bearer " + issueFor(t, foreign, "Users"), http.StatusUnauthorized},
		{"wrong issuer", "/private", "Bearer " + issueFor(t, wrongIssuer, "Users"), http.StatusUnauthorized},
		{"wrong audience", "/private", "Bearer " + issueFor(t, wrongAudience, "Users"), http.StatusUnauthorized},
		{"valid token", "/private", "Bearer " + issueFor(t, issuer, "Users"), http.StatusOK},
		{"role restricted without token", "/admin", "", http.StatusUnauthorized},
		{"role restricted with wrong role", "/admin", "Bearer " + issueFor(t, issuer, "Users"), http.StatusForbidden},
		{"role restricted with empty role set", "/admin", "Bearer " + issueFor(t, issuer), http.StatusForbidden},
		{"role restricted with matching role", "/admin", "Bearer " + issueFor(t, issuer, "Administrators", "Users"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := gateRequest(t, app, tt.path, tt.authorization)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestGate_CaseInsensitiveBearerScheme(t *testing.T) {
	issuer := token.NewIssuer([]byte("key"), "riskwatch", "riskwatch-clients", time.Hour)
	app := newGateApp(issuer)

	resp := gateRequest(t, app, "/private", "bearer "+issueFor(t, issuer, "Users"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClaimsFromContext_NilOnUnprotectedRoute(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		if ClaimsFromContext(c) != nil {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendStatus(http.StatusOK)
	})

	resp := gateRequest(t, app, "/open", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
