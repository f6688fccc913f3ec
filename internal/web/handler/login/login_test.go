package login

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskwatch/riskwatch/internal/auth"
	"github.com/riskwatch/riskwatch/internal/config"
	"github.com/riskwatch/riskwatch/internal/directory"
	"github.com/riskwatch/riskwatch/internal/token"
)

// ghostDirectory accepts any credentials but never resolves a profile.
type ghostDirectory struct{}

func (ghostDirectory) ValidateCredentials(string, string) bool { return true }
func (ghostDirectory) GetUserInfo(string) *directory.Profile   { return nil }

func newLoginApp(t *testing.T, dir directory.Directory) *fiber.App {
	t.Helper()

	issuer := token.NewIssuer([]byte("key"), "riskwatch", "riskwatch-clients", 8*time.Hour)
	app := fiber.New()

	svc := Service{}
	require.NoError(t, svc.Init(app, &config.Config{}, auth.NewService(dir, issuer)))

	return app
}

func postLogin(t *testing.T, app *fiber.App, body any) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, Path, bytes.NewReader(encoded))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestLogin_AdminAgainstStaticDirectory(t *testing.T) {
	app := newLoginApp(t, directory.NewStatic())

	resp := postLogin(t, app, Request{Username: "admin", Password: "password"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result auth.Result
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.NotEmpty(t, result.Token)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), result.Expiration, time.Minute)

	require.NotNil(t, result.User)
	assert.Equal(t, "admin", result.User.Username)
	assert.ElementsMatch(t, []string{"Administrators", "Users"}, result.User.Roles)
}

func TestLogin_Outcomes(t *testing.T) {
	app := newLoginApp(t, directory.NewStatic())

	tests := []struct {
		name        string
		body        any
		wantStatus  int
		wantMessage string
	}{
		{"wrong password", Request{Username: "user", Password: "nope"}, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown user", Request{Username: "mallory", Password: "password"}, http.StatusUnauthorized, "Invalid credentials"},
		{"missing password", Request{Username: "admin"}, http.StatusBadRequest, "Username and password are required"},
		{"missing username", Request{Password: "password"}, http.StatusBadRequest, "Username and password are required"},
		{"empty body", Request{}, http.StatusBadRequest, "Username and password are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postLogin(t, app, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]string
			defer func() { _ = resp.Body.Close() }()
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestLogin_ProfileLookupFailure(t *testing.T) {
	app := newLoginApp(t, ghostDirectory{})

	resp := postLogin(t, app, Request{Username: "phantom", Password: "secret"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "User not found", body["message"])
}

func TestLogin_MalformedBody(t *testing.T) {
	app := newLoginApp(t, directory.NewStatic())

	req := httptest.NewRequest(http.MethodPost, Path, bytes.NewReader([]byte("{not json")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
