package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskwatch/riskwatch/internal/config"
	"github.com/riskwatch/riskwatch/internal/db/models"
	"github.com/riskwatch/riskwatch/internal/directory"
	"github.com/riskwatch/riskwatch/internal/token"
)

var errStoreDown = errors.New("store down")

// stubStore provides canned rows and records mutations.
type stubStore struct {
	failing bool

	addedDevice   *models.NewDevice
	updatedID     string
	updatedStatus string
}

func (s *stubStore) TransactionStats() ([]models.TransactionStatRow, error) {
	if s.failing {
		return nil, errStoreDown
	}

	return []models.TransactionStatRow{
		{
			ID: 1, Title: "Payments", Count: 1200, Type: "financial",
			Label1: "Success", Value1: 1100, Color1: "#4caf50",
			Label2: "Pending", Value2: 60, Color2: "#ff9800",
			Label3: "Failed", Value3: 40, Color3: "#f44336",
		},
	}, nil
}

func (s *stubStore) Devices() ([]models.DeviceRow, error) {
	if s.failing {
		return nil, errStoreDown
	}

	return []models.DeviceRow{
		{ID: "srv-1", Name: "core-db", Type: "database", Status: "online", Uptime: "12d 4h 9m"},
	}, nil
}

func (s *stubStore) HourlyTransactions() ([]models.HourlyTransactionRow, error) {
	if s.failing {
		return nil, errStoreDown
	}

	return []models.HourlyTransactionRow{{Hour: 9, Count: 340}, {Hour: 10, Count: 512}}, nil
}

func (s *stubStore) SuccessRate() (*models.SuccessRateRow, error) {
	if s.failing {
		return nil, errStoreDown
	}

	return &models.SuccessRateRow{Rate: 99.2, Period: "24h"}, nil
}

func (s *stubStore) ServiceLevel() (*models.ServiceLevelRow, error) {
	if s.failing {
		return nil, errStoreDown
	}

	return &models.ServiceLevelRow{Level: 99.9, Target: 99.5}, nil
}

func (s *stubStore) AddDevice(device *models.NewDevice) (*models.DeviceRow, error) {
	if s.failing {
		return nil, errStoreDown
	}

	s.addedDevice = device

	return &models.DeviceRow{
		ID:        "srv-2",
		Name:      device.Name,
		Type:      device.Type,
		Status:    device.Status,
		LastCheck: device.LastCheck,
		Uptime:    device.Uptime,
	}, nil
}

func (s *stubStore) UpdateDeviceStatus(id, status string) error {
	if s.failing {
		return errStoreDown
	}

	s.updatedID = id
	s.updatedStatus = status

	return nil
}

func newTestApp(t *testing.T, store *stubStore, issuer *token.Issuer) *fiber.App {
	t.Helper()

	app := fiber.New()
	svc := Service{}
	require.NoError(t, svc.Init(app, &config.Config{}, store, issuer))

	return app
}

func newIssuer() *token.Issuer {
	return token.NewIssuer([]byte("key"), "riskwatch", "riskwatch-clients", time.Hour)
}

func bearerFor(t *testing.T, issuer *token.Issuer, roles ...string) string {
	t.Helper()

	raw, _, err := issuer.Issue(&directory.Profile{ID: "1", Username: "bob", Roles: roles})
	require.NoError(t, err)

	return "Bearer " + raw
}

func doRequest(t *testing.T, app *fiber.App, method, path, authorization string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestGetTransactionStats_ShapesSegments(t *testing.T) {
	app := newTestApp(t, &stubStore{}, newIssuer())

	resp := doRequest(t, app, http.MethodGet, Path+"/transactions", bearerFor(t, newIssuer(), "Users"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats []TransactionStat
	decodeBody(t, resp, &stats)

	require.Len(t, stats, 1)
	assert.Equal(t, "1", stats[0].ID)
	assert.Equal(t, "Payments", stats[0].Title)
	assert.Equal(t, int64(1200), stats[0].Count)
	require.Len(t, stats[0].Segments, 3)
	assert.Equal(t, Segment{Label: "Success", Value: 1100, Color: "#4caf50"}, stats[0].Segments[0])
	assert.Equal(t, Segment{Label: "Failed", Value: 40, Color: "#f44336"}, stats[0].Segments[2])
}

func TestReads_RequireAuthentication(t *testing.T) {
	app := newTestApp(t, &stubStore{}, newIssuer())

	paths := []string{
		Path + "/transactions",
		Path + "/devices",
		Path + "/hourly-transactions",
		Path + "/success-rate",
		Path + "/service-level",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestReads_AnyRoleSucceeds(t *testing.T) {
	app := newTestApp(t, &stubStore{}, newIssuer())

	resp := doRequest(t, app, http.MethodGet, Path+"/devices", bearerFor(t, newIssuer(), "Users"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var devices []models.DeviceRow
	decodeBody(t, resp, &devices)
	require.Len(t, devices, 1)
	assert.Equal(t, "core-db", devices[0].Name)
}

func TestAddDevice_RequiresAdminRole(t *testing.T) {
	app := newTestApp(t, &stubStore{}, newIssuer())
	body := DeviceRequest{Name: "edge-1", Type: "gateway", Status: "online"}

	resp := doRequest(t, app, http.MethodPost, Path+"/devices", bearerFor(t, newIssuer(), "Users"), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, Path+"/devices", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAddDevice_DefaultsUsageToZero(t *testing.T) {
	store := &stubStore{}
	app := newTestApp(t, store, newIssuer())
	admin := bearerFor(t, newIssuer(), "Administrators", "Users")

	resp := doRequest(t, app, http.MethodPost, Path+"/devices",
		admin, DeviceRequest{Name: "edge-1", Type: "gateway", Status: "online"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, store.addedDevice)
	assert.Equal(t, "edge-1", store.addedDevice.Name)
	assert.Zero(t, store.addedDevice.CPUUsage)
	assert.Zero(t, store.addedDevice.MemoryUsage)
	assert.Zero(t, store.addedDevice.DiskUsage)
	assert.Equal(t, "0d 0h 0m", store.addedDevice.Uptime)
	assert.WithinDuration(t, time.Now(), store.addedDevice.LastCheck, time.Minute)
}

func TestAddDevice_RejectsIncompleteBody(t *testing.T) {
	app := newTestApp(t, &stubStore{}, newIssuer())
	admin := bearerFor(t, newIssuer(), "Administrators")

	resp := doRequest(t, app, http.MethodPost, Path+"/devices", admin, DeviceRequest{Name: "edge-1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateDeviceStatus(t *testing.T) {
	store := &stubStore{}
	app := newTestApp(t, store, newIssuer())
	admin := bearerFor(t, newIssuer(), "Administrators")

	resp := doRequest(t, app, http.MethodPut, Path+"/devices/srv-1/status", admin, StatusRequest{Status: "offline"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "srv-1", store.updatedID)
	assert.Equal(t, "offline", store.updatedStatus)
}

func TestStoreFailure_YieldsGenericError(t *testing.T) {
	app := newTestApp(t, &stubStore{failing: true}, newIssuer())
	admin := bearerFor(t, newIssuer(), "Administrators")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"transactions", http.MethodGet, Path + "/transactions", nil},
		{"devices", http.MethodGet, Path + "/devices", nil},
		{"hourly", http.MethodGet, Path + "/hourly-transactions", nil},
		{"success rate", http.MethodGet, Path + "/success-rate", nil},
		{"service level", http.MethodGet, Path + "/service-level", nil},
		{"add device", http.MethodPost, Path + "/devices", DeviceRequest{Name: "a", Type: "b", Status: "c"}},
		{"update status", http.MethodPut, Path + "/devices/srv-1/status", StatusRequest{Status: "offline"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, tt.method, tt.path, admin, tt.body)
			require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

			var body map[string]string
			decodeBody(t, resp, &body)
			assert.Equal(t, "Internal server error", body["message"])
		})
	}
}
