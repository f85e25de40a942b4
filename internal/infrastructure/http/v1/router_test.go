package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devinventory/internal/domain/auth"
	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/domain/catalogs/itemtype"
	"devinventory/internal/domain/device"
	v1 "devinventory/internal/infrastructure/http/v1"
	"devinventory/internal/infrastructure/http/v1/handlers"
	"devinventory/internal/infrastructure/lock"
	"devinventory/internal/infrastructure/numerator"
	"devinventory/internal/infrastructure/storage/memory"
	"devinventory/pkg/logger"
)

type testServer struct {
	router *gin.Engine
	jwt    *auth.JWTService
	admin  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	itemTypes := itemtype.NewService(memory.NewItemTypeRepo(), nil)
	for _, d := range itemtype.Defaults {
		require.NoError(t, itemTypes.Create(ctx, itemtype.NewItemType(d.Code, d.Name)))
	}
	divisions := division.NewService(memory.NewDivisionRepo(), nil)
	for _, name := range division.Defaults {
		require.NoError(t, divisions.Create(ctx, division.NewDivision(name)))
	}

	repo := memory.NewDeviceRepo()
	devices := device.NewService(device.ServiceConfig{
		Repo:      repo,
		Allocator: numerator.New(repo),
		Locker:    lock.NewLocal(time.Second),
		Audit:     memory.NewAuditRecorder(),
		ItemTypes: itemTypes,
		Divisions: divisions,
	})

	jwtSvc := auth.NewJWTService(auth.DefaultJWTConfig("router-test"))
	router := v1.NewRouter(v1.RouterConfig{
		Logger:       logger.Default(),
		JWTValidator: jwtSvc,
		ItemTypes:    itemTypes,
		Divisions:    divisions,
		Devices:      devices,
		Health:       handlers.NewHealthHandler("test", "memory", nil),
	})

	s := &testServer{router: router, jwt: jwtSvc}
	s.admin = s.token(t, auth.TokenRequest{UserID: "admin-1", Email: "admin@example.com", IsAdmin: true})
	return s
}

func (s *testServer) token(t *testing.T, req auth.TokenRequest) string {
	t.Helper()
	tok, _, err := s.jwt.GenerateAccessToken(req)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func deviceBody(kodeItem, tanggal string) map[string]any {
	return map[string]any{
		"kodeItem":    kodeItem,
		"tanggalBeli": tanggal,
		"lokasi":      "Lantai 2",
		"devisi":      "it",
		"merk":        "Lenovo",
		"nilaiAset":   "8500000",
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/devices", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decode(t, w)["code"])

	w = s.do(t, http.MethodGet, "/api/v1/devices", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPermissionEnforced(t *testing.T) {
	s := newTestServer(t)
	reader := s.token(t, auth.TokenRequest{UserID: "u-2", Permissions: []string{"device:read"}})

	w := s.do(t, http.MethodGet, "/api/v1/devices", reader, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/devices", reader, deviceBody("07", "2024-03-01"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, w)["code"])
}

func TestDeviceLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/devices/next-code?kodeItem=07&tanggalBeli=2024-03-01", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "INV-07-001-24", decode(t, w)["kodeId"])

	w = s.do(t, http.MethodPost, "/api/v1/devices", s.admin, deviceBody("07", "2024-03-01"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "INV-07-001-24", created["kodeId"])
	assert.Equal(t, "Laptop", created["jenisBarang"])
	assert.Equal(t, "IT", created["devisi"])
	assert.Equal(t, "2024-03-01", created["tanggalBeli"])
	assert.Equal(t, "admin-1", created["createdBy"])
	deviceID := created["id"].(string)

	w = s.do(t, http.MethodPost, "/api/v1/devices", s.admin, deviceBody("07", "2024-11-20"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "INV-07-002-24", decode(t, w)["kodeId"])

	// the purchase date may not leave the year the kode ID was allocated in
	w = s.do(t, http.MethodPut, "/api/v1/devices/"+deviceID, s.admin, deviceBody("07", "2025-01-05"))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// item type and date within the year may change; the kode ID stays
	update := deviceBody("01", "2024-12-05")
	update["keterangan"] = "dipinjam"
	w = s.do(t, http.MethodPut, "/api/v1/devices/"+deviceID, s.admin, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, "INV-07-001-24", updated["kodeId"])
	assert.Equal(t, "dipinjam", updated["keterangan"])

	w = s.do(t, http.MethodGet, "/api/v1/devices/by-code/INV-07-001-24", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, deviceID, decode(t, w)["id"])

	w = s.do(t, http.MethodGet, "/api/v1/devices/"+deviceID+"/history", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 2)

	w = s.do(t, http.MethodDelete, "/api/v1/devices/"+deviceID, s.admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/devices/"+deviceID, s.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])
}

func TestCreateDevice_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/devices", s.admin, deviceBody("7", "2024-03-01"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	fields := body["details"].(map[string]any)["fields"].(map[string]any)
	assert.Contains(t, fields, "kodeItem")

	w = s.do(t, http.MethodPost, "/api/v1/devices", s.admin, deviceBody("07", "01/03/2024"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	missing := deviceBody("07", "2024-03-01")
	delete(missing, "merk")
	w = s.do(t, http.MethodPost, "/api/v1/devices", s.admin, missing)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "merk", decode(t, w)["details"].(map[string]any)["field"])

	w = s.do(t, http.MethodGet, "/api/v1/devices/not-a-uuid", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeviceListSummaryValues(t *testing.T) {
	s := newTestServer(t)

	for _, code := range []string{"01", "01", "05"} {
		w := s.do(t, http.MethodPost, "/api/v1/devices", s.admin, deviceBody(code, "2024-06-01"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/api/v1/devices?jenisBarang=Monitor&kondisi=all", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.EqualValues(t, 2, list["totalCount"])

	w = s.do(t, http.MethodGet, "/api/v1/devices/summary", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode(t, w)
	assert.EqualValues(t, 3, summary["total"])
	assert.Equal(t, "25500000", summary["totalAssetValue"])

	w = s.do(t, http.MethodGet, "/api/v1/devices/values/jenisBarang", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"Monitor", "Mouse"}, decode(t, w)["items"])

	w = s.do(t, http.MethodGet, "/api/v1/devices/values/gambar", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemTypeRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/catalog/item-types", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.EqualValues(t, len(itemtype.Defaults), list["totalCount"])
	first := list["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "01", first["code"])

	w = s.do(t, http.MethodPost, "/api/v1/catalog/item-types", s.admin, map[string]any{"code": "18", "name": "Proyektor"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/catalog/item-types", s.admin, map[string]any{"code": "18", "name": "Lagi"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_ENTRY", decode(t, w)["code"])

	w = s.do(t, http.MethodGet, "/api/v1/catalog/item-types/by-code/18", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Proyektor", decode(t, w)["name"])

	w = s.do(t, http.MethodGet, "/api/v1/catalog/item-types/by-code/99", s.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/catalog/item-types", s.admin, map[string]any{"code": "A1", "name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDivisionRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/catalog/divisions", s.admin, map[string]any{"name": "legal"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "LEGAL", decode(t, w)["code"])

	w = s.do(t, http.MethodPost, "/api/v1/catalog/divisions", s.admin, map[string]any{"name": "Legal"})
	assert.Equal(t, http.StatusConflict, w.Code)
}
