package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/corray333/tutti-amici/internal/config"
	memoryrepo "github.com/corray333/tutti-amici/internal/dal/repositories/document/memory"
	"github.com/corray333/tutti-amici/internal/service/models/collection"
	"github.com/corray333/tutti-amici/internal/service/models/document"
	"github.com/corray333/tutti-amici/internal/service/services/diagsvc"
	"github.com/corray333/tutti-amici/internal/service/services/menusvc"
	"github.com/corray333/tutti-amici/internal/service/services/ordersvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.SetDefaults()
	os.Exit(m.Run())
}

type brokenRepo struct{}

func (brokenRepo) Create(context.Context, collection.Kind, any) (string, error) {
	return "", errors.New("connection reset by peer")
}

func (brokenRepo) Find(context.Context, collection.Kind, *document.Filter) ([]document.Document, error) {
	return nil, errors.New("connection reset by peer")
}

func (brokenRepo) ListCollections(context.Context, int) ([]string, error) {
	return nil, errors.New("server selection timeout")
}

type countingRepo struct {
	*memoryrepo.DocumentRepository
	creates int
}

func (r *countingRepo) Create(ctx context.Context, kind collection.Kind, record any) (string, error) {
	r.creates++

	return r.DocumentRepository.Create(ctx, kind, record)
}

type testServer struct {
	handler http.Handler
	repo    *countingRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := &countingRepo{DocumentRepository: memoryrepo.NewDocumentRepository()}
	transport := NewHTTPTransport(
		menusvc.MustNewMenuService(menusvc.WithDocumentRepository(repo)),
		ordersvc.MustNewOrderService(ordersvc.WithDocumentRepository(repo)),
		diagsvc.MustNewDiagnosticsService(
			diagsvc.WithDocumentRepository(repo),
			diagsvc.WithConfigPresence(true, true),
		),
	)
	transport.RegisterRoutes()

	return &testServer{handler: transport.Handler(), repo: repo}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[map[string]string](t, rec)
	require.NotEmpty(t, body["id"])

	return body["id"]
}

const validOrderBody = `{
	"items": [{"menu_item_id": "m1", "name": "Margherita", "price": 12.5, "quantity": 2}],
	"subtotal": 25,
	"tax": 2.5,
	"total": 27.5,
	"customer": {"name": "Ada", "phone": "555-0101", "address": "Via Roma 1"}
}`

func TestWelcome(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"message": welcomeMessage}, decode[map[string]string](t, rec))
}

func TestCreateAndListMenuItem(t *testing.T) {
	s := newTestServer(t)

	id := createdID(t, s.do(t, http.MethodPost, "/api/menu", `{"name":"Margherita","price":12.5,"category":"Pizza"}`))

	rec := s.do(t, http.MethodGet, "/api/menu?category=Pizza", "")
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode[[]map[string]any](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, map[string]any{
		"id":           id,
		"name":         "Margherita",
		"description":  nil,
		"price":        12.5,
		"category":     "Pizza",
		"image":        nil,
		"is_available": true,
	}, items[0])
}

func TestListMenuItemsFiltersByCategory(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		createdID(t, s.do(t, http.MethodPost, "/api/menu", fmt.Sprintf(`{"name":"Pizza %d","price":10,"category":"Pizza"}`, i)))
	}
	for _, category := range []string{"Pasta", "Drinks"} {
		createdID(t, s.do(t, http.MethodPost, "/api/menu", fmt.Sprintf(`{"name":"x","price":1,"category":%q}`, category)))
	}

	pizzas := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/menu?category=Pizza", ""))
	assert.Len(t, pizzas, 3)

	all := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/menu", ""))
	assert.Len(t, all, 5)

	emptyFilter := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/menu?category=", ""))
	assert.Len(t, emptyFilter, 5)

	for _, item := range all {
		assert.NotContains(t, item, document.InternalIDKey)
		assert.Contains(t, item, document.PublicIDKey)
	}
}

func TestListMenuItemsEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/menu", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateMenuItemNegativePrice(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/menu", `{"name":"Margherita","price":-3,"category":"Pizza"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[struct {
		Detail []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"detail"`
	}](t, rec)
	require.Len(t, body.Detail, 1)
	assert.Equal(t, "price", body.Detail[0].Field)
	assert.Zero(t, s.repo.creates)
}

func TestCreateMenuItemMalformedBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/menu", `{"name":`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, s.repo.creates)
}

func TestCreateOrderZeroQuantity(t *testing.T) {
	s := newTestServer(t)

	body := strings.Replace(validOrderBody, `"quantity": 2`, `"quantity": 0`, 1)
	rec := s.do(t, http.MethodPost, "/api/orders", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "items[0].quantity")
	assert.NotContains(t, rec.Body.String(), `"id"`)
	assert.Zero(t, s.repo.creates)

	orders := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/orders", ""))
	assert.Empty(t, orders)
}

func TestCreateAndListOrders(t *testing.T) {
	s := newTestServer(t)

	pendingID := createdID(t, s.do(t, http.MethodPost, "/api/orders", validOrderBody))
	readyBody := strings.Replace(validOrderBody, `"total": 27.5,`, `"total": 27.5, "status": "ready",`, 1)
	createdID(t, s.do(t, http.MethodPost, "/api/orders", readyBody))

	pending := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/orders?status=pending", ""))
	require.Len(t, pending, 1)
	assert.Equal(t, pendingID, pending[0]["id"])
	assert.Equal(t, "pending", pending[0]["status"])
	assert.NotContains(t, pending[0], document.InternalIDKey)

	customer, ok := pending[0]["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", customer["name"])

	items, ok := pending[0]["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].(map[string]any)["menu_item_id"])

	first := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/orders", ""))
	second := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/orders", ""))
	assert.Len(t, first, 2)
	assert.ElementsMatch(t, first, second)
}

func TestStorageFailureIsServerError(t *testing.T) {
	transport := NewHTTPTransport(
		menusvc.MustNewMenuService(menusvc.WithDocumentRepository(brokenRepo{})),
		ordersvc.MustNewOrderService(ordersvc.WithDocumentRepository(brokenRepo{})),
		diagsvc.MustNewDiagnosticsService(diagsvc.WithDocumentRepository(brokenRepo{})),
	)
	transport.RegisterRoutes()
	s := &testServer{handler: transport.Handler()}

	rec := s.do(t, http.MethodPost, "/api/menu", `{"name":"Margherita","price":12.5,"category":"Pizza"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"connection reset by peer"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDiagnosticsUnreachableDatabase(t *testing.T) {
	transport := NewHTTPTransport(
		menusvc.MustNewMenuService(),
		ordersvc.MustNewOrderService(),
		diagsvc.MustNewDiagnosticsService(diagsvc.WithDocumentRepository(brokenRepo{})),
	)
	transport.RegisterRoutes()
	s := &testServer{handler: transport.Handler()}

	rec := s.do(t, http.MethodGet, "/test", "")

	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[diagsvc.Report](t, rec)
	assert.Equal(t, diagsvc.BackendRunning, report.Backend)
	assert.True(t, strings.HasPrefix(report.Database, diagsvc.DatabaseErrorPrefix), report.Database)
	assert.Equal(t, diagsvc.ValueNotSet, report.DatabaseURL)
}

func TestDiagnosticsWithoutDatabase(t *testing.T) {
	transport := NewHTTPTransport(
		menusvc.MustNewMenuService(),
		ordersvc.MustNewOrderService(),
		diagsvc.MustNewDiagnosticsService(),
	)
	transport.RegisterRoutes()
	s := &testServer{handler: transport.Handler()}

	rec := s.do(t, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, diagsvc.DatabaseNotAvailable, decode[diagsvc.Report](t, rec).Database)

	rec = s.do(t, http.MethodGet, "/api/menu", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"database is not configured"}`, rec.Body.String())
}

func TestDiagnosticsWorkingDatabase(t *testing.T) {
	s := newTestServer(t)
	createdID(t, s.do(t, http.MethodPost, "/api/orders", validOrderBody))

	report := decode[diagsvc.Report](t, s.do(t, http.MethodGet, "/test", ""))

	assert.Equal(t, diagsvc.DatabaseWorking, report.Database)
	assert.Equal(t, diagsvc.ValueSet, report.DatabaseURL)
	assert.Equal(t, []string{"order"}, report.Collections)
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/menu", nil)
	req.Header.Set("Origin", "https://tutti-amici.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
