package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/jhoicas/backoffice-api/internal/application/revenue"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/internal/testutil/memstore"
)

var handlerNow = time.Date(2025, 2, 14, 9, 30, 0, 0, time.UTC)

type apiEnv struct {
	app      *fiber.App
	store    *memstore.Store
	platform *entity.Platform
	category *entity.Category
}

// newAPI arma la app completa sobre memstore con la autenticación desactivada (rol admin).
func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	return newAPIWithSecret(t, "")
}

func newAPIWithSecret(t *testing.T, secret string) *apiEnv {
	t.Helper()
	s := memstore.New()
	log := zerolog.Nop()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(s.Products(), s.Categories()),
		CatalogUC:   usecase.NewCatalogUseCase(s.Categories(), s.Platforms()),
		InventoryUC: inventory.NewAdjustmentUseCase(s, s.Products(), s.Ledger(), log),
		OrderUC: order.NewPlaceOrderUseCase(s, s.Platforms(), s.Orders(), 3, log).
			WithClock(func() time.Time { return handlerNow }),
		RevenueUC: revenue.NewUseCase(s.Revenue(), time.UTC).
			WithClock(func() time.Time { return handlerNow }),
		JWTSecret: secret,
		Log:       log,
	})
	return &apiEnv{
		app:      app,
		store:    s,
		platform: s.AddPlatform("Web Store"),
		category: s.AddCategory("Audio"),
	}
}

func (e *apiEnv) do(t *testing.T, method, path string, body any, headers ...string) (int, map[string]any) {
	t.Helper()
	status, raw := e.doRaw(t, method, path, body, headers...)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return status, out
}

func (e *apiEnv) doRaw(t *testing.T, method, path string, body any, headers ...string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestHealth(t *testing.T) {
	e := newAPI(t)
	status, body := e.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestInventory_AjusteYConsulta(t *testing.T) {
	e := newAPI(t)
	p := e.store.AddProduct(e.category.ID, "Headphones", "199.99")

	status, body := e.do(t, http.MethodPost, "/api/v1/inventory", map[string]any{
		"product_id": p.ID, "quantity_changed": 12, "threshold": 10,
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "12", body["quantity_after"])
	assert.Equal(t, false, body["alert"])

	status, body = e.do(t, http.MethodPut, "/api/v1/inventory/product/"+p.ID, map[string]any{
		"quantity_changed": -3, "reason": "merma",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "12", body["quantity_before"])
	assert.Equal(t, "9", body["quantity_after"])
	assert.Equal(t, true, body["alert"])

	status, body = e.do(t, http.MethodGet, "/api/v1/inventory/product/"+p.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "9", body["quantity_after"])
	product, ok := body["product"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Headphones", product["name"])
}

func TestInventory_StockNegativoEs400(t *testing.T) {
	e := newAPI(t)
	p := e.store.AddProduct(e.category.ID, "Mouse", "29.99")
	e.store.AddStock(p.ID, 2, 10)

	status, body := e.do(t, http.MethodPut, "/api/v1/inventory/product/"+p.ID, map[string]any{"quantity_changed": -5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CONSTRAINT_VIOLATION", body["code"])
}

func TestInventory_SinHistorialEs404(t *testing.T) {
	e := newAPI(t)
	p := e.store.AddProduct(e.category.ID, "Keyboard", "129.99")

	status, body := e.do(t, http.MethodGet, "/api/v1/inventory/product/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestInventory_HistorialPaginado(t *testing.T) {
	e := newAPI(t)
	p := e.store.AddProduct(e.category.ID, "Cable", "5.00")
	for i := 0; i < 3; i++ {
		e.store.AddStock(p.ID, 1, 0)
	}

	status, body := e.do(t, http.MethodGet, "/api/v1/inventory/product/"+p.ID+"/history?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	assert.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "3", first["quantity_after"])
	pg := body["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pg["total_items"])
	assert.Equal(t, true, pg["has_next"])

	status, _ = e.do(t, http.MethodGet, "/api/v1/inventory/product/"+p.ID+"/history?page=5&limit=2", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = e.do(t, http.MethodGet, "/api/v1/inventory/product/"+p.ID+"/history?page=9223372036854775807&limit=1000", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, body = e.do(t, http.MethodGet, "/api/v1/inventory/low-stock?page=9223372036854775807", nil)
	assert.Equal(t, http.StatusOK, status, body)
}

func TestOrders_CreaYDescuenta(t *testing.T) {
	e := newAPI(t)
	p := e.store.AddProduct(e.category.ID, "Headphones", "199.99")
	e.store.AddStock(p.ID, 10, 10)

	status, body := e.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
		"platform_id": e.platform.ID,
		"items":       []map[string]any{{"product_id": p.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "599.97", body["total_amount"])
	lines := body["lines"].([]any)
	require.Len(t, lines, 1)

	qty, _ := e.store.StockOf(p.ID)
	assert.Equal(t, "7", qty.String())

	status, got := e.do(t, http.MethodGet, "/api/v1/orders/"+body["id"].(string), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, body["id"], got["id"])
}

func TestOrders_StockInsuficienteIncluyeDetalle(t *testing.T) {
	e := newAPI(t)
	a := e.store.AddProduct(e.category.ID, "A", "1.00")
	b := e.store.AddProduct(e.category.ID, "B", "1.00")
	e.store.AddStock(a.ID, 1, 0)

	status, body := e.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
		"platform_id": e.platform.ID,
		"items": []map[string]any{
			{"product_id": a.ID, "quantity": 2},
			{"product_id": b.ID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details := body["details"].([]any)
	assert.Len(t, details, 2)

	orders, lines, _ := e.store.Counts()
	assert.Zero(t, orders)
	assert.Zero(t, lines)
}

func TestOrders_ProductoInexistenteEs404(t *testing.T) {
	e := newAPI(t)
	status, body := e.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
		"platform_id": e.platform.ID,
		"items":       []map[string]any{{"product_id": "no-existe", "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, []any{"no-existe"}, body["details"])
}

func TestOrders_CuerpoInvalido(t *testing.T) {
	e := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRevenue_CustomYComparacion(t *testing.T) {
	e := newAPI(t)
	p := e.store.AddProduct(e.category.ID, "Headphones", "100.00")
	e.store.AddStock(p.ID, 10, 0)

	for _, d := range []string{"2025-01-10T12:00:00Z", "2025-02-10T12:00:00Z"} {
		status, body := e.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
			"platform_id": e.platform.ID,
			"items":       []map[string]any{{"product_id": p.ID, "quantity": 1}},
			"sale_date":   d,
		})
		require.Equal(t, http.StatusCreated, status, body)
	}

	status, body := e.do(t, http.MethodGet, "/api/v1/revenue/custom?start_date=2025-02-01&end_date=2025-03-01", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "100", body["revenue"])

	status, raw := e.doRaw(t, http.MethodPost, "/api/v1/revenue/compare", map[string]any{
		"periods": []map[string]string{
			{"start_date": "2025-01-01", "end_date": "2025-02-01"},
			{"start_date": "2025-02-01", "end_date": "2025-03-01"},
			{"start_date": "2024-01-01", "end_date": "2024-02-01"},
		},
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	var totals []string
	require.NoError(t, json.Unmarshal(raw, &totals))
	assert.Equal(t, []string{"100", "100", "0"}, totals)

	status, raw = e.doRaw(t, http.MethodPost, "/api/v1/revenue/compare", map[string]any{"periods": []any{}})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.JSONEq(t, "[]", string(raw))

	status, raw = e.doRaw(t, http.MethodPost, "/api/v1/revenue/compare-by-category", map[string]any{
		"categories": []string{"Audio", "Games"},
		"periods":    []map[string]string{{"start_date": "2025-01-01", "end_date": "2026-01-01"}},
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	var rows []map[string]string
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "200", rows[0]["Audio"])
	assert.Equal(t, "0", rows[0]["Games"])

	status, body = e.do(t, http.MethodGet, "/api/v1/revenue/monthly", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "100", body["revenue"])
}

func TestRevenue_RangoInvalido(t *testing.T) {
	e := newAPI(t)

	status, body := e.do(t, http.MethodGet, "/api/v1/revenue/custom?start_date=2025-03-01&end_date=2025-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_RANGE", body["code"])

	status, body = e.do(t, http.MethodGet, "/api/v1/revenue/custom?start_date=ayer&end_date=2025-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = e.do(t, http.MethodGet, "/api/v1/revenue/hourly", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestCatalog_AltaYDuplicado(t *testing.T) {
	e := newAPI(t)

	status, body := e.do(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Games"})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "GAMES", body["sku"])

	status, body = e.do(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Games"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])

	status, body = e.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"category_id": e.category.ID, "sku": "SP-1", "name": "Speaker", "price": "49.90",
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, _ = e.do(t, http.MethodGet, "/api/v1/products/"+body["id"].(string), nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = e.do(t, http.MethodGet, "/api/v1/products/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
