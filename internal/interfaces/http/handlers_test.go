package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/application/usecase"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/memstore"
	apphttp "github.com/jhoicas/tienda-pos/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memCatalog struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newCatalog(ps ...*entity.Product) *memCatalog {
	c := &memCatalog{products: map[string]*entity.Product{}}
	for _, p := range ps {
		c.products[p.ID] = p
	}
	return c
}

func (m *memCatalog) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memCatalog) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id], nil
}

func (m *memCatalog) Update(ctx context.Context, p *entity.Product) error { return m.Create(ctx, p) }

func (m *memCatalog) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[id].Active = false
	return nil
}

func (m *memCatalog) ListActive(_ context.Context, q string) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Product
	for _, p := range m.products {
		if p.Active && strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memCatalog) SearchActive(ctx context.Context, q string) ([]*entity.Product, error) {
	return m.ListActive(ctx, q)
}

type stubCreator struct {
	id   string
	err  error
	reqs []entity.SaleRequest
}

func (s *stubCreator) CreateMulti(_ context.Context, req entity.SaleRequest) (string, error) {
	s.reqs = append(s.reqs, req)
	return s.id, s.err
}

func product(id, name string, stock int, price string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Stock: stock, Price: decimal.RequireFromString(price), Active: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newApp(catalog *memCatalog, creator *stubCreator) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(catalog, zerolog.Nop()),
		Entry:     sale.NewEntryService(catalog, creator, memstore.NewCartStore(0), zerolog.Nop()),
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	resp.Body.Close()
	return resp, out.Bytes()
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestEntry_AgregarYGuardarVenta(t *testing.T) {
	creator := &stubCreator{id: "venta-1"}
	app := newApp(newCatalog(product("p1", "Camisa", 3, "10"), product("p2", "Taza", 1, "5")), creator)

	for _, id := range []string{"p1", "p1", "p2"} {
		resp, _ := call(t, app, http.MethodPost, "/api/sales/entry/cart/items", "vendedor", dto.AddCartItemRequest{ProductID: id})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, body := call(t, app, http.MethodPut, "/api/sales/entry/cart/deduction", "vendedor", map[string]string{"amount": "3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cart dto.CartDTO
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Len(t, cart.Lines, 2)
	assert.True(t, cart.Subtotal.Equal(decimal.NewFromInt(25)))
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(22)))

	resp, body = call(t, app, http.MethodPost, "/api/sales/entry/submit", "vendedor",
		dto.SubmitSaleRequest{CustomerName: " Ana ", CustomerPhone: ""})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(body), "venta-1")

	require.Len(t, creator.reqs, 1)
	assert.Equal(t, "Ana", creator.reqs[0].CustomerName)
	assert.Nil(t, creator.reqs[0].CustomerPhone)

	// Con éxito el carrito queda vacío.
	_, body = call(t, app, http.MethodGet, "/api/sales/entry/cart", "vendedor", nil)
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Empty(t, cart.Lines)
}

func TestEntry_StockAgotadoRetorna409(t *testing.T) {
	app := newApp(newCatalog(product("p1", "Gorra", 1, "35")), &stubCreator{})

	resp, _ := call(t, app, http.MethodPost, "/api/sales/entry/cart/items", "vendedor", dto.AddCartItemRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/sales/entry/cart/items", "vendedor", dto.AddCartItemRequest{ProductID: "p1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
}

func TestEntry_ProductoInexistenteRetorna404(t *testing.T) {
	app := newApp(newCatalog(), &stubCreator{})
	resp, _ := call(t, app, http.MethodPost, "/api/sales/entry/cart/items", "vendedor", dto.AddCartItemRequest{ProductID: "nada"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEntry_SinClienteRetorna400(t *testing.T) {
	creator := &stubCreator{id: "x"}
	app := newApp(newCatalog(product("p1", "Camisa", 3, "10")), creator)
	call(t, app, http.MethodPost, "/api/sales/entry/cart/items", "vendedor", dto.AddCartItemRequest{ProductID: "p1"})

	resp, body := call(t, app, http.MethodPost, "/api/sales/entry/submit", "vendedor", dto.SubmitSaleRequest{CustomerName: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
	assert.Empty(t, creator.reqs, "no debe llamarse al servidor de datos")
}

func TestEntry_ErrorRemotoSeMuestraTalCual(t *testing.T) {
	msg := "stock insuficiente para Camisa (disponibles: 0)"
	creator := &stubCreator{err: &domain.RemoteError{Message: msg}}
	app := newApp(newCatalog(product("p1", "Camisa", 3, "10")), creator)
	call(t, app, http.MethodPost, "/api/sales/entry/cart/items", "vendedor", dto.AddCartItemRequest{ProductID: "p1"})

	resp, body := call(t, app, http.MethodPost, "/api/sales/entry/submit", "vendedor", dto.SubmitSaleRequest{CustomerName: "Ana"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, msg, e.Message)

	// El carrito se conserva para reintentar.
	_, body = call(t, app, http.MethodGet, "/api/sales/entry/cart", "vendedor", nil)
	var cart dto.CartDTO
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Len(t, cart.Lines, 1)
}

func TestEntry_ErrorGenericoSeEnvuelveComoRemoto(t *testing.T) {
	creator := &stubCreator{err: errors.New("conexión rechazada")}
	app := newApp(newCatalog(product("p1", "Camisa", 3, "10")), creator)
	call(t, app, http.MethodPost, "/api/sales/entry/cart/items", "vendedor", dto.AddCartItemRequest{ProductID: "p1"})

	resp, body := call(t, app, http.MethodPost, "/api/sales/entry/submit", "vendedor", dto.SubmitSaleRequest{CustomerName: "Ana"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, string(body), "conexión rechazada")
}

func TestEntry_DescuentoNegativoRetorna400(t *testing.T) {
	app := newApp(newCatalog(), &stubCreator{})
	resp, _ := call(t, app, http.MethodPut, "/api/sales/entry/cart/deduction", "vendedor", map[string]string{"amount": "-1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_VendedorNoPuedeCrear(t *testing.T) {
	app := newApp(newCatalog(), &stubCreator{})
	resp, _ := call(t, app, http.MethodPost, "/api/products", "vendedor", map[string]string{"name": "Gorra"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProducts_AdminCreaYDaDeBaja(t *testing.T) {
	catalog := newCatalog()
	app := newApp(catalog, &stubCreator{})

	resp, body := call(t, app, http.MethodPost, "/api/products", "admin", map[string]string{"name": "Gorra", "price": "35"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))

	resp, _ = call(t, app, http.MethodDelete, "/api/products/"+p.ID, "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/products/"+p.ID, "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "un producto inactivo no se da de baja dos veces")
}
