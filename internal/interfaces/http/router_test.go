package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/imprenta-api/internal/application/analytics"
	"github.com/jhoicas/imprenta-api/internal/application/auth"
	"github.com/jhoicas/imprenta-api/internal/application/billing"
	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/application/inventory"
	"github.com/jhoicas/imprenta-api/internal/application/orders"
	"github.com/jhoicas/imprenta-api/internal/application/usecase"
	"github.com/jhoicas/imprenta-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/imprenta-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/imprenta-api/internal/interfaces/http"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// newAPI arma la API completa sobre el store en memoria con las cuentas por defecto.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	ledger := inventory.NewLedgerService(s, s.StockRepository(), s.StockAdditionRepository(), s.UsageRepository(), nil)
	authUC := auth.NewAuthUseCase(s.UserRepository(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}, nil)
	require.NoError(t, authUC.SeedDefaultUsers(context.Background(), "owner-pw", "worker-pw"))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		Ledger:      ledger,
		Orders:      orders.NewService(s, s.OrderRepository(), s.UserRepository(), ledger, nil),
		ExpenseUC:   usecase.NewExpenseUseCase(s.ExpenseRepository()),
		QuoteUC:     usecase.NewQuoteUseCase(s.QuoteRepository()),
		DashboardUC: appanalytics.NewDashboardUseCase(s.AnalyticsRepository()),
		BillUC:      billing.NewBillUseCase(s.OrderRepository(), infrapdf.NewMarotoPDFGenerator(), billing.ShopInfo{Name: "Imprenta Prueba"}),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return out.Token
}

func customerLogin(t *testing.T, app *fiber.App, phone, name string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/customer-login", "", dto.CustomerLoginRequest{Phone: phone, Name: name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return out.Token
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

// ─── Flujo completo ──────────────────────────────────────────────────────────

func TestAPI_FlujoPedidoConsumoYFactura(t *testing.T) {
	app := newAPI(t)
	owner := login(t, app, "owner", "owner-pw")
	worker := login(t, app, "worker", "worker-pw")
	cust := customerLogin(t, app, "3001112233", "Lucía")

	// Cliente crea el pedido.
	resp := call(t, app, http.MethodPost, "/api/customer/orders", cust, dto.PlaceOrderRequest{
		ProductName: "Tarjetas", Size: "9x5", Colour: "Negro", Quantity: decimal.NewFromInt(100),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.OrderResponse
	decode(t, resp, &order)
	require.NotEmpty(t, order.ID)
	assert.Equal(t, "Lucía", order.CustomerDisplay)

	// Trabajador repone stock dos veces: 10@100 y 5@75.
	resp = call(t, app, http.MethodPost, "/api/stock/additions", worker, dto.AddStockRequest{
		ItemName: "Cartulina", Size: "A4", AddedQuantity: decp("10"), AdditionTotalCost: decp("100"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = call(t, app, http.MethodPost, "/api/stock/additions", worker, dto.AddStockRequest{
		ItemName: "Cartulina", Size: "A4", AddedQuantity: decp("5"), AdditionTotalCost: decp("75"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item dto.StockItemResponse
	decode(t, resp, &item)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, item.UnitCost.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, item.TotalAmount.Equal(decimal.RequireFromString("187.5")))

	// Consumo mayor al disponible: 409 y el libro no cambia.
	resp = call(t, app, http.MethodPost, "/api/orders/"+order.ID+"/items", worker, dto.ConsumeStockRequest{
		StockItemID: item.ID, QuantityUsed: decp("20"),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))

	// Consumo válido.
	resp = call(t, app, http.MethodPost, "/api/orders/"+order.ID+"/items", worker, dto.ConsumeStockRequest{
		StockItemID: item.ID, QuantityUsed: decp("4"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var usage []dto.UsageLineResponse
	decode(t, resp, &usage)
	require.Len(t, usage, 1)
	assert.Equal(t, "Cartulina", usage[0].ItemName)

	resp = call(t, app, http.MethodGet, "/api/stock", worker, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stock []dto.StockItemResponse
	decode(t, resp, &stock)
	require.Len(t, stock, 1)
	assert.True(t, stock[0].Quantity.Equal(decimal.NewFromInt(11)))
	assert.True(t, stock[0].Used)

	// Ítem usado no se puede eliminar.
	resp = call(t, app, http.MethodDelete, "/api/stock/"+item.ID, owner, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "IN_USE", errorCode(t, resp))

	// Factura PDF del propio pedido.
	resp = call(t, app, http.MethodGet, "/api/bills/"+order.ID, cust, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	// Otro cliente no puede facturar pedidos ajenos.
	other := customerLogin(t, app, "3009998877", "")
	resp = call(t, app, http.MethodGet, "/api/bills/"+order.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// ─── Validación de entrada ───────────────────────────────────────────────────

func TestAPI_ReposicionSinCantidadOCostoEsValidacion(t *testing.T) {
	app := newAPI(t)
	owner := login(t, app, "owner", "owner-pw")

	bodies := []any{
		fiber.Map{"item_name": "Papel A4"},
		fiber.Map{"item_name": "Papel A4", "added_quantity": "10"},
		fiber.Map{"item_name": "Papel A4", "addition_total_cost": "100"},
		fiber.Map{"item_name": "Papel A4", "added_quantity": "diez", "addition_total_cost": "100"},
	}
	for _, b := range bodies {
		resp := call(t, app, http.MethodPost, "/api/stock/additions", owner, b)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION", errorCode(t, resp))
	}

	resp := call(t, app, http.MethodGet, "/api/stock", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stock []dto.StockItemResponse
	decode(t, resp, &stock)
	assert.Empty(t, stock, "una reposición rechazada no crea ítems")

	// Un cero explícito sí es una reposición válida.
	resp = call(t, app, http.MethodPost, "/api/stock/additions", owner, dto.AddStockRequest{
		ItemName: "Papel A4", AddedQuantity: decp("0"), AdditionTotalCost: decp("0"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item dto.StockItemResponse
	decode(t, resp, &item)
	assert.True(t, item.Quantity.IsZero())
	assert.True(t, item.UnitCost.IsZero())
}

func TestAPI_ConsumoSinCantidadEsValidacion(t *testing.T) {
	app := newAPI(t)
	worker := login(t, app, "worker", "worker-pw")
	cust := customerLogin(t, app, "3105550000", "Marta")

	resp := call(t, app, http.MethodPost, "/api/customer/orders", cust, dto.PlaceOrderRequest{
		ProductName: "Volantes", Quantity: decimal.NewFromInt(50),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.OrderResponse
	decode(t, resp, &order)

	resp = call(t, app, http.MethodPost, "/api/stock/additions", worker, dto.AddStockRequest{
		ItemName: "Papel couché", AddedQuantity: decp("8"), AdditionTotalCost: decp("40"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item dto.StockItemResponse
	decode(t, resp, &item)

	path := "/api/orders/" + order.ID + "/items"
	resp = call(t, app, http.MethodPost, path, worker, fiber.Map{"stock_item_id": item.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, path, worker, fiber.Map{"items": []fiber.Map{
		{"stock_item_id": item.ID, "quantity_used": "2"},
		{"stock_item_id": item.ID},
	}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, path, worker, fiber.Map{"stock_item_id": item.ID, "quantity_used": "dos"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = call(t, app, http.MethodGet, "/api/stock", worker, nil)
	var stock []dto.StockItemResponse
	decode(t, resp, &stock)
	require.Len(t, stock, 1)
	assert.True(t, stock[0].Quantity.Equal(decimal.NewFromInt(8)), "ningún consumo rechazado descuenta stock")
	assert.False(t, stock[0].Used)
}

// ─── Roles ───────────────────────────────────────────────────────────────────

func TestAPI_PermisosPorRol(t *testing.T) {
	app := newAPI(t)
	worker := login(t, app, "worker", "worker-pw")
	cust := customerLogin(t, app, "3001112233", "")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"cliente no lista pedidos del taller", http.MethodGet, "/api/orders", cust, http.StatusForbidden},
		{"trabajador no ve el dashboard", http.MethodGet, "/api/dashboard/summary", worker, http.StatusForbidden},
		{"trabajador no borra stock", http.MethodDelete, "/api/stock/x", worker, http.StatusForbidden},
		{"trabajador no lista gastos", http.MethodGet, "/api/expenses", worker, http.StatusForbidden},
		{"sin token", http.MethodGet, "/api/stock", "", http.StatusUnauthorized},
		{"trabajador lista pedidos abiertos", http.MethodGet, "/api/orders/open", worker, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, tc.method, tc.path, tc.token, nil)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestAPI_LoginInvalido(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "owner", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/customer-login", "", dto.CustomerLoginRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ─── Dueño: gastos, cotizaciones, dashboard ──────────────────────────────────

func TestAPI_GastosCotizacionesYDashboard(t *testing.T) {
	app := newAPI(t)
	owner := login(t, app, "owner", "owner-pw")

	resp := call(t, app, http.MethodPost, "/api/quotes", "", dto.CreateQuoteRequest{
		Name: "Pedro", Phone: "3005556677", Product: "Pendones", Quantity: 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/expenses", owner, dto.CreateExpenseRequest{
		Name: "Arriendo", Amount: decimal.NewFromInt(800),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/quotes", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quotes []dto.QuoteResponse
	decode(t, resp, &quotes)
	assert.Len(t, quotes, 1)

	resp = call(t, app, http.MethodGet, "/api/dashboard/summary", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.DashboardSummaryDTO
	decode(t, resp, &summary)
	assert.Equal(t, 1, summary.TotalQuotes)
	assert.True(t, summary.BaseExpenses.Equal(decimal.NewFromInt(800)))
	assert.True(t, summary.ProfitLoss.Equal(decimal.NewFromInt(-800)))

	resp = call(t, app, http.MethodGet, "/api/stock/additions/total?month=2024-13", owner, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
