package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/imprenta-api/internal/application/analytics"
	"github.com/jhoicas/imprenta-api/internal/application/auth"
	"github.com/jhoicas/imprenta-api/internal/application/billing"
	"github.com/jhoicas/imprenta-api/internal/application/inventory"
	"github.com/jhoicas/imprenta-api/internal/application/orders"
	"github.com/jhoicas/imprenta-api/internal/application/usecase"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Ledger      *inventory.LedgerService
	Orders      *orders.Service
	ExpenseUC   *usecase.ExpenseUseCase
	QuoteUC     *usecase.QuoteUseCase
	DashboardUC *appanalytics.DashboardUseCase
	BillUC      *billing.BillUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	stockHandler := NewInventoryHandler(deps.Ledger)
	orderHandler := NewOrderHandler(deps.Orders)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	billHandler := NewBillHandler(deps.BillUC)

	// Público
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/customer-login", authHandler.CustomerLogin)
	api.Post("/quotes", quoteHandler.Submit)

	authMW := AuthMiddleware(deps.JWTSecret)
	staff := RequireRole(entity.RoleWorker, entity.RoleOwner)
	owner := RequireRole(entity.RoleOwner)
	customer := RequireRole(entity.RoleCustomer)

	// Cliente
	cust := api.Group("/customer", authMW, customer)
	cust.Post("/orders", orderHandler.Place)
	cust.Get("/orders", orderHandler.ListMine)

	// Pedidos (personal; algunas acciones solo dueño)
	ord := api.Group("/orders", authMW)
	ord.Get("/", staff, orderHandler.ListMonth)
	ord.Get("/open", staff, orderHandler.ListOpen)
	ord.Patch("/:id/status", staff, orderHandler.UpdateStatus)
	ord.Post("/:id/payments", staff, orderHandler.AddPayment)
	ord.Post("/:id/items", staff, stockHandler.ConsumeStock)
	ord.Get("/:id/items", staff, stockHandler.ListUsage)
	ord.Put("/:id", owner, orderHandler.Edit)
	ord.Patch("/:id/total-cost", owner, orderHandler.UpdateTotalCost)
	ord.Delete("/:id", owner, orderHandler.Delete)

	// Libro de stock
	stock := api.Group("/stock", authMW)
	stock.Get("/", staff, stockHandler.ListStock)
	stock.Post("/additions", staff, stockHandler.AddStock)
	stock.Get("/additions/total", owner, stockHandler.AdditionsTotal)
	stock.Delete("/:id", owner, stockHandler.DeleteStock)

	// Dueño
	api.Get("/expenses", authMW, owner, expenseHandler.List)
	api.Post("/expenses", authMW, owner, expenseHandler.Create)
	api.Get("/quotes", authMW, owner, quoteHandler.List)
	dash := api.Group("/dashboard", authMW, owner)
	dash.Get("/summary", dashboardHandler.GetSummary)
	dash.Get("/series", dashboardHandler.GetSeries)

	// Facturas: cualquier rol autenticado
	api.Get("/bills/:ids", authMW, RequireRole(entity.RoleOwner, entity.RoleWorker, entity.RoleCustomer), billHandler.Download)
}
