package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen financiero mensual del dueño.
type DashboardSummaryDTO struct {
	Month             string          `json:"month"`
	Label             string          `json:"label"` // ej: "Marzo 2024"
	TotalOrders       int             `json:"total_orders"`
	TotalStockItems   int             `json:"total_stock_items"`
	BaseExpenses      decimal.Decimal `json:"base_expenses"`
	StockPurchases    decimal.Decimal `json:"stock_purchases"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`     // BaseExpenses + StockPurchases
	TotalIncome       decimal.Decimal `json:"total_income"`       // pagos de pedidos Completed
	ProfitLoss        decimal.Decimal `json:"profit_loss"`        // TotalIncome - TotalExpenses
	CurrentStockValue decimal.Decimal `json:"current_stock_value"` // Σ stock.total_amount
	TotalQuotes       int             `json:"total_quotes"`
}

// DashboardSeriesDTO series mensuales para el gráfico (orden ascendente por mes).
type DashboardSeriesDTO struct {
	Months   []string          `json:"months"`
	Incomes  []decimal.Decimal `json:"incomes"`
	Expenses []decimal.Decimal `json:"expenses"`
	Profits  []decimal.Decimal `json:"profits"`
}
