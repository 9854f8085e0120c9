package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyAmount total agregado de un mes (Month en formato YYYY-MM).
type MonthlyAmount struct {
	Month  string
	Amount decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard del dueño.
// Los Monthly* devuelven los últimos `limit` meses con datos, del más reciente al más antiguo.
type AnalyticsRepository interface {
	CountOrdersByMonth(ctx context.Context, month time.Time) (int, error)
	CountStockItems(ctx context.Context) (int, error)
	SumExpensesByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error)
	SumStockPurchasesByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error)
	SumIncomeByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error)
	SumStockValue(ctx context.Context) (decimal.Decimal, error)
	CountQuotes(ctx context.Context) (int, error)
	MonthlyIncome(ctx context.Context, limit int) ([]MonthlyAmount, error)
	MonthlyExpenses(ctx context.Context, limit int) ([]MonthlyAmount, error)
	MonthlyStockPurchases(ctx context.Context, limit int) ([]MonthlyAmount, error)
}
