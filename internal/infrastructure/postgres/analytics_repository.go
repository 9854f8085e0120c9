package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard del dueño.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountOrdersByMonth pedidos con fecha en el mes.
func (r *AnalyticsRepo) CountOrdersByMonth(ctx context.Context, month time.Time) (int, error) {
	start, end := domain.MonthRange(month)
	return r.count(ctx, "analytics.CountOrdersByMonth",
		`SELECT COUNT(*) FROM orders WHERE date >= $1 AND date < $2`, start, end)
}

// CountStockItems cantidad de ítems en el libro.
func (r *AnalyticsRepo) CountStockItems(ctx context.Context) (int, error) {
	return r.count(ctx, "analytics.CountStockItems", `SELECT COUNT(*) FROM stock`)
}

// CountQuotes cantidad de cotizaciones.
func (r *AnalyticsRepo) CountQuotes(ctx context.Context) (int, error) {
	return r.count(ctx, "analytics.CountQuotes", `SELECT COUNT(*) FROM quotes`)
}

// SumExpensesByMonth suma de gastos base del mes.
func (r *AnalyticsRepo) SumExpensesByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error) {
	start, end := domain.MonthRange(month)
	return r.sum(ctx, "analytics.SumExpensesByMonth",
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date >= $1 AND date < $2`, start, end)
}

// SumStockPurchasesByMonth suma de reposiciones del mes.
func (r *AnalyticsRepo) SumStockPurchasesByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error) {
	start, end := domain.MonthRange(month)
	return r.sum(ctx, "analytics.SumStockPurchasesByMonth",
		`SELECT COALESCE(SUM(total_amount_added), 0) FROM stock_additions WHERE date_added >= $1 AND date_added < $2`, start, end)
}

// SumIncomeByMonth suma amount_paid de pedidos Completed (sin distinguir mayúsculas) del mes.
func (r *AnalyticsRepo) SumIncomeByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error) {
	start, end := domain.MonthRange(month)
	return r.sum(ctx, "analytics.SumIncomeByMonth", `
		SELECT COALESCE(SUM(amount_paid), 0) FROM orders
		WHERE lower(status) = 'completed' AND date >= $1 AND date < $2`, start, end)
}

// SumStockValue Σ total_amount del libro.
func (r *AnalyticsRepo) SumStockValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "analytics.SumStockValue", `SELECT COALESCE(SUM(total_amount), 0) FROM stock`)
}

// MonthlyIncome ingresos (pedidos Completed) de los últimos meses con datos.
func (r *AnalyticsRepo) MonthlyIncome(ctx context.Context, limit int) ([]repository.MonthlyAmount, error) {
	return r.monthly(ctx, "analytics.MonthlyIncome", `
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount_paid)
		FROM orders
		WHERE lower(status) = 'completed'
		GROUP BY month
		ORDER BY month DESC
		LIMIT $1`, limit)
}

// MonthlyExpenses gastos base de los últimos meses con datos.
func (r *AnalyticsRepo) MonthlyExpenses(ctx context.Context, limit int) ([]repository.MonthlyAmount, error) {
	return r.monthly(ctx, "analytics.MonthlyExpenses", `
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount)
		FROM expenses
		GROUP BY month
		ORDER BY month DESC
		LIMIT $1`, limit)
}

// MonthlyStockPurchases compras de stock de los últimos meses con datos.
func (r *AnalyticsRepo) MonthlyStockPurchases(ctx context.Context, limit int) ([]repository.MonthlyAmount, error) {
	return r.monthly(ctx, "analytics.MonthlyStockPurchases", `
		SELECT to_char(date_added, 'YYYY-MM') AS month, SUM(total_amount_added)
		FROM stock_additions
		GROUP BY month
		ORDER BY month DESC
		LIMIT $1`, limit)
}

func (r *AnalyticsRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *AnalyticsRepo) sum(ctx context.Context, op, query string, args ...any) (decimal.Decimal, error) {
	var v decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r *AnalyticsRepo) monthly(ctx context.Context, op, query string, limit int) ([]repository.MonthlyAmount, error) {
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []repository.MonthlyAmount
	for rows.Next() {
		var m repository.MonthlyAmount
		if err := rows.Scan(&m.Month, &m.Amount); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
