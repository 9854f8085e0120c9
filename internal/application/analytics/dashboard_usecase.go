// Package analytics contiene los casos de uso del dashboard financiero del dueño.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const seriesMonths = 6 // meses en el gráfico de ingresos vs gastos

// DashboardUseCase genera el resumen mensual y las series del gráfico.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// Gastos totales = gastos base + compras de stock del mes.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO del mes (YYYY-MM; vacío = mes actual).
// Las consultas son independientes y corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, month string) (*dto.DashboardSummaryDTO, error) {
	m, err := domain.ParseMonth(month, time.Now())
	if err != nil {
		return nil, err
	}
	return uc.SummaryFor(ctx, m)
}

// SummaryFor igual que GetSummary pero con el mes ya interpretado (lo usa el cierre mensual).
func (uc *DashboardUseCase) SummaryFor(ctx context.Context, m time.Time) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type amountResult struct {
		v   decimal.Decimal
		err error
	}

	ordersCh := make(chan countResult, 1)
	itemsCh := make(chan countResult, 1)
	quotesCh := make(chan countResult, 1)
	expensesCh := make(chan amountResult, 1)
	purchasesCh := make(chan amountResult, 1)
	incomeCh := make(chan amountResult, 1)
	stockValueCh := make(chan amountResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountOrdersByMonth(ctx, m)
		ordersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountStockItems(ctx)
		itemsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountQuotes(ctx)
		quotesCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SumExpensesByMonth(ctx, m)
		expensesCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SumStockPurchasesByMonth(ctx, m)
		purchasesCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SumIncomeByMonth(ctx, m)
		incomeCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SumStockValue(ctx)
		stockValueCh <- amountResult{v, err}
	}()

	orders, items, quotes := <-ordersCh, <-itemsCh, <-quotesCh
	expenses, purchases, income, stockValue := <-expensesCh, <-purchasesCh, <-incomeCh, <-stockValueCh

	for _, r := range []struct {
		what string
		err  error
	}{
		{"pedidos del mes", orders.err},
		{"ítems de stock", items.err},
		{"cotizaciones", quotes.err},
		{"gastos del mes", expenses.err},
		{"compras de stock", purchases.err},
		{"ingresos del mes", income.err},
		{"valor del stock", stockValue.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", r.what, r.err)
		}
	}

	totalExpenses := expenses.v.Add(purchases.v)
	return &dto.DashboardSummaryDTO{
		Month:             m.Format(domain.MonthLayout),
		Label:             monthLabel(m),
		TotalOrders:       orders.n,
		TotalStockItems:   items.n,
		BaseExpenses:      expenses.v.Round(2),
		StockPurchases:    purchases.v.Round(2),
		TotalExpenses:     totalExpenses.Round(2),
		TotalIncome:       income.v.Round(2),
		ProfitLoss:        income.v.Sub(totalExpenses).Round(2),
		CurrentStockValue: stockValue.v.Round(2),
		TotalQuotes:       quotes.n,
	}, nil
}

// GetSeries devuelve los últimos meses con ingresos o gastos, en orden ascendente.
func (uc *DashboardUseCase) GetSeries(ctx context.Context) (*dto.DashboardSeriesDTO, error) {
	income, err := uc.analyticsRepo.MonthlyIncome(ctx, seriesMonths)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ingresos mensuales: %w", err)
	}
	expenses, err := uc.analyticsRepo.MonthlyExpenses(ctx, seriesMonths)
	if err != nil {
		return nil, fmt.Errorf("dashboard: gastos mensuales: %w", err)
	}
	purchases, err := uc.analyticsRepo.MonthlyStockPurchases(ctx, seriesMonths)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compras mensuales: %w", err)
	}

	incomeBy := make(map[string]decimal.Decimal)
	expenseBy := make(map[string]decimal.Decimal)
	for _, r := range income {
		incomeBy[r.Month] = incomeBy[r.Month].Add(r.Amount)
	}
	for _, r := range expenses {
		expenseBy[r.Month] = expenseBy[r.Month].Add(r.Amount)
	}
	for _, r := range purchases {
		expenseBy[r.Month] = expenseBy[r.Month].Add(r.Amount)
	}

	months := make([]string, 0, len(incomeBy)+len(expenseBy))
	seen := make(map[string]bool)
	for _, set := range []map[string]decimal.Decimal{incomeBy, expenseBy} {
		for k := range set {
			if !seen[k] {
				seen[k] = true
				months = append(months, k)
			}
		}
	}
	sort.Strings(months)
	if len(months) > seriesMonths {
		months = months[len(months)-seriesMonths:]
	}

	out := &dto.DashboardSeriesDTO{
		Months:   months,
		Incomes:  make([]decimal.Decimal, 0, len(months)),
		Expenses: make([]decimal.Decimal, 0, len(months)),
		Profits:  make([]decimal.Decimal, 0, len(months)),
	}
	for _, k := range months {
		in, ex := incomeBy[k], expenseBy[k]
		out.Incomes = append(out.Incomes, in.Round(2))
		out.Expenses = append(out.Expenses, ex.Round(2))
		out.Profits = append(out.Profits, in.Sub(ex).Round(2))
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
