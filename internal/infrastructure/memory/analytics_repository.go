package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del dashboard calculados sobre el estado en memoria.
type AnalyticsRepo struct {
	c conn
}

// CountOrdersByMonth pedidos con fecha en el mes.
func (r *AnalyticsRepo) CountOrdersByMonth(_ context.Context, month time.Time) (int, error) {
	start, end := domain.MonthRange(month)
	n := 0
	err := r.c.do(func(st *state) error {
		for _, o := range st.orders {
			if inRange(o.Date, start, end) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// CountStockItems cantidad de ítems en el libro.
func (r *AnalyticsRepo) CountStockItems(_ context.Context) (int, error) {
	n := 0
	err := r.c.do(func(st *state) error {
		n = len(st.stock)
		return nil
	})
	return n, err
}

// SumExpensesByMonth suma de gastos base del mes.
func (r *AnalyticsRepo) SumExpensesByMonth(_ context.Context, month time.Time) (decimal.Decimal, error) {
	start, end := domain.MonthRange(month)
	total := decimal.Zero
	err := r.c.do(func(st *state) error {
		for _, e := range st.expenses {
			if inRange(e.Date, start, end) {
				total = total.Add(e.Amount)
			}
		}
		return nil
	})
	return total, err
}

// SumStockPurchasesByMonth suma de reposiciones de stock del mes.
func (r *AnalyticsRepo) SumStockPurchasesByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error) {
	return (&StockAdditionRepo{c: r.c}).SumByMonth(ctx, month)
}

// SumIncomeByMonth suma amount_paid de los pedidos Completed del mes.
func (r *AnalyticsRepo) SumIncomeByMonth(_ context.Context, month time.Time) (decimal.Decimal, error) {
	start, end := domain.MonthRange(month)
	total := decimal.Zero
	err := r.c.do(func(st *state) error {
		for _, o := range st.orders {
			if isCompleted(o) && inRange(o.Date, start, end) {
				total = total.Add(o.AmountPaid)
			}
		}
		return nil
	})
	return total, err
}

// SumStockValue suma total_amount de todo el libro.
func (r *AnalyticsRepo) SumStockValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.c.do(func(st *state) error {
		for _, it := range st.stock {
			total = total.Add(it.TotalAmount)
		}
		return nil
	})
	return total, err
}

// CountQuotes cantidad de cotizaciones recibidas.
func (r *AnalyticsRepo) CountQuotes(_ context.Context) (int, error) {
	n := 0
	err := r.c.do(func(st *state) error {
		n = len(st.quotes)
		return nil
	})
	return n, err
}

// MonthlyIncome ingresos por mes (pedidos Completed).
func (r *AnalyticsRepo) MonthlyIncome(_ context.Context, limit int) ([]repository.MonthlyAmount, error) {
	var out []repository.MonthlyAmount
	err := r.c.do(func(st *state) error {
		sums := make(map[string]decimal.Decimal)
		for _, o := range st.orders {
			if isCompleted(o) {
				k := o.Date.Format(domain.MonthLayout)
				sums[k] = sums[k].Add(o.AmountPaid)
			}
		}
		out = lastMonths(sums, limit)
		return nil
	})
	return out, err
}

// MonthlyExpenses gastos base por mes.
func (r *AnalyticsRepo) MonthlyExpenses(_ context.Context, limit int) ([]repository.MonthlyAmount, error) {
	var out []repository.MonthlyAmount
	err := r.c.do(func(st *state) error {
		sums := make(map[string]decimal.Decimal)
		for _, e := range st.expenses {
			k := e.Date.Format(domain.MonthLayout)
			sums[k] = sums[k].Add(e.Amount)
		}
		out = lastMonths(sums, limit)
		return nil
	})
	return out, err
}

// MonthlyStockPurchases compras de stock por mes.
func (r *AnalyticsRepo) MonthlyStockPurchases(_ context.Context, limit int) ([]repository.MonthlyAmount, error) {
	var out []repository.MonthlyAmount
	err := r.c.do(func(st *state) error {
		sums := make(map[string]decimal.Decimal)
		for _, a := range st.additions {
			k := a.DateAdded.Format(domain.MonthLayout)
			sums[k] = sums[k].Add(a.TotalAmountAdded)
		}
		out = lastMonths(sums, limit)
		return nil
	})
	return out, err
}

func isCompleted(o entity.Order) bool {
	return strings.EqualFold(o.Status, entity.OrderStatusCompleted)
}

// lastMonths ordena del mes más reciente al más antiguo y corta en limit.
func lastMonths(sums map[string]decimal.Decimal, limit int) []repository.MonthlyAmount {
	out := make([]repository.MonthlyAmount, 0, len(sums))
	for m, v := range sums {
		out = append(out, repository.MonthlyAmount{Month: m, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
