package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
)

var (
	_ repository.ExpenseRepository = (*ExpenseRepo)(nil)
	_ repository.QuoteRepository   = (*QuoteRepo)(nil)
)

// ExpenseRepo gastos en memoria.
type ExpenseRepo struct {
	c conn
}

// Create registra un gasto.
func (r *ExpenseRepo) Create(_ context.Context, expense *entity.Expense) error {
	return r.c.do(func(st *state) error {
		st.expenses = append(st.expenses, *expense)
		return nil
	})
}

// List gastos, más recientes primero.
func (r *ExpenseRepo) List(_ context.Context) ([]*entity.Expense, error) {
	out := []*entity.Expense{}
	err := r.c.do(func(st *state) error {
		for i := len(st.expenses) - 1; i >= 0; i-- {
			e := st.expenses[i]
			out = append(out, &e)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		return nil
	})
	return out, err
}

// QuoteRepo cotizaciones en memoria.
type QuoteRepo struct {
	c conn
}

// Create registra una cotización.
func (r *QuoteRepo) Create(_ context.Context, quote *entity.Quote) error {
	return r.c.do(func(st *state) error {
		st.quotes = append(st.quotes, *quote)
		return nil
	})
}

// List cotizaciones, más recientes primero.
func (r *QuoteRepo) List(_ context.Context) ([]*entity.Quote, error) {
	out := []*entity.Quote{}
	err := r.c.do(func(st *state) error {
		for i := len(st.quotes) - 1; i >= 0; i-- {
			q := st.quotes[i]
			out = append(out, &q)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		return nil
	})
	return out, err
}
