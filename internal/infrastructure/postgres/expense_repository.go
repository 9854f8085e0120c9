package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
)

var (
	_ repository.ExpenseRepository = (*ExpenseRepo)(nil)
	_ repository.QuoteRepository   = (*QuoteRepo)(nil)
)

// ExpenseRepo gastos sobre PostgreSQL.
type ExpenseRepo struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository construye el adaptador.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepo {
	return &ExpenseRepo{pool: pool}
}

// Create inserta un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO expenses (id, expense_name, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)`, e.ID, e.Name, e.Amount, e.Description, e.Date)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// List gastos, más recientes primero.
func (r *ExpenseRepo) List(ctx context.Context) ([]*entity.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, expense_name, amount, description, date
		FROM expenses
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	list := []*entity.Expense{}
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.Description, &e.Date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// QuoteRepo cotizaciones sobre PostgreSQL.
type QuoteRepo struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository construye el adaptador.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

// Create inserta una cotización.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO quotes (id, name, phone, email, product, quantity, message, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		q.ID, q.Name, q.Phone, q.Email, q.Product, q.Quantity, q.Message, q.Date)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// List cotizaciones, más recientes primero.
func (r *QuoteRepo) List(ctx context.Context) ([]*entity.Quote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, phone, email, product, quantity, message, date
		FROM quotes
		ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	list := []*entity.Quote{}
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(&q.ID, &q.Name, &q.Phone, &q.Email, &q.Product, &q.Quantity, &q.Message, &q.Date); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}
