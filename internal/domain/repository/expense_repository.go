package repository

import (
	"context"

	"github.com/jhoicas/imprenta-api/internal/domain/entity"
)

// ExpenseRepository puerto de persistencia de gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context) ([]*entity.Expense, error)
}
