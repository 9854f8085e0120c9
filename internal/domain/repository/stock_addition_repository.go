package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
)

// StockAdditionRepository puerto del registro append-only de reposiciones.
// No expone Update ni Delete.
type StockAdditionRepository interface {
	Create(ctx context.Context, addition *entity.StockAddition) error
	ListByMonth(ctx context.Context, month time.Time) ([]*entity.StockAddition, error)
	SumByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error)
}
