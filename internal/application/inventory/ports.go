package inventory

import (
	"context"

	"github.com/jhoicas/imprenta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro de stock: si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		additionRepo repository.StockAdditionRepository,
		usageRepo repository.UsageRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
