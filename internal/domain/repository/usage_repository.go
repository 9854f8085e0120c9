package repository

import (
	"context"

	"github.com/jhoicas/imprenta-api/internal/domain/entity"
)

// UsageRepository puerto del registro de consumo de stock por pedido.
// DeleteByOrder solo se usa en la cascada de borrado de un pedido.
type UsageRepository interface {
	Create(ctx context.Context, usage *entity.UsageRecord) error
	CountByStockItem(ctx context.Context, stockItemID string) (int, error)
	UsedStockItemIDs(ctx context.Context) (map[string]bool, error)
	ListByOrders(ctx context.Context, orderIDs []string) ([]*entity.UsageLine, error)
	DeleteByOrder(ctx context.Context, orderID string) error
}
