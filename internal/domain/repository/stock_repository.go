package repository

import (
	"context"

	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/inventory"
)

// StockRepository define el puerto de persistencia del libro de stock.
// Los métodos *ForUpdate bloquean la fila dentro de la transacción en curso.
// Las búsquedas devuelven (nil, nil) si el ítem no existe.
type StockRepository interface {
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	FindForUpdate(ctx context.Context, key inventory.LookupKey) (*entity.StockItem, error)
	Create(ctx context.Context, item *entity.StockItem) error
	Update(ctx context.Context, item *entity.StockItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.StockItem, error)
}
