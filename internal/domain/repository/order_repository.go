package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos.
// Los métodos de actualización devuelven domain.ErrNotFound si el pedido no existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Order, error)
	ListByMonth(ctx context.Context, month time.Time) ([]*entity.Order, error)
	ListByCustomerAndMonth(ctx context.Context, customerID string, month time.Time) ([]*entity.Order, error)
	ListOpen(ctx context.Context) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string, receiveDate *time.Time) error
	AddPayment(ctx context.Context, id string, amount decimal.Decimal) error
	UpdateTotalCost(ctx context.Context, id string, totalCost decimal.Decimal) error
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}
