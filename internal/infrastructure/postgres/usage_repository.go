package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
)

var _ repository.UsageRepository = (*UsageRepo)(nil)

// UsageRepo consumos de stock por pedido (tabla order_items_used).
type UsageRepo struct {
	q Querier
}

// NewUsageRepository construye el adaptador. Pasar pool o tx.
func NewUsageRepository(q Querier) *UsageRepo {
	return &UsageRepo{q: q}
}

// Create registra un consumo.
func (r *UsageRepo) Create(ctx context.Context, u *entity.UsageRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_items_used (id, order_id, stock_item_id, quantity_used)
		VALUES ($1, $2, $3, $4)`, u.ID, u.OrderID, u.StockItemID, u.QuantityUsed)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidText(err) {
			return fmt.Errorf("%w: pedido %s o ítem %s", domain.ErrNotFound, u.OrderID, u.StockItemID)
		}
		return fmt.Errorf("insert usage: %w", err)
	}
	return nil
}

// CountByStockItem cantidad de consumos que referencian el ítem.
func (r *UsageRepo) CountByStockItem(ctx context.Context, stockItemID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM order_items_used WHERE stock_item_id = $1`, stockItemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count usage: %w", err)
	}
	return n, nil
}

// UsedStockItemIDs conjunto de ítems con al menos un consumo.
func (r *UsageRepo) UsedStockItemIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT stock_item_id::text FROM order_items_used`)
	if err != nil {
		return nil, fmt.Errorf("used stock items: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan used stock item: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

// ListByOrders consumos de los pedidos, unidos con nombre y talla del ítem.
func (r *UsageRepo) ListByOrders(ctx context.Context, orderIDs []string) ([]*entity.UsageLine, error) {
	ids := validUUIDs(orderIDs)
	if len(ids) == 0 {
		return []*entity.UsageLine{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT u.id::text, u.order_id::text, u.stock_item_id::text, u.quantity_used,
		       COALESCE(s.item_name, ''), COALESCE(s.size, '')
		FROM order_items_used u
		LEFT JOIN stock s ON s.id = u.stock_item_id
		WHERE u.order_id = ANY($1::uuid[])
		ORDER BY u.created_at, u.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	defer rows.Close()

	list := []*entity.UsageLine{}
	for rows.Next() {
		var l entity.UsageLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.StockItemID, &l.QuantityUsed, &l.ItemName, &l.Size); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteByOrder elimina los consumos del pedido (cascada del borrado de pedido).
func (r *UsageRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items_used WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete usage: %w", err)
	}
	return nil
}
