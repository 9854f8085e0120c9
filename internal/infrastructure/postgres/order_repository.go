package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// orderSelect une con users para resolver nombre visible y teléfono del cliente.
const orderSelect = `
	SELECT o.id::text, COALESCE(o.customer_id::text, ''), o.customer_name, o.product_name, o.size, o.colour,
	       o.quantity, o.total_cost, o.amount_paid, o.date, o.status, o.receive_date,
	       COALESCE(NULLIF(btrim(o.customer_name), ''), NULLIF(btrim(u.name), ''), NULLIF(btrim(u.phone), ''), '` + entity.CustomerUnknown + `'),
	       COALESCE(u.phone, '')
	FROM orders o
	LEFT JOIN users u ON u.id = o.customer_id`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta un pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, customer_name, product_name, size, colour,
		                    quantity, total_cost, amount_paid, date, status, receive_date)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerID, o.CustomerName, o.ProductName, o.Size, o.Colour,
		o.Quantity, o.TotalCost, o.AmountPaid, o.Date, o.Status, o.ReceiveDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, o.ID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByIDs pedidos existentes entre los IDs dados, en el orden pedido.
func (r *OrderRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Order, error) {
	ids = validUUIDs(ids)
	if len(ids) == 0 {
		return []*entity.Order{}, nil
	}
	return r.list(ctx, orderSelect+`
		JOIN unnest($1::uuid[]) WITH ORDINALITY AS req(id, pos) ON req.id = o.id
		ORDER BY req.pos`, ids)
}

// ListByMonth pedidos del mes, más recientes primero.
func (r *OrderRepo) ListByMonth(ctx context.Context, month time.Time) ([]*entity.Order, error) {
	start, end := domain.MonthRange(month)
	return r.list(ctx, orderSelect+`
		WHERE o.date >= $1 AND o.date < $2
		ORDER BY o.date DESC, o.created_at DESC`, start, end)
}

// ListByCustomerAndMonth pedidos del cliente en el mes, más recientes primero.
func (r *OrderRepo) ListByCustomerAndMonth(ctx context.Context, customerID string, month time.Time) ([]*entity.Order, error) {
	if len(validUUIDs([]string{customerID})) == 0 {
		return []*entity.Order{}, nil
	}
	start, end := domain.MonthRange(month)
	return r.list(ctx, orderSelect+`
		WHERE o.customer_id = $1 AND o.date >= $2 AND o.date < $3
		ORDER BY o.date DESC, o.created_at DESC`, customerID, start, end)
}

// ListOpen pedidos Pending o In Progress, más antiguos primero.
func (r *OrderRepo) ListOpen(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, orderSelect+`
		WHERE o.status IN ($1, $2)
		ORDER BY o.date, o.created_at`, entity.OrderStatusPending, entity.OrderStatusInProgress)
}

// UpdateStatus asigna estado y fecha de recepción.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, receiveDate *time.Time) error {
	return r.exec(ctx, id, `UPDATE orders SET status = $2, receive_date = $3 WHERE id = $1`, id, status, receiveDate)
}

// AddPayment suma amount a amount_paid.
func (r *OrderRepo) AddPayment(ctx context.Context, id string, amount decimal.Decimal) error {
	return r.exec(ctx, id, `UPDATE orders SET amount_paid = amount_paid + $2 WHERE id = $1`, id, amount)
}

// UpdateTotalCost fija el costo total.
func (r *OrderRepo) UpdateTotalCost(ctx context.Context, id string, totalCost decimal.Decimal) error {
	return r.exec(ctx, id, `UPDATE orders SET total_cost = $2 WHERE id = $1`, id, totalCost)
}

// Update guarda los campos editables del pedido.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders
		SET product_name = $2, size = $3, colour = $4, quantity = $5, total_cost = $6,
		    status = $7, receive_date = $8
		WHERE id = $1`
	return r.exec(ctx, o.ID, query, o.ID, o.ProductName, o.Size, o.Colour, o.Quantity, o.TotalCost, o.Status, o.ReceiveDate)
}

// Delete elimina el pedido. Falla con ErrInUse si aún tiene consumos.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	err := r.exec(ctx, id, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil && isForeignKeyViolation(err) {
		return domain.ErrInUse
	}
	return err
}

func (r *OrderRepo) exec(ctx context.Context, id, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isInvalidText(err) {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
		}
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	list := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.ProductName, &o.Size, &o.Colour,
		&o.Quantity, &o.TotalCost, &o.AmountPaid, &o.Date, &o.Status, &o.ReceiveDate,
		&o.CustomerDisplay, &o.CustomerPhone,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
