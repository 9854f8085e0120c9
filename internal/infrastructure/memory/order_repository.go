package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria. Las lecturas completan CustomerDisplay y CustomerPhone
// igual que el LEFT JOIN con users de PostgreSQL.
type OrderRepo struct {
	c conn
}

// Create inserta un pedido.
func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.orders[order.ID]; ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, order.ID)
		}
		o := *order
		o.CustomerDisplay, o.CustomerPhone = "", ""
		st.orders[o.ID] = o
		st.orderSeq = append(st.orderSeq, o.ID)
		return nil
	})
}

// GetByID devuelve (nil, nil) si el pedido no existe.
func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.c.do(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = withCustomer(st, o)
		}
		return nil
	})
	return out, err
}

// ListByIDs pedidos existentes entre los IDs dados, en el orden pedido. Los IDs desconocidos se omiten.
func (r *OrderRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.c.do(func(st *state) error {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			o, ok := st.orders[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, withCustomer(st, o))
		}
		return nil
	})
	return out, err
}

// ListByMonth pedidos del mes, más recientes primero.
func (r *OrderRepo) ListByMonth(_ context.Context, month time.Time) ([]*entity.Order, error) {
	start, end := domain.MonthRange(month)
	return r.list(func(o entity.Order) bool { return inRange(o.Date, start, end) }, true)
}

// ListByCustomerAndMonth pedidos del cliente en el mes, más recientes primero.
func (r *OrderRepo) ListByCustomerAndMonth(_ context.Context, customerID string, month time.Time) ([]*entity.Order, error) {
	start, end := domain.MonthRange(month)
	return r.list(func(o entity.Order) bool {
		return o.CustomerID == customerID && inRange(o.Date, start, end)
	}, true)
}

// ListOpen pedidos Pending o In Progress, más antiguos primero.
func (r *OrderRepo) ListOpen(_ context.Context) ([]*entity.Order, error) {
	return r.list(func(o entity.Order) bool {
		return o.Status == entity.OrderStatusPending || o.Status == entity.OrderStatusInProgress
	}, false)
}

// UpdateStatus asigna estado y fecha de recepción.
func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string, receiveDate *time.Time) error {
	return r.modify(id, func(o *entity.Order) {
		o.Status = status
		o.ReceiveDate = copyTime(receiveDate)
	})
}

// AddPayment suma amount a amount_paid.
func (r *OrderRepo) AddPayment(_ context.Context, id string, amount decimal.Decimal) error {
	return r.modify(id, func(o *entity.Order) { o.AmountPaid = o.AmountPaid.Add(amount) })
}

// UpdateTotalCost fija el costo total del pedido.
func (r *OrderRepo) UpdateTotalCost(_ context.Context, id string, totalCost decimal.Decimal) error {
	return r.modify(id, func(o *entity.Order) { o.TotalCost = totalCost })
}

// Update reemplaza los campos editables del pedido.
func (r *OrderRepo) Update(_ context.Context, order *entity.Order) error {
	return r.modify(order.ID, func(o *entity.Order) {
		o.ProductName = order.ProductName
		o.Size = order.Size
		o.Colour = order.Colour
		o.Quantity = order.Quantity
		o.TotalCost = order.TotalCost
		o.Status = order.Status
		o.ReceiveDate = copyTime(order.ReceiveDate)
	})
}

// Delete elimina el pedido. Falla con ErrInUse si aún tiene consumos (como la FK de PostgreSQL).
func (r *OrderRepo) Delete(_ context.Context, id string) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
		}
		for _, u := range st.usage {
			if u.OrderID == id {
				return domain.ErrInUse
			}
		}
		delete(st.orders, id)
		seq := make([]string, 0, len(st.orderSeq))
		for _, oid := range st.orderSeq {
			if oid != id {
				seq = append(seq, oid)
			}
		}
		st.orderSeq = seq
		return nil
	})
}

func (r *OrderRepo) modify(id string, fn func(o *entity.Order)) error {
	return r.c.do(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
		}
		fn(&o)
		st.orders[id] = o
		return nil
	})
}

// list filtra en orden de inserción y ordena por fecha (estable).
func (r *OrderRepo) list(match func(o entity.Order) bool, newestFirst bool) ([]*entity.Order, error) {
	out := []*entity.Order{}
	err := r.c.do(func(st *state) error {
		for _, id := range st.orderSeq {
			o := st.orders[id]
			if match(o) {
				out = append(out, withCustomer(st, o))
			}
		}
		if newestFirst {
			for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
				out[i], out[j] = out[j], out[i]
			}
			sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
			return nil
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
		return nil
	})
	return out, err
}

// withCustomer copia el pedido y resuelve nombre visible y teléfono del cliente.
func withCustomer(st *state, o entity.Order) *entity.Order {
	o.ReceiveDate = copyTime(o.ReceiveDate)
	var name, phone string
	if u, ok := st.users[o.CustomerID]; ok {
		name, phone = u.Name, u.Phone
	}
	o.CustomerPhone = phone
	o.CustomerDisplay = entity.CustomerDisplayName(o.CustomerName, name, phone)
	return &o
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
