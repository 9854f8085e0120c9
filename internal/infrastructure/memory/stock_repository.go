package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/inventory"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockAdditionRepository = (*StockAdditionRepo)(nil)
	_ repository.UsageRepository         = (*UsageRepo)(nil)
)

// StockRepo libro de stock en memoria.
type StockRepo struct {
	c conn
}

// GetByID devuelve (nil, nil) si el ítem no existe.
func (r *StockRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := r.c.do(func(st *state) error {
		if it, ok := st.stock[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: el bloqueo lo da el mutex del store durante la tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

// FindForUpdate busca por número de ítem o, sin él, por (nombre, talla).
func (r *StockRepo) FindForUpdate(_ context.Context, key inventory.LookupKey) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := r.c.do(func(st *state) error {
		for _, it := range sortedStock(st) {
			if key.ByItemNo() {
				if it.ItemNo == key.ItemNo {
					out = &it
					return nil
				}
				continue
			}
			if it.ItemName == key.ItemName && it.Size == key.Size {
				out = &it
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Create inserta un ítem. item_no es único cuando no está vacío.
func (r *StockRepo) Create(_ context.Context, item *entity.StockItem) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.stock[item.ID]; ok {
			return fmt.Errorf("%w: ítem de stock %s", domain.ErrDuplicate, item.ID)
		}
		if item.ItemNo != "" {
			for _, it := range st.stock {
				if it.ItemNo == item.ItemNo {
					return fmt.Errorf("%w: item_no %s", domain.ErrDuplicate, item.ItemNo)
				}
			}
		}
		st.stock[item.ID] = *item
		return nil
	})
}

// Update reemplaza cantidad, costo, total y fecha del ítem.
func (r *StockRepo) Update(_ context.Context, item *entity.StockItem) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.stock[item.ID]; !ok {
			return fmt.Errorf("%w: ítem de stock %s", domain.ErrNotFound, item.ID)
		}
		st.stock[item.ID] = *item
		return nil
	})
}

// Delete elimina el ítem; falla con ErrInUse si algún consumo lo referencia.
func (r *StockRepo) Delete(_ context.Context, id string) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.stock[id]; !ok {
			return fmt.Errorf("%w: ítem de stock %s", domain.ErrNotFound, id)
		}
		for _, u := range st.usage {
			if u.StockItemID == id {
				return domain.ErrInUse
			}
		}
		delete(st.stock, id)
		return nil
	})
}

// List devuelve el libro ordenado por nombre y talla.
func (r *StockRepo) List(_ context.Context) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	err := r.c.do(func(st *state) error {
		items := sortedStock(st)
		out = make([]*entity.StockItem, 0, len(items))
		for i := range items {
			out = append(out, &items[i])
		}
		return nil
	})
	return out, err
}

func sortedStock(st *state) []entity.StockItem {
	items := make([]entity.StockItem, 0, len(st.stock))
	for _, it := range st.stock {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ItemName != items[j].ItemName {
			return items[i].ItemName < items[j].ItemName
		}
		if items[i].Size != items[j].Size {
			return items[i].Size < items[j].Size
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// StockAdditionRepo registro append-only de reposiciones.
type StockAdditionRepo struct {
	c conn
}

// Create agrega una reposición al registro.
func (r *StockAdditionRepo) Create(_ context.Context, addition *entity.StockAddition) error {
	return r.c.do(func(st *state) error {
		st.additions = append(st.additions, *addition)
		return nil
	})
}

// ListByMonth reposiciones con fecha dentro del mes, en orden de registro.
func (r *StockAdditionRepo) ListByMonth(_ context.Context, month time.Time) ([]*entity.StockAddition, error) {
	start, end := domain.MonthRange(month)
	var out []*entity.StockAddition
	err := r.c.do(func(st *state) error {
		for i := range st.additions {
			a := st.additions[i]
			if inRange(a.DateAdded, start, end) {
				out = append(out, &a)
			}
		}
		return nil
	})
	return out, err
}

// SumByMonth suma total_amount_added de las reposiciones del mes.
func (r *StockAdditionRepo) SumByMonth(_ context.Context, month time.Time) (decimal.Decimal, error) {
	start, end := domain.MonthRange(month)
	total := decimal.Zero
	err := r.c.do(func(st *state) error {
		for _, a := range st.additions {
			if inRange(a.DateAdded, start, end) {
				total = total.Add(a.TotalAmountAdded)
			}
		}
		return nil
	})
	return total, err
}

// UsageRepo registro de consumos por pedido.
type UsageRepo struct {
	c conn
}

// Create registra un consumo. El pedido y el ítem deben existir.
func (r *UsageRepo) Create(_ context.Context, usage *entity.UsageRecord) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.orders[usage.OrderID]; !ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, usage.OrderID)
		}
		if _, ok := st.stock[usage.StockItemID]; !ok {
			return fmt.Errorf("%w: ítem de stock %s", domain.ErrNotFound, usage.StockItemID)
		}
		st.usage = append(st.usage, *usage)
		return nil
	})
}

// CountByStockItem cantidad de consumos que referencian el ítem.
func (r *UsageRepo) CountByStockItem(_ context.Context, stockItemID string) (int, error) {
	n := 0
	err := r.c.do(func(st *state) error {
		for _, u := range st.usage {
			if u.StockItemID == stockItemID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// UsedStockItemIDs conjunto de ítems con al menos un consumo.
func (r *UsageRepo) UsedStockItemIDs(_ context.Context) (map[string]bool, error) {
	out := make(map[string]bool)
	err := r.c.do(func(st *state) error {
		for _, u := range st.usage {
			out[u.StockItemID] = true
		}
		return nil
	})
	return out, err
}

// ListByOrders consumos de los pedidos indicados, con nombre y talla del ítem.
func (r *UsageRepo) ListByOrders(_ context.Context, orderIDs []string) ([]*entity.UsageLine, error) {
	want := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		want[id] = true
	}
	var out []*entity.UsageLine
	err := r.c.do(func(st *state) error {
		for _, u := range st.usage {
			if !want[u.OrderID] {
				continue
			}
			line := &entity.UsageLine{UsageRecord: u}
			if it, ok := st.stock[u.StockItemID]; ok {
				line.ItemName = it.ItemName
				line.Size = it.Size
			}
			out = append(out, line)
		}
		return nil
	})
	return out, err
}

// DeleteByOrder elimina los consumos del pedido.
func (r *UsageRepo) DeleteByOrder(_ context.Context, orderID string) error {
	return r.c.do(func(st *state) error {
		kept := st.usage[:0]
		for _, u := range st.usage {
			if u.OrderID != orderID {
				kept = append(kept, u)
			}
		}
		st.usage = kept
		return nil
	})
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
