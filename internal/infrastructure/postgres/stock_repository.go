package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/inventory"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockAdditionRepository = (*StockAdditionRepo)(nil)
)

const (
	stockColumns = `id, item_name, item_no, size, quantity, unit_cost, total_amount, last_updated`
	stockSelect  = `id::text, item_name, item_no, size, quantity, unit_cost, total_amount, last_updated`
)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetByID obtiene un ítem; (nil, nil) si no existe.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, `SELECT `+stockSelect+` FROM stock WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, `SELECT `+stockSelect+` FROM stock WHERE id = $1 FOR UPDATE`, id)
}

// FindForUpdate busca por item_no o, sin él, por (item_name, size) y bloquea la fila.
func (r *StockRepo) FindForUpdate(ctx context.Context, key inventory.LookupKey) (*entity.StockItem, error) {
	if key.ByItemNo() {
		return r.getOne(ctx, `SELECT `+stockSelect+` FROM stock WHERE item_no = $1 FOR UPDATE`, key.ItemNo)
	}
	return r.getOne(ctx, `
		SELECT `+stockSelect+` FROM stock
		WHERE item_name = $1 AND size = $2
		ORDER BY id
		LIMIT 1
		FOR UPDATE`, key.ItemName, key.Size)
}

// Create inserta un nuevo ítem en el libro.
func (r *StockRepo) Create(ctx context.Context, item *entity.StockItem) error {
	query := `
		INSERT INTO stock (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ItemName, item.ItemNo, item.Size,
		item.Quantity, item.UnitCost, item.TotalAmount, item.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item_no %s", domain.ErrDuplicate, item.ItemNo)
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// Update guarda cantidad, costo unitario, total y fecha.
func (r *StockRepo) Update(ctx context.Context, item *entity.StockItem) error {
	query := `
		UPDATE stock
		SET quantity = $2, unit_cost = $3, total_amount = $4, last_updated = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, item.ID, item.Quantity, item.UnitCost, item.TotalAmount, item.LastUpdated)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ítem de stock %s", domain.ErrNotFound, item.ID)
	}
	return nil
}

// Delete elimina el ítem. La FK de order_items_used lo impide si tiene consumos (ErrInUse).
func (r *StockRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		if isInvalidText(err) {
			return fmt.Errorf("%w: ítem de stock %s", domain.ErrNotFound, id)
		}
		return fmt.Errorf("delete stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ítem de stock %s", domain.ErrNotFound, id)
	}
	return nil
}

// List devuelve el libro ordenado por nombre y talla.
func (r *StockRepo) List(ctx context.Context) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockSelect+` FROM stock ORDER BY item_name, size, id`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	list := []*entity.StockItem{}
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(&it.ID, &it.ItemName, &it.ItemNo, &it.Size,
			&it.Quantity, &it.UnitCost, &it.TotalAmount, &it.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *StockRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockItem, error) {
	var it entity.StockItem
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.ItemName, &it.ItemNo, &it.Size,
		&it.Quantity, &it.UnitCost, &it.TotalAmount, &it.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &it, nil
}

// StockAdditionRepo registro append-only de reposiciones.
type StockAdditionRepo struct {
	q Querier
}

// NewStockAdditionRepository construye el adaptador. Pasar pool o tx.
func NewStockAdditionRepository(q Querier) *StockAdditionRepo {
	return &StockAdditionRepo{q: q}
}

// Create inserta una reposición.
func (r *StockAdditionRepo) Create(ctx context.Context, a *entity.StockAddition) error {
	query := `
		INSERT INTO stock_additions (id, item_name, item_no, quantity, unit_cost, total_amount_added, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, a.ID, a.ItemName, a.ItemNo, a.Quantity, a.UnitCost, a.TotalAmountAdded, a.DateAdded)
	if err != nil {
		return fmt.Errorf("insert stock addition: %w", err)
	}
	return nil
}

// ListByMonth reposiciones del mes en orden de registro.
func (r *StockAdditionRepo) ListByMonth(ctx context.Context, month time.Time) ([]*entity.StockAddition, error) {
	start, end := domain.MonthRange(month)
	query := `
		SELECT id::text, item_name, item_no, quantity, unit_cost, total_amount_added, date_added
		FROM stock_additions
		WHERE date_added >= $1 AND date_added < $2
		ORDER BY date_added, created_at`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list stock additions: %w", err)
	}
	defer rows.Close()

	list := []*entity.StockAddition{}
	for rows.Next() {
		var a entity.StockAddition
		if err := rows.Scan(&a.ID, &a.ItemName, &a.ItemNo, &a.Quantity, &a.UnitCost, &a.TotalAmountAdded, &a.DateAdded); err != nil {
			return nil, fmt.Errorf("scan stock addition: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// SumByMonth suma total_amount_added del mes.
func (r *StockAdditionRepo) SumByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error) {
	start, end := domain.MonthRange(month)
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount_added), 0)
		FROM stock_additions
		WHERE date_added >= $1 AND date_added < $2`, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum stock additions: %w", err)
	}
	return total, nil
}
