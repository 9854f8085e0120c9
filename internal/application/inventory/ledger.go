package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/inventory"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/jhoicas/imprenta-api/pkg/logger"
)

// LedgerService es el libro de stock: reposiciones con costo promedio ponderado,
// consumo por pedido con verificación de suficiencia y borrado protegido.
// Cada escritura corre en una sola transacción vía TxRunner.
type LedgerService struct {
	txRunner     TxRunner
	stockRepo    repository.StockRepository
	additionRepo repository.StockAdditionRepository
	usageRepo    repository.UsageRepository
	log          *logger.Logger
}

// NewLedgerService construye el servicio. Los repositorios sin tx se usan solo para lecturas.
func NewLedgerService(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	additionRepo repository.StockAdditionRepository,
	usageRepo repository.UsageRepository,
	log *logger.Logger,
) *LedgerService {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerService{
		txRunner:     txRunner,
		stockRepo:    stockRepo,
		additionRepo: additionRepo,
		usageRepo:    usageRepo,
		log:          log,
	}
}

// AddStockInput entrada para una reposición de stock.
type AddStockInput struct {
	ItemName          string
	ItemNo            string
	Size              string
	AddedQuantity     decimal.Decimal
	AdditionTotalCost decimal.Decimal
}

// UsageInput una línea de consumo de stock.
type UsageInput struct {
	StockItemID  string
	QuantityUsed decimal.Decimal
}

// AddStock busca el ítem (por ItemNo, o por nombre+talla si ItemNo está vacío),
// lo crea o recalcula su costo promedio ponderado, y registra la reposición.
// Ítem y registro de reposición se escriben en la misma transacción.
func (s *LedgerService) AddStock(ctx context.Context, in AddStockInput) (*entity.StockItem, error) {
	key := inventory.NewLookupKey(in.ItemName, in.ItemNo, in.Size)
	if key.ItemName == "" {
		return nil, fmt.Errorf("%w: item_name es requerido", domain.ErrInvalidInput)
	}
	if in.AddedQuantity.IsNegative() || in.AdditionTotalCost.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad y costo no pueden ser negativos", domain.ErrInvalidInput)
	}

	today := domain.Today(time.Now())
	var result *entity.StockItem

	err := s.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		additionRepo repository.StockAdditionRepository,
		_ repository.UsageRepository,
		_ repository.OrderRepository,
	) error {
		item, err := stockRepo.FindForUpdate(ctx, key)
		if err != nil {
			return err
		}
		if item == nil {
			unitCost := inventory.AdditionUnitCost(in.AddedQuantity, in.AdditionTotalCost)
			item = &entity.StockItem{
				ID:          uuid.New().String(),
				ItemName:    key.ItemName,
				ItemNo:      key.ItemNo,
				Size:        key.Size,
				Quantity:    in.AddedQuantity,
				UnitCost:    unitCost,
				TotalAmount: inventory.TotalAmount(in.AddedQuantity, unitCost),
				LastUpdated: today,
			}
			if err := stockRepo.Create(ctx, item); err != nil {
				return err
			}
		} else {
			newQty := item.Quantity.Add(in.AddedQuantity)
			newCost := inventory.CostCalculator(item.Quantity, item.UnitCost, in.AddedQuantity, in.AdditionTotalCost)
			item.Quantity = newQty
			item.UnitCost = newCost
			item.TotalAmount = inventory.TotalAmount(newQty, newCost)
			item.LastUpdated = today
			if err := stockRepo.Update(ctx, item); err != nil {
				return err
			}
		}

		addition := &entity.StockAddition{
			ID:               uuid.New().String(),
			ItemName:         key.ItemName,
			ItemNo:           key.ItemNo,
			Quantity:         in.AddedQuantity,
			UnitCost:         inventory.AdditionUnitCost(in.AddedQuantity, in.AdditionTotalCost),
			TotalAmountAdded: in.AdditionTotalCost,
			DateAdded:        today,
		}
		if err := additionRepo.Create(ctx, addition); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("stock_item_id", result.ID).
		Str("item_name", result.ItemName).
		Str("added_qty", in.AddedQuantity.String()).
		Str("addition_total_cost", in.AdditionTotalCost.String()).
		Str("quantity", result.Quantity.String()).
		Str("unit_cost", result.UnitCost.String()).
		Msg("stock repuesto")
	return result, nil
}

// ConsumeStock descuenta quantityUsed del ítem y registra el uso para el pedido.
// No hay descuento parcial: si el stock no alcanza, el libro queda intacto.
func (s *LedgerService) ConsumeStock(ctx context.Context, orderID, stockItemID string, quantityUsed decimal.Decimal) error {
	if !quantityUsed.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	return s.consume(ctx, orderID, []UsageInput{{StockItemID: stockItemID, QuantityUsed: quantityUsed}})
}

// ConsumeStockBatch aplica varias líneas de consumo a un pedido en una sola transacción.
// Las líneas con cantidad <= 0 se ignoran; si alguna línea falla no se aplica ninguna.
// Un lote sin líneas válidas no hace nada. Devuelve la cantidad de líneas aplicadas.
func (s *LedgerService) ConsumeStockBatch(ctx context.Context, orderID string, lines []UsageInput) (int, error) {
	valid := make([]UsageInput, 0, len(lines))
	for _, l := range lines {
		if !l.QuantityUsed.IsPositive() {
			continue
		}
		valid = append(valid, l)
	}
	if len(valid) == 0 {
		return 0, nil
	}
	if err := s.consume(ctx, orderID, valid); err != nil {
		return 0, err
	}
	return len(valid), nil
}

func (s *LedgerService) consume(ctx context.Context, orderID string, lines []UsageInput) error {
	today := domain.Today(time.Now())

	err := s.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.StockAdditionRepository,
		usageRepo repository.UsageRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
		}

		for _, l := range lines {
			// Bloquea la fila del ítem; un ítem repetido en el lote ve el descuento anterior.
			item, err := stockRepo.GetForUpdate(ctx, l.StockItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: ítem de stock %s", domain.ErrNotFound, l.StockItemID)
			}
			if item.Quantity.LessThan(l.QuantityUsed) {
				return fmt.Errorf("%w: %s disponible %s, solicitado %s",
					domain.ErrInsufficientStock, item.ItemName, item.Quantity.String(), l.QuantityUsed.String())
			}
			item.Quantity = item.Quantity.Sub(l.QuantityUsed)
			item.TotalAmount = inventory.TotalAmount(item.Quantity, item.UnitCost)
			item.LastUpdated = today
			if err := stockRepo.Update(ctx, item); err != nil {
				return err
			}
			usage := &entity.UsageRecord{
				ID:           uuid.New().String(),
				OrderID:      orderID,
				StockItemID:  item.ID,
				QuantityUsed: l.QuantityUsed,
			}
			if err := usageRepo.Create(ctx, usage); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, l := range lines {
		s.log.Info().
			Str("order_id", orderID).
			Str("stock_item_id", l.StockItemID).
			Str("quantity_used", l.QuantityUsed.String()).
			Msg("stock consumido")
	}
	return nil
}

// DeleteStockItem elimina el ítem si ningún pedido lo ha consumido (ErrInUse en otro caso).
func (s *LedgerService) DeleteStockItem(ctx context.Context, id string) error {
	err := s.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.StockAdditionRepository,
		usageRepo repository.UsageRepository,
		_ repository.OrderRepository,
	) error {
		item, err := stockRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: ítem de stock %s", domain.ErrNotFound, id)
		}
		used, err := usageRepo.CountByStockItem(ctx, id)
		if err != nil {
			return err
		}
		if used > 0 {
			return domain.ErrInUse
		}
		return stockRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("stock_item_id", id).Msg("ítem de stock eliminado")
	return nil
}

// ListStock devuelve el libro ordenado por nombre, marcando los ítems con consumos.
func (s *LedgerService) ListStock(ctx context.Context) ([]dto.StockItemResponse, error) {
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	used, err := s.usageRepo.UsedStockItemIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockItemResponse{
			ID:          it.ID,
			ItemName:    it.ItemName,
			ItemNo:      it.ItemNo,
			Size:        it.Size,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
			TotalAmount: it.TotalAmount,
			LastUpdated: it.LastUpdated,
			Used:        used[it.ID],
		})
	}
	return out, nil
}

// ListAdditionsForMonth suma total_amount_added de las reposiciones del mes (YYYY-MM; vacío = mes actual).
func (s *LedgerService) ListAdditionsForMonth(ctx context.Context, month string) (decimal.Decimal, error) {
	m, err := domain.ParseMonth(month, time.Now())
	if err != nil {
		return decimal.Zero, err
	}
	return s.additionRepo.SumByMonth(ctx, m)
}

// ListUsageForOrder devuelve los consumos de un pedido con nombre y talla del ítem.
func (s *LedgerService) ListUsageForOrder(ctx context.Context, orderID string) ([]dto.UsageLineResponse, error) {
	byOrder, err := s.UsageByOrders(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	lines := byOrder[orderID]
	if lines == nil {
		lines = []dto.UsageLineResponse{}
	}
	return lines, nil
}

// UsageByOrders agrupa los consumos de varios pedidos por ID de pedido.
func (s *LedgerService) UsageByOrders(ctx context.Context, orderIDs []string) (map[string][]dto.UsageLineResponse, error) {
	out := make(map[string][]dto.UsageLineResponse, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	lines, err := s.usageRepo.ListByOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		out[l.OrderID] = append(out[l.OrderID], dto.UsageLineResponse{
			ID:           l.ID,
			OrderID:      l.OrderID,
			StockItemID:  l.StockItemID,
			ItemName:     l.ItemName,
			Size:         strings.TrimSpace(l.Size),
			QuantityUsed: l.QuantityUsed,
		})
	}
	return out, nil
}
