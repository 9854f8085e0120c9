package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/application/inventory"
	"github.com/jhoicas/imprenta-api/internal/domain"
)

var errMissingQuantityUsed = fmt.Errorf("%w: quantity_used es requerido", domain.ErrInvalidInput)

// InventoryHandler maneja el libro de stock: listado, reposiciones, consumos y borrado.
type InventoryHandler struct {
	ledger *inventory.LedgerService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// ListStock godoc
// @Summary      Libro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockItemResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	list, err := h.ledger.ListStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// AddStock godoc
// @Summary      Reponer stock
// @Description  Crea el ítem o recalcula su costo promedio ponderado y registra la reposición.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "item_name, item_no, size, added_quantity, addition_total_cost"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/additions [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.AddedQuantity == nil || in.AdditionTotalCost == nil {
		return respondError(c, fmt.Errorf("%w: added_quantity y addition_total_cost son requeridos", domain.ErrInvalidInput))
	}
	item, err := h.ledger.AddStock(c.UserContext(), inventory.AddStockInput{
		ItemName:          in.ItemName,
		ItemNo:            in.ItemNo,
		Size:              in.Size,
		AddedQuantity:     *in.AddedQuantity,
		AdditionTotalCost: *in.AdditionTotalCost,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockItemResponse{
		ID:          item.ID,
		ItemName:    item.ItemName,
		ItemNo:      item.ItemNo,
		Size:        item.Size,
		Quantity:    item.Quantity,
		UnitCost:    item.UnitCost,
		TotalAmount: item.TotalAmount,
		LastUpdated: item.LastUpdated,
	})
}

// AdditionsTotal godoc
// @Summary      Total de compras de stock del mes
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (vacío = mes actual)"
// @Success      200  {object}  dto.MonthlyAdditionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/additions/total [get]
func (h *InventoryHandler) AdditionsTotal(c *fiber.Ctx) error {
	month := c.Query("month")
	total, err := h.ledger.ListAdditionsForMonth(c.UserContext(), month)
	if err != nil {
		return respondError(c, err)
	}
	if month == "" {
		month = domain.Today(time.Now()).Format(domain.MonthLayout)
	}
	return c.JSON(dto.MonthlyAdditionsResponse{Month: month, TotalAmountAdded: total})
}

// DeleteStock godoc
// @Summary      Eliminar ítem de stock
// @Description  Solo si ningún pedido lo ha consumido (409 IN_USE en otro caso).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *InventoryHandler) DeleteStock(c *fiber.Ctx) error {
	if err := h.ledger.DeleteStockItem(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ítem eliminado"})
}

// ConsumeStock godoc
// @Summary      Registrar ítems usados en un pedido
// @Description  Acepta una línea (stock_item_id, quantity_used) o varias en items; todo o nada.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del pedido"
// @Param        body  body  dto.ConsumeStockRequest    true  "líneas de consumo"
// @Success      201   {array}   dto.UsageLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/items [post]
func (h *InventoryHandler) ConsumeStock(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var in dto.ConsumeStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ctx := c.UserContext()
	if len(in.Items) == 0 {
		if in.QuantityUsed == nil {
			return respondError(c, errMissingQuantityUsed)
		}
		if err := h.ledger.ConsumeStock(ctx, orderID, in.StockItemID, *in.QuantityUsed); err != nil {
			return respondError(c, err)
		}
	} else {
		lines := make([]inventory.UsageInput, 0, len(in.Items))
		for _, it := range in.Items {
			if it.QuantityUsed == nil {
				return respondError(c, errMissingQuantityUsed)
			}
			lines = append(lines, inventory.UsageInput{StockItemID: it.StockItemID, QuantityUsed: *it.QuantityUsed})
		}
		if _, err := h.ledger.ConsumeStockBatch(ctx, orderID, lines); err != nil {
			return respondError(c, err)
		}
	}
	usage, err := h.ledger.ListUsageForOrder(ctx, orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usage)
}

// ListUsage godoc
// @Summary      Ítems usados en un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {array}  dto.UsageLineResponse
// @Router       /api/orders/{id}/items [get]
func (h *InventoryHandler) ListUsage(c *fiber.Ctx) error {
	usage, err := h.ledger.ListUsageForOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(usage)
}
