package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddStockRequest body para POST /api/stock/additions.
// Cantidad y costo son obligatorios; un 0 explícito es una reposición válida.
type AddStockRequest struct {
	ItemName          string           `json:"item_name"`
	ItemNo            string           `json:"item_no,omitempty"`
	Size              string           `json:"size,omitempty"`
	AddedQuantity     *decimal.Decimal `json:"added_quantity"`
	AdditionTotalCost *decimal.Decimal `json:"addition_total_cost"`
}

// StockItemResponse ítem del libro de stock. Used indica que tiene consumos y no puede eliminarse.
type StockItemResponse struct {
	ID          string          `json:"id"`
	ItemName    string          `json:"item_name"`
	ItemNo      string          `json:"item_no"`
	Size        string          `json:"size"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LastUpdated time.Time       `json:"last_updated"`
	Used        bool            `json:"used"`
}

// UsageItemRequest una línea de consumo de stock para un pedido.
type UsageItemRequest struct {
	StockItemID  string           `json:"stock_item_id"`
	QuantityUsed *decimal.Decimal `json:"quantity_used"`
}

// ConsumeStockRequest body para POST /api/orders/:id/items.
// Acepta una sola línea (stock_item_id + quantity_used) o varias en items.
type ConsumeStockRequest struct {
	StockItemID  string             `json:"stock_item_id,omitempty"`
	QuantityUsed *decimal.Decimal   `json:"quantity_used,omitempty"`
	Items        []UsageItemRequest `json:"items,omitempty"`
}

// UsageLineResponse consumo de un pedido con nombre y talla del ítem.
type UsageLineResponse struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	StockItemID  string          `json:"stock_item_id"`
	ItemName     string          `json:"item_name"`
	Size         string          `json:"size"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
}

// MonthlyAdditionsResponse total de compras de stock en un mes.
type MonthlyAdditionsResponse struct {
	Month            string          `json:"month"`
	TotalAmountAdded decimal.Decimal `json:"total_amount_added"`
}
