package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest body para POST /api/customer/orders.
type PlaceOrderRequest struct {
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Colour      string          `json:"colour"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// AddPaymentRequest body para POST /api/orders/:id/payments (suma al monto pagado).
type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// UpdateTotalCostRequest body para PATCH /api/orders/:id/total-cost.
type UpdateTotalCostRequest struct {
	TotalCost decimal.Decimal `json:"total_cost"`
}

// EditOrderRequest body para PUT /api/orders/:id (dueño).
// ReceiveDate en formato YYYY-MM-DD; vacío = sin fecha.
type EditOrderRequest struct {
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Colour      string          `json:"colour"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Status      string          `json:"status"`
	ReceiveDate string          `json:"receive_date,omitempty"`
}

// OrderResponse pedido con datos de cliente para listados.
type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id,omitempty"`
	CustomerDisplay string              `json:"customer_display"`
	CustomerPhone   string              `json:"customer_phone,omitempty"`
	ProductName     string              `json:"product_name"`
	Size            string              `json:"size"`
	Colour          string              `json:"colour"`
	Quantity        decimal.Decimal     `json:"quantity"`
	TotalCost       decimal.Decimal     `json:"total_cost"`
	AmountPaid      decimal.Decimal     `json:"amount_paid"`
	Date            time.Time           `json:"date"`
	Status          string              `json:"status"`
	ReceiveDate     *time.Time          `json:"receive_date,omitempty"`
	ItemsUsed       []UsageLineResponse `json:"items_used,omitempty"`
}

// OrderListResponse listado mensual de pedidos.
type OrderListResponse struct {
	Month  string          `json:"month"`
	Total  int             `json:"total"`
	Orders []OrderResponse `json:"orders"`
}
