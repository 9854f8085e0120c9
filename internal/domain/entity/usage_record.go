package entity

import "github.com/shopspring/decimal"

// UsageRecord registro inmutable del stock consumido por un pedido.
type UsageRecord struct {
	ID           string
	OrderID      string
	StockItemID  string
	QuantityUsed decimal.Decimal
}

// UsageLine uso de stock unido con nombre y talla del ítem (lectura).
type UsageLine struct {
	UsageRecord
	ItemName string
	Size     string
}
