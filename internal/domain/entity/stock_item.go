package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un ítem de materia prima en el libro de stock.
// UnitCost es promedio ponderado; TotalAmount = Quantity * UnitCost (denormalizado).
type StockItem struct {
	ID          string
	ItemName    string
	ItemNo      string // identificador preferido; vacío si el ítem se identifica por nombre+talla
	Size        string
	Quantity    decimal.Decimal // nunca negativo
	UnitCost    decimal.Decimal
	TotalAmount decimal.Decimal
	LastUpdated time.Time
}
