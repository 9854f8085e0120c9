package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAddition registro inmutable de una reposición de stock.
type StockAddition struct {
	ID               string
	ItemName         string
	ItemNo           string
	Quantity         decimal.Decimal
	UnitCost         decimal.Decimal // costo unitario de esta reposición (no el promedio)
	TotalAmountAdded decimal.Decimal
	DateAdded        time.Time
}
