package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto operativo del taller (no incluye compras de stock).
type Expense struct {
	ID          string
	Name        string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}
