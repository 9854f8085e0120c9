package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + CostoTotalEntrada) / (StockActual + CantEntrada)
// A diferencia de un costo unitario de entrada, recibe el costo TOTAL de la reposición.
func CostCalculator(stockActual, costoActual, cantEntrada, costoTotalEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(costoTotalEntrada)
	return num.Div(sum)
}

// AdditionUnitCost costo unitario de una reposición individual (0 si la cantidad es 0).
func AdditionUnitCost(cantEntrada, costoTotalEntrada decimal.Decimal) decimal.Decimal {
	if cantEntrada.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return costoTotalEntrada.Div(cantEntrada)
}

// TotalAmount valor denormalizado del ítem: cantidad × costo unitario.
func TotalAmount(cantidad, costoUnitario decimal.Decimal) decimal.Decimal {
	return cantidad.Mul(costoUnitario)
}

// LookupKey clave de búsqueda de un ítem de stock.
// Con ItemNo se busca solo por número; sin él, por (nombre, talla).
type LookupKey struct {
	ItemNo   string
	ItemName string
	Size     string
}

// ByItemNo indica si la búsqueda debe hacerse por número de ítem.
func (k LookupKey) ByItemNo() bool { return k.ItemNo != "" }

// NewLookupKey normaliza nombre, número y talla (trim, ausente = "").
func NewLookupKey(itemName, itemNo, size string) LookupKey {
	return LookupKey{
		ItemNo:   strings.TrimSpace(itemNo),
		ItemName: strings.TrimSpace(itemName),
		Size:     strings.TrimSpace(size),
	}
}
