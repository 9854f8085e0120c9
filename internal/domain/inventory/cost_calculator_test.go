package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/imprenta-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 unidades a 10 + reposición de 5 unidades por 75 en total
	got := inventory.CostCalculator(d("10"), d("10"), d("5"), d("75"))
	assert.True(t, got.Equal(d("12.5")), "esperado 12.5, obtenido %s", got)
}

func TestCostCalculator_StockVacio(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.Zero, d("4"), d("10"))
	assert.True(t, got.Equal(d("2.5")))
}

func TestCostCalculator_SumaCeroDevuelveCero(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, d("7"), decimal.Zero, d("30"))
	assert.True(t, got.IsZero())
}

func TestAdditionUnitCost_CantidadCero(t *testing.T) {
	assert.True(t, inventory.AdditionUnitCost(decimal.Zero, d("50")).IsZero())
	assert.True(t, inventory.AdditionUnitCost(d("4"), d("50")).Equal(d("12.5")))
}

func TestNewLookupKey_Normaliza(t *testing.T) {
	k := inventory.NewLookupKey(" Papel A4 ", "  ", " A4 ")
	assert.False(t, k.ByItemNo())
	assert.Equal(t, "Papel A4", k.ItemName)
	assert.Equal(t, "A4", k.Size)

	k = inventory.NewLookupKey("Tinta", " T-01 ", "")
	assert.True(t, k.ByItemNo())
	assert.Equal(t, "T-01", k.ItemNo)
}
