package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/imprenta-api/internal/application/analytics"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	orders := s.OrderRepository()
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", Date: march, Status: entity.OrderStatusCompleted, AmountPaid: d(500)}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o2", Date: march, Status: entity.OrderStatusPending, AmountPaid: d(100)}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o3", Date: feb, Status: entity.OrderStatusCompleted, AmountPaid: d(200)}))

	require.NoError(t, s.ExpenseRepository().Create(ctx, &entity.Expense{ID: "e1", Name: "Arriendo", Amount: d(150), Date: march}))
	require.NoError(t, s.StockAdditionRepository().Create(ctx, &entity.StockAddition{ID: "a1", ItemName: "Papel", Quantity: d(10), TotalAmountAdded: d(100), DateAdded: march}))
	require.NoError(t, s.StockRepository().Create(ctx, &entity.StockItem{ID: "s1", ItemName: "Papel", Quantity: d(10), UnitCost: d(10), TotalAmount: d(100), LastUpdated: march}))
	require.NoError(t, s.QuoteRepository().Create(ctx, &entity.Quote{ID: "q1", Name: "Ana", Phone: "1", Product: "Sellos", Date: march}))
	return s
}

func TestGetSummary_Marzo(t *testing.T) {
	s := seed(t)
	uc := analytics.NewDashboardUseCase(s.AnalyticsRepository())

	sum, err := uc.GetSummary(context.Background(), "2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", sum.Month)
	assert.Equal(t, "Marzo 2024", sum.Label)
	assert.Equal(t, 2, sum.TotalOrders)
	assert.Equal(t, 1, sum.TotalStockItems)
	assert.Equal(t, 1, sum.TotalQuotes)
	assert.True(t, sum.BaseExpenses.Equal(d(150)))
	assert.True(t, sum.StockPurchases.Equal(d(100)))
	assert.True(t, sum.TotalExpenses.Equal(d(250)))
	assert.True(t, sum.TotalIncome.Equal(d(500)))
	assert.True(t, sum.ProfitLoss.Equal(d(250)))
	assert.True(t, sum.CurrentStockValue.Equal(d(100)))
}

func TestGetSummary_MesInvalido(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewStore().AnalyticsRepository())
	_, err := uc.GetSummary(context.Background(), "marzo")
	assert.Error(t, err)
}

func TestGetSeries_Ascendente(t *testing.T) {
	s := seed(t)
	uc := analytics.NewDashboardUseCase(s.AnalyticsRepository())

	series, err := uc.GetSeries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02", "2024-03"}, series.Months)
	require.Len(t, series.Profits, 2)
	assert.True(t, series.Incomes[0].Equal(d(200)))
	assert.True(t, series.Expenses[1].Equal(d(250)))
	assert.True(t, series.Profits[1].Equal(d(250)))
}
