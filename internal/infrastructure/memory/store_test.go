package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/inventory"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/jhoicas/imprenta-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func paper(id string) *entity.StockItem {
	return &entity.StockItem{
		ID: id, ItemName: "Papel A4", ItemNo: "P-" + id, Size: "A4",
		Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(2),
		TotalAmount: decimal.NewFromInt(20), LastUpdated: day,
	}
}

// ─── Transacciones ─────────────────────────────────────────────────────────

func TestRun_ErrorDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("boom")

	err := s.Run(ctx, func(stock repository.StockRepository, _ repository.StockAdditionRepository,
		_ repository.UsageRepository, _ repository.OrderRepository) error {
		require.NoError(t, stock.Create(ctx, paper("1")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.StockRepository().GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRun_CommitPersisteCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.Run(ctx, func(stock repository.StockRepository, additions repository.StockAdditionRepository,
		_ repository.UsageRepository, _ repository.OrderRepository) error {
		if err := stock.Create(ctx, paper("1")); err != nil {
			return err
		}
		return additions.Create(ctx, &entity.StockAddition{ID: "a1", ItemName: "Papel A4",
			Quantity: decimal.NewFromInt(10), TotalAmountAdded: decimal.NewFromInt(20), DateAdded: day})
	})
	require.NoError(t, err)

	got, err := s.StockRepository().GetByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(10)))

	sum, err := s.StockAdditionRepository().SumByMonth(ctx, day)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(20)))
}

func TestRun_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := memory.NewStore().Run(ctx, func(repository.StockRepository, repository.StockAdditionRepository,
		repository.UsageRepository, repository.OrderRepository) error {
		t.Fatal("no debe ejecutarse")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

// ─── Stock ─────────────────────────────────────────────────────────────────

func TestStockRepo_FindForUpdatePorNumeroYPorNombreTalla(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repo := s.StockRepository()
	require.NoError(t, repo.Create(ctx, paper("1")))
	sinNumero := paper("2")
	sinNumero.ItemNo = ""
	sinNumero.ItemName = "Vinilo"
	sinNumero.Size = "1m"
	require.NoError(t, repo.Create(ctx, sinNumero))

	got, err := repo.FindForUpdate(ctx, inventory.NewLookupKey("otro nombre", "P-1", ""))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)

	got, err = repo.FindForUpdate(ctx, inventory.NewLookupKey("Vinilo", "", "1m"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.ID)

	got, err = repo.FindForUpdate(ctx, inventory.NewLookupKey("Vinilo", "", "2m"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStockRepo_ItemNoDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().StockRepository()
	require.NoError(t, repo.Create(ctx, paper("1")))
	dup := paper("2")
	dup.ItemNo = "P-1"
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicate)
}

func TestStockRepo_DeleteConConsumoEsInUse(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.StockRepository().Create(ctx, paper("1")))
	require.NoError(t, s.OrderRepository().Create(ctx, &entity.Order{ID: "o1", Date: day, Status: entity.OrderStatusPending}))
	require.NoError(t, s.UsageRepository().Create(ctx, &entity.UsageRecord{ID: "u1", OrderID: "o1", StockItemID: "1",
		QuantityUsed: decimal.NewFromInt(1)}))

	assert.ErrorIs(t, s.StockRepository().Delete(ctx, "1"), domain.ErrInUse)
	assert.ErrorIs(t, s.OrderRepository().Delete(ctx, "o1"), domain.ErrInUse)

	require.NoError(t, s.UsageRepository().DeleteByOrder(ctx, "o1"))
	require.NoError(t, s.OrderRepository().Delete(ctx, "o1"))
	require.NoError(t, s.StockRepository().Delete(ctx, "1"))
}

// ─── Pedidos ───────────────────────────────────────────────────────────────

func TestOrderRepo_NombreVisibleDelCliente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.UserRepository().Create(ctx, &entity.User{ID: "c1", Phone: "555-1", Role: entity.RoleCustomer}))
	require.NoError(t, s.UserRepository().Create(ctx, &entity.User{ID: "c2", Name: "Luis", Phone: "555-2", Role: entity.RoleCustomer}))

	orders := s.OrderRepository()
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", CustomerID: "c1", Date: day}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o2", CustomerID: "c2", Date: day}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o3", CustomerID: "c2", CustomerName: "Luisa", Date: day}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o4", Date: day}))

	want := map[string]string{"o1": "555-1", "o2": "Luis", "o3": "Luisa", "o4": entity.CustomerUnknown}
	for id, name := range want {
		o, err := orders.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, name, o.CustomerDisplay, id)
	}
}

func TestOrderRepo_ListOpenMasAntiguosPrimero(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewStore().OrderRepository()
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "nuevo", Date: day, Status: entity.OrderStatusPending}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "viejo", Date: day.AddDate(0, 0, -3), Status: entity.OrderStatusInProgress}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "hecho", Date: day.AddDate(0, 0, -5), Status: entity.OrderStatusCompleted}))

	open, err := orders.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "viejo", open[0].ID)
	assert.Equal(t, "nuevo", open[1].ID)
}

func TestOrderRepo_UpdateInexistente(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewStore().OrderRepository()
	assert.ErrorIs(t, orders.AddPayment(ctx, "nope", decimal.NewFromInt(1)), domain.ErrNotFound)
	assert.ErrorIs(t, orders.UpdateStatus(ctx, "nope", entity.OrderStatusPending, nil), domain.ErrNotFound)
}

// ─── Analytics ─────────────────────────────────────────────────────────────

func TestAnalyticsRepo_IngresoSoloCompletados(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	orders := s.OrderRepository()
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", Date: day, Status: "completed", AmountPaid: decimal.NewFromInt(100)}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o2", Date: day, Status: entity.OrderStatusPending, AmountPaid: decimal.NewFromInt(50)}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o3", Date: day.AddDate(0, -1, 0), Status: entity.OrderStatusCompleted, AmountPaid: decimal.NewFromInt(30)}))

	a := s.AnalyticsRepository()
	income, err := a.SumIncomeByMonth(ctx, day)
	require.NoError(t, err)
	assert.True(t, income.Equal(decimal.NewFromInt(100)))

	monthly, err := a.MonthlyIncome(ctx, 6)
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-03", monthly[0].Month)
	assert.Equal(t, "2024-02", monthly[1].Month)
}
