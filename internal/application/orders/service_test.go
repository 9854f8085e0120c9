package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/application/inventory"
	"github.com/jhoicas/imprenta-api/internal/application/orders"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *memory.Store
	ledger *inventory.LedgerService
	svc    *orders.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := memory.NewStore()
	ledger := inventory.NewLedgerService(s, s.StockRepository(), s.StockAdditionRepository(), s.UsageRepository(), nil)
	svc := orders.NewService(s, s.OrderRepository(), s.UserRepository(), ledger, nil)
	require.NoError(t, s.UserRepository().Create(context.Background(), &entity.User{
		ID: "c1", Name: "Marta", Phone: "3001234567", Role: entity.RoleCustomer,
	}))
	return fixture{store: s, ledger: ledger, svc: svc}
}

func (f fixture) place(t *testing.T) *dto.OrderResponse {
	t.Helper()
	o, err := f.svc.PlaceOrder(context.Background(), "c1", dto.PlaceOrderRequest{
		ProductName: "Volantes", Size: "Media carta", Colour: "Full color", Quantity: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	return o
}

func TestPlaceOrder_QuedaPendienteConNombreDelCliente(t *testing.T) {
	f := newFixture(t)
	o := f.place(t)

	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, "Marta", o.CustomerDisplay)
	assert.Equal(t, "3001234567", o.CustomerPhone)
	assert.Nil(t, o.ReceiveDate)
	assert.True(t, o.AmountPaid.IsZero())

	list, err := f.svc.ListCustomerOrders(context.Background(), "c1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestPlaceOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.PlaceOrder(ctx, "c1", dto.PlaceOrderRequest{ProductName: " ", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.PlaceOrder(ctx, "c1", dto.PlaceOrderRequest{ProductName: "Sellos"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.svc.PlaceOrder(ctx, "nadie", dto.PlaceOrderRequest{ProductName: "Sellos", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_CompletedSellaYOtroLimpia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.place(t)

	done, err := f.svc.UpdateStatus(ctx, o.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, done.Status)
	require.NotNil(t, done.ReceiveDate)
	assert.Equal(t, domain.Today(time.Now()), *done.ReceiveDate)

	back, err := f.svc.UpdateStatus(ctx, o.ID, entity.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, back.ReceiveDate)

	_, err = f.svc.UpdateStatus(ctx, o.ID, "Shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.UpdateStatus(ctx, "no-existe", entity.OrderStatusPending)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddPayment_Acumula(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.place(t)

	_, err := f.svc.AddPayment(ctx, o.ID, decimal.NewFromInt(20))
	require.NoError(t, err)
	got, err := f.svc.AddPayment(ctx, o.ID, decimal.NewFromFloat(5.5))
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.Equal(decimal.NewFromFloat(25.5)))

	_, err = f.svc.AddPayment(ctx, o.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.UpdateTotalCost(ctx, o.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEdit_ReceiveDateExplicita(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.place(t)

	got, err := f.svc.Edit(ctx, o.ID, dto.EditOrderRequest{
		ProductName: "Volantes", Quantity: decimal.NewFromInt(1000), TotalCost: decimal.NewFromInt(90),
		Status: entity.OrderStatusCompleted, ReceiveDate: "2024-05-02",
	})
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, got.ReceiveDate)
	assert.Equal(t, "2024-05-02", got.ReceiveDate.Format(time.DateOnly))

	_, err = f.svc.Edit(ctx, o.ID, dto.EditOrderRequest{ProductName: "Volantes", Quantity: decimal.NewFromInt(1), ReceiveDate: "02/05/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteOrder_BorraConsumosSinReponerStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.place(t)
	item, err := f.ledger.AddStock(ctx, inventory.AddStockInput{ItemName: "Papel couché", AddedQuantity: decimal.NewFromInt(10), AdditionTotalCost: decimal.NewFromInt(50)})
	require.NoError(t, err)
	require.NoError(t, f.ledger.ConsumeStock(ctx, o.ID, item.ID, decimal.NewFromInt(4)))

	require.NoError(t, f.svc.DeleteOrder(ctx, o.ID))

	_, err = f.svc.Get(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	lines, err := f.ledger.ListUsageForOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	stock, err := f.store.StockRepository().GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(6)), "el stock consumido no se repone")

	// Sin consumos el ítem vuelve a poder eliminarse.
	require.NoError(t, f.ledger.DeleteStockItem(ctx, item.ID))
	assert.ErrorIs(t, f.svc.DeleteOrder(ctx, o.ID), domain.ErrNotFound)
}

func TestListOrdersForMonth_IncluyeConsumos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.place(t)
	item, err := f.ledger.AddStock(ctx, inventory.AddStockInput{ItemName: "Tinta negra", Size: "1L", AddedQuantity: decimal.NewFromInt(3), AdditionTotalCost: decimal.NewFromInt(60)})
	require.NoError(t, err)
	require.NoError(t, f.ledger.ConsumeStock(ctx, o.ID, item.ID, decimal.NewFromInt(1)))

	list, err := f.svc.ListOrdersForMonth(ctx, time.Now().Format(domain.MonthLayout))
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	require.Len(t, list.Orders[0].ItemsUsed, 1)
	assert.Equal(t, "Tinta negra", list.Orders[0].ItemsUsed[0].ItemName)

	open, err := f.svc.ListOpenOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = f.svc.ListOrdersForMonth(ctx, "2024-13")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
