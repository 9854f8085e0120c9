package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/application/inventory"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/jhoicas/imprenta-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service casos de uso de pedidos: alta por el cliente, seguimiento por el taller,
// pagos y borrado en cascada con sus consumos de stock.
type Service struct {
	txRunner  inventory.TxRunner
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	ledger    *inventory.LedgerService
	log       *logger.Logger
}

// NewService construye el servicio. ledger se usa para adjuntar los consumos en los listados.
func NewService(
	txRunner inventory.TxRunner,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	ledger *inventory.LedgerService,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{txRunner: txRunner, orderRepo: orderRepo, userRepo: userRepo, ledger: ledger, log: log}
}

// PlaceOrder registra un pedido del cliente con estado Pending y fecha de hoy.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	product := strings.TrimSpace(in.ProductName)
	if product == "" {
		return nil, fmt.Errorf("%w: product_name es requerido", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customerID)
	}

	order := &entity.Order{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		ProductName:  product,
		Size:         strings.TrimSpace(in.Size),
		Colour:       strings.TrimSpace(in.Colour),
		Quantity:     in.Quantity,
		TotalCost:    decimal.Zero,
		AmountPaid:   decimal.Zero,
		Date:         domain.Today(time.Now()),
		Status:       entity.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", order.ID).Str("customer_id", customer.ID).Str("product", product).Msg("pedido creado")
	return s.get(ctx, order.ID)
}

// ListCustomerOrders pedidos del cliente en el mes (YYYY-MM; vacío = mes actual).
func (s *Service) ListCustomerOrders(ctx context.Context, customerID, month string) (*dto.OrderListResponse, error) {
	m, err := domain.ParseMonth(month, time.Now())
	if err != nil {
		return nil, err
	}
	list, err := s.orderRepo.ListByCustomerAndMonth(ctx, customerID, m)
	if err != nil {
		return nil, err
	}
	return toList(m, list, nil), nil
}

// ListOpenOrders pedidos Pending o In Progress, más antiguos primero.
func (s *Service) ListOpenOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := s.orderRepo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toResponse(o, nil))
	}
	return out, nil
}

// ListOrdersForMonth pedidos del mes con nombre visible del cliente y consumos de stock.
func (s *Service) ListOrdersForMonth(ctx context.Context, month string) (*dto.OrderListResponse, error) {
	m, err := domain.ParseMonth(month, time.Now())
	if err != nil {
		return nil, err
	}
	list, err := s.orderRepo.ListByMonth(ctx, m)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	usage, err := s.ledger.UsageByOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toList(m, list, usage), nil
}

// UpdateStatus asigna el estado (transiciones libres). Completed sella la fecha de recepción.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	canonical, ok := entity.NormalizeOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	var o entity.Order
	o.ApplyStatus(canonical, domain.Today(time.Now()))
	if err := s.orderRepo.UpdateStatus(ctx, id, o.Status, o.ReceiveDate); err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", id).Str("status", canonical).Msg("estado de pedido actualizado")
	return s.get(ctx, id)
}

// AddPayment suma amount al monto pagado del pedido.
func (s *Service) AddPayment(ctx context.Context, id string, amount decimal.Decimal) (*dto.OrderResponse, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: el pago no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := s.orderRepo.AddPayment(ctx, id, amount); err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", id).Str("amount", amount.String()).Msg("pago registrado")
	return s.get(ctx, id)
}

// UpdateTotalCost fija el costo total cotizado al cliente.
func (s *Service) UpdateTotalCost(ctx context.Context, id string, totalCost decimal.Decimal) (*dto.OrderResponse, error) {
	if totalCost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo total no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := s.orderRepo.UpdateTotalCost(ctx, id, totalCost); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

// Edit reemplaza los datos del pedido (dueño). Una receive_date explícita tiene prioridad
// sobre la que deriva del estado.
func (s *Service) Edit(ctx context.Context, id string, in dto.EditOrderRequest) (*dto.OrderResponse, error) {
	current, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	product := strings.TrimSpace(in.ProductName)
	if product == "" {
		return nil, fmt.Errorf("%w: product_name es requerido", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.TotalCost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo total no puede ser negativo", domain.ErrInvalidInput)
	}
	status := current.Status
	if strings.TrimSpace(in.Status) != "" {
		var ok bool
		if status, ok = entity.NormalizeOrderStatus(in.Status); !ok {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
		}
	}

	current.ProductName = product
	current.Size = strings.TrimSpace(in.Size)
	current.Colour = strings.TrimSpace(in.Colour)
	current.Quantity = in.Quantity
	current.TotalCost = in.TotalCost
	// Un pedido que sigue Completed conserva su fecha de recepción original.
	keepStamp := status == current.Status && status == entity.OrderStatusCompleted && current.ReceiveDate != nil
	if !keepStamp {
		current.ApplyStatus(status, domain.Today(time.Now()))
	}
	if rd := strings.TrimSpace(in.ReceiveDate); rd != "" {
		t, err := time.Parse(time.DateOnly, rd)
		if err != nil {
			return nil, fmt.Errorf("%w: receive_date %q, formato esperado YYYY-MM-DD", domain.ErrInvalidInput, rd)
		}
		current.ReceiveDate = &t
	}
	if err := s.orderRepo.Update(ctx, current); err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", id).Msg("pedido editado")
	return s.get(ctx, id)
}

// DeleteOrder elimina el pedido y sus consumos en una transacción.
// El stock descontado no se repone.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	removed := 0
	err := s.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.StockAdditionRepository,
		usageRepo repository.UsageRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
		}
		lines, err := usageRepo.ListByOrders(ctx, []string{id})
		if err != nil {
			return err
		}
		removed = len(lines)
		if err := usageRepo.DeleteByOrder(ctx, id); err != nil {
			return err
		}
		return orderRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("order_id", id).Int("usage_records", removed).Msg("pedido eliminado")
	return nil
}

// Get pedido con sus consumos.
func (s *Service) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return s.get(ctx, id)
}

func (s *Service) get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	usage, err := s.ledger.UsageByOrders(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	resp := toResponse(o, usage[id])
	return &resp, nil
}

func toList(month time.Time, list []*entity.Order, usage map[string][]dto.UsageLineResponse) *dto.OrderListResponse {
	out := &dto.OrderListResponse{
		Month:  month.Format(domain.MonthLayout),
		Total:  len(list),
		Orders: make([]dto.OrderResponse, 0, len(list)),
	}
	for _, o := range list {
		out.Orders = append(out.Orders, toResponse(o, usage[o.ID]))
	}
	return out
}

func toResponse(o *entity.Order, usage []dto.UsageLineResponse) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerDisplay: o.CustomerDisplay,
		CustomerPhone:   o.CustomerPhone,
		ProductName:     o.ProductName,
		Size:            o.Size,
		Colour:          o.Colour,
		Quantity:        o.Quantity,
		TotalCost:       o.TotalCost,
		AmountPaid:      o.AmountPaid,
		Date:            o.Date,
		Status:          o.Status,
		ReceiveDate:     o.ReceiveDate,
		ItemsUsed:       usage,
	}
}
