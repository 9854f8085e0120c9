package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BillUseCase arma y renderiza la factura de uno o varios pedidos.
type BillUseCase struct {
	orderRepo repository.OrderRepository
	generator BillPDFGenerator
	shop      ShopInfo
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(orderRepo repository.OrderRepository, generator BillPDFGenerator, shop ShopInfo) *BillUseCase {
	return &BillUseCase{orderRepo: orderRepo, generator: generator, shop: shop}
}

// ParseOrderIDs separa la lista "id1,id2" y descarta los elementos que no son UUID o están repetidos.
func ParseOrderIDs(raw string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil || seen[id.String()] {
			continue
		}
		seen[id.String()] = true
		ids = append(ids, id.String())
	}
	return ids
}

// BuildBill carga los pedidos y arma la factura.
//
// Retorna:
//   - domain.ErrInvalidInput si rawIDs no contiene ningún ID válido.
//   - domain.ErrNotFound     si ninguno de los pedidos existe.
//   - domain.ErrForbidden    si un cliente pide pedidos que no son suyos.
func (uc *BillUseCase) BuildBill(ctx context.Context, rawIDs, userID, role string) (*Bill, error) {
	ids := ParseOrderIDs(rawIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no se indicó ningún pedido válido", domain.ErrInvalidInput)
	}
	orders, err := uc.orderRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("factura: obtener pedidos: %w", err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrNotFound
	}
	if role == entity.RoleCustomer {
		for _, o := range orders {
			if o.CustomerID != userID {
				return nil, domain.ErrForbidden
			}
		}
	}

	bill := &Bill{
		Number:       shortID(orders[0].ID),
		Date:         domain.Today(time.Now()),
		CustomerName: orders[0].CustomerDisplay,
		Shop:         uc.shop,
		Lines:        make([]BillLine, 0, len(orders)),
		GrandTotal:   decimal.Zero,
	}
	for i, o := range orders {
		unit := decimal.Zero
		if o.Quantity.IsPositive() {
			unit = o.TotalCost.Div(o.Quantity).Round(2)
		}
		bill.Lines = append(bill.Lines, BillLine{
			Index:       i + 1,
			OrderID:     o.ID,
			ProductName: o.ProductName,
			Quantity:    o.Quantity,
			UnitCost:    unit,
			Total:       o.TotalCost,
		})
		bill.GrandTotal = bill.GrandTotal.Add(o.TotalCost)
	}
	return bill, nil
}

// DownloadBillPDF arma la factura y la renderiza. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *BillUseCase) DownloadBillPDF(ctx context.Context, rawIDs, userID, role string) ([]byte, string, error) {
	bill, err := uc.BuildBill(ctx, rawIDs, userID, role)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateBillPDF(ctx, bill)
	if err != nil {
		return nil, "", fmt.Errorf("factura: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", bill.Number), nil
}

// shortID primeros 8 caracteres del UUID en mayúsculas.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
