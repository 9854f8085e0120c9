package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ShopInfo datos del taller impresos en la cabecera de la factura.
type ShopInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// BillLine una fila de la factura: un pedido.
type BillLine struct {
	Index       int
	OrderID     string
	ProductName string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal // TotalCost / Quantity, 0 si la cantidad es 0
	Total       decimal.Decimal
}

// Bill factura de uno o varios pedidos de un mismo cliente.
type Bill struct {
	Number       string
	Date         time.Time
	CustomerName string
	Shop         ShopInfo
	Lines        []BillLine
	GrandTotal   decimal.Decimal
}

// BillPDFGenerator puerto de salida: renderiza la factura a PDF.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, bill *Bill) ([]byte, error)
}
