// Package pdf implementa la factura imprimible del taller con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller + dirección / tel / email         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  N° Factura                          │  Fecha                │
//	│  Cliente                                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Cant. | Costo unit. | Total           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  FOOTER: agradecimiento                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/imprenta-api/internal/application/billing"
	"github.com/shopspring/decimal"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.BillPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.BillPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateBillPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBillPDF(_ context.Context, bill *billing.Bill) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+bill.Number, true).
		WithAuthor(nonEmpty(bill.Shop.Name, "Imprenta"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(bill.Shop))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billInfoRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(bill.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(bill.GrandTotal))
	m.AddRows(line.NewRow(6))
	m.AddRows(footerRow(bill.Shop))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller centrado y datos de contacto.
func headerRow(shop billing.ShopInfo) core.Row {
	contact := []string{}
	if shop.Phone != "" {
		contact = append(contact, "Tel: "+shop.Phone)
	}
	if shop.Email != "" {
		contact = append(contact, "Email: "+shop.Email)
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New(strings.ToUpper(nonEmpty(shop.Name, "Imprenta")), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
			text.New(shop.Address, props.Text{
				Size: 9, Align: align.Center, Top: 9, Color: colorGray,
			}),
			text.New(strings.Join(contact, "   |   "), props.Text{
				Size: 9, Align: align.Center, Top: 14, Color: colorGray,
			}),
		),
	)
}

// billInfoRow: número y fecha de la factura, y cliente.
func billInfoRow(bill *billing.Bill) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("FACTURA N° "+bill.Number, props.Text{Style: fontstyle.Bold, Size: 11, Top: 1}),
			text.New("Cliente: "+bill.CustomerName, props.Text{Size: 10, Top: 8}),
		),
		col.New(5).Add(
			text.New("Fecha: "+bill.Date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de pedidos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("Costo unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por pedido.
func tableDetailRows(lines []billing.BillLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Index), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Quantity.StringFixed(0), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+money(l.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+money(l.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalRow: total a pagar alineado a la derecha.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New("$"+money(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func footerRow(shop billing.ShopInfo) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Gracias por elegir %s. Esperamos volver a atenderle.", nonEmpty(shop.Name, "nuestro taller")),
			props.Text{Style: fontstyle.Italic, Size: 9, Align: align.Center, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con dos decimales y puntos de miles. Ej: 25000.5 → "25.000,50"
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatThousands(intPart) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
