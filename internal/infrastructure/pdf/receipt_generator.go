// Package pdf genera el comprobante PDF de una transacción del libro mayor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de transacción  │  N° + Fecha + Estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: Nombre + SKU                                      │
//	│  PARTES: Usuario / Proveedor                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID + nota                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var typeTitles = map[string]string{
	entity.TransactionTypePurchase:         "COMPRA A PROVEEDOR",
	entity.TransactionTypeSale:             "VENTA",
	entity.TransactionTypeReturnToSupplier: "DEVOLUCIÓN A PROVEEDOR",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ledger.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ledger.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	businessName string
}

// NewMarotoReceiptGenerator construye el generador. businessName aparece como autor del documento.
func NewMarotoReceiptGenerator(businessName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{businessName: nonEmpty(businessName, "Inventario")}
}

// GenerateTransactionReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateTransactionReceipt(_ context.Context, tx dto.TransactionDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de transacción", true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(tx, g.businessName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(tx))
	m.AddRows(partiesRow(tx))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(tx))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(tx))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(tx))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(tx dto.TransactionDTO, businessName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(typeTitles[tx.Type], tx.Type), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(tx.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+tx.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+tx.Status, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func productRow(tx dto.TransactionDTO) core.Row {
	name, sku := tx.ProductID, "—"
	if tx.Product != nil {
		name, sku = tx.Product.Name, tx.Product.SKU
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   SKU: %s", name, sku), props.Text{Size: 9, Top: 6}),
		),
	)
}

func partiesRow(tx dto.TransactionDTO) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New("Registrado por: "+nonEmpty(tx.UserName, "—"), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
		col.New(6).Add(text.New("Proveedor: "+nonEmpty(tx.SupplierName, "—"), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tableDetailRow(tx dto.TransactionDTO) core.Row {
	unit := decimal.Zero
	if tx.TotalProduct > 0 {
		unit = tx.TotalPrice.Abs().Div(decimal.NewFromInt(int64(tx.TotalProduct)))
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", tx.TotalProduct),
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(nonEmpty(tx.Description, "—"),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(formatMoney(unit),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(formatMoney(tx.TotalPrice),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func totalRow(tx dto.TransactionDTO) core.Row {
	color := colorPrimary
	if tx.TotalPrice.IsNegative() {
		color = colorDanger
	}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: color, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(tx.TotalPrice), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: color, Right: 1, Top: 2,
		})),
	)
}

func footerRow(tx dto.TransactionDTO) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(tx.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("ID: "+tx.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Nota: "+nonEmpty(tx.Note, "—"), props.Text{Size: 8, Top: 12, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 1234567.5 → "$1.234.567,50", -19.98 → "-$19,98"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "," + frac
}
