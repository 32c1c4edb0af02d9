// Package pdf genera el recibo imprimible de una orden con Maroto v2.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller  │  Folio + Fecha  │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono                   │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Prenda | Precio | Importe      │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / SALDO              │
//	│  ───────────────────────────────────────────  │
//	│  FOOTER: QR de WhatsApp + dirección           │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/ledger"
	"github.com/tu-usuario/tailor-pro/pkg/phone"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator genera recibos de orden usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateOrderReceipt genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(order *entity.Order, settings entity.BusinessSettings) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+order.ID, true).
		WithAuthor(settings.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, settings))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(order.ItemsList) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	for _, r := range footerRows(settings) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller (izq) y folio + fecha (der).
func headerRow(order *entity.Order, settings entity.BusinessSettings) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(settings.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tel: "+nonEmpty(settings.BusinessPhone, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(order.ID, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(order.Date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente y fecha prometida de entrega.
func customerRow(order *entity.Order) core.Row {
	delivery := "—"
	if order.DeliveryDate != nil {
		delivery = order.DeliveryDate.Format("02/01/2006")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Entrega: %s",
				nonEmpty(order.CustomerPhone, "—"), delivery,
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de prendas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Prenda", 5, align.Left),
		h("Precio", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// itemRows: una fila por prenda.
func itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		amount := it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.Qty),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Type,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				ledger.FormatCurrency(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				ledger.FormatCurrency(amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: total, pagado y saldo pendiente.
func totalsRow(order *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Total:"),
			label("Pagado:"),
			grandLabel("SALDO:"),
		),
		col.New(4).Add(
			value(ledger.FormatCurrency(order.TotalPrice)),
			value(ledger.FormatCurrency(ledger.OrderPaid(order))),
			grandValue(ledger.FormatCurrency(ledger.OrderBalance(order))),
		),
	)
}

// footerRows: QR al WhatsApp del taller + dirección.
func footerRows(settings entity.BusinessSettings) []core.Row {
	var rows []core.Row
	waLink := phone.WhatsAppLink(nonEmpty(settings.BusinessWhatsApp, settings.BusinessPhone), "")
	if waLink != "" {
		rows = append(rows, row.New(32).Add(
			col.New(4).Add(code.NewQr(waLink, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para\nescribirnos por WhatsApp.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New(settings.BusinessAddress, props.Text{
					Size: 8, Top: 18, Left: 3, Color: colorGray,
				}),
			),
		))
	} else {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(settings.BusinessAddress, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("Gracias por su preferencia. Conserve este recibo para retirar su orden.", props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
