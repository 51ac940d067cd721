// Package pdf genera el comprobante de liquidación de un pago: qué orden se
// cobró, cuánto retuvo la plataforma y cuánto recibe el proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor  │  N° Comprobante + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN: id, producto, cantidad, moneda                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REPARTO: Bruto / Comisión plataforma / NETO AL PROVEEDOR   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: id de transacción de la pasarela                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/marketplace-api/internal/application/payment"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ payment.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa payment.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// Generate genera el comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) Generate(
	settlement *entity.Settlement,
	order *entity.Order,
	supplier *entity.Supplier,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de liquidación", true).
		WithAuthor(supplier.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(settlement, supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(splitRows(settlement)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(settlement))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: proveedor (izq) y número de comprobante + fecha (der).
func headerRow(settlement *entity.Settlement, supplier *entity.Supplier) core.Row {
	fecha := settlement.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(supplier.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(supplier.ContactEmail, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE LIQUIDACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(settlement.ID, props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderRow: datos de la orden cobrada.
func orderRow(order *entity.Order) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ORDEN COBRADA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Producto: %s   |   Cantidad: %d   |   Moneda: %s",
				order.ProductID, order.Quantity, strings.ToUpper(order.Currency),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// splitRows: el reparto bruto / comisión / neto, alineado a la derecha.
func splitRows(settlement *entity.Settlement) []core.Row {
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

	return []core.Row{
		row.New(26).Add(
			col.New(3),
			col.New(4).Add(
				label("Monto bruto:"),
				label("Comisión plataforma:"),
				grandLabel("NETO AL PROVEEDOR:"),
			),
			col.New(3).Add(
				value(settlement.GrossAmount.StringFixed(2)),
				value(settlement.FeeAmount.StringFixed(2)),
				grandValue(settlement.NetAmount.StringFixed(2)),
			),
			col.New(2),
		),
	}
}

// footerRow: referencia de la transacción en la pasarela.
func footerRow(settlement *entity.Settlement) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Transacción de pasarela: "+settlement.GatewayTxnID, props.Text{
			Size: 7, Color: colorGray, Top: 2,
		}),
		text.New("Conserve este comprobante como soporte de la liquidación.", props.Text{
			Size: 6.5, Color: colorGray, Top: 6,
		}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
