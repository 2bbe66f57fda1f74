// Package pdf imprime el estado de cuenta de un comprador con Maroto v2.
//
// Layout A4:
//
//	┌──────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Comprador + fecha     │
//	│  ──────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Concepto | Cargo | Abono | Saldo      │
//	│  ──────────────────────────────────────────────────  │
//	│  TOTALES: Cargado / Abonado / SALDO PENDIENTE         │
//	└──────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/application/ports"
	"github.com/jhoicas/autoparts-ledger/internal/domain/ledger"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoStatementGenerator implementa ports.StatementPDFGenerator.
type MarotoStatementGenerator struct {
	now func() time.Time
}

var _ ports.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator {
	return &MarotoStatementGenerator{now: time.Now}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes. title es el nombre del negocio.
func (g *MarotoStatementGenerator) GenerateStatementPDF(_ context.Context, st ledger.Statement, title string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Statement - "+st.BuyerName, true).
		WithAuthor(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st, title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(st.Entries) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No transactions", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range entryRows(st.Entries) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar estado de cuenta: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(st ledger.Statement, title string, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Customer credit statement", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(st.BuyerName, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Printed: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Description", 4, align.Left),
		h("Charge", 2, align.Right),
		h("Paid", 2, align.Right),
		h("Balance", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func entryRows(entries []ledger.StatementEntry) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(e.Date.Format("02/01/2006"),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(e.Description,
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(amountOrBlank(e.Charge),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(amountOrBlank(e.Paid),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(e.Balance),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(st ledger.Statement) core.Row {
	label := func(s string, top float64, grand bool) core.Component {
		p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		if grand {
			p.Size, p.Color = 10, colorPrimary
		}
		return text.New(s, p)
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total charged:", 0, false),
			label("Total paid:", 5, false),
			label("OUTSTANDING:", 10, true),
		),
		col.New(3).Add(
			text.New(formatMoney(st.TotalCharged), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(formatMoney(st.TotalPaid), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(formatMoney(st.Closing), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10,
			}),
		),
	)
}

func amountOrBlank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return formatMoney(d)
}

// formatMoney "1234567.5" -> "1,234,567.50".
func formatMoney(d decimal.Decimal) string {
	s := money.Format(d.Abs())
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf) + frac
}
