// Package pdf genera el reporte de cierre diario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del spa        │  Día de negocio + emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: conteos por estado / totales por medio de pago    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Huésped | Servicios | Estado | Pago | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Pagado / Pendiente / Cortesía                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"strings"
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

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/application/report"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 92}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// DailyReportGenerator implementa report.PDFGenerator usando Maroto v2.
type DailyReportGenerator struct {
	businessName string
	loc          *time.Location
	now          func() time.Time
}

var _ report.PDFGenerator = (*DailyReportGenerator)(nil)

// NewDailyReportGenerator construye el generador. loc es la zona del negocio para las horas.
func NewDailyReportGenerator(businessName string, loc *time.Location) *DailyReportGenerator {
	if loc == nil {
		loc = time.Local
	}
	return &DailyReportGenerator{businessName: businessName, loc: loc, now: time.Now}
}

// DailyReport genera el PDF y devuelve sus bytes.
func (g *DailyReportGenerator) DailyReport(summary *dto.DailySummaryDTO, list []*entity.Transaction) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Daily report "+summary.DateKey, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableDetailRows(list) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *DailyReportGenerator) headerRow(s *dto.DailySummaryDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reception daily report", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("BUSINESS DATE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(s.DateKey, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generated: "+g.now().In(g.loc).Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s *dto.DailySummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("TRANSACTIONS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d total   |   %s", s.TransactionCount, formatCounts(s.ByServiceStatus)),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(formatCounts(s.ByPaymentStatus), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("PAID BY METHOD", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(formatMethods(s.ByPaymentMethod), props.Text{Size: 8, Top: 6, Color: colorGray}),
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
		h("Time", 1, align.Center),
		h("Guest", 2, align.Left),
		h("Services", 4, align.Left),
		h("Service", 1, align.Center),
		h("Payment", 2, align.Center),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *DailyReportGenerator) tableDetailRows(list []*entity.Transaction) []core.Row {
	sorted := append([]*entity.Transaction(nil), list...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartedAt.Before(sorted[j].StartedAt) })

	result := make([]core.Row, 0, len(sorted))
	for _, t := range sorted {
		names := make([]string, 0, len(t.Services))
		for _, s := range t.Services {
			names = append(names, s.ServiceName)
		}
		payment := string(t.PaymentStatus)
		if t.PaymentMethod != "" {
			payment += " / " + string(t.PaymentMethod)
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(t.StartedAt.In(g.loc).Format("15:04"),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(t.GuestName, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(strings.Join(names, ", "),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(string(t.ServiceStatus),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(payment,
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(t.TotalAmount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(s *dto.DailySummaryDTO) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Paid:"),
			label("Unpaid:"),
			label("Complimentary:"),
		),
		col.New(3).Add(
			value(formatMoney(s.PaidTotal)),
			value(formatMoney(s.UnpaidTotal)),
			value(formatMoney(s.ComplimentaryTotal)),
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

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, m[k]))
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, "   ")
}

func formatMethods(m map[string]decimal.Decimal) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+formatMoney(m[k]))
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, "   ")
}

// formatMoney "PHP 1,234.50". La fuente base del PDF no trae el signo del peso.
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "PHP " + sign + string(buf) + frac
}
