// Package pdf genera el reporte del dashboard en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  AVISO: datos de ejemplo (solo si el backend no respondió)   │
//	│  TARJETAS: Total usuarios │ Total productos                  │
//	│  GRÁFICOS: porción | valor | % | barra                       │
//	│  TABLA usuarios: ID | Usuario | Nombre | País                │
//	│  TABLA productos: ID | Nombre | Categoría | Precio | Stock   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/ports"
	"github.com/jhoicas/admin-console/pkg/numfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 180, Green: 90, Blue: 0}
	colorLight   = &props.Color{Red: 235, Green: 240, Blue: 245}

	// Un color por porción, en el orden de dto.Chart.Slices.
	sliceColors = []*props.Color{
		{Red: 0, Green: 120, Blue: 200},
		{Red: 240, Green: 150, Blue: 30},
		{Red: 200, Green: 60, Blue: 60},
	}
)

// barCols ancho máximo (en columnas de la grilla de 12) de la barra de un gráfico.
const barCols = 6

// ── Generator ─────────────────────────────────────────────────────────────────

// DashboardReport implementa ports.ReportRenderer usando Maroto v2.
type DashboardReport struct {
	fmt *numfmt.Formatter
	now func() time.Time
}

var _ ports.ReportRenderer = (*DashboardReport)(nil)

// NewDashboardReport construye el generador. f nil usa numfmt.Default().
func NewDashboardReport(f *numfmt.Formatter) *DashboardReport {
	if f == nil {
		f = numfmt.Default()
	}
	return &DashboardReport{fmt: f, now: time.Now}
}

// RenderDashboard genera el PDF y devuelve sus bytes.
func (g *DashboardReport) RenderDashboard(ctx context.Context, data dto.DashboardData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte del Dashboard", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if data.Fallback {
		m.AddRows(fallbackRow())
	}
	m.AddRows(g.statsRow(data.Stats))

	for _, ch := range data.Charts {
		m.AddRows(line.NewRow(3))
		m.AddRows(g.chartRows(ch)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("Usuarios (%d)", len(data.Usuarios))))
	m.AddRows(tableHeaderRow([]headerCol{
		{"ID", 1, align.Center}, {"Usuario", 3, align.Left}, {"Nombre", 5, align.Left}, {"País", 3, align.Left},
	}))
	for i, u := range data.Usuarios {
		m.AddRows(stripe(i, row.New(6).Add(
			cell(strconv.FormatInt(u.ID, 10), 1, align.Center),
			cell(u.Username, 3, align.Left),
			cell(u.FullName(), 5, align.Left),
			cell(u.Country, 3, align.Left),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("Productos (%d)", len(data.Productos))))
	m.AddRows(tableHeaderRow([]headerCol{
		{"ID", 1, align.Center}, {"Nombre", 4, align.Left}, {"Categoría", 3, align.Left},
		{"Precio", 2, align.Right}, {"Stock", 2, align.Right},
	}))
	for i, p := range data.Productos {
		m.AddRows(stripe(i, row.New(6).Add(
			cell(strconv.FormatInt(p.ID, 10), 1, align.Center),
			cell(p.Nombre, 4, align.Left),
			cell(p.Categoria, 3, align.Left),
			cell(g.fmt.Price(p.Precio), 2, align.Right),
			cell(g.fmt.Int(p.Stock), 2, align.Right),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *DashboardReport) headerRow() core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Panel de Administración", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

func fallbackRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Sin conexión con el servidor: se muestran datos de ejemplo.", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorWarn, Top: 2,
		}),
	))
}

// statsRow: tarjetas con los totales.
func (g *DashboardReport) statsRow(s dto.Stats) core.Row {
	card := func(label string, n int) core.Col {
		return col.New(6).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
			text.New(g.fmt.Int(n), props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 7, Align: align.Center,
			}),
		).WithStyle(&props.Cell{BackgroundColor: colorLight})
	}
	return row.New(18).Add(
		card("Total Usuarios", s.TotalUsuarios),
		card("Total Productos", s.TotalProductos),
	)
}

// chartRows: título y una fila por porción con su barra proporcional.
func (g *DashboardReport) chartRows(ch dto.Chart) []core.Row {
	rows := []core.Row{sectionTitle(ch.Title)}
	for i, s := range ch.Slices {
		cols := []core.Col{
			cell(s.Label, 3, align.Left),
			cell(g.fmt.Amount(s.Value), 2, align.Right),
			cell(g.fmt.Percent(s.Share), 1, align.Right),
		}
		width := barWidth(s.Share)
		if width > 0 {
			cols = append(cols, col.New(width).WithStyle(&props.Cell{BackgroundColor: sliceColors[i%len(sliceColors)]}))
		}
		if rest := barCols - width; rest > 0 {
			cols = append(cols, col.New(rest))
		}
		rows = append(rows, row.New(6).Add(cols...))
	}
	return rows
}

type headerCol struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cols []headerCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, h := range cols {
		out = append(out, col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align, Color: colorPrimary, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(out...)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

// stripe sombrea las filas impares.
func stripe(i int, r core.Row) core.Row {
	if i%2 == 1 {
		return r.WithStyle(&props.Cell{BackgroundColor: colorLight})
	}
	return r
}

// barWidth columnas de barra para una fracción 0..1, redondeado.
func barWidth(share decimal.Decimal) int {
	w := share.Mul(decimal.NewFromInt(barCols)).Round(0).IntPart()
	switch {
	case w < 0:
		return 0
	case w > barCols:
		return barCols
	}
	return int(w)
}
