// Package pdf renderiza las tablas pivote como PDF con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte        │  Generado / Período     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descripción | 2023-01 | 2023-02 | ...       │
//	│  FILAS DE RESUMEN (fondo gris)                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/repair-rate/internal/application/pivot"
	"github.com/jhoicas/repair-rate/internal/application/report"
	"github.com/jhoicas/repair-rate/internal/domain"
	"github.com/jhoicas/repair-rate/internal/infrastructure/render"
)

var _ report.Renderer = (*TableRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray      = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed       = &props.Color{Red: 156, Green: 0, Blue: 6}
	colorFill      = &props.Color{Red: 255, Green: 199, Blue: 206} // FFC7CE
	colorSummaryBg = &props.Color{Red: 230, Green: 230, Blue: 230}
)

const (
	idCols   = 3 // ancho de la columna de código en celdas de la grilla
	descCols = 5
)

// TableRenderer implementa report.Renderer usando Maroto v2.
type TableRenderer struct {
	dir      string
	fontPath string // TTF con glifos CJK; vacío = helvetica
	now      func() time.Time
}

// NewTableRenderer construye el renderizador. fontPath es opcional.
func NewTableRenderer(dir, fontPath string) *TableRenderer {
	return &TableRenderer{dir: dir, fontPath: fontPath, now: time.Now}
}

// Render genera <dir>/<tabla>.pdf. Los errores envuelven domain.ErrSinkWrite.
func (g *TableRenderer) Render(ctx context.Context, t *pivot.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(g.dir, t.Name+".pdf")

	bytes, err := g.generate(t)
	if err != nil {
		return "", fmt.Errorf("pdf %s: %w: %w", path, domain.ErrSinkWrite, err)
	}
	err = render.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(bytes)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("pdf %s: %w: %w", path, domain.ErrSinkWrite, err)
	}
	return path, nil
}

func (g *TableRenderer) generate(t *pivot.Table) ([]byte, error) {
	family := "helvetica"
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(idCols + descCols + len(t.Columns)).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle(t.Title, true)

	if g.fontPath != "" {
		family = "report"
		fonts, err := repository.New().
			AddUTF8Font(family, fontstyle.Normal, g.fontPath).
			AddUTF8Font(family, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("cargar fuente %s: %w", g.fontPath, err)
		}
		b = b.WithCustomFonts(fonts)
	}
	cfg := b.WithDefaultFont(&props.Font{Family: family, Size: 7}).Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(t, g.now(), len(t.Columns)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(t))
	for _, r := range t.Rows {
		m.AddRows(tableRow(t, r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período + fecha de generación (der).
func headerRow(t *pivot.Table, now time.Time, months int) core.Row {
	period := "sin datos"
	if months > 0 {
		period = t.Columns[0].String() + " a " + t.Columns[months-1].String()
	}
	left := idCols + descCols
	right := months
	if right < 1 {
		// grilla mínima: la columna derecha toma una celda de la izquierda
		left, right = left-1, 1
	}
	return row.New(14).Add(
		col.New(left).Add(
			text.New(t.Title, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
		),
		col.New(right).Add(
			text.New("Período: "+period, props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray}),
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera sobre fondo primario.
func tableHeaderRow(t *pivot.Table) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorWhite, Top: 1.5, Left: 0.5, Right: 0.5,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	cols := make([]core.Col, 0, len(t.Columns)+2)
	cols = append(cols, h(t.IdentifierHeader, idCols, align.Left), h(t.DescriptionHeader, descCols, align.Left))
	for _, b := range t.Columns {
		cols = append(cols, h(b.String(), 1, align.Center))
	}
	return row.New(6).Add(cols...)
}

// tableRow: una fila de la tabla; los valores se resaltan según las reglas de la tabla.
func tableRow(t *pivot.Table, r pivot.Row) core.Row {
	style := fontstyle.Normal
	if r.Summary {
		style = fontstyle.Bold
	}
	cell := func(s string, size int, a align.Type, color *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: style, Size: 7, Align: a, Top: 1, Left: 0.5, Right: 0.5, Color: color,
		}))
	}

	cols := make([]core.Col, 0, len(r.Values)+2)
	cols = append(cols, cell(r.Identifier, idCols, align.Left, nil), cell(r.Description, descCols, align.Left, nil))
	for _, v := range r.Values {
		var color *props.Color
		var bg *props.Color
		switch t.StyleFor(v) {
		case pivot.StyleFill:
			color, bg = colorRed, colorFill
		case pivot.StyleFont:
			color = colorRed
		}
		c := cell(render.FormatValue(t.Format, v), 1, align.Right, color)
		if bg != nil {
			c = c.WithStyle(&props.Cell{BackgroundColor: bg})
		}
		cols = append(cols, c)
	}

	rw := row.New(5).Add(cols...)
	if r.Summary {
		rw = rw.WithStyle(&props.Cell{BackgroundColor: colorSummaryBg})
	}
	return rw
}
