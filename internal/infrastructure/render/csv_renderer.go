package render

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/repair-rate/internal/application/pivot"
	"github.com/jhoicas/repair-rate/internal/application/report"
	"github.com/jhoicas/repair-rate/internal/domain"
)

var _ report.Renderer = (*CSVRenderer)(nil)

// utf8BOM hace que Excel abra el archivo como UTF-8 (descripciones en chino).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVRenderer una tabla por archivo <dir>/<tabla>.csv.
type CSVRenderer struct {
	dir string
}

// NewCSVRenderer construye el renderizador.
func NewCSVRenderer(dir string) *CSVRenderer {
	return &CSVRenderer{dir: dir}
}

// Render escribe la tabla. Los errores envuelven domain.ErrSinkWrite.
func (r *CSVRenderer) Render(ctx context.Context, t *pivot.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(r.dir, t.Name+".csv")
	err := WriteAtomic(path, func(w io.Writer) error {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		if err := cw.Write(Header(t)); err != nil {
			return err
		}
		for _, row := range t.Rows {
			if err := cw.Write(Record(t, row)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", fmt.Errorf("csv %s: %w: %w", path, domain.ErrSinkWrite, err)
	}
	return path, nil
}

// Header encabezados: identificador, descripción y un mes por columna.
func Header(t *pivot.Table) []string {
	h := make([]string, 0, len(t.Columns)+2)
	h = append(h, t.IdentifierHeader, t.DescriptionHeader)
	for _, b := range t.Columns {
		h = append(h, b.String())
	}
	return h
}

// Record una fila con los valores formateados según t.Format.
func Record(t *pivot.Table, row pivot.Row) []string {
	rec := make([]string, 0, len(row.Values)+2)
	rec = append(rec, row.Identifier, row.Description)
	for _, v := range row.Values {
		rec = append(rec, FormatValue(t.Format, v))
	}
	return rec
}

// FormatValue tasas con dos decimales fijos; cantidades tal cual.
func FormatValue(f pivot.Format, v decimal.Decimal) string {
	if f == pivot.FormatPercent {
		return v.StringFixed(2)
	}
	return v.String()
}
