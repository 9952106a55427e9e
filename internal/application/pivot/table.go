// Package pivot convierte celdas largas (identificador, mes, valor) en tablas anchas
// con una columna por mes y filas de resumen al final.
package pivot

import (
	"sort"

	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Format indica cómo se escriben los valores numéricos de una tabla.
type Format int

const (
	FormatQuantity Format = iota // tal cual
	FormatPercent                // dos decimales fijos
)

// Style pista de resaltado para el renderizador.
type Style int

const (
	StyleNone Style = iota
	StyleFont       // fuente roja
	StyleFill       // fondo rojo claro
)

// HighlightRule aplica Style a los valores estrictamente mayores que Threshold.
type HighlightRule struct {
	Threshold decimal.Decimal
	Style     Style
}

// Cell valor de un identificador en un mes.
type Cell struct {
	Identifier string
	Bucket     entity.Bucket
	Value      decimal.Decimal
}

// Row fila de la tabla ancha; Values sigue el orden de Table.Columns.
type Row struct {
	Identifier  string
	Description string
	Values      []decimal.Decimal
	Summary     bool
}

// Table tabla pivote lista para renderizar.
type Table struct {
	Name              string // nombre de archivo sin extensión
	Title             string
	IdentifierHeader  string
	DescriptionHeader string
	Format            Format
	Columns           []entity.Bucket
	Rows              []Row
	Highlights        []HighlightRule
}

// Build arma la tabla a partir de celdas. Las columnas se calculan una sola vez a partir del
// conjunto de celdas y se ordenan cronológicamente; las celdas ausentes valen 0.
// Celdas repetidas para el mismo (identificador, mes) se suman.
func Build(cells []Cell, describe func(string) string) *Table {
	colSet := make(map[entity.Bucket]struct{})
	byID := make(map[string]map[entity.Bucket]decimal.Decimal)
	for _, c := range cells {
		colSet[c.Bucket] = struct{}{}
		m, ok := byID[c.Identifier]
		if !ok {
			m = make(map[entity.Bucket]decimal.Decimal)
			byID[c.Identifier] = m
		}
		m[c.Bucket] = m[c.Bucket].Add(c.Value)
	}

	cols := make([]entity.Bucket, 0, len(colSet))
	for b := range colSet {
		cols = append(cols, b)
	}
	entity.SortBuckets(cols)

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	t := &Table{Columns: cols, Rows: make([]Row, 0, len(ids))}
	for _, id := range ids {
		row := Row{Identifier: id, Values: make([]decimal.Decimal, len(cols))}
		if describe != nil {
			row.Description = describe(id)
		}
		for i, b := range cols {
			row.Values[i] = byID[id][b]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// AppendSummary agrega una fila sintética al final. Los meses sin valor quedan en 0.
func (t *Table) AppendSummary(label string, values map[entity.Bucket]decimal.Decimal) {
	row := Row{Description: label, Values: make([]decimal.Decimal, len(t.Columns)), Summary: true}
	for i, b := range t.Columns {
		row.Values[i] = values[b]
	}
	t.Rows = append(t.Rows, row)
}

// ColumnTotals suma por columna las filas que no son de resumen.
func (t *Table) ColumnTotals() map[entity.Bucket]decimal.Decimal {
	out := make(map[entity.Bucket]decimal.Decimal, len(t.Columns))
	for _, r := range t.Rows {
		if r.Summary {
			continue
		}
		for i, b := range t.Columns {
			out[b] = out[b].Add(r.Values[i])
		}
	}
	return out
}

// StyleFor devuelve el estilo más fuerte cuya regla se cumple para v.
func (t *Table) StyleFor(v decimal.Decimal) Style {
	s := StyleNone
	for _, h := range t.Highlights {
		if v.GreaterThan(h.Threshold) && h.Style > s {
			s = h.Style
		}
	}
	return s
}

// BodyLen número de filas que no son de resumen.
func (t *Table) BodyLen() int {
	n := 0
	for _, r := range t.Rows {
		if !r.Summary {
			n++
		}
	}
	return n
}
