// Package normalize convierte filas crudas de las fuentes en registros tipados y validados.
// Cada campo pasa por un parseo falible; un fallo descarta la fila y se cuenta, nunca se propaga.
package normalize

import (
	"fmt"

	"github.com/jhoicas/repair-rate/internal/domain"
	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/jhoicas/repair-rate/internal/domain/repository"
)

// Options ajustes del normalizador.
type Options struct {
	CleanDescriptions bool
}

// Stats conteos por etapa. Las filas descartadas se informan como totales, no una por una.
type Stats struct {
	Read             int
	Kept             int
	MissingID        int // sin identificador
	Blank            int // celda de cantidad vacía (matriz dispersa de entradas)
	Malformed        int // algún campo numérico o fecha obligatoria no interpretable
	Conflicts        int // clave duplicada
	UnparseableDates int // fecha de reparación presente pero ilegible (la fila se conserva)
	Samples          []RowError
}

// Dropped total de filas descartadas.
func (s Stats) Dropped() int {
	return s.MissingID + s.Blank + s.Malformed + s.Conflicts
}

// Normalizer aplica las reglas de tipado a cada flujo.
type Normalizer struct {
	opts Options
}

// New construye el normalizador.
func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Materials tipa el catálogo. Un código repetido cuenta como conflicto y se conserva el primero.
func (n *Normalizer) Materials(raw []repository.RawMaterialRow) ([]entity.Material, Stats) {
	st := Stats{Read: len(raw)}
	seen := make(map[string]struct{}, len(raw))
	out := make([]entity.Material, 0, len(raw))
	for i, r := range raw {
		code, ok := TrimIdentifier(r.Code)
		if !ok {
			st.MissingID++
			continue
		}
		if _, dup := seen[code]; dup {
			st.conflict(i, code)
			continue
		}
		seen[code] = struct{}{}

		desc, _ := TrimIdentifier(r.Description)
		if n.opts.CleanDescriptions {
			desc = CleanDescription(desc)
		}
		board, _ := TrimIdentifier(r.BoardCode)
		out = append(out, entity.Material{Code: code, Description: desc, BoardCode: board})
	}
	st.Kept = len(out)
	return out, st
}

// Stock tipa las entradas a almacén. La clave (material, secuencia, fecha) repetida es un conflicto.
func (n *Normalizer) Stock(raw []repository.RawStockRow) ([]entity.StockEvent, Stats) {
	st := Stats{Read: len(raw)}
	seen := make(map[entity.StockKey]struct{}, len(raw))
	out := make([]entity.StockEvent, 0, len(raw))
	for i, r := range raw {
		code, ok := TrimIdentifier(r.MaterialCode)
		if !ok {
			st.MissingID++
			continue
		}
		if IsBlank(r.Quantity) {
			st.Blank++
			continue
		}
		qty, ok := ParseDecimal(r.Quantity)
		if !ok || qty.IsNegative() {
			st.malformed(i, code, "cantidad")
			continue
		}
		date, ok := ParseDate(r.Date)
		if !ok {
			st.malformed(i, code, "fecha")
			continue
		}
		seq, _ := TrimIdentifier(r.Sequence)

		ev := entity.StockEvent{MaterialCode: code, Sequence: seq, Date: date, Quantity: qty}
		if _, dup := seen[ev.Key()]; dup {
			st.conflict(i, code)
			continue
		}
		seen[ev.Key()] = struct{}{}
		out = append(out, ev)
	}
	st.Kept = len(out)
	return out, st
}

// Repairs tipa los registros de reparación. Cantidad, año y mes son obligatorios;
// la fecha de reparación es opcional y, si no se puede leer, la fila se conserva sin fecha.
func (n *Normalizer) Repairs(raw []repository.RawRepairRow) ([]entity.RepairEvent, Stats) {
	st := Stats{Read: len(raw)}
	out := make([]entity.RepairEvent, 0, len(raw))
	for i, r := range raw {
		board, ok := TrimIdentifier(r.BoardCode)
		if !ok {
			st.MissingID++
			continue
		}
		count, okC := ParseInt(r.Count)
		year, okY := ParseInt(r.Year)
		month, okM := ParseInt(r.Month)
		if !okC || !okY || !okM || count < 0 {
			st.malformed(i, board, "cantidad/año/mes")
			continue
		}
		if _, err := entity.BucketOf(int(year), int(month)); err != nil {
			st.malformed(i, board, "mes")
			continue
		}

		ev := entity.RepairEvent{
			BoardCode: board,
			Count:     count,
			Year:      int(year),
			Month:     int(month),
		}
		if !IsBlank(r.RepairDate) {
			ev.RepairDateRaw, _ = TrimIdentifier(r.RepairDate)
			if d, ok := ParseDate(r.RepairDate); ok {
				ev.RepairDate = &d
			} else {
				st.UnparseableDates++
				st.sample(i, board, fmt.Errorf("%q: %w", ev.RepairDateRaw, domain.ErrUnparseableDate))
			}
		}
		out = append(out, ev)
	}
	st.Kept = len(out)
	return out, st
}
