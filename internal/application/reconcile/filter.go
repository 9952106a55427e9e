package reconcile

import "github.com/jhoicas/repair-rate/internal/domain/entity"

// FilterStats conteos del filtro de referencia.
type FilterStats struct {
	In          int
	Kept        int
	Orphans     int // identificador fuera del catálogo
	ViaBoard    int // resueltos por código de placa
	Conflicts   int // clave repetida una vez resuelto el código canónico
	OrphanCodes map[string]int
	Duplicates  []entity.StockKey
}

func newFilterStats(n int) FilterStats {
	return FilterStats{In: n, OrphanCodes: make(map[string]int)}
}

func (s *FilterStats) orphan(id string) {
	s.Orphans++
	s.OrphanCodes[id]++
}

// FilterStock conserva solo las entradas cuyo material existe en el catálogo y reescribe
// el identificador a su código canónico. La unicidad de la clave se comprueba sobre el
// código ya resuelto: una fila por material y otra por su placa con igual secuencia y fecha
// son la misma entrada, y solo se conserva la primera.
func (c *Catalog) FilterStock(events []entity.StockEvent) ([]entity.StockEvent, FilterStats) {
	st := newFilterStats(len(events))
	seen := make(map[entity.StockKey]struct{}, len(events))
	out := make([]entity.StockEvent, 0, len(events))
	for _, e := range events {
		code, kind := c.Resolve(e.MaterialCode)
		if kind == MatchNone {
			st.orphan(e.MaterialCode)
			continue
		}
		if kind == MatchBoardCode {
			st.ViaBoard++
		}
		e.MaterialCode = code
		if _, dup := seen[e.Key()]; dup {
			st.Conflicts++
			st.Duplicates = append(st.Duplicates, e.Key())
			continue
		}
		seen[e.Key()] = struct{}{}
		out = append(out, e)
	}
	st.Kept = len(out)
	return out, st
}

// FilterRepairs conserva solo las reparaciones cuyo código de placa (o de material) está en el catálogo.
// Tras el filtro BoardCode contiene el código de material canónico, de modo que filtrar de nuevo
// el resultado no cambia nada.
func (c *Catalog) FilterRepairs(events []entity.RepairEvent) ([]entity.RepairEvent, FilterStats) {
	st := newFilterStats(len(events))
	out := make([]entity.RepairEvent, 0, len(events))
	for _, e := range events {
		code, kind := c.Resolve(e.BoardCode)
		if kind == MatchNone {
			st.orphan(e.BoardCode)
			continue
		}
		if kind == MatchBoardCode {
			st.ViaBoard++
		}
		e.BoardCode = code
		out = append(out, e)
	}
	st.Kept = len(out)
	return out, st
}
