package normalize

import (
	"fmt"

	"github.com/jhoicas/repair-rate/internal/domain"
)

// maxSamples filas descartadas que se guardan para diagnóstico por flujo.
const maxSamples = 10

// RowError describe una fila descartada o degradada. Envuelve un error de dominio
// (ErrMalformedRow, ErrUnparseableDate o ErrDuplicate).
type RowError struct {
	Row int // índice de la fila en el flujo crudo, base 0
	ID  string
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("fila %d (%s): %v", e.Row, e.ID, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

func (s *Stats) sample(row int, id string, err error) {
	if len(s.Samples) < maxSamples {
		s.Samples = append(s.Samples, RowError{Row: row, ID: id, Err: err})
	}
}

func (s *Stats) malformed(row int, id, field string) {
	s.Malformed++
	s.sample(row, id, fmt.Errorf("%s: %w", field, domain.ErrMalformedRow))
}

func (s *Stats) conflict(row int, id string) {
	s.Conflicts++
	s.sample(row, id, domain.ErrDuplicate)
}
