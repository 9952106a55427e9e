package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/repair-rate/internal/domain/repository"
)

var _ repository.RepairRepository = (*RepairRepo)(nil)

// RepairRepo lee los registros de reparación (read-only).
type RepairRepo struct {
	q          Querier
	table      string
	dateColumn string
}

// NewRepairRepository construye el adaptador de reparaciones.
func NewRepairRepository(q Querier, t Tables) *RepairRepo {
	return &RepairRepo{q: q, table: t.Repair, dateColumn: t.RepairDateColumn}
}

// ListRepairEvents devuelve todas las reparaciones. La fecha se lee como texto: en la tabla
// de origen puede ser DATE o VARCHAR y el normalizador reconoce varios formatos.
func (r *RepairRepo) ListRepairEvents(ctx context.Context) ([]repository.RawRepairRow, error) {
	dateExpr := "NULL::text"
	if r.dateColumn != "" {
		dateExpr = ident(r.dateColumn) + "::text"
	}
	query := fmt.Sprintf(`
		SELECT board_code::text, count::bigint, year::bigint, month::bigint, %s
		FROM %s
		ORDER BY year, month, board_code`, dateExpr, ident(r.table))
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", wrapQueryErr(r.table, err))
	}
	defer rows.Close()

	var out []repository.RawRepairRow
	line := 0
	for rows.Next() {
		line++
		var (
			board, repairDate   *string
			count, year, month *int64
		)
		if err := rows.Scan(&board, &count, &year, &month, &repairDate); err != nil {
			return nil, fmt.Errorf("scan repair: %w", err)
		}
		out = append(out, repository.RawRepairRow{
			Line:       line,
			BoardCode:  derefString(board),
			Count:      derefInt(count),
			Year:       derefInt(year),
			Month:      derefInt(month),
			RepairDate: derefString(repairDate),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	return out, nil
}

func derefInt(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}
