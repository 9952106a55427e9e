package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/repair-rate/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo lee las entradas de producción (read-only, usable con pool o tx).
type StockRepo struct {
	q     Querier
	table string
}

// NewStockRepository construye el adaptador de entradas. Pasar pool o tx (Querier).
func NewStockRepository(q Querier, t Tables) *StockRepo {
	return &StockRepo{q: q, table: t.Stock}
}

// ListStockEvents devuelve todas las entradas. quantity se lee como NUMERIC (codec shopspring);
// una celda NULL llega como nil y el normalizador la cuenta como vacía.
func (r *StockRepo) ListStockEvents(ctx context.Context) ([]repository.RawStockRow, error) {
	query := fmt.Sprintf(`
		SELECT material_code::text, seq::text, date::date, quantity::numeric
		FROM %s
		ORDER BY material_code, seq, date`, ident(r.table))
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", wrapQueryErr(r.table, err))
	}
	defer rows.Close()

	var out []repository.RawStockRow
	line := 0
	for rows.Next() {
		line++
		var (
			code, seq *string
			date      *time.Time
			qty       decimal.NullDecimal
		)
		if err := rows.Scan(&code, &seq, &date, &qty); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		row := repository.RawStockRow{Line: line, MaterialCode: derefString(code), Sequence: derefString(seq)}
		if date != nil {
			row.Date = *date
		}
		if qty.Valid {
			row.Quantity = qty.Decimal
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return out, nil
}
