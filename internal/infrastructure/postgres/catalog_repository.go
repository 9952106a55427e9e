package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/repair-rate/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lee el catálogo de materiales (read-only).
type CatalogRepo struct {
	q     Querier
	table string
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier, t Tables) *CatalogRepo {
	return &CatalogRepo{q: q, table: t.Material}
}

// ListMaterials devuelve todas las filas del catálogo en orden físico estable (material_code).
func (r *CatalogRepo) ListMaterials(ctx context.Context) ([]repository.RawMaterialRow, error) {
	query := fmt.Sprintf(`
		SELECT material_code::text, material_desc::text, board_code::text
		FROM %s
		ORDER BY material_code`, ident(r.table))
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", wrapQueryErr(r.table, err))
	}
	defer rows.Close()

	var out []repository.RawMaterialRow
	line := 0
	for rows.Next() {
		line++
		var code, desc, board *string
		if err := rows.Scan(&code, &desc, &board); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, repository.RawMaterialRow{
			Line:        line,
			Code:        derefString(code),
			Description: derefString(desc),
			BoardCode:   derefString(board),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return out, nil
}

// derefString devuelve nil (celda vacía) para NULL.
func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func wrapQueryErr(table string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("tabla %q no existe: %w", table, err)
	}
	return err
}
