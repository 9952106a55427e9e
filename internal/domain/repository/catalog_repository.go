package repository

import "context"

// RawMaterialRow fila cruda del catálogo tal como la entrega la fuente (celdas sin tipar).
type RawMaterialRow struct {
	Line        int // posición en la fuente, para diagnóstico
	Code        any
	Description any
	BoardCode   any
}

// CatalogRepository puerto de lectura del catálogo de materiales.
type CatalogRepository interface {
	// ListMaterials devuelve el catálogo completo. Un error aborta la ejecución.
	ListMaterials(ctx context.Context) ([]RawMaterialRow, error)
}
