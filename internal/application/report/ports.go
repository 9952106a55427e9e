package report

import (
	"context"

	"github.com/jhoicas/repair-rate/internal/application/pivot"
)

// Renderer escribe una tabla pivote en un destino (archivo CSV, PDF...).
// Devuelve la ruta escrita. Una escritura fallida no debe dejar archivos parciales.
type Renderer interface {
	Render(ctx context.Context, t *pivot.Table) (string, error)
}
