package repository

import (
	"context"

	"github.com/jhoicas/repair-rate/internal/domain/entity"
)

// ClassificationRepository persiste las etiquetas de latencia de una ejecución.
// Reemplaza el conjunto completo: no hay semántica incremental.
type ClassificationRepository interface {
	ReplaceClassifications(ctx context.Context, runID string, items []entity.RepairClassification) error
}
