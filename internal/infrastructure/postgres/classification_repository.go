package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/jhoicas/repair-rate/internal/domain/repository"
)

var _ repository.ClassificationRepository = (*ClassificationRepo)(nil)

var classificationColumns = []string{
	"run_id", "material_code", "reference_month", "repair_date", "diff_days", "label", "created_at",
}

// ClassificationRepo guarda las etiquetas de latencia. Cada ejecución reemplaza el conjunto completo.
type ClassificationRepo struct {
	tx    *TxRunner
	table string
	now   func() time.Time
}

// NewClassificationRepository construye el adaptador sobre un TxRunner.
func NewClassificationRepository(tx *TxRunner, t Tables) *ClassificationRepo {
	return &ClassificationRepo{tx: tx, table: t.Classification, now: time.Now}
}

// EnsureTable crea la tabla si no existe.
func (r *ClassificationRepo) EnsureTable(ctx context.Context, q Querier) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id              BIGSERIAL PRIMARY KEY,
			run_id          UUID        NOT NULL,
			material_code   TEXT        NOT NULL,
			reference_month DATE        NOT NULL,
			repair_date     DATE,
			diff_days       INTEGER,
			label           VARCHAR(3)  NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, ident(r.table))
	if _, err := q.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure classification table: %w", err)
	}
	return nil
}

// ReplaceClassifications borra todo y copia el conjunto nuevo en una sola transacción.
func (r *ClassificationRepo) ReplaceClassifications(ctx context.Context, runID string, items []entity.RepairClassification) error {
	id, err := uuid.Parse(runID)
	if err != nil {
		return fmt.Errorf("run id inválido %q: %w", runID, err)
	}
	created := r.now().UTC()
	return r.tx.Run(ctx, func(q Querier) error {
		if err := r.EnsureTable(ctx, q); err != nil {
			return err
		}
		if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, ident(r.table))); err != nil {
			return fmt.Errorf("delete classifications: %w", err)
		}
		n, err := q.CopyFrom(ctx, identifier(r.table), classificationColumns,
			pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
				c := items[i]
				return []any{
					id, c.MaterialCode, c.Reference, c.RepairDate, c.DiffDays, c.Label.String(), created,
				}, nil
			}))
		if err != nil {
			return fmt.Errorf("copy classifications: %w", err)
		}
		if int(n) != len(items) {
			return fmt.Errorf("copy classifications: %d de %d filas", n, len(items))
		}
		return nil
	})
}
