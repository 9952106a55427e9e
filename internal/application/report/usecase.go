// Package report orquesta el pipeline completo: carga, normalización, filtro de referencia,
// agregación, tasas, clasificación de latencia, tablas pivote y salida.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/repair-rate/internal/application/aggregation"
	"github.com/jhoicas/repair-rate/internal/application/dto"
	"github.com/jhoicas/repair-rate/internal/application/normalize"
	"github.com/jhoicas/repair-rate/internal/application/pivot"
	"github.com/jhoicas/repair-rate/internal/application/reconcile"
	"github.com/jhoicas/repair-rate/internal/domain"
	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/jhoicas/repair-rate/internal/domain/repository"
	"github.com/jhoicas/repair-rate/pkg/logger"
)

// Options parámetros de una ejecución.
type Options struct {
	Window                 aggregation.Window
	Normalize              normalize.Options
	Labels                 pivot.Labels
	Highlights             []pivot.HighlightRule
	PersistClassifications bool
	DryRun                 bool // calcula todo pero no escribe reportes ni clasificaciones
}

// RepairRateUseCase ejecuta el pipeline de tasa de reparación de principio a fin.
// Cada ejecución recalcula todo desde las fuentes; no hay estado incremental.
type RepairRateUseCase struct {
	catalogRepo repository.CatalogRepository
	stockRepo   repository.StockRepository
	repairRepo  repository.RepairRepository
	classRepo   repository.ClassificationRepository // opcional
	renderers   []Renderer
	opts        Options
	log         *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewRepairRateUseCase construye el caso de uso. classRepo puede ser nil.
func NewRepairRateUseCase(
	catalogRepo repository.CatalogRepository,
	stockRepo repository.StockRepository,
	repairRepo repository.RepairRepository,
	classRepo repository.ClassificationRepository,
	renderers []Renderer,
	opts Options,
	log *logger.Logger,
) *RepairRateUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RepairRateUseCase{
		catalogRepo: catalogRepo,
		stockRepo:   stockRepo,
		repairRepo:  repairRepo,
		classRepo:   classRepo,
		renderers:   renderers,
		opts:        opts,
		log:         log,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

type sources struct {
	materials []repository.RawMaterialRow
	stock     []repository.RawStockRow
	repairs   []repository.RawRepairRow
}

// Run ejecuta una pasada completa.
//
// Errores:
//   - domain.ErrSourceUnavailable  alguna fuente no se pudo leer; no se calcula nada.
//   - domain.ErrEmptyReferenceSet  catálogo vacío; se aborta antes de tocar entradas y reparaciones.
//   - domain.ErrEmptyResultSet     nada que reportar; el resumen se devuelve igual.
//   - domain.ErrSinkWrite          falló la escritura de un reporte o de las clasificaciones.
func (uc *RepairRateUseCase) Run(ctx context.Context) (*dto.RunSummary, error) {
	sum := &dto.RunSummary{RunID: uc.newID(), StartedAt: uc.now(), DryRun: uc.opts.DryRun}
	log := uc.log.WithStr("run_id", sum.RunID)
	log.Info().Bool("dry_run", uc.opts.DryRun).Msg("inicio de ejecución")

	// ── 1. Carga ───────────────────────────────────────────────────────────────
	src, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	// ── 2. Catálogo ────────────────────────────────────────────────────────────
	norm := normalize.New(uc.opts.Normalize)
	materials, mst := norm.Materials(src.materials)
	sum.Materials = dto.StageCount{Read: mst.Read, Kept: mst.Kept, Dropped: mst.Dropped(), Conflicts: mst.Conflicts}
	catalog, err := reconcile.NewCatalog(materials)
	if err != nil {
		return nil, fmt.Errorf("report: catálogo: %w", err)
	}
	if amb := catalog.Ambiguous(); len(amb) > 0 {
		log.Warn().Int("board_codes", len(amb)).Msg("códigos de placa con más de un material; se usa el primero del catálogo")
	}
	log.Info().Int("read", mst.Read).Int("kept", mst.Kept).Int("dropped", mst.Dropped()).Msg("catálogo")

	// ── 3. Normalizar y filtrar ───────────────────────────────────────────────
	stock, sst := norm.Stock(src.stock)
	stock, sfs := catalog.FilterStock(stock)
	sum.Stock = dto.StageCount{
		Read:      sst.Read,
		Kept:      sfs.Kept,
		Dropped:   sst.Dropped() + sfs.Conflicts,
		Orphans:   sfs.Orphans,
		Conflicts: sst.Conflicts + sfs.Conflicts,
	}

	repairs, rst := norm.Repairs(src.repairs)
	repairs, rfs := catalog.FilterRepairs(repairs)
	sum.Repairs = dto.StageCount{Read: rst.Read, Kept: rfs.Kept, Dropped: rst.Dropped(), Orphans: rfs.Orphans}

	log.Info().Int("read", sst.Read).Int("kept", sfs.Kept).Int("orphans", sfs.Orphans).
		Int("conflicts", sum.Stock.Conflicts).Msg("entradas")
	for _, k := range sfs.Duplicates {
		log.Debug().Err(domain.ErrDuplicate).Str("material_code", k.MaterialCode).
			Str("sequence", k.Sequence).Str("date", k.Date).Msg("entrada repetida tras resolver código de placa")
	}
	log.Info().Int("read", rst.Read).Int("kept", rfs.Kept).Int("orphans", rfs.Orphans).
		Int("via_board", rfs.ViaBoard).Msg("reparaciones")
	if d := sum.Stock.Dropped + rst.Dropped(); d > 0 {
		log.Warn().Int("stock_blank", sst.Blank).Int("stock_malformed", sst.Malformed).
			Int("stock_conflicts", sum.Stock.Conflicts).Int("repair_malformed", rst.Malformed).
			Int("missing_id", sst.MissingID+rst.MissingID).Msg("filas descartadas")
	}
	for _, stage := range []normalize.Stats{mst, sst, rst} {
		for _, re := range stage.Samples {
			log.Debug().Err(re).Msg("diagnóstico de fila")
		}
	}
	if rst.UnparseableDates > 0 {
		log.Warn().Int("rows", rst.UnparseableDates).Msg("fechas de reparación ilegibles; se clasifican NA")
	}

	// ── 4. Agregar ────────────────────────────────────────────────────────────
	aggs, ast := aggregation.Aggregate(stock, repairs, uc.opts.Window)
	sum.Aggregates = len(aggs)
	log.Info().Int("groups", ast.Groups).Int("stock_out_of_window", ast.StockOutOfWindow).
		Int("repairs_out_of_window", ast.RepairOutOfWindow).Msg("agregación")
	if len(aggs) == 0 {
		sum.FinishedAt = uc.now()
		return sum, fmt.Errorf("report: %w", domain.ErrEmptyResultSet)
	}
	sum.FirstBucket, sum.LastBucket = bucketRange(aggs)

	// ── 5. Tasas, latencia, tablas ─────────────────────────────────────────────
	classes, tally := aggregation.ClassifyRepairs(repairs, uc.opts.Window)
	sum.Classifications = len(classes)

	tables := []*pivot.Table{
		pivot.RateTable(aggs, catalog.Describe, uc.opts.Labels, uc.opts.Highlights),
		pivot.RepairCountTable(aggs, catalog.Describe, uc.opts.Labels),
		pivot.InboundTable(aggs, catalog.Describe, uc.opts.Labels),
		pivot.LatencyTable(tally, uc.opts.Labels),
	}
	for _, t := range tables {
		sum.Tables = append(sum.Tables, t.Name)
	}

	if uc.opts.DryRun {
		sum.FinishedAt = uc.now()
		log.Info().Int("tables", len(tables)).Msg("dry-run: no se escriben reportes")
		return sum, nil
	}

	// ── 6. Salida ────────────────────────────────────────────────────────────
	for _, t := range tables {
		for _, r := range uc.renderers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			path, err := r.Render(ctx, t)
			if err != nil {
				if errors.Is(err, domain.ErrSinkWrite) {
					return nil, fmt.Errorf("report: %s: %w", t.Name, err)
				}
				return nil, fmt.Errorf("report: %s: %w: %w", t.Name, domain.ErrSinkWrite, err)
			}
			sum.Files = append(sum.Files, path)
			log.Debug().Str("table", t.Name).Str("path", path).Msg("reporte escrito")
		}
	}

	// ── 7. Persistir clasificaciones ─────────────────────────────────────────────
	if uc.opts.PersistClassifications && uc.classRepo != nil {
		if err := uc.classRepo.ReplaceClassifications(ctx, sum.RunID, classes); err != nil {
			return nil, fmt.Errorf("report: clasificaciones: %w: %w", domain.ErrSinkWrite, err)
		}
	}

	sum.FinishedAt = uc.now()
	log.Info().Int("files", len(sum.Files)).Str("from", sum.FirstBucket).Str("to", sum.LastBucket).
		Dur("elapsed", sum.FinishedAt.Sub(sum.StartedAt)).Msg("ejecución terminada")
	return sum, nil
}

// load lee las tres fuentes en paralelo. Cualquier fallo aborta la ejecución.
func (uc *RepairRateUseCase) load(ctx context.Context) (*sources, error) {
	type materialsResult struct {
		rows []repository.RawMaterialRow
		err  error
	}
	type stockResult struct {
		rows []repository.RawStockRow
		err  error
	}
	type repairsResult struct {
		rows []repository.RawRepairRow
		err  error
	}

	materialsCh := make(chan materialsResult, 1)
	stockCh := make(chan stockResult, 1)
	repairsCh := make(chan repairsResult, 1)

	go func() {
		rows, err := uc.catalogRepo.ListMaterials(ctx)
		materialsCh <- materialsResult{rows, err}
	}()
	go func() {
		rows, err := uc.stockRepo.ListStockEvents(ctx)
		stockCh <- stockResult{rows, err}
	}()
	go func() {
		rows, err := uc.repairRepo.ListRepairEvents(ctx)
		repairsCh <- repairsResult{rows, err}
	}()

	m := <-materialsCh
	s := <-stockCh
	r := <-repairsCh

	if m.err != nil {
		return nil, fmt.Errorf("report: carga de catálogo: %w: %w", domain.ErrSourceUnavailable, m.err)
	}
	if s.err != nil {
		return nil, fmt.Errorf("report: carga de entradas: %w: %w", domain.ErrSourceUnavailable, s.err)
	}
	if r.err != nil {
		return nil, fmt.Errorf("report: carga de reparaciones: %w: %w", domain.ErrSourceUnavailable, r.err)
	}
	return &sources{materials: m.rows, stock: s.rows, repairs: r.rows}, nil
}

func bucketRange(aggs []entity.MonthlyAggregate) (string, string) {
	first, last := aggs[0].Bucket, aggs[0].Bucket
	for _, a := range aggs[1:] {
		if a.Bucket.Before(first) {
			first = a.Bucket
		}
		if last.Before(a.Bucket) {
			last = a.Bucket
		}
	}
	return first.String(), last.String()
}
