package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/repair-rate/internal/application/aggregation"
	"github.com/jhoicas/repair-rate/internal/application/normalize"
	"github.com/jhoicas/repair-rate/internal/application/pivot"
	"github.com/jhoicas/repair-rate/internal/application/report"
	"github.com/jhoicas/repair-rate/internal/domain"
	"github.com/jhoicas/repair-rate/internal/domain/repository"
	"github.com/jhoicas/repair-rate/internal/infrastructure/csvsource"
	infrapdf "github.com/jhoicas/repair-rate/internal/infrastructure/pdf"
	"github.com/jhoicas/repair-rate/internal/infrastructure/postgres"
	"github.com/jhoicas/repair-rate/internal/infrastructure/render"
	"github.com/jhoicas/repair-rate/internal/infrastructure/sqlite"
	"github.com/jhoicas/repair-rate/pkg/config"
	"github.com/jhoicas/repair-rate/pkg/logger"
)

func main() {
	configFile := flag.String("config", "", "archivo de configuración adicional (formato .env)")
	dryRun := flag.Bool("dry-run", false, "calcular sin escribir reportes ni clasificaciones")
	flag.Parse()

	os.Exit(run(*configFile, *dryRun))
}

// run devuelve el código de salida: 0 si terminó bien o no había datos, 1 ante un error.
func run(configFile string, dryRun bool) int {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return 1
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Source.Driver).
		Strs("formats", cfg.Report.Formats).
		Msg("iniciando ejecución")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, cleanup, err := openSources(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("abrir fuentes")
		return 1
	}
	defer cleanup()

	opts := report.Options{
		Window:    aggregation.Window{Start: cfg.Pipeline.StartBucket, End: cfg.Pipeline.EndBucket},
		Normalize: normalize.Options{CleanDescriptions: cfg.Pipeline.CleanDescriptions},
		Labels: pivot.Labels{
			Identifier:  "material_code",
			Description: "material_desc",
			Global:      cfg.Report.GlobalLabel,
			Total:       cfg.Report.TotalLabel,
			Cumulative:  cfg.Report.CumulativeLabel,
		},
		Highlights: []pivot.HighlightRule{
			{Threshold: cfg.Report.FontThreshold, Style: pivot.StyleFont},
			{Threshold: cfg.Report.FillThreshold, Style: pivot.StyleFill},
		},
		PersistClassifications: cfg.Pipeline.PersistClassifications,
		DryRun:                 dryRun,
	}

	uc := report.NewRepairRateUseCase(src.catalog, src.stock, src.repairs, src.classifications,
		renderers(cfg), opts, log)

	summary, err := uc.Run(ctx)
	switch {
	case errors.Is(err, domain.ErrEmptyResultSet):
		log.Warn().Msg("sin datos tras filtrar y agregar; no se escriben reportes")
	case err != nil:
		log.Error().Err(err).Msg("ejecución fallida")
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Error().Err(err).Msg("escribir resumen")
		return 1
	}
	return 0
}

type sources struct {
	catalog         repository.CatalogRepository
	stock           repository.StockRepository
	repairs         repository.RepairRepository
	classifications repository.ClassificationRepository
}

// openSources construye los adaptadores del driver configurado.
func openSources(ctx context.Context, cfg *config.Config) (*sources, func(), error) {
	switch cfg.Source.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w: %w", domain.ErrSourceUnavailable, err)
		}
		tables := postgres.Tables{
			Material:         cfg.Tables.Material,
			Stock:            cfg.Tables.Stock,
			Repair:           cfg.Tables.Repair,
			RepairDateColumn: cfg.Tables.RepairDateColumn,
			Classification:   cfg.Tables.Classification,
		}
		s := &sources{
			catalog: postgres.NewCatalogRepository(pool, tables),
			stock:   postgres.NewStockRepository(pool, tables),
			repairs: postgres.NewRepairRepository(pool, tables),
		}
		if cfg.Pipeline.PersistClassifications {
			s.classifications = postgres.NewClassificationRepository(postgres.NewTxRunner(pool), tables)
		}
		return s, pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
		}
		tables := sqlite.Tables{
			Material:         cfg.Tables.Material,
			Stock:            cfg.Tables.Stock,
			Repair:           cfg.Tables.Repair,
			RepairDateColumn: cfg.Tables.RepairDateColumn,
		}
		return &sources{
			catalog: sqlite.NewCatalogRepository(db, tables),
			stock:   sqlite.NewStockRepository(db, tables),
			repairs: sqlite.NewRepairRepository(db, tables),
		}, func() { _ = db.Close() }, nil

	case config.DriverCSV:
		return &sources{
			catalog: csvsource.NewCatalogRepository(cfg.CSV.CatalogPath, cfg.CSV.Encoding),
			stock:   csvsource.NewStockRepository(cfg.CSV.StockPath, cfg.CSV.Encoding),
			repairs: csvsource.NewRepairRepository(cfg.CSV.RepairPath, cfg.CSV.Encoding),
		}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("%w: driver %q", domain.ErrInvalidConfig, cfg.Source.Driver)
}

func renderers(cfg *config.Config) []report.Renderer {
	var out []report.Renderer
	for _, f := range cfg.Report.Formats {
		switch f {
		case config.FormatCSV:
			out = append(out, render.NewCSVRenderer(cfg.Report.OutputDir))
		case config.FormatPDF:
			out = append(out, infrapdf.NewTableRenderer(cfg.Report.OutputDir, cfg.Report.PDFFont))
		}
	}
	return out
}
