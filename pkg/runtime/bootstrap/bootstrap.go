package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/config"
	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
	"github.com/de-tools/csat-atlas/pkg/services/fixtures"
	"github.com/de-tools/csat-atlas/pkg/store/duckdb"
	"github.com/de-tools/csat-atlas/pkg/store/duckdb/tables"
	"github.com/rs/zerolog"
)

// Runtime is a dashboard service together with the database it owns.
type Runtime struct {
	Service *dashboard.Service
	DB      *sql.DB
}

func (r *Runtime) Close() error {
	return r.DB.Close()
}

// New wires the dashboard from configuration. onFile, when set, is called
// after each uploaded file is parsed.
func New(ctx context.Context, cfg *config.Config, onFile func(domain.FileInfo)) (*Runtime, error) {
	logger := zerolog.Ctx(ctx)

	settings, err := cfg.GeneratorSettings()
	if err != nil {
		return nil, err
	}

	catalog := fixtures.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = config.LoadCatalog(cfg.CatalogPath, catalog)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("path", cfg.CatalogPath).
			Int("metrics", len(catalog.Metrics)).
			Msg("metric catalog loaded")
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath:  cfg.Store.Path,
		Threads: cfg.Store.Threads,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	store, err := tables.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table store: %w", err)
	}

	svc := dashboard.NewService(dashboard.Options{
		Settings: settings,
		Catalog:  catalog,
		Target:   cfg.Target,
		Store:    store,
		OnFile:   onFile,
	})

	logger.Debug().
		Str("store", cfg.Store.Path).
		Float64("target", cfg.Target).
		Msg("dashboard service ready")

	return &Runtime{Service: svc, DB: db}, nil
}
