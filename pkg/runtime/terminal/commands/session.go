package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/csat-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/csat-atlas/pkg/services/config"
	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
	"github.com/de-tools/csat-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Env is shared by every subcommand. ConfigPath is bound to the persistent
// --config flag of the root command.
type Env struct {
	ConfigPath string
	Reporter   *export.Reporter
}

type session struct {
	ctx context.Context
	svc *dashboard.Service
	rt  *bootstrap.Runtime
}

func (e *Env) open(cmd *cobra.Command, onFile func(domain.FileInfo)) (*session, error) {
	cfg, err := config.Load(e.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(cfg.LogLevel()).
		With().
		Timestamp().
		Logger()
	ctx := logger.WithContext(cmd.Context())

	rt, err := bootstrap.New(ctx, cfg, onFile)
	if err != nil {
		return nil, err
	}
	return &session{ctx: ctx, svc: rt.Service, rt: rt}, nil
}

func (s *session) Close() {
	if err := s.rt.Close(); err != nil {
		zerolog.Ctx(s.ctx).Warn().Err(err).Msg("failed to close database")
	}
}

// reportContext evaluates against the input files, or the synthetic data
// when there are none. A rejected upload is reported and replaced by the
// synthetic data.
func (s *session) reportContext(inputs []string, reporter *export.Reporter) (domain.ReportContext, error) {
	if len(inputs) == 0 {
		return s.svc.SyntheticContext(s.ctx)
	}

	sources, closeAll, err := openSources(inputs)
	if err != nil {
		return domain.ReportContext{}, err
	}
	defer closeAll()

	rc, err := s.svc.UploadedContext(s.ctx, sources...)
	if err != nil {
		return domain.ReportContext{}, err
	}
	if rc.FallbackReason != "" {
		if err := reporter.Line("warning: %s; showing synthetic data", rc.FallbackReason); err != nil {
			return domain.ReportContext{}, err
		}
	}
	return rc, nil
}

func openSources(paths []string) ([]ingest.Source, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	sources := make([]ingest.Source, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open input: %w", err)
		}
		files = append(files, f)
		sources = append(sources, ingest.Source{Name: filepath.Base(path), Reader: f})
	}
	return sources, closeAll, nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
