package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/csat-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/csat-atlas/pkg/server"
	"github.com/de-tools/csat-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the satisfaction dashboard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML configuration file (CSAT_* environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	rt, err := bootstrap.New(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	// Warm the generator cache so the first request does not pay for it.
	if _, err := rt.Service.SyntheticContext(ctx); err != nil {
		return fmt.Errorf("failed to generate synthetic data: %w", err)
	}

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	logger.Info().
		Str("addr", addr).
		Float64("target", cfg.Target).
		Int64("max_upload_mb", cfg.Server.MaxUploadMB).
		Msg("configuration loaded")

	api := server.NewWebAPI(server.Config{
		Addr:           addr,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		Dependencies: server.Dependencies{
			Dashboard: rt.Service,
			Logger:    logger,
		},
	})
	return api.Start()
}
