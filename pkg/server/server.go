package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/csat-atlas/pkg/handlers/dashboard"
	csatmiddleware "github.com/de-tools/csat-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxUploadBytes  = 32 << 20
)

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Dashboard handlers.Service
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	Dependencies    Dependencies
}

// ConfigureRouter mounts the dashboard API under /api/v1.
func ConfigureRouter(config Config) http.Handler {
	maxUpload := config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	h := handlers.NewHandler(config.Dependencies.Dashboard, maxUpload)

	router := chi.NewRouter()

	router.Use(csatmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/overview", h.GetOverview)
		r.Get("/daily", h.GetDaily)
		r.Get("/months", h.GetMonths)
		r.Get("/metrics", h.ListMetrics)
		r.Get("/metrics/{metric}", h.GetMetric)
		r.Get("/priorities", h.GetPriorities)
		r.Get("/events", h.GetEvents)
		r.Get("/outliers", h.GetOutliers)
		r.Get("/export/{dataset}.{format}", h.Export)
		r.Post("/uploads", h.Upload)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	logger := config.Dependencies.Logger
	return &WebAPI{
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           ConfigureRouter(config),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
