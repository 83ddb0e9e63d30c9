package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/bucket-doctor/pkg/handlers/bucket"
	doctormiddleware "github.com/de-tools/bucket-doctor/pkg/server/middleware"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Account bucket.Account
	Doctor  doctor.Service
	Advisor bucket.Advisor
}

type Config struct {
	Addr            string
	Version         string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	h := bucket.NewHandler(
		config.Version,
		config.Dependencies.Account,
		config.Dependencies.Doctor,
		config.Dependencies.Advisor,
	)

	router := chi.NewRouter()

	router.Use(doctormiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)
	// Browser extensions call the API from their own origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/credentials", h.Credentials)
		r.Get("/buckets", h.ListBuckets)
		r.Get("/diagnose/{bucket}", h.Diagnose)
		r.Get("/diagnose-ai/{bucket}", h.DiagnoseAI)
		r.Post("/fix/{bucket}", h.Fix)
		r.Post("/troubleshoot", h.Troubleshoot)
		r.Get("/scan-all", h.ScanAll)
		r.Get("/history/{bucket}", h.History)
	})

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Handler() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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
