package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"transaction-summary/internal/api"
	"transaction-summary/internal/config"
	"transaction-summary/internal/gateway"
	"transaction-summary/internal/logger"
	"transaction-summary/internal/store"
	"transaction-summary/internal/usecase"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML config file (defaults apply when empty)")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	// --- Dependency Injection ---
	datasets := store.New()
	ingestion := usecase.NewIngestionUseCase(datasets, gateway.NewCSVTableReader())
	summary := usecase.NewSummaryUseCase(datasets, usecase.WithStrictTimestamps(cfg.Query.Strict()))

	handlers := api.NewHandlers(ingestion, summary, cfg.Upload.MaxBytes, cfg.Upload.FormField)
	router := api.NewRouter(handlers, log, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Int64("max_upload_bytes", cfg.Upload.MaxBytes).
			Bool("strict_timestamps", cfg.Query.Strict()).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
		return
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}
