package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/config"
	"github.com/zapponejosh/amlich/internal/database"
	"github.com/zapponejosh/amlich/internal/observance"
)

const shutdownTimeout = 10 * time.Second

// Run opens the database, seeds observances, and serves the API until ctx
// is cancelled, then shuts down gracefully.
//
// With cfg.ObservancesPath set, the file is imported at startup and
// watched for changes; otherwise an empty table is seeded with the
// built-in defaults.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	// Background work stops and is waited on before the database closes.
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := seedObservances(ctx, cfg, db, log); err != nil {
		return err
	}

	if cfg.ObservancesPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := observance.Watch(ctx, cfg.ObservancesPath, db, log); err != nil {
				log.Error("observances watcher stopped", slog.Any("error", err))
				return
			}
			log.Debug("observances watcher stopped")
		}()
	}

	conv := calendar.NewConverter(cfg.TimeZone, log)
	handlers := NewHandlers(db, conv, cfg, log, NewMetrics("amlich"))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.Float64("timezone", conv.TimeZone()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func seedObservances(ctx context.Context, cfg *config.Config, db *database.DB, log *slog.Logger) error {
	if cfg.ObservancesPath != "" {
		n, err := observance.Import(ctx, cfg.ObservancesPath, db)
		if err != nil {
			return fmt.Errorf("import observances: %w", err)
		}
		log.Info("observances imported",
			slog.String("path", cfg.ObservancesPath),
			slog.Int("count", n),
		)
		return nil
	}

	existing, err := db.ListObservances(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	n, err := db.ReplaceObservances(ctx, observance.Defaults())
	if err != nil {
		return fmt.Errorf("seed default observances: %w", err)
	}
	log.Info("default observances seeded", slog.Int("count", n))
	return nil
}
