package observance

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/zapponejosh/amlich/internal/database"
)

// Replacer swaps the stored observances for a new set.
type Replacer interface {
	ReplaceObservances(ctx context.Context, observances []database.Observance) (int, error)
}

// Import loads path into store, replacing what was there.
func Import(ctx context.Context, path string, store Replacer) (int, error) {
	observances, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	return store.ReplaceObservances(ctx, observances)
}

// Watch re-imports path into store every time the file is written or
// recreated, until ctx is done. A file that fails to parse is logged and
// the previous observances stay in place.
//
// The parent directory is watched so that editors replacing the file by
// rename are still seen.
func Watch(ctx context.Context, path string, store Replacer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	logger.Info("watching observances file", slog.String("path", target))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			n, err := Import(ctx, target, store)
			if err != nil {
				logger.Error("reload observances failed",
					slog.String("path", target),
					slog.String("error", err.Error()),
				)
				continue
			}
			logger.Info("observances reloaded",
				slog.String("path", target),
				slog.Int("count", n),
			)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("observances watcher error", slog.String("error", err.Error()))
		}
	}
}
