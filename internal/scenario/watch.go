package scenario

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the library directory and calls onChange with each scenario
// that is created or rewritten. Blocks until ctx is cancelled.
func Watch(ctx context.Context, logger *slog.Logger, onChange func(*Scenario)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// The directory must exist before it can be watched.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".yaml") {
				continue
			}

			id := strings.TrimSuffix(filepath.Base(event.Name), ".yaml")
			s, err := Load(id)
			if err != nil {
				continue // transient read during atomic write
			}
			onChange(s)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("scenario watcher error", "err", err)
		}
	}
}
