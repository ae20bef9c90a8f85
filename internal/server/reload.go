// Package server serves the constitution gate over gRPC.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long the reloader waits after the last write.
const reloadDebounce = 500 * time.Millisecond

// Reloader watches the config file and reloads the jurisdiction on change.
type Reloader struct {
	watcher *fsnotify.Watcher
	server  *Server
	target  string
	logger  *slog.Logger
}

// NewReloader watches the directory holding path so editors that replace
// the file by rename are still noticed.
func NewReloader(server *Server, path string) (*Reloader, error) {
	if path == "" {
		return nil, fmt.Errorf("no config file to watch")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", path, err)
	}

	return &Reloader{
		watcher: watcher,
		server:  server,
		target:  filepath.Clean(path),
		logger:  server.logger,
	}, nil
}

// Run watches for file changes and reloads. Blocks until ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != r.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := r.server.ReloadConfig(); err != nil {
					r.logger.Error("hot-reload failed", "path", r.target, "error", err)
					return
				}
				r.logger.Info("hot-reload: config reloaded", "path", r.target,
					"jurisdiction", r.server.gate.Jurisdiction())
			})

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("file watcher error", "error", err)
		}
	}
}
