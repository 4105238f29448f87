// Package watch implements automatic re-export on filesystem changes
// using fsnotify.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driving"
	"github.com/atelier-tools/batchman/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driving.AutoExporter = (*Watcher)(nil)

// defaultDebounce coalesces editor save bursts into one export cycle.
const defaultDebounce = 500 * time.Millisecond

// Watcher re-runs the export cycle whenever documents in a directory
// change on disk.
type Watcher struct {
	exports  driving.ExportService
	ext      string
	debounce time.Duration
}

// NewWatcher creates a watcher for documents with the given extension.
// A non-positive debounce falls back to the default.
func NewWatcher(exports driving.ExportService, ext string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		exports:  exports,
		ext:      domain.NormalizeExtension(ext),
		debounce: debounce,
	}
}

// Run watches dir and exports on changes until ctx is cancelled.
// An initial export runs immediately so the targets start in sync.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	w.export(ctx, dir)

	// The timer is armed only while a change is pending.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("change detected: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			w.export(ctx, dir)
		}
	}
}

// relevant filters events down to tracked document changes.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), w.ext)
}

func (w *Watcher) export(ctx context.Context, dir string) {
	report, err := w.exports.Export(ctx, dir)
	if err != nil {
		if errors.Is(err, domain.ErrExportInProgress) {
			logger.Debug("export already running for %s", dir)
			return
		}
		logger.Warn("auto export of %s: %v", dir, err)
		return
	}
	if len(report.Failed) > 0 {
		logger.Warn("auto export of %s: %d failed", dir, len(report.Failed))
	}
	logger.Info("auto export of %s: %d exported", dir, len(report.Succeeded))
}
