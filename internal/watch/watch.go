// Package watch re-triggers work when a file is written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the bursts of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls onChange after path is written or recreated.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
}

// New starts watching the directory holding path. Watching the directory
// rather than the file keeps the watch alive across rename-on-save.
func New(path string, logger *zap.Logger, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("error adding directory to watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		logger:   logger,
		watcher:  fw,
	}, nil
}

// SetDebounce overrides DefaultDebounce. It must be called before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run delivers change notifications until ctx is done, then releases the
// underlying watcher. onChange runs on the Run goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if w.logger != nil {
				w.logger.Info("Change detected", zap.String("path", w.path))
			}
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Error("Watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
