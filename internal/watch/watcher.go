// Package watch re-runs a check whenever locale files in a directory change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"localecheck/internal/locale"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long changes must settle before the check re-runs.
const DefaultDebounce = 300 * time.Millisecond

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Runs          int
	Failures      int
	LastEventPath string
	LastEventType string
	LastEventTime time.Time
}

// Watcher watches a locale directory for .json changes.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	logger      *zap.Logger
	debounceDur time.Duration
	tick        time.Duration
	pending     map[string]time.Time

	stats Stats
}

// New creates a Watcher for dir. A nil logger disables logging.
func New(dir string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		watcher:     fw,
		dir:         dir,
		logger:      logger,
		debounceDur: DefaultDebounce,
		tick:        50 * time.Millisecond,
		pending:     make(map[string]time.Time),
	}, nil
}

// SetDebounce changes the settle window. Must be called before Run.
// Non-positive values are ignored.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d <= 0 {
		return
	}
	w.debounceDur = d
	if d < w.tick {
		w.tick = d
	}
}

// Run calls fn once, then again each time locale changes settle, until ctx is done.
// Errors from fn are logged and counted; the loop keeps going. Run closes the
// underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	defer w.watcher.Close()

	w.invoke(ctx, fn)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Watcher stopped", zap.String("dir", w.dir))
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-ticker.C:
			if w.settled() {
				w.invoke(ctx, fn)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !locale.IsLocaleFile(event.Name) {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return // chmod
	}

	w.logger.Debug("Locale changed",
		zap.String("file", filepath.Base(event.Name)),
		zap.String("op", eventType))

	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	w.stats.Events++
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = eventType
	w.stats.LastEventTime = now
	w.pending[event.Name] = now
}

// settled drains pending events once every one of them is older than the debounce window.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return false
	}
	now := time.Now()
	for _, at := range w.pending {
		if now.Sub(at) < w.debounceDur {
			return false
		}
	}
	w.pending = make(map[string]time.Time)
	return true
}

func (w *Watcher) invoke(ctx context.Context, fn func(context.Context) error) {
	err := fn(ctx)

	w.mu.Lock()
	w.stats.Runs++
	if err != nil {
		w.stats.Failures++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("Check failed", zap.Error(err))
	}
}

// GetStats returns a snapshot of watcher activity.
func (w *Watcher) GetStats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}
