package inbox

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler processes one settled export.
type Handler func(ctx context.Context, path string) error

// Watcher calls a Handler for every export created or rewritten in a
// directory, once its writes have settled for the debounce window.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	handle      Handler
	logger      *zap.Logger
	debounceDur time.Duration
	debounceMap map[string]time.Time
}

// NewWatcher creates a Watcher for dir. A nil logger disables logging.
func NewWatcher(dir string, handle Handler, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:     watcher,
		dir:         dir,
		handle:      handle,
		logger:      logger.With(zap.String("inbox", dir)),
		debounceDur: 500 * time.Millisecond,
		debounceMap: make(map[string]time.Time),
	}, nil
}

// SetDebounce changes the settle window. It must be called before Run;
// non-positive durations are ignored.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounceDur = d
	}
}

// Run dispatches settled exports until ctx is done or the watcher closes.
// It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	ticker := time.NewTicker(max(w.debounceDur/5, time.Millisecond))
	defer ticker.Stop()

	w.logger.Info("watching inbox")
	for {
		select {
		case <-ctx.Done():
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
			w.logger.Error("watcher error", zap.Error(err))

		case <-ticker.C:
			w.processDebounced(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !IsExport(event.Name) {
		return
	}
	w.mu.Lock()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// processDebounced hands every path quiet for the debounce window to the handler.
func (w *Watcher) processDebounced(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, last := range w.debounceMap {
		if now.Sub(last) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		if err := w.handle(ctx, path); err != nil {
			w.logger.Error("failed to process export", zap.String("path", path), zap.Error(err))
			continue
		}
		w.logger.Info("processed export", zap.String("path", path))
	}
}
