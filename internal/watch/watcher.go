// Package watch re-runs the audit when watched site sources change. Events
// are debounced per path so editor save bursts collapse into one run.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stats tracks watcher activity for diagnostics and tests.
type Stats struct {
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	RunsTriggered int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
	LastEventType string
}

// RunFunc handles one settled batch of changes. runID is a short
// correlation id carried through the logs of that run.
type RunFunc func(runID string, changed []string)

// Options tune the debounce behavior. Zero values fall back to defaults.
type Options struct {
	// Debounce is how long a path must stay quiet before it is processed.
	Debounce time.Duration
	// Sweep is how often settled paths are collected into a run.
	Sweep time.Duration
	// Extensions lists the file extensions that trigger runs.
	Extensions []string
}

const (
	defaultDebounce = 500 * time.Millisecond
	defaultSweep    = 100 * time.Millisecond
)

// Watcher watches site sources and invokes a callback once per settled
// batch. Runs never overlap; the callback executes on the watcher loop.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	paths       []string
	exts        map[string]bool
	onRun       RunFunc
	log         *zap.Logger
	debounceMap map[string]time.Time
	debounceDur time.Duration
	sweepDur    time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// New creates a watcher over the given paths. Directories are watched
// recursively.
func New(paths []string, onRun RunFunc, opts Options, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Sweep <= 0 {
		opts.Sweep = defaultSweep
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".html"}
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	return &Watcher{
		watcher:     fsw,
		paths:       paths,
		exts:        exts,
		onRun:       onRun,
		log:         log,
		debounceMap: make(map[string]time.Time),
		debounceDur: opts.Debounce,
		sweepDur:    opts.Sweep,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start registers the watch paths and launches the event loop. It is
// non-blocking and a no-op when already running.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, p := range w.paths {
		w.addPath(p)
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Error("error closing watcher", zap.Error(err))
	}
	w.log.Debug("watcher stopped")
}

// addPath registers a file or directory tree. Failures are logged and
// tolerated; a path may appear later.
func (w *Watcher) addPath(root string) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		if err := w.watcher.Add(root); err != nil {
			w.log.Warn("watch failed", zap.String("path", root), zap.Error(err))
		}
		return
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Warn("watch failed", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		w.log.Warn("watch walk failed", zap.String("path", root), zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	sweep := time.NewTicker(w.sweepDur)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-sweep.C:
			w.processSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// A freshly created subdirectory joins the watch set.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addPath(event.Name)
			return
		}
	}

	if !w.exts[strings.ToLower(filepath.Ext(event.Name))] {
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
		return
	}

	w.log.Debug("file event",
		zap.String("type", eventType),
		zap.String("path", event.Name))

	w.mu.Lock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = eventType

	switch eventType {
	case "create":
		w.stats.FilesCreated++
	case "modify":
		w.stats.FilesModified++
	case "delete", "rename":
		w.stats.FilesDeleted++
	}

	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// processSettled collects paths quiet for a full debounce window and hands
// them to the callback as one run.
func (w *Watcher) processSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	if len(settled) > 0 {
		w.stats.RunsTriggered++
	}
	w.mu.Unlock()

	if len(settled) == 0 {
		return
	}
	sort.Strings(settled)

	runID := uuid.NewString()[:8]
	w.log.Info("changes settled",
		zap.String("run_id", runID),
		zap.Int("files", len(settled)))

	if w.onRun != nil {
		w.onRun(runID, settled)
	}
}

// GetStats returns a copy of the current watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// ResetStats clears the watcher statistics.
func (w *Watcher) ResetStats() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats = Stats{}
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// WatchList returns the directories and files currently registered.
func (w *Watcher) WatchList() []string {
	return w.watcher.WatchList()
}
