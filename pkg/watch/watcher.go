// Package watch re-runs the diagnostic report when font configuration
// files change on disk.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fontdiag/fontdiag/pkg/util"
)

// DefaultDebounce groups rapid events for the same path so an editor
// save (write + chmod + rename dance) triggers one re-run, not five.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a set of files and directories and invokes a
// callback when their contents change. A snapshot cache suppresses
// events that did not change file bytes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	cache    *util.SnapshotCache
	logger   *slog.Logger
	debounce time.Duration
	onChange func(path string)

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// New creates a Watcher invoking onChange with the changed path.
func New(onChange func(path string), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		watcher:        fsw,
		cache:          util.NewSnapshotCache(),
		logger:         logger,
		debounce:       DefaultDebounce,
		onChange:       onChange,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching the given paths. Directories are watched
// non-recursively except for one level of subdirectories; missing
// paths are skipped with a debug log (a user without ~/.Xresources is
// normal). Safe to call once.
func (w *Watcher) Start(paths []string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	watched := 0
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			w.logger.Debug("skipping missing watch path", "path", path)
			continue
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch path", "path", path, "error", err)
			continue
		}
		watched++
		if !info.IsDir() {
			// Seed the snapshot so the first event compares against
			// current contents.
			if _, err := w.cache.Changed(path); err != nil {
				w.logger.Debug("snapshot seed failed", "path", path, "error", err)
			}
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				sub := filepath.Join(path, e.Name())
				if err := w.watcher.Add(sub); err != nil {
					w.logger.Debug("failed to watch subdirectory", "path", sub, "error", err)
				}
			}
		}
	}
	if watched == 0 {
		return fmt.Errorf("none of the watch paths exist")
	}

	w.logger.Info("watching for configuration changes", "paths", watched)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
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
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.logger.Debug("file event", "op", event.Op.String(), "file", event.Name)
	w.debounceChange(event.Name)
}

// debounceChange schedules the change callback after the debounce
// window; further events for the same path reset the timer.
func (w *Watcher) debounceChange(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounceTimers[path]; ok {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(w.debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		changed, err := w.cache.Changed(path)
		if err != nil {
			w.logger.Debug("snapshot compare failed", "path", path, "error", err)
			changed = true
		}
		if !changed {
			w.logger.Debug("ignoring no-op event", "path", path)
			return
		}
		w.onChange(path)
	})
}

// DefaultPaths returns the font configuration locations worth
// watching for the given XDG config directory.
func DefaultPaths(home, configDir string) []string {
	return []string{
		filepath.Join(home, ".Xresources"),
		filepath.Join(configDir, "gtk-3.0", "settings.ini"),
		filepath.Join(configDir, "fontconfig"),
		"/etc/fonts",
	}
}
