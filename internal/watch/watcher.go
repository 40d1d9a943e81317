// Package watch reports changes to a single file.
//
// The directory holding the file is watched with fsnotify so that editors
// replacing the file through a rename are noticed as well. Changes are
// debounced. When fsnotify cannot be used the watcher polls the file's
// modification time instead.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"calrender/pkg/logging"
)

const (
	// DefaultDebounceInterval is the time to wait after the last change
	// before OnChange is called.
	DefaultDebounceInterval = 300 * time.Millisecond

	// DefaultPollInterval is the polling interval used without fsnotify.
	DefaultPollInterval = 2 * time.Second
)

// Config holds configuration for a FileWatcher.
type Config struct {
	// Path is the watched file.
	Path string

	// Debounce delays OnChange until no change was seen for this long.
	Debounce time.Duration

	// PollInterval is the fallback polling interval.
	PollInterval time.Duration

	// ForcePolling skips fsnotify.
	ForcePolling bool

	// OnChange is called after the file changed.
	OnChange func()
}

// FileWatcher monitors one file and calls OnChange when it is written,
// created or replaced.
type FileWatcher struct {
	mu sync.Mutex

	config Config
	dir    string
	name   string

	fsWatcher *fsnotify.Watcher
	stopCh    chan struct{}
	running   bool
	polling   bool

	lastModTime time.Time
	lastSize    int64
	lastExists  bool

	debounceTimer *time.Timer
	debounceMu    sync.Mutex
}

// NewFileWatcher creates a watcher for config.Path.
func NewFileWatcher(config Config) (*FileWatcher, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("watch: no path given")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounceInterval
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}

	abs, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, fmt.Errorf("watch: failed to resolve %s: %w", config.Path, err)
	}

	return &FileWatcher{
		config: config,
		dir:    filepath.Dir(abs),
		name:   filepath.Base(abs),
	}, nil
}

// Start begins watching. Starting a running watcher is a no-op.
func (w *FileWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.stopCh = make(chan struct{})
	w.running = true

	if w.config.ForcePolling {
		w.startPolling()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("Watch", "fsnotify not available, falling back to polling: %v", err)
		w.startPolling()
		return nil
	}

	if err := watcher.Add(w.dir); err != nil {
		logging.Warn("Watch", "Failed to watch directory %s, falling back to polling: %v", w.dir, err)
		watcher.Close()
		w.startPolling()
		return nil
	}
	w.fsWatcher = watcher

	go w.processEvents(watcher.Events, watcher.Errors, w.stopCh)

	logging.Info("Watch", "Watching %s for changes", filepath.Join(w.dir, w.name))
	return nil
}

// Run starts the watcher and blocks until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

// Must be called with w.mu held.
func (w *FileWatcher) startPolling() {
	w.polling = true
	w.snapshot()
	go w.pollForChanges(w.stopCh)
	logging.Info("Watch", "Polling %s every %s", filepath.Join(w.dir, w.name), w.config.PollInterval)
}

func (w *FileWatcher) processEvents(eventsCh <-chan fsnotify.Event, errorsCh <-chan error, stopCh <-chan struct{}) {
	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			logging.Error("Watch", err, "fsnotify error")
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.name {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	logging.Debug("Watch", "File changed: %s (%s)", event.Name, event.Op)
	w.triggerDebounced()
}

func (w *FileWatcher) triggerDebounced() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.config.Debounce, func() {
		w.mu.Lock()
		running := w.running
		callback := w.config.OnChange
		w.mu.Unlock()

		if running && callback != nil {
			callback()
		}
	})
}

func (w *FileWatcher) pollForChanges(stopCh <-chan struct{}) {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return

		case <-ticker.C:
			if w.checkForChanges() {
				logging.Debug("Watch", "Change of %s detected via polling", w.name)
				w.triggerDebounced()
			}
		}
	}
}

// snapshot records the current state of the file.
func (w *FileWatcher) snapshot() {
	info, err := os.Stat(filepath.Join(w.dir, w.name))
	if err != nil {
		w.lastExists = false
		return
	}
	w.lastExists = true
	w.lastModTime = info.ModTime()
	w.lastSize = info.Size()
}

// checkForChanges reports whether the file appeared, or changed its
// modification time or size since the last check. A removed file is not a
// change.
func (w *FileWatcher) checkForChanges() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	existed, modTime, size := w.lastExists, w.lastModTime, w.lastSize
	w.snapshot()
	if !w.lastExists {
		return false
	}
	return !existed || !w.lastModTime.Equal(modTime) || w.lastSize != size
}

// Stop stops the watcher. Pending notifications are dropped.
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	w.polling = false
	close(w.stopCh)

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMu.Unlock()

	if w.fsWatcher != nil {
		if err := w.fsWatcher.Close(); err != nil {
			logging.Warn("Watch", "Error closing fsnotify watcher: %v", err)
		}
		w.fsWatcher = nil
	}

	logging.Debug("Watch", "Stopped watching %s", w.name)
	return nil
}

// IsRunning returns whether the watcher is currently active.
func (w *FileWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// IsPolling returns whether the watcher fell back to polling.
func (w *FileWatcher) IsPolling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}
