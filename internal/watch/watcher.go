// Package watch notices when another process changes the recdesk data directory.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/user/recdesk/internal/storage"
)

const (
	// DefaultDebounceInterval is the default interval to wait after the last change before notifying.
	DefaultDebounceInterval = 100 * time.Millisecond
)

// ChangeFunc is called once a burst of changes has settled.
type ChangeFunc func() error

// LogFunc is called to log messages.
type LogFunc func(format string, args ...interface{})

// Watcher monitors a data directory and calls a ChangeFunc when the session
// database, journal or config file changes.
type Watcher struct {
	dataDir          string
	changeFn         ChangeFunc
	logFn            LogFunc
	debounceInterval time.Duration

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	pending *time.Timer
	started bool
	closed  bool
}

// NewWatcher creates a new watcher for dataDir.
// logFn may be nil for no logging.
func NewWatcher(dataDir string, changeFn ChangeFunc, logFn LogFunc) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logFn == nil {
		logFn = func(format string, args ...interface{}) {} // no-op
	}

	return &Watcher{
		dataDir:          dataDir,
		changeFn:         changeFn,
		logFn:            logFn,
		debounceInterval: DefaultDebounceInterval,
		watcher:          fsWatcher,
		stopChan:         make(chan struct{}),
		doneChan:         make(chan struct{}),
	}, nil
}

// SetDebounceInterval overrides the debounce interval. Call before Start.
func (w *Watcher) SetDebounceInterval(d time.Duration) {
	w.debounceInterval = d
}

// Start begins watching. The data directory is created if missing.
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.dataDir, 0755); err != nil {
		return err
	}
	if err := w.watcher.Add(w.dataDir); err != nil {
		return err
	}
	w.logFn("Watching data directory: %s", w.dataDir)

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()

	go w.processEvents()
	return nil
}

// Close stops the watcher and waits for the event loop to exit.
// Safe to call without Start and more than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()

		w.mu.Lock()
		w.closed = true
		started := w.started
		if w.pending != nil {
			w.pending.Stop()
			w.pending = nil
		}
		w.mu.Unlock()

		if started {
			<-w.doneChan
		}
	})
}

// processEvents handles filesystem events.
func (w *Watcher) processEvents() {
	defer close(w.doneChan)

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
			w.logFn("Watch error: %v", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	filename := filepath.Base(event.Name)
	if !IsWatchedFile(filename) {
		return
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.logFn("File change detected: %s", filename)
	w.scheduleChange()
}

// IsWatchedFile returns true for the session database (and its WAL/SHM
// companions), the journal and the config file.
func IsWatchedFile(filename string) bool {
	if strings.HasPrefix(filename, storage.SessionFile) {
		return true
	}
	return filename == storage.JournalFile || filename == storage.ConfigFile
}

// scheduleChange (re)arms the debounce timer.
func (w *Watcher) scheduleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounceInterval, w.fire)
}

// fire calls the change function.
func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.pending = nil
	w.mu.Unlock()

	if err := w.changeFn(); err != nil {
		w.logFn("Error handling change in %s: %v", w.dataDir, err)
	}
}
