package services

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/logger"
)

const debounceInterval = 250 * time.Millisecond

// Watcher calls onChange when a file, or its SQLite -wal/-journal
// companions, is written. Bursts of writes are coalesced.
type Watcher struct {
	mu            sync.Mutex
	watcher       *fsnotify.Watcher
	filePath      string
	onChange      func()
	debounceTimer *time.Timer
	stopChan      chan struct{}
	closeOnce     sync.Once
}

// NewWatcher starts watching the directory containing filePath.
func NewWatcher(filePath string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory (to catch file creation and WAL files)
	dir := filepath.Dir(filePath)
	if err := fw.Add(dir); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", logger.KeyError, closeErr)
		}
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		filePath: filePath,
		onChange: onChange,
		stopChan: make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// matches reports whether name is the watched file or one of its companions.
func (w *Watcher) matches(name string) bool {
	base := filepath.Base(w.filePath)
	got := filepath.Base(name)
	return got == base || strings.HasPrefix(got, base+"-")
}

// watchLoop handles file system events with debouncing.
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.matches(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", logger.KeyPath, w.filePath, logger.KeyError, err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(debounceInterval, w.onChange)
}

// Close stops the file watcher and cleans up resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopChan)

		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()

		err = w.watcher.Close()
	})
	return err
}
