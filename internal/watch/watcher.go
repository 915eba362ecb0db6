// Package watch notifies about changes to a set of env files, debounced so
// editors that write in several bursts trigger a single notification.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

type Watcher struct {
	fsw      *fsnotify.Watcher
	watched  map[string]bool
	onChange chan struct{}
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
}

func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		watched:  make(map[string]bool),
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Add registers a file for watching. If the file does not exist yet, its
// parent directory is watched instead so a later create is still seen.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if w.watched[abs] {
		return nil
	}

	if _, err := os.Stat(abs); err == nil {
		if err := w.fsw.Add(abs); err != nil {
			return err
		}
	} else {
		if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}
	w.watched[abs] = true
	return nil
}

// Start begins delivering debounced change notifications on the returned
// channel.
func (w *Watcher) Start() <-chan struct{} {
	go w.run()
	return w.onChange
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if w.relevant(event.Name) {
				w.trigger()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// relevant reports whether the event path matches a watched file. Editors
// that replace files (rename + create) emit events for the new inode, so a
// base-name match against the watched set is also accepted.
func (w *Watcher) relevant(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[name] {
		return true
	}
	for path := range w.watched {
		if filepath.Base(path) == filepath.Base(name) {
			return true
		}
	}
	return false
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(DefaultDebounce, func() {
		select {
		case w.onChange <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
