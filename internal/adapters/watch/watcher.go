// Package watch implements the file watcher port on fsnotify.
package watch

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string
	errs   chan error

	mu      sync.Mutex
	watched []string
	closed  bool
}

// New creates a started Watcher with an empty watch set.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}

	w := &Watcher{
		fs:     fsw,
		events: make(chan string, 16),
		errs:   make(chan error, 1),
	}
	go w.forward()
	return w, nil
}

// Watch replaces the watched file set.
func (w *Watcher) Watch(paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return zerr.New("watcher is closed")
	}

	for _, old := range w.watched {
		// Removal of an already-gone path is not a failure.
		_ = w.fs.Remove(old)
	}
	w.watched = w.watched[:0]

	for _, path := range paths {
		if err := w.fs.Add(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch path"), "path", path)
		}
		w.watched = append(w.watched, path)
	}
	return nil
}

// Events yields the paths of files that changed on disk.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Errors yields watcher failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	return w.fs.Close()
}

func (w *Watcher) forward() {
	defer close(w.events)
	defer close(w.errs)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				w.events <- ev.Name
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.errs <- err
		}
	}
}
