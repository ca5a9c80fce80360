package watcher

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a directory tree and invokes a callback once per burst
// of changes. Create/remove/rename/write events are coalesced through a
// Debouncer; chmod-only events are ignored.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce *Debouncer
	done     chan struct{}
}

// Watch starts watching root recursively. onChange runs on the watcher's
// goroutine after each debounced burst; it must hand off to the embedding
// event loop itself. Close stops the watcher.
func Watch(root string, window time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: NewDebouncer(window),
		done:     make(chan struct{}),
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.loop(onChange)
	return w, nil
}

// Close stops event delivery and cancels any pending callback.
func (w *Watcher) Close() error {
	close(w.done)
	w.debounce.Cancel()
	return w.fsw.Close()
}

func (w *Watcher) loop(onChange func()) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			// New directories must be added to keep the watch recursive.
			if ev.Op.Has(fsnotify.Create) {
				w.addRecursive(ev.Name)
			}
			w.debounce.Trigger(onChange)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// addRecursive registers path and every non-hidden subdirectory. Passing a
// file is fine; only directories are registered.
func (w *Watcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // vanished mid-walk
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != path && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
			return filepath.SkipDir
		}
		w.fsw.Add(p)
		return nil
	})
}
