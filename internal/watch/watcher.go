// Package watch notifies when the navigator's current directory changes on
// disk, so callers can trigger a full refresh. There is no diffing: a
// notification only means "re-read the directory".
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/sdnav/internal/debug"
)

// Watcher follows a single directory at a time, debouncing bursts of
// filesystem events into one notification.
type Watcher struct {
	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	current    string // directory currently watched, "" if none
	notify     chan string
	done       chan struct{}
	debounceMs int
}

// New creates a watcher. debounceMs <= 0 falls back to 200ms.
func New(debounceMs int) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 200
	}

	dw := &Watcher{
		watcher:    w,
		notify:     make(chan string, 10),
		done:       make(chan struct{}),
		debounceMs: debounceMs,
	}

	go dw.run()
	return dw, nil
}

// run coalesces filesystem events with debouncing.
func (dw *Watcher) run() {
	var lastEvent time.Time
	var pendingDir string
	pending := false
	ticker := time.NewTicker(time.Duration(dw.debounceMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-dw.done:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
				continue
			}

			// fsnotify reports the full path of the changed child.
			parentDir := filepath.Dir(event.Name)

			dw.mu.Lock()
			if parentDir == dw.current || event.Name == dw.current {
				lastEvent = time.Now()
				pendingDir = dw.current
				pending = true
				debug.Log(debug.WATCH, "event: %s on %s", event.Op, event.Name)
			}
			dw.mu.Unlock()

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "error: %v", err)

		case <-ticker.C:
			if !pending {
				continue
			}
			if time.Since(lastEvent) < time.Duration(dw.debounceMs)*time.Millisecond {
				continue
			}
			select {
			case dw.notify <- pendingDir:
				debug.Log(debug.WATCH, "change notification: %s", pendingDir)
			default:
				// Channel full, skip
			}
			pending = false
		}
	}
}

// Watch switches the watched directory to path, dropping the previous one.
func (dw *Watcher) Watch(path string) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.current == path {
		return nil
	}
	if dw.current != "" {
		// Path may already be gone; nothing to do about it.
		dw.watcher.Remove(dw.current)
		dw.current = ""
	}
	if err := dw.watcher.Add(path); err != nil {
		return err
	}
	dw.current = path
	debug.Log(debug.WATCH, "now watching: %s", path)
	return nil
}

// Notify returns the channel that receives directory change notifications.
func (dw *Watcher) Notify() <-chan string {
	return dw.notify
}

// Close shuts down the watcher.
func (dw *Watcher) Close() error {
	close(dw.done)
	return dw.watcher.Close()
}
