// Package watch re-runs the analysis pipeline whenever the input workbook
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler processes one changed workbook path.
type Handler func(path string) error

// Watcher monitors one workbook file and triggers re-analysis, debounced so
// editors that write in multiple bursts trigger a single run.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Handler  Handler

	// OnError is invoked when a triggered run fails. The watcher keeps
	// running; a bad intermediate save must not end the session.
	OnError func(error)

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for one workbook file.
func New(path string, debounce time.Duration, handler Handler) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{Path: path, Debounce: debounce, Handler: handler}
}

// Run watches until the context is cancelled. The parent directory is
// watched rather than the file itself: save-and-rename editors would
// otherwise drop the watch after the first write.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.Path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}

	target := filepath.Clean(w.Path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() {
		if err := w.Handler(w.Path); err != nil && w.OnError != nil {
			w.OnError(err)
		}
	})
}
