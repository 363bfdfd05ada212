package data

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/giygas/medreminder/logging"
)

// reloadDebounce absorbs the burst of events editors produce on save
const reloadDebounce = 250 * time.Millisecond

// Watch reloads the dataset whenever its file changes, which is how stock
// gets restocked without a restart. It returns when ctx is done. With no
// dataset file there is nothing to watch and it returns immediately.
func (l *Loader) Watch(ctx context.Context) error {
	if l.path == "" {
		return nil
	}

	dir := filepath.Dir(l.path)
	target := filepath.Clean(l.path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create dataset watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory, editors often replace the file instead of writing it
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDebounce, func() {
			if err := l.Load(); err != nil {
				logging.Error("Dataset reload failed, keeping previous dataset", "path", l.path, "error", err)
			}
		})
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	logging.Info("Watching dataset file for changes", "path", l.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == target && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Dataset watcher error", "error", err)
		}
	}
}
