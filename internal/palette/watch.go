package palette

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// reloadDebounce coalesces the burst of events editors emit on save.
const reloadDebounce = 250 * time.Millisecond

// WatchPolicies reloads the user categories in reg whenever the file at
// path is written, created or renamed into place. It watches the parent
// directory so the file may be created after the watch starts. WatchPolicies
// blocks until ctx is cancelled. onReload, when non-nil, is called after each
// reload attempt with the number of categories loaded or the load error.
func WatchPolicies(ctx context.Context, path string, reg *Registry, onReload func(n int, err error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	tuilog.Log.Info("Watching categories file", "path", path)

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			n, err := reg.LoadFile(path)
			if err != nil {
				tuilog.Log.Warn("Failed to reload categories", "path", path, "error", err)
			} else {
				tuilog.Log.Info("Reloaded categories", "path", path, "count", n)
			}
			if onReload != nil {
				onReload(n, err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			tuilog.Log.Warn("Watcher error", "error", err)
		}
	}
}
