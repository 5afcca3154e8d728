package gen

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reruns regen whenever a schema source in dir changes. It
// blocks until ctx is cancelled or a failure occurs; regeneration
// failures are fatal, matching the run-wide no-recovery policy.
func Watch(ctx context.Context, dir string, regen func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return NewGenerationError("watch", "", "creating watcher", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return NewGenerationError("watch", "", "watching "+dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(ev.Name) != ".avsc" {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := regen(ctx); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return NewGenerationError("watch", "", "watcher failure", err)
		}
	}
}
