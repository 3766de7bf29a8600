package models

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay is how long a watched file must stay quiet before it is
// reloaded. A single save can fire several events, the first of which may
// leave the file empty.
const reloadDelay = 150 * time.Millisecond

// Watch reloads the mesh at path whenever it is written or re-created and
// hands the result to onReload. Bursts of events are coalesced into one
// reload. The reloaded mesh keeps the ID of prev so callers can swap it in
// place. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, prev *Mesh, opts LoadOptions, onReload func(*Mesh, error)) error {
	logger := loggerOrDiscard(opts.Logger)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace files rather than write them, so watch the
	// directory and filter by name.
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}

	settle := time.NewTimer(reloadDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target || e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settle.Reset(reloadDelay)

		case <-settle.C:
			mesh, _, err := Load(target, opts)
			if err == nil && prev != nil {
				mesh.ID = prev.ID
			}
			onReload(mesh, err)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "path", target, "err", err)
		}
	}
}
