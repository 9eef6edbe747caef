package fonts

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// Watch rescans the registry whenever the font directory changes, until
// the context is cancelled. The optional onChange callback fires after
// each successful rescan.
func (r *Registry) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
					continue
				}
				r.logger.Debug("font directory changed", "event", event.Op.String(), "path", event.Name)
				if err := r.Scan(); err != nil {
					r.logger.Warn("font rescan failed", "error", err)
					continue
				}
				if onChange != nil {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("font watcher error", "error", err)
			}
		}
	}()

	r.logger.Debug("watching font directory", "dir", r.dir)
	return nil
}
