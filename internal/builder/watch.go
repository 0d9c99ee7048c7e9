package builder

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const rebuildDebounce = 500 * time.Millisecond

// Watch rebuilds on changes under the blog root until ctx is cancelled.
// Events are debounced so a burst of writes triggers a single rebuild.
// Newly created year directories are picked up automatically.
func (b *Builder) Watch(ctx context.Context, rebuild func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(b.root); err != nil {
		return err
	}
	entries, err := filepath.Glob(filepath.Join(b.root, "[0-9][0-9][0-9][0-9]"))
	if err == nil {
		for _, dir := range entries {
			if err := w.Add(dir); err != nil {
				b.log.Warnf("watch %s: %v", dir, err)
			}
		}
	}

	// Timer starts drained; each event re-arms it.
	timer := time.NewTimer(rebuildDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			// The builder's own outputs must not retrigger it.
			if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".xml") {
				continue
			}
			if ev.Has(fsnotify.Create) && yearDirRe.MatchString(name) {
				if err := w.Add(ev.Name); err == nil {
					b.log.Infof("watching new year directory %s", name)
				}
			}
			timer.Reset(rebuildDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			b.log.Errorf("watch error: %v", err)
		case <-timer.C:
			rebuild()
		}
	}
}
