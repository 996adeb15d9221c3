package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"example.com/editerako/pkg/logs"
)

// Watch reloads the configuration at path whenever the file changes and
// hands the result to fn. It watches the parent directory, since editors
// commonly save by replacing the file. Watch blocks until ctx is done.
//
// fn runs on the watcher goroutine; hosts with a single event loop should
// post the result into that loop rather than applying it directly.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config watch %s: %w", filepath.Dir(abs), err)
	}
	lg := logs.FromContext(ctx)
	lg.Debug("watching config", "path", abs)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := Load(abs)
			if err != nil {
				lg.Warn("config reload failed", "path", abs, "error", err)
			} else {
				lg.Event("config_reloaded", map[string]any{"path": abs})
			}
			fn(cfg, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			lg.Warn("config watcher error", "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
