package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/rootstem/internal/debug"
)

// DefaultWatchDebounce coalesces the burst of events an editor save produces
const DefaultWatchDebounce = 150 * time.Millisecond

// Watch reloads the config file at path whenever it changes and hands the
// result to onChange. The parent directory is watched rather than the file
// so that editors which save by rename are still seen. Watch blocks until
// ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	return watch(ctx, path, DefaultWatchDebounce, onChange)
}

func watch(ctx context.Context, path string, debounce time.Duration, onChange func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	debug.LogConfig("watching %s\n", path)

	target := filepath.Base(path)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debug.LogConfig("config event %v for %s\n", event.Op, event.Name)
			timer.Reset(debounce)

		case <-timer.C:
			cfg, err := Load(path)
			onChange(cfg, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debug.LogConfig("watch error: %v\n", err)
		}
	}
}
