// Package watcher follows a theme file (CSS or artifact JSON) and re-imports
// it when it changes.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/validation"
)

// DefaultDebounce coalesces editor save bursts.
const DefaultDebounce = 250 * time.Millisecond

// Watcher monitors one theme file for changes and sends notifications.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: DefaultDebounce,
	}
}

// New creates a new theme file watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	debounce := cfg.DebounceDur
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(cfg.Path),
		debounce:  debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the file's directory. Editors often replace the
// file rather than write it in place, so the directory is watched and
// events are filtered by name.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching theme file", "path", w.path, "debounce", w.debounce)

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				// Drop if a notification is already queued.
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.WarnErr(log.CatWatcher, "Watcher error", err, "path", w.path)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a re-import.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

// Importer accepts theme text; *manager.Manager satisfies it.
type Importer interface {
	Import(ctx context.Context, text string) validation.Result
}

// Follow imports path once, then again after every change, until ctx is
// done. Read failures and rejected imports are logged and reported to
// onResult (when non-nil); they do not stop the loop.
func Follow(ctx context.Context, cfg Config, imp Importer, onResult func(validation.Result)) error {
	w, err := New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	reload := func() {
		res := importFile(ctx, w.path, imp)
		if onResult != nil {
			onResult(res)
		}
	}
	reload()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			reload()
		}
	}
}

func importFile(ctx context.Context, path string, imp Importer) validation.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WarnErr(log.CatWatcher, "Failed to read theme file", err, "path", path)
		return validation.Invalid("Failed to read theme file: %v", err)
	}
	res := imp.Import(ctx, string(data))
	if res.IsValid {
		log.Info(log.CatWatcher, "Re-imported theme file", "path", path, "bytes", len(data))
	} else {
		log.Warn(log.CatWatcher, "Theme file rejected", "path", path, "reason", res.Error)
	}
	return res
}
