package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindtris/uitheme/internal/validation"
	"github.com/mindtris/uitheme/internal/watcher"
)

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.css")
	require.NoError(t, os.WriteFile(path, []byte(":root {}"), 0o644))

	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	// Rapid writes should coalesce into single notification
	for i := range 10 {
		err := os.WriteFile(path, []byte(fmt.Sprintf(":root { --radius: %dpx; }", i)), 0o644)
		require.NoError(t, err, "failed to write file")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.css")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(":root {}"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o644))

	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o644))

	select {
	case <-onChange:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_DetectsReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: 30 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	// Editors commonly write a sibling and rename it over the original.
	tmp := filepath.Join(dir, ".theme.json.swp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"version":"1.0"}`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification after rename")
	}
}

func TestWatcher_Stop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.css")
	require.NoError(t, os.WriteFile(path, []byte(":root {}"), 0o644))

	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	require.NoError(t, w.Stop())
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "theme.css")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.ErrorContains(t, err, "watching directory")
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/theme.css")
	assert.Equal(t, "/tmp/theme.css", cfg.Path)
	assert.Equal(t, watcher.DefaultDebounce, cfg.DebounceDur)
}

type recordingImporter struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingImporter) Import(_ context.Context, text string) validation.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	if strings.Contains(text, "broken") {
		return validation.Invalid("Theme must have a :root block")
	}
	return validation.Valid()
}

func (r *recordingImporter) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func TestFollow_ImportsInitialAndChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.css")
	require.NoError(t, os.WriteFile(path, []byte(":root { --primary: #111111; }"), 0o644))

	imp := &recordingImporter{}
	results := make(chan validation.Result, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Follow(ctx, watcher.Config{Path: path, DebounceDur: 30 * time.Millisecond}, imp, func(r validation.Result) {
			results <- r
		})
	}()

	first := <-results
	require.True(t, first.IsValid)

	require.NoError(t, os.WriteFile(path, []byte("broken"), 0o644))
	select {
	case r := <-results:
		require.False(t, r.IsValid)
	case <-time.After(time.Second):
		t.Fatal("expected re-import after change")
	}

	cancel()
	require.NoError(t, <-done)

	texts := imp.seen()
	require.Equal(t, ":root { --primary: #111111; }", texts[0])
	require.Equal(t, "broken", texts[len(texts)-1])
}

func TestFollow_MissingFileIsReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.css")

	imp := &recordingImporter{}
	results := make(chan validation.Result, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = watcher.Follow(ctx, watcher.Config{Path: path, DebounceDur: 30 * time.Millisecond}, imp, func(r validation.Result) {
			results <- r
		})
	}()

	first := <-results
	require.False(t, first.IsValid)
	require.Contains(t, first.Error, "Failed to read theme file")
	require.Empty(t, imp.seen())

	// Creating the file later triggers an import.
	require.NoError(t, os.WriteFile(path, []byte(":root {}"), 0o644))
	select {
	case r := <-results:
		require.True(t, r.IsValid)
	case <-time.After(time.Second):
		t.Fatal("expected import after create")
	}
}
