package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mindtris/uitheme/internal/config"
	"github.com/mindtris/uitheme/internal/engine"
	"github.com/mindtris/uitheme/internal/flags"
	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/manager"
	"github.com/mindtris/uitheme/internal/store"
	"github.com/mindtris/uitheme/internal/tracing"
)

// app is the wired engine stack for one command invocation.
type app struct {
	cfg     config.Config
	target  *engine.MemoryTarget
	engine  *engine.Engine
	manager *manager.Manager
	flags   *flags.Registry

	tracing    *tracing.Provider
	closeLog   func()
	storeLabel string
}

// openApp builds the stack from c and restores the persisted theme.
func openApp(ctx context.Context, c config.Config) (*app, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &app{cfg: c, closeLog: func() {}}
	if c.Log.Enabled {
		if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0o750); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		cleanup, err := log.Init(c.Log.Path)
		if err != nil {
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
		log.SetMinLevel(log.ParseLevel(c.Log.Level))
		a.closeLog = cleanup
	}

	tp, err := tracing.NewProvider(c.Tracing)
	if err != nil {
		a.closeLog()
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	a.tracing = tp
	a.flags = flags.New(c.Flags)

	kv, label := openKV(c.Storage, a.flags)
	a.storeLabel = label

	choice, err := manager.ParseModeChoice(c.Theme.Mode)
	if err != nil {
		_ = kv.Close()
		a.shutdown(ctx)
		return nil, err
	}

	a.target = engine.NewMemoryTarget()
	a.engine = engine.New(a.target,
		engine.WithTracer(tp.Tracer()),
		engine.WithFlags(a.flags),
	)
	a.manager = manager.New(manager.Config{
		Engine:           a.engine,
		Store:            store.NewPersistence(kv),
		ModePreference:   manager.ModePreferenceFunc(prefersDark),
		Mode:             choice,
		Selection:        c.Theme.Preset,
		ApplyDelay:       c.Debounce.Apply(),
		ColorChangeDelay: c.Debounce.ColorChange(),
		Tracer:           tp.Tracer(),
	})
	a.manager.Init(ctx)
	return a, nil
}

// openKV opens the configured backend. A SQLite store that cannot be
// opened degrades to memory so the theme still applies.
func openKV(s config.StorageConfig, reg *flags.Registry) (store.KV, string) {
	if s.Backend != config.BackendSQLite || !reg.Enabled(flags.FlagSQLiteStore) {
		return store.NewMemoryKV(), config.BackendMemory
	}
	kv, err := store.NewSQLiteKV(s.Path)
	if err != nil {
		log.WarnErr(log.CatStore, "SQLite store unavailable, using memory", err, "path", s.Path)
		fmt.Fprintf(os.Stderr, "warning: %v; changes will not persist\n", err)
		return store.NewMemoryKV(), config.BackendMemory
	}
	return kv, config.BackendSQLite + ":" + kv.Path()
}

// Close flushes pending work and releases the store, tracer and log.
func (a *app) Close(ctx context.Context) {
	a.manager.Flush()
	if err := a.manager.Close(); err != nil {
		log.WarnErr(log.CatStore, "Closing store failed", err)
	}
	a.shutdown(ctx)
}

func (a *app) shutdown(ctx context.Context) {
	if err := a.tracing.Shutdown(ctx); err != nil {
		log.WarnErr(log.CatEngine, "Tracer shutdown failed", err)
	}
	a.closeLog()
}

// withApp opens the stack for the duration of fn.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)
	return fn(a)
}
