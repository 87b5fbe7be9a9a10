// Package flags holds feature toggles for the theme engine. Flags are
// read-only after initialization; known flags fall back to their defaults
// and unknown flags are always off.
package flags

import (
	"maps"

	"github.com/mindtris/uitheme/internal/log"
)

const (
	// FlagResolveCache memoizes resolved preset variable sets per mode and knobs.
	FlagResolveCache = "resolve-cache"

	// FlagShadowRecompute rewrites composite shadow tokens after every apply.
	FlagShadowRecompute = "shadow-recompute"

	// FlagSQLiteStore persists theme state to SQLite instead of memory.
	FlagSQLiteStore = "sqlite-store"
)

// Defaults are the values used for known flags missing from configuration.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagResolveCache:    true,
		FlagShadowRecompute: true,
		FlagSQLiteStore:     true,
	}
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map layered over Defaults.
func New(flags map[string]bool) *Registry {
	merged := Defaults()
	maps.Copy(merged, flags)
	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Enabled returns the flag value; false for unknown flags and nil registries.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
