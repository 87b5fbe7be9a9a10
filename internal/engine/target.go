package engine

import (
	"maps"
	"strings"
	"sync"

	"github.com/mindtris/uitheme/internal/theme"
)

// Target is the live variable scope the engine writes to. Names are CSS
// custom property names ("--primary").
type Target interface {
	// Variable returns the computed value: the inline value when set,
	// otherwise whatever the target's stylesheet provides for the current mode.
	Variable(name string) (string, error)
	SetVariable(name, value string) error
	RemoveVariable(name string) error

	// SetDark toggles the dark marker that selects the dark stylesheet.
	SetDark(dark bool) error
	Dark() bool
}

// MemoryTarget is an in-process Target. An optional stylesheet supplies
// computed values for variables without an inline value.
type MemoryTarget struct {
	mu     sync.RWMutex
	inline map[string]string
	sheet  theme.ModeStyles
	dark   bool
}

// NewMemoryTarget returns an empty target in light mode.
func NewMemoryTarget() *MemoryTarget {
	return &MemoryTarget{inline: make(map[string]string)}
}

// WithStylesheet sets the per-mode fallback values and returns t.
func (t *MemoryTarget) WithStylesheet(sheet theme.ModeStyles) *MemoryTarget {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sheet = sheet.Normalized()
	return t
}

func (t *MemoryTarget) Variable(name string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if v, ok := t.inline[theme.CSSName(name)]; ok {
		return v, nil
	}
	return t.sheet.For(theme.ModeFor(t.dark))[theme.NormalizeName(name)], nil
}

func (t *MemoryTarget) SetVariable(name, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inline[theme.CSSName(name)] = strings.TrimSpace(value)
	return nil
}

func (t *MemoryTarget) RemoveVariable(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inline, theme.CSSName(name))
	return nil
}

func (t *MemoryTarget) SetDark(dark bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dark = dark
	return nil
}

func (t *MemoryTarget) Dark() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// Inline returns a copy of the inline variables keyed without "--".
func (t *MemoryTarget) Inline() theme.VariableSet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(theme.VariableSet, len(t.inline))
	for k, v := range t.inline {
		out[theme.NormalizeName(k)] = v
	}
	return out
}

// Computed returns the stylesheet values for the current mode overlaid with
// inline values, keyed without "--".
func (t *MemoryTarget) Computed() theme.VariableSet {
	t.mu.RLock()
	sheet := maps.Clone(t.sheet.For(theme.ModeFor(t.dark)))
	t.mu.RUnlock()
	return theme.VariableSet(sheet).Merge(t.Inline())
}
