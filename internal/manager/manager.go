// Package manager holds the theme selection state and is the mutation
// surface for callers: theme switches, per-variable edits, imports,
// save-current-as-artifact and reset. All engine work is serialized under
// one lock; switches and edits are debounced on independent timers.
package manager

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mindtris/uitheme/internal/debounce"
	"github.com/mindtris/uitheme/internal/engine"
	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/pubsub"
	"github.com/mindtris/uitheme/internal/store"
	"github.com/mindtris/uitheme/internal/theme"
	"github.com/mindtris/uitheme/internal/tracing"
	"github.com/mindtris/uitheme/internal/validation"
)

// Default debounce delays.
const (
	ApplyDelay       = 100 * time.Millisecond
	ColorChangeDelay = 150 * time.Millisecond
)

// DefaultArtifactName names exported artifacts when no name is given.
const DefaultArtifactName = "Custom Theme"

var (
	// ErrUnknownTheme is returned for selections naming no preset.
	ErrUnknownTheme = errors.New("unknown theme")
)

// Config configures a Manager. Engine is required.
type Config struct {
	Engine         *engine.Engine
	Store          *store.Persistence // defaults to an in-memory store
	ModePreference ModePreference
	Mode           ModeChoice // defaults to ModeSystem

	// Selection is restored by Init when storage holds none.
	Selection string

	ApplyDelay       time.Duration
	ColorChangeDelay time.Duration
	Clock            debounce.Clock
	Tracer           trace.Tracer
}

// State is a snapshot of the manager's selection state.
type State struct {
	Selection string // preset key or "custom:<slug>"; "imported" for an unsaved import
	Preset    string
	Choice    ModeChoice
	Mode      theme.Mode
	Custom    *theme.Artifact
	Imported  *theme.ModeStyles

	LastApplied  string
	LastApplyID  string
	LastFallback bool

	// BrandColorsValues holds per-variable edits keyed by CSS name ("--primary").
	BrandColorsValues theme.VariableSet
}

// Snapshot is the live variable state captured for both modes.
type Snapshot struct {
	Styles theme.ModeStyles  `json:"styles"`
	Knobs  theme.VariableSet `json:"knobs,omitempty"`
}

type lastApply struct {
	applyID  string
	request  string
	fallback bool
}

// Manager orchestrates theme selection and application.
type Manager struct {
	engine  *engine.Engine
	store   *store.Persistence
	pref    ModePreference
	tracer  trace.Tracer
	initial string
	broker  *pubsub.Broker[Event]

	applyDebounce *debounce.Debouncer
	colorDebounce *debounce.Debouncer

	pendingMu sync.Mutex
	pending   map[string]string // CSS name → value; "" removes

	mu       sync.Mutex
	preset   string
	choice   ModeChoice
	custom   *theme.Artifact
	imported *theme.ModeStyles
	brand    theme.VariableSet
	last     lastApply
}

// New creates a manager. Nothing is applied until Init or the first
// mutation.
func New(cfg Config) *Manager {
	var opts []debounce.Option
	if cfg.Clock != nil {
		opts = append(opts, debounce.WithClock(cfg.Clock))
	}
	st := cfg.Store
	if st == nil {
		st = store.NewPersistence(store.NewMemoryKV())
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	return &Manager{
		engine:        cfg.Engine,
		store:         st,
		pref:          cfg.ModePreference,
		initial:       cfg.Selection,
		tracer:        tracer,
		broker:        pubsub.NewBroker[Event](),
		applyDebounce: debounce.New(cmp.Or(cfg.ApplyDelay, ApplyDelay), opts...),
		colorDebounce: debounce.New(cmp.Or(cfg.ColorChangeDelay, ColorChangeDelay), opts...),
		pending:       make(map[string]string),
		preset:        theme.DefaultPreset,
		choice:        cmp.Or(cfg.Mode, ModeSystem),
		brand:         make(theme.VariableSet),
	}
}

// Init restores the persisted selection (or the configured one when none
// is stored) and applies it. A custom selection whose artifact is missing or
// invalid falls back to the default preset.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sel, ok := m.store.Selection(ctx); ok {
		m.restoreLocked(ctx, sel)
	} else if m.initial != "" {
		m.restoreLocked(ctx, theme.ParseSelection(m.initial))
	}
	m.applyLocked(ctx, m.requestLocked(), m.modeLocked())
}

func (m *Manager) restoreLocked(ctx context.Context, sel theme.Selection) {
	if sel.IsCustom() {
		a, ok := m.store.Artifact(ctx)
		if !ok || a.Slug() != sel.Custom {
			log.Warn(log.CatManager, "Stored custom theme unavailable, using default", "selection", sel.String())
			return
		}
		m.custom = a
		log.Info(log.CatManager, "Restored custom theme", "name", a.Name)
		return
	}
	if _, ok := theme.LookupPreset(sel.Preset); !ok {
		log.Warn(log.CatManager, "Stored preset unknown, using default", "selection", sel.String())
		return
	}
	m.preset = sel.Preset
	log.Info(log.CatManager, "Restored preset", "preset", sel.Preset)
}

// ApplyTheme selects key (a preset or "custom:<slug>") in the given mode.
// The switch is debounced: only the last call within the window runs.
func (m *Manager) ApplyTheme(key string, dark bool) error {
	sel := theme.ParseSelection(key)
	if !sel.IsCustom() {
		if _, ok := theme.LookupPreset(sel.Preset); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTheme, key)
		}
	}
	choice := ChoiceFor(dark)
	m.applyDebounce.Schedule(func() {
		m.selectTheme(context.Background(), sel, choice)
	})
	return nil
}

func (m *Manager) selectTheme(ctx context.Context, sel theme.Selection, choice ModeChoice) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sel.IsCustom() {
		a := m.custom
		if a == nil || a.Slug() != sel.Custom {
			stored, ok := m.store.Artifact(ctx)
			if !ok || stored.Slug() != sel.Custom {
				log.Warn(log.CatManager, "Custom theme not found", "selection", sel.String())
				return
			}
			a = stored
		}
		m.custom = a
	} else {
		m.preset = sel.Preset
		m.custom = nil
	}
	m.imported = nil
	m.choice = choice
	m.dropColorEditsLocked()

	m.store.SaveSelection(ctx, sel)
	m.applyLocked(ctx, m.requestLocked(), m.modeLocked())
}

// SetMode changes the mode choice and re-applies the current theme. A
// pending theme switch runs first.
func (m *Manager) SetMode(ctx context.Context, choice ModeChoice) {
	m.applyDebounce.Flush()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.choice = choice
	m.applyLocked(ctx, m.requestLocked(), m.modeLocked())
	m.rewriteEditsLocked()
}

// HandleColorChange records a per-variable edit. Invalid values are
// rejected immediately; valid edits are committed after the debounce
// window. An empty value removes the variable.
func (m *Manager) HandleColorChange(name, value string) validation.Result {
	value = strings.TrimSpace(value)
	if theme.NormalizeName(name) == "" {
		return validation.Invalid("Variable name cannot be empty")
	}
	if value != "" {
		if res := validation.ValidateVariable(name, value); !res.IsValid {
			return res
		}
	}

	m.pendingMu.Lock()
	m.pending[theme.CSSName(name)] = value
	m.pendingMu.Unlock()

	m.colorDebounce.Schedule(func() {
		m.commitEdits(context.Background())
	})
	return validation.Valid()
}

func (m *Manager) commitEdits(ctx context.Context) {
	m.pendingMu.Lock()
	edits := m.pending
	m.pending = make(map[string]string)
	m.pendingMu.Unlock()
	if len(edits) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var reapply, shadows bool
	for _, name := range slices.Sorted(maps.Keys(edits)) {
		if err := m.writeEditLocked(name, edits[name]); err != nil {
			log.WarnErr(log.CatManager, "Variable edit failed", err, "variable", name)
			continue
		}
		norm := theme.NormalizeName(name)
		if theme.IsKnob(norm) {
			m.setCustomKnobLocked(norm, edits[name])
		}
		switch {
		case norm == theme.VarHueShift, norm == theme.VarSaturationMult, norm == theme.VarLightnessMult:
			reapply = true
		case theme.IsKnob(norm) && strings.HasPrefix(norm, "shadow-"):
			shadows = true
		}
	}

	switch {
	case reapply:
		m.applyLocked(ctx, m.requestLocked(), m.modeLocked())
		m.rewriteEditsLocked()
	case shadows:
		if err := m.engine.RefreshShadows(); err != nil {
			log.WarnErr(log.CatManager, "Shadow refresh failed", err)
		}
		m.rewriteEditsLocked()
	}
	log.Debug(log.CatManager, "Committed variable edits", "count", len(edits), "reapplied", reapply)
}

func (m *Manager) writeEditLocked(name, value string) error {
	if value == "" {
		delete(m.brand, name)
		return m.engine.RemoveVariable(name)
	}
	if err := m.engine.SetVariable(name, value); err != nil {
		return err
	}
	m.brand[name] = value
	return nil
}

// setCustomKnobLocked records a knob edit in the active custom artifact,
// whose own knobs would otherwise win on the next apply.
func (m *Manager) setCustomKnobLocked(name, value string) {
	if m.custom == nil {
		return
	}
	a := m.custom.Clone()
	other := a.Overrides.Other.Normalized()
	if other == nil {
		other = make(theme.VariableSet)
	}
	if value == "" {
		delete(other, name)
	} else {
		other[name] = value
	}
	a.Overrides.Other = other
	m.custom = a
}

// rewriteEditsLocked puts recorded edits back after an apply reset them.
func (m *Manager) rewriteEditsLocked() {
	for _, name := range m.brand.Keys() {
		if err := m.engine.SetVariable(name, m.brand[name]); err != nil {
			log.WarnErr(log.CatManager, "Failed to restore variable edit", err, "variable", name)
		}
	}
}

// dropColorEditsLocked forgets per-mode edits on a theme switch. Knob edits
// are kept; the engine carries them across the switch.
func (m *Manager) dropColorEditsLocked() {
	for name := range m.brand {
		if !theme.IsKnob(name) {
			delete(m.brand, name)
		}
	}
}

// Import validates text (artifact JSON or CSS) and makes it the active
// theme. Artifacts are persisted as the custom theme; CSS imports stay
// active until the next switch unless saved.
func (m *Manager) Import(ctx context.Context, text string) validation.Result {
	ctx, span := m.tracer.Start(ctx, tracing.SpanImport)
	defer span.End()

	imp, res := validation.ParseImport(text)
	if !res.IsValid {
		span.SetStatus(codes.Error, res.Error)
		span.SetAttributes(attribute.String(tracing.AttrErrorMessage, res.Error))
		log.Warn(log.CatManager, "Rejected theme import", "reason", res.Error)
		return res
	}
	span.SetAttributes(attribute.String(tracing.AttrRequestKind, imp.Kind.String()))

	// An explicit import supersedes a pending switch.
	m.applyDebounce.Cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	req := engine.RequestFor(imp)
	switch imp.Kind {
	case theme.ImportArtifact:
		m.custom = imp.Artifact.Clone()
		m.imported = nil
		m.store.SaveArtifact(ctx, m.custom)
		m.store.SaveSelection(ctx, theme.Selection{Custom: m.custom.Slug()})
		m.broker.Publish(pubsub.SavedEvent, Event{Request: req.String(), Mode: m.modeLocked()})
	default:
		styles := imp.Styles.Clone()
		m.imported = &styles
		m.custom = nil
	}
	m.dropColorEditsLocked()
	m.applyLocked(ctx, m.requestLocked(), m.modeLocked())
	m.rewriteEditsLocked()
	return res
}

// Snapshot flushes pending work and captures the live variables of both
// modes by applying the current theme in each, then restoring the current
// mode.
func (m *Manager) Snapshot(ctx context.Context) (Snapshot, error) {
	m.Flush()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(ctx)
}

func (m *Manager) snapshotLocked(ctx context.Context) (Snapshot, error) {
	req := m.requestLocked()
	current := m.modeLocked()

	knobs, err := m.engine.Read(theme.KnobVariables()...)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading knobs: %w", err)
	}
	snap := Snapshot{Knobs: knobs}

	defer func() {
		m.applyLocked(ctx, req, current)
		m.rewriteEditsLocked()
	}()

	for _, mode := range theme.Modes() {
		if err := m.engine.SetDark(mode.IsDark()); err != nil {
			return Snapshot{}, fmt.Errorf("setting %s mode: %w", mode, err)
		}
		if _, err := m.engine.Apply(ctx, req, mode); err != nil {
			return Snapshot{}, fmt.Errorf("capturing %s mode: %w", mode, err)
		}
		m.rewriteEditsLocked()
		live, err := m.engine.Read(theme.StandardVariables()...)
		if err != nil {
			return Snapshot{}, fmt.Errorf("reading %s mode: %w", mode, err)
		}
		if mode.IsDark() {
			snap.Styles.Dark = live
		} else {
			snap.Styles.Light = live
		}
	}
	return snap, nil
}

// SaveCurrentAsArtifact captures the live theme as a custom artifact named
// name, persists it and makes it the active selection.
func (m *Manager) SaveCurrentAsArtifact(ctx context.Context, name string) (*theme.Artifact, error) {
	ctx, span := m.tracer.Start(ctx, tracing.SpanSaveArtifact, trace.WithAttributes(
		attribute.String(tracing.AttrArtifact, name),
	))
	defer span.End()

	m.Flush()

	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.buildArtifactLocked(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	m.custom = a
	m.imported = nil
	m.store.SaveArtifact(ctx, a)
	m.store.SaveSelection(ctx, theme.Selection{Custom: a.Slug()})
	m.broker.Publish(pubsub.SavedEvent, Event{Request: a.SelectionKey(), Mode: m.modeLocked()})
	log.Info(log.CatManager, "Saved custom theme", "name", a.Name,
		"light_overrides", len(a.Overrides.Light), "dark_overrides", len(a.Overrides.Dark))
	return a.Clone(), nil
}

// Export returns the live theme as indented artifact JSON without saving
// it. An empty name uses the active custom theme's name.
func (m *Manager) Export(ctx context.Context, name string) ([]byte, error) {
	m.Flush()

	m.mu.Lock()
	defer m.mu.Unlock()

	if name == "" && m.custom != nil {
		name = m.custom.Name
	}
	a, err := m.buildArtifactLocked(ctx, cmp.Or(name, DefaultArtifactName))
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(a, "", "  ")
}

func (m *Manager) buildArtifactLocked(ctx context.Context, name string) (*theme.Artifact, error) {
	snap, err := m.snapshotLocked(ctx)
	if err != nil {
		return nil, err
	}

	a := &theme.Artifact{
		Version: theme.ArtifactVersion,
		Name:    strings.TrimSpace(name),
		Base:    m.baseLocked(),
	}
	if len(snap.Knobs) > 0 {
		a.Overrides.Other = snap.Knobs
	}
	if m.custom != nil {
		a.Overrides.Layout = m.custom.Overrides.Layout
	}

	base, err := a.AdjustedBase()
	if err != nil {
		return nil, err
	}
	a.Overrides.Light = diffVariables(snap.Styles.Light, base.Light)
	a.Overrides.Dark = diffVariables(snap.Styles.Dark, base.Dark)

	if res := validation.ValidateCustomThemeArtifact(a); !res.IsValid {
		return nil, res.Err()
	}
	return a, nil
}

func (m *Manager) baseLocked() theme.Base {
	switch {
	case m.custom != nil:
		return m.custom.Clone().Base
	case m.imported != nil:
		styles := m.imported.Normalized()
		return theme.Base{Type: theme.BaseImported, Theme: &styles}
	default:
		return theme.Base{Type: theme.BasePreset, Value: m.preset}
	}
}

// diffVariables returns the entries of live that differ from base, or nil
// when none do. Composite shadows are derived from the knobs and skipped.
func diffVariables(live, base theme.VariableSet) theme.VariableSet {
	var out theme.VariableSet
	for _, name := range live.Keys() {
		if slices.Contains(theme.ShadowVariables(), name) {
			continue
		}
		if v := live[name]; v != base[name] {
			if out == nil {
				out = make(theme.VariableSet)
			}
			out[name] = v
		}
	}
	return out
}

// ResetTheme cancels pending work, clears every known variable and every
// edit from the target, forgets the custom theme and clears storage. The
// selection returns to the default preset; nothing is re-applied.
func (m *Manager) ResetTheme(ctx context.Context) {
	m.applyDebounce.Cancel()
	m.colorDebounce.Cancel()
	m.pendingMu.Lock()
	clear(m.pending)
	m.pendingMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.engine.Reset(); err != nil {
		log.WarnErr(log.CatManager, "Reset failed", err)
	}
	for name := range m.brand {
		if err := m.engine.RemoveVariable(name); err != nil {
			log.WarnErr(log.CatManager, "Failed to remove variable edit", err, "variable", name)
		}
	}

	m.preset = theme.DefaultPreset
	m.custom = nil
	m.imported = nil
	m.brand = make(theme.VariableSet)
	m.last = lastApply{}
	m.store.Clear(ctx)

	m.broker.Publish(pubsub.ResetEvent, Event{Mode: m.modeLocked()})
	log.Info(log.CatManager, "Theme reset")
}

// Flush runs pending debounced work now: the theme switch first, then
// variable edits.
func (m *Manager) Flush() {
	m.applyDebounce.Flush()
	m.colorDebounce.Flush()
}

// State returns a snapshot of the selection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := State{
		Selection:         m.selectionLocked(),
		Preset:            m.preset,
		Choice:            m.choice,
		Mode:              m.modeLocked(),
		Custom:            m.custom.Clone(),
		LastApplied:       m.last.request,
		LastApplyID:       m.last.applyID,
		LastFallback:      m.last.fallback,
		BrandColorsValues: m.brand.Clone(),
	}
	if m.imported != nil {
		styles := m.imported.Clone()
		s.Imported = &styles
	}
	return s
}

var _ pubsub.Subscriber[Event] = (*Manager)(nil)

// Subscribe returns a channel of manager events, closed when ctx is done.
func (m *Manager) Subscribe(ctx context.Context) <-chan pubsub.Event[Event] {
	return m.broker.Subscribe(ctx)
}

// OnEvent calls fn for every manager event until ctx is done or the
// manager closes. The returned channel is closed once delivery stops.
func (m *Manager) OnEvent(ctx context.Context, fn func(pubsub.Event[Event])) <-chan struct{} {
	return m.broker.Forward(ctx, fn)
}

// Close drops pending work and releases the broker and the store.
func (m *Manager) Close() error {
	m.applyDebounce.Cancel()
	m.colorDebounce.Cancel()
	if n := m.broker.Dropped(); n > 0 {
		log.Warn(log.CatManager, "Events dropped for slow subscribers", "count", n)
	}
	m.broker.Close()
	return m.store.Close()
}

func (m *Manager) selectionLocked() string {
	switch {
	case m.custom != nil:
		return m.custom.SelectionKey()
	case m.imported != nil:
		return "imported"
	default:
		return m.preset
	}
}

func (m *Manager) requestLocked() engine.Request {
	switch {
	case m.custom != nil:
		return engine.CustomRequest(m.custom)
	case m.imported != nil:
		return engine.ImportedRequest(*m.imported)
	default:
		return engine.PresetRequest(m.preset)
	}
}

func (m *Manager) modeLocked() theme.Mode {
	return resolveMode(m.choice, m.pref)
}

// applyLocked runs the engine apply and, on failure, the one-shot
// fallback. A failed fallback is logged and swallowed.
func (m *Manager) applyLocked(ctx context.Context, req engine.Request, mode theme.Mode) {
	if err := m.engine.SetDark(mode.IsDark()); err != nil {
		log.WarnErr(log.CatManager, "Failed to set dark marker", err, "mode", mode)
	}

	res, err := m.engine.Apply(ctx, req, mode)
	if err == nil {
		m.last = lastApply{applyID: res.ApplyID, request: req.String()}
		m.broker.Publish(pubsub.AppliedEvent, Event{ApplyID: res.ApplyID, Request: req.String(), Mode: mode})
		return
	}

	var applyID string
	var ae *engine.ApplyError
	if errors.As(err, &ae) {
		applyID = ae.ApplyID
	}

	ferr := m.engine.ApplyFallback(ctx, req, mode)
	if ferr != nil {
		log.ErrorErr(log.CatManager, "Fallback apply failed", ferr, "apply_id", applyID, "request", req.String(), "mode", mode)
	} else {
		log.Warn(log.CatManager, "Applied fallback theme", "apply_id", applyID, "request", req.String(), "mode", mode)
	}
	m.last = lastApply{applyID: applyID, request: req.String(), fallback: true}
	m.broker.Publish(pubsub.FallbackEvent, Event{ApplyID: applyID, Request: req.String(), Mode: mode, Err: ferr})
}
