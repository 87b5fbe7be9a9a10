// Package engine computes the final variable set for a theme request and
// mode and commits it to a Target.
//
// An apply runs preserve → reset → resolve → adjust → commit → shadows. The
// engine is not safe for concurrent use; callers serialize applies.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mindtris/uitheme/internal/cachemanager"
	"github.com/mindtris/uitheme/internal/flags"
	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/theme"
	"github.com/mindtris/uitheme/internal/tracing"
)

// ResolveCacheTTL bounds how long a resolved preset set is reused.
const ResolveCacheTTL = 30 * time.Minute

// Engine applies themes to a Target.
type Engine struct {
	target Target
	tracer trace.Tracer
	flags  *flags.Registry
	cache  cachemanager.CacheManager[string, theme.VariableSet]

	presets *cachemanager.ReadThroughCache[string, theme.VariableSet, presetInput]
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracer records a span per apply.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithFlags sets the feature flag registry.
func WithFlags(r *flags.Registry) Option {
	return func(e *Engine) { e.flags = r }
}

// WithCache replaces the resolved preset cache.
func WithCache(c cachemanager.CacheManager[string, theme.VariableSet]) Option {
	return func(e *Engine) { e.cache = c }
}

// New creates an engine writing to target.
func New(target Target, opts ...Option) *Engine {
	e := &Engine{target: target}
	for _, opt := range opts {
		opt(e)
	}
	if e.tracer == nil {
		e.tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if e.flags == nil {
		e.flags = flags.New(nil)
	}
	if e.cache == nil {
		e.cache = cachemanager.NewInMemoryCacheManager[string, theme.VariableSet]("resolved-presets", ResolveCacheTTL, cachemanager.DefaultCleanupInterval)
	}
	e.presets = cachemanager.NewReadThroughCache[string, theme.VariableSet, presetInput](e.cache, resolvePreset, func() bool {
		return !e.flags.Enabled(flags.FlagResolveCache)
	})
	return e
}

// Target returns the live target.
func (e *Engine) Target() Target {
	return e.target
}

// Result describes a committed apply.
type Result struct {
	ApplyID   string
	Mode      theme.Mode
	Variables theme.VariableSet // resolved values written, before knobs
	Knobs     theme.VariableSet // knob values written after the resolved set
}

// Apply resolves req for mode and commits it. Target failures and panics
// are returned as *ApplyError; the target may then be partially written.
func (e *Engine) Apply(ctx context.Context, req Request, mode theme.Mode) (res Result, err error) {
	applyID := uuid.NewString()
	ctx, span := e.tracer.Start(ctx, tracing.SpanApply, trace.WithAttributes(
		attribute.String(tracing.AttrApplyID, applyID),
		attribute.String(tracing.AttrRequestKind, req.Kind.String()),
		attribute.String(tracing.AttrMode, string(mode)),
	))
	defer span.End()
	switch {
	case req.Kind == KindPreset:
		span.SetAttributes(attribute.String(tracing.AttrPreset, req.Preset))
	case req.Kind == KindCustom && req.Artifact != nil:
		span.SetAttributes(attribute.String(tracing.AttrArtifact, req.Artifact.Name))
	}

	phase := PhasePreserve
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
		if err != nil {
			var ae *ApplyError
			if !errors.As(err, &ae) {
				err = &ApplyError{ApplyID: applyID, Request: req.String(), Phase: phase, Err: err}
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.WarnErr(log.CatEngine, "Theme apply failed", err, "apply_id", applyID, "request", req.String(), "mode", mode, "phase", phase)
		}
	}()

	preserved, err := e.readKnobs()
	if err != nil {
		return Result{}, err
	}
	span.AddEvent(tracing.EventPreserved, trace.WithAttributes(attribute.Int(tracing.AttrKnobCount, len(preserved))))

	phase = PhaseReset
	if err := e.Reset(); err != nil {
		return Result{}, err
	}
	span.AddEvent(tracing.EventReset)

	phase = PhaseResolve
	knobs := theme.KnobsFrom(preserved)
	vars, err := e.Resolve(ctx, req, mode, knobs)
	if err != nil {
		return Result{}, err
	}
	span.AddEvent(tracing.EventResolved, trace.WithAttributes(attribute.Int(tracing.AttrVarCount, len(vars))))
	if req.Kind != KindCustom && !knobs.IsIdentity() {
		span.AddEvent(tracing.EventAdjusted)
	}

	phase = PhaseCommit
	if err := e.write(vars); err != nil {
		return Result{}, err
	}
	written := preserved
	if req.Kind == KindCustom {
		written = preserved.Merge(req.Artifact.Overrides.Other.Normalized())
	}
	if err := e.write(written); err != nil {
		return Result{}, err
	}
	span.AddEvent(tracing.EventCommitted)

	phase = PhaseShadows
	if e.flags.Enabled(flags.FlagShadowRecompute) {
		if err := e.RefreshShadows(); err != nil {
			return Result{}, err
		}
		span.AddEvent(tracing.EventShadows)
	}

	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatEngine, "Applied theme", "apply_id", applyID, "request", req.String(), "mode", mode, "variables", len(vars), "knobs", len(written))
	return Result{ApplyID: applyID, Mode: mode, Variables: vars, Knobs: written}, nil
}

// ApplyFallback is the minimal recovery path: reset, then write the base
// styles for mode without HSL adjustment. Knobs are not preserved and
// shadows are not recomputed.
func (e *Engine) ApplyFallback(ctx context.Context, req Request, mode theme.Mode) (err error) {
	_, span := e.tracer.Start(ctx, tracing.SpanApplyFallback, trace.WithAttributes(
		attribute.String(tracing.AttrRequestKind, req.Kind.String()),
		attribute.String(tracing.AttrMode, string(mode)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
		if err != nil {
			err = &ApplyError{Request: req.String(), Phase: PhaseFallback, Err: err}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err := e.Reset(); err != nil {
		return err
	}
	vars, err := baseStyles(req, mode)
	if err != nil {
		return err
	}
	if err := e.write(vars); err != nil {
		return err
	}
	log.Info(log.CatEngine, "Applied fallback theme", "request", req.String(), "mode", mode, "variables", len(vars))
	return nil
}

// Resolve computes the variable set for req and mode without touching the
// target. Preset and imported sets are adjusted with knobs; custom artifacts
// use the knobs stored in their overrides.
func (e *Engine) Resolve(ctx context.Context, req Request, mode theme.Mode, knobs theme.Knobs) (theme.VariableSet, error) {
	switch req.Kind {
	case KindPreset:
		vars, err := e.presets.Get(ctx, presetCacheKey(req.Preset, mode, knobs), presetInput{key: req.Preset, mode: mode, knobs: knobs}, ResolveCacheTTL)
		if err != nil {
			return nil, err
		}
		return vars.Clone(), nil
	case KindImported:
		return knobs.Apply(req.Imported.For(mode).Normalized()), nil
	case KindCustom:
		if req.Artifact == nil {
			return nil, fmt.Errorf("%w: custom request without artifact", ErrInvalidRequest)
		}
		return req.Artifact.Resolve(mode)
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidRequest, req.Kind)
	}
}

// Reset removes every known variable from the target.
func (e *Engine) Reset() error {
	for _, name := range theme.AllVariables() {
		if err := e.target.RemoveVariable(theme.CSSName(name)); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

// RefreshShadows rebuilds the composite shadow tokens from the shadow
// primitives currently on the target.
func (e *Engine) RefreshShadows() error {
	primitives, err := e.Read(theme.VarShadowColor, theme.VarShadowOpacity, theme.VarShadowBlur,
		theme.VarShadowSpread, theme.VarShadowX, theme.VarShadowY)
	if err != nil {
		return err
	}
	return e.write(theme.ComposeShadows(primitives))
}

// SetVariable writes a single variable to the target.
func (e *Engine) SetVariable(name, value string) error {
	return e.target.SetVariable(theme.CSSName(name), value)
}

// RemoveVariable clears a single variable from the target.
func (e *Engine) RemoveVariable(name string) error {
	return e.target.RemoveVariable(theme.CSSName(name))
}

// SetDark toggles the target's dark marker.
func (e *Engine) SetDark(dark bool) error {
	return e.target.SetDark(dark)
}

// Read returns the computed, non-empty values of the named variables.
func (e *Engine) Read(names ...string) (theme.VariableSet, error) {
	out := make(theme.VariableSet, len(names))
	for _, name := range names {
		v, err := e.target.Variable(theme.CSSName(name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if v != "" {
			out[theme.NormalizeName(name)] = v
		}
	}
	return out, nil
}

func (e *Engine) readKnobs() (theme.VariableSet, error) {
	return e.Read(theme.KnobVariables()...)
}

func (e *Engine) write(vars theme.VariableSet) error {
	for _, name := range vars.Keys() {
		value := vars[name]
		if value == "" {
			continue
		}
		if err := e.target.SetVariable(theme.CSSName(name), value); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

type presetInput struct {
	key   string
	mode  theme.Mode
	knobs theme.Knobs
}

func presetCacheKey(key string, mode theme.Mode, k theme.Knobs) string {
	return key + "/" + string(mode) + "/" +
		strconv.FormatFloat(k.HueShift, 'g', -1, 64) + "/" +
		strconv.FormatFloat(k.SaturationMult, 'g', -1, 64) + "/" +
		strconv.FormatFloat(k.LightnessMult, 'g', -1, 64)
}

func resolvePreset(_ context.Context, in presetInput) (theme.VariableSet, error) {
	p, ok := theme.LookupPreset(in.key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", theme.ErrUnknownPreset, in.key)
	}
	return in.knobs.Apply(p.Styles.For(in.mode)), nil
}

// baseStyles is the fallback resolve: no adjustment of any kind.
func baseStyles(req Request, mode theme.Mode) (theme.VariableSet, error) {
	switch req.Kind {
	case KindPreset:
		p, ok := theme.LookupPreset(req.Preset)
		if !ok {
			return nil, fmt.Errorf("%w: %q", theme.ErrUnknownPreset, req.Preset)
		}
		return p.Styles.For(mode), nil
	case KindImported:
		return req.Imported.For(mode).Normalized(), nil
	case KindCustom:
		if req.Artifact == nil {
			return nil, fmt.Errorf("%w: custom request without artifact", ErrInvalidRequest)
		}
		base, err := req.Artifact.Base.Resolve()
		if err != nil {
			return nil, err
		}
		return base.For(mode).Merge(req.Artifact.Overrides.For(mode).Normalized()), nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidRequest, req.Kind)
	}
}
