package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mindtris/uitheme/internal/cachemanager"
	"github.com/mindtris/uitheme/internal/colormath"
	"github.com/mindtris/uitheme/internal/flags"
	"github.com/mindtris/uitheme/internal/theme"
	"github.com/mindtris/uitheme/internal/tracing"
)

// faultyTarget wraps a MemoryTarget and fails or panics on selected writes.
type faultyTarget struct {
	*MemoryTarget
	failOn  string
	panicOn string
}

var errTargetUnavailable = errors.New("style target unavailable")

func (f *faultyTarget) SetVariable(name, value string) error {
	if name == f.panicOn {
		panic("boom")
	}
	if name == f.failOn {
		return errTargetUnavailable
	}
	return f.MemoryTarget.SetVariable(name, value)
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *MemoryTarget) {
	t.Helper()
	target := NewMemoryTarget()
	return New(target, opts...), target
}

func importedStyles() theme.ModeStyles {
	return theme.ModeStyles{
		Light: theme.VariableSet{"--background": "#ffffff", "--foreground": "#000000", "--primary": "#ff0000", "--primary-foreground": "#ffffff"},
		Dark:  theme.VariableSet{"background": "#000000", "foreground": "#ffffff", "primary": "#00ff00", "primary-foreground": "#000000"},
	}
}

func TestApply_Preset(t *testing.T) {
	e, target := newTestEngine(t)

	res, err := e.Apply(context.Background(), PresetRequest(theme.DefaultPreset), theme.ModeLight)
	require.NoError(t, err)
	require.NotEmpty(t, res.ApplyID)
	require.Equal(t, theme.ModeLight, res.Mode)

	vars := target.Inline()
	require.Equal(t, "#ffffff", vars[theme.VarBackground])
	require.Equal(t, "#171717", vars[theme.VarPrimary])
	require.Equal(t, "0.625rem", vars[theme.VarRadius])
	require.Equal(t, "0px 1px 3px 0px rgba(0, 0, 0, 0.1)", vars[theme.VarShadowSM])

	_, err = e.Apply(context.Background(), PresetRequest(theme.DefaultPreset), theme.ModeDark)
	require.NoError(t, err)
	require.Equal(t, "#0a0a0a", target.Inline()[theme.VarBackground])
}

func TestApply_PreservesKnobsAcrossSwaps(t *testing.T) {
	e, target := newTestEngine(t)
	require.NoError(t, target.SetVariable("--radius", "1rem"))
	require.NoError(t, target.SetVariable("--hue-shift", "120"))
	require.NoError(t, target.SetVariable("--spacing", "0.3rem"))

	_, err := e.Apply(context.Background(), PresetRequest("blue"), theme.ModeLight)
	require.NoError(t, err)

	vars := target.Inline()
	require.Equal(t, "1rem", vars[theme.VarRadius], "preserved knob beats preset value")
	require.Equal(t, "120", vars[theme.VarHueShift])
	require.Equal(t, "0.3rem", vars[theme.VarSpacing])
	require.Equal(t, colormath.ApplyHSLAdjustments("#2563eb", 120, 1, 1), vars[theme.VarPrimary])
	require.Equal(t, "#ffffff", vars[theme.VarBackground], "achromatic colors are unchanged by a hue shift")
}

func TestApply_ResetClearsStaleVariables(t *testing.T) {
	e, target := newTestEngine(t)

	_, err := e.Apply(context.Background(), PresetRequest("amber"), theme.ModeLight)
	require.NoError(t, err)
	require.NotEmpty(t, target.Inline()[theme.VarChart3])
	require.NoError(t, target.SetVariable("--app-header", "64px"))

	_, err = e.Apply(context.Background(), ImportedRequest(importedStyles()), theme.ModeLight)
	require.NoError(t, err)

	vars := target.Inline()
	require.NotContains(t, vars, theme.VarChart3, "variables from the previous theme do not leak")
	require.Equal(t, "#ff0000", vars[theme.VarPrimary])
	require.Equal(t, "64px", vars["app-header"], "unknown variables are left alone")
	require.Equal(t, "0.625rem", vars[theme.VarRadius], "knobs carried over from amber")
}

func TestApply_ImportedNormalizesKeys(t *testing.T) {
	e, target := newTestEngine(t)

	_, err := e.Apply(context.Background(), ImportedRequest(importedStyles()), theme.ModeLight)
	require.NoError(t, err)
	require.Equal(t, "#ff0000", target.Inline()[theme.VarPrimary])

	_, err = e.Apply(context.Background(), ImportedRequest(importedStyles()), theme.ModeDark)
	require.NoError(t, err)
	require.Equal(t, "#00ff00", target.Inline()[theme.VarPrimary])
}

func TestApply_CustomMergePrecedence(t *testing.T) {
	e, target := newTestEngine(t)
	a := &theme.Artifact{
		Version:   theme.ArtifactVersion,
		Name:      "Red",
		Base:      theme.Base{Type: theme.BasePreset, Value: theme.DefaultPreset},
		Overrides: theme.Overrides{Light: theme.VariableSet{"primary": "#ff0000"}},
	}

	_, err := e.Apply(context.Background(), CustomRequest(a), theme.ModeLight)
	require.NoError(t, err)
	vars := target.Inline()
	require.Equal(t, "#ff0000", vars[theme.VarPrimary])
	require.Equal(t, "#ffffff", vars[theme.VarBackground])
}

func TestApply_CustomKnobsCommittedOverPreserved(t *testing.T) {
	e, target := newTestEngine(t)
	require.NoError(t, target.SetVariable("--radius", "1rem"))
	require.NoError(t, target.SetVariable("--spacing", "0.3rem"))
	require.NoError(t, target.SetVariable("--hue-shift", "45"))

	base := importedStyles()
	a := &theme.Artifact{
		Version: theme.ArtifactVersion,
		Name:    "Shifted",
		Base:    theme.Base{Type: theme.BaseImported, Theme: &base},
		Overrides: theme.Overrides{Other: theme.VariableSet{
			theme.VarRadius:   "0px",
			theme.VarHueShift: "120",
		}},
	}

	_, err := e.Apply(context.Background(), CustomRequest(a), theme.ModeLight)
	require.NoError(t, err)
	vars := target.Inline()
	require.Equal(t, "0px", vars[theme.VarRadius])
	require.Equal(t, "120", vars[theme.VarHueShift])
	require.Equal(t, "0.3rem", vars[theme.VarSpacing], "knobs absent from the artifact are preserved")
	require.Equal(t, "#00ff00", vars[theme.VarPrimary], "adjusted with the artifact's own hue shift")
}

func TestApply_RecomputesShadowsFromPrimitives(t *testing.T) {
	e, target := newTestEngine(t)
	require.NoError(t, target.SetVariable("--shadow-opacity", "0.5"))
	require.NoError(t, target.SetVariable("--shadow-color", "#ff0000"))

	_, err := e.Apply(context.Background(), ImportedRequest(importedStyles()), theme.ModeLight)
	require.NoError(t, err)

	vars := target.Inline()
	require.Equal(t, "0px 1px 3px 0px rgba(255, 0, 0, 0.5)", vars[theme.VarShadowSM])
	require.Equal(t, "0px 2px 6px 0px rgba(255, 0, 0, 0.5)", vars[theme.VarShadowMD])
	require.Equal(t, "0px 4px 12px 0px rgba(255, 0, 0, 0.5)", vars[theme.VarShadowLG])
}

func TestApply_ShadowRecomputeFlagOff(t *testing.T) {
	e, target := newTestEngine(t, WithFlags(flags.New(map[string]bool{flags.FlagShadowRecompute: false})))

	_, err := e.Apply(context.Background(), ImportedRequest(importedStyles()), theme.ModeLight)
	require.NoError(t, err)
	require.NotContains(t, target.Inline(), theme.VarShadowSM)
}

func TestApply_TargetFailure(t *testing.T) {
	target := &faultyTarget{MemoryTarget: NewMemoryTarget(), failOn: "--primary"}
	e := New(target)

	_, err := e.Apply(context.Background(), PresetRequest(theme.DefaultPreset), theme.ModeLight)

	var ae *ApplyError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, PhaseCommit, ae.Phase)
	require.Equal(t, "preset:default", ae.Request)
	require.NotEmpty(t, ae.ApplyID)
	require.ErrorIs(t, err, errTargetUnavailable)
}

func TestApply_PanicIsRecovered(t *testing.T) {
	target := &faultyTarget{MemoryTarget: NewMemoryTarget(), panicOn: "--shadow-sm"}
	e := New(target)

	var err error
	require.NotPanics(t, func() {
		_, err = e.Apply(context.Background(), ImportedRequest(importedStyles()), theme.ModeLight)
	})

	var ae *ApplyError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, PhaseShadows, ae.Phase)
	require.ErrorIs(t, err, ErrPanic)
}

func TestApply_UnknownPreset(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Apply(context.Background(), PresetRequest("missing"), theme.ModeLight)
	var ae *ApplyError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, PhaseResolve, ae.Phase)
	require.ErrorIs(t, err, theme.ErrUnknownPreset)
}

func TestApply_InvalidRequest(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Apply(context.Background(), CustomRequest(nil), theme.ModeLight)
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = e.Apply(context.Background(), Request{}, theme.ModeLight)
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestApplyFallback_SkipsKnobsAndShadows(t *testing.T) {
	e, target := newTestEngine(t)
	require.NoError(t, target.SetVariable("--hue-shift", "120"))
	require.NoError(t, target.SetVariable("--shadow-opacity", "0.5"))

	require.NoError(t, e.ApplyFallback(context.Background(), ImportedRequest(importedStyles()), theme.ModeLight))

	vars := target.Inline()
	require.Equal(t, "#ff0000", vars[theme.VarPrimary], "written without adjustment")
	require.NotContains(t, vars, theme.VarHueShift)
	require.NotContains(t, vars, theme.VarShadowOpacity)
	require.NotContains(t, vars, theme.VarShadowSM)
}

func TestApplyFallback_Custom(t *testing.T) {
	e, target := newTestEngine(t)
	a := &theme.Artifact{
		Version: theme.ArtifactVersion,
		Name:    "Red",
		Base:    theme.Base{Type: theme.BasePreset, Value: "blue"},
		Overrides: theme.Overrides{
			Light: theme.VariableSet{theme.VarAccent: "#ff0000"},
			Other: theme.VariableSet{theme.VarHueShift: "90"},
		},
	}

	require.NoError(t, e.ApplyFallback(context.Background(), CustomRequest(a), theme.ModeLight))
	vars := target.Inline()
	require.Equal(t, "#2563eb", vars[theme.VarPrimary], "base is not hue shifted")
	require.Equal(t, "#ff0000", vars[theme.VarAccent])
}

func TestApplyFallback_Failure(t *testing.T) {
	target := &faultyTarget{MemoryTarget: NewMemoryTarget(), failOn: "--background"}
	e := New(target)

	err := e.ApplyFallback(context.Background(), PresetRequest(theme.DefaultPreset), theme.ModeLight)
	var ae *ApplyError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, PhaseFallback, ae.Phase)
}

func TestResolve_CachesPresets(t *testing.T) {
	cache := cachemanager.NewInMemoryCacheManager[string, theme.VariableSet]("test", ResolveCacheTTL, cachemanager.DefaultCleanupInterval)
	e, _ := newTestEngine(t, WithCache(cache))

	for range 3 {
		_, err := e.Apply(context.Background(), PresetRequest("rose"), theme.ModeDark)
		require.NoError(t, err)
	}
	require.Equal(t, 1, cache.Len())

	vars, err := e.Resolve(context.Background(), PresetRequest("rose"), theme.ModeDark, theme.IdentityKnobs())
	require.NoError(t, err)
	vars[theme.VarPrimary] = "#000000"

	again, err := e.Resolve(context.Background(), PresetRequest("rose"), theme.ModeDark, theme.IdentityKnobs())
	require.NoError(t, err)
	require.Equal(t, "#e11d48", again[theme.VarPrimary], "cached sets are not aliased")

	_, err = e.Resolve(context.Background(), PresetRequest("rose"), theme.ModeDark, theme.Knobs{HueShift: 10, SaturationMult: 1, LightnessMult: 1})
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len(), "knobs are part of the key")
}

func TestResolve_CacheFlagOff(t *testing.T) {
	cache := cachemanager.NewInMemoryCacheManager[string, theme.VariableSet]("test", ResolveCacheTTL, cachemanager.DefaultCleanupInterval)
	e, _ := newTestEngine(t, WithCache(cache), WithFlags(flags.New(map[string]bool{flags.FlagResolveCache: false})))

	_, err := e.Apply(context.Background(), PresetRequest("rose"), theme.ModeDark)
	require.NoError(t, err)
	require.Zero(t, cache.Len())
}

func TestApply_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	e, _ := newTestEngine(t, WithTracer(provider.Tracer("test")))

	res, err := e.Apply(context.Background(), PresetRequest("violet"), theme.ModeDark)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanApply, spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, res.ApplyID, attrs[tracing.AttrApplyID])
	require.Equal(t, "preset", attrs[tracing.AttrRequestKind])
	require.Equal(t, "dark", attrs[tracing.AttrMode])

	var events []string
	for _, ev := range spans[0].Events() {
		events = append(events, ev.Name)
	}
	require.Equal(t, []string{
		tracing.EventPreserved, tracing.EventReset, tracing.EventResolved, tracing.EventCommitted, tracing.EventShadows,
	}, events)
}

func TestMemoryTarget_StylesheetFallback(t *testing.T) {
	target := NewMemoryTarget().WithStylesheet(theme.ModeStyles{
		Light: theme.VariableSet{"--primary": "#111111"},
		Dark:  theme.VariableSet{"primary": "#eeeeee"},
	})

	v, err := target.Variable("--primary")
	require.NoError(t, err)
	require.Equal(t, "#111111", v)

	require.NoError(t, target.SetDark(true))
	require.True(t, target.Dark())
	v, _ = target.Variable("primary")
	require.Equal(t, "#eeeeee", v)

	require.NoError(t, target.SetVariable("--primary", " #abcdef "))
	v, _ = target.Variable("--primary")
	require.Equal(t, "#abcdef", v, "inline wins and is trimmed")
	require.Equal(t, theme.VariableSet{"primary": "#abcdef"}, target.Computed())

	require.NoError(t, target.RemoveVariable("--primary"))
	v, _ = target.Variable("--primary")
	require.Equal(t, "#eeeeee", v)
}

func TestRequestString(t *testing.T) {
	require.Equal(t, "preset:amber", PresetRequest("amber").String())
	require.Equal(t, "custom:my-theme", CustomRequest(&theme.Artifact{Name: "My Theme"}).String())
	require.Equal(t, "imported:4/4", ImportedRequest(importedStyles()).String())
	require.Equal(t, KindCustom, RequestFor(theme.Imported{Kind: theme.ImportArtifact, Artifact: &theme.Artifact{}}).Kind)
	require.Equal(t, KindImported, RequestFor(theme.Imported{Kind: theme.ImportCSS}).Kind)
}
