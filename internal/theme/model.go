package theme

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Mode selects the light or dark half of a theme.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode accepts "light" or "dark" (case-insensitive).
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, true
	case ModeDark:
		return ModeDark, true
	default:
		return "", false
	}
}

// ModeFor returns ModeDark when dark is true.
func ModeFor(dark bool) Mode {
	if dark {
		return ModeDark
	}
	return ModeLight
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool {
	return m == ModeDark
}

// Modes lists both modes in a fixed order.
func Modes() []Mode {
	return []Mode{ModeLight, ModeDark}
}

// VariableSet maps variable names (no leading "--") to CSS values.
type VariableSet map[string]string

// Clone returns a shallow copy. A nil set clones to nil.
func (v VariableSet) Clone() VariableSet {
	if v == nil {
		return nil
	}
	return maps.Clone(v)
}

// Normalized returns a copy with any leading "--" stripped from keys.
func (v VariableSet) Normalized() VariableSet {
	if v == nil {
		return nil
	}
	out := make(VariableSet, len(v))
	for k, val := range v {
		out[NormalizeName(k)] = val
	}
	return out
}

// Merge returns a new set with over applied on top of v; over wins per key.
func (v VariableSet) Merge(over VariableSet) VariableSet {
	out := make(VariableSet, len(v)+len(over))
	maps.Copy(out, v)
	maps.Copy(out, over)
	return out
}

// Keys returns the variable names in sorted order.
func (v VariableSet) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Pick returns a new set holding only the named keys that have values.
func (v VariableSet) Pick(names ...string) VariableSet {
	out := make(VariableSet)
	for _, name := range names {
		if val, ok := v[name]; ok && val != "" {
			out[name] = val
		}
	}
	return out
}

// ModeStyles is a light/dark pair of variable sets.
type ModeStyles struct {
	Light VariableSet `json:"light"`
	Dark  VariableSet `json:"dark"`
}

// For returns the set for mode.
func (s ModeStyles) For(mode Mode) VariableSet {
	if mode.IsDark() {
		return s.Dark
	}
	return s.Light
}

// Clone deep-copies both modes.
func (s ModeStyles) Clone() ModeStyles {
	return ModeStyles{Light: s.Light.Clone(), Dark: s.Dark.Clone()}
}

// Normalized strips leading "--" from keys in both modes.
func (s ModeStyles) Normalized() ModeStyles {
	return ModeStyles{Light: s.Light.Normalized(), Dark: s.Dark.Normalized()}
}

// Source records where a preset came from.
type Source string

// SourceBuiltIn marks presets compiled into the binary.
const SourceBuiltIn Source = "BUILT_IN"

// Preset is an immutable named theme.
type Preset struct {
	Label  string
	Source Source
	Styles ModeStyles
}

// Knobs are the global HSL transform parameters.
type Knobs struct {
	HueShift       float64
	SaturationMult float64
	LightnessMult  float64
}

// IdentityKnobs returns the no-op transform (0, 1, 1).
func IdentityKnobs() Knobs {
	return Knobs{HueShift: 0, SaturationMult: 1, LightnessMult: 1}
}

// IsIdentity reports whether applying k would change nothing.
func (k Knobs) IsIdentity() bool {
	return k.HueShift == 0 && k.SaturationMult == 1 && k.LightnessMult == 1
}

// KnobsFrom reads hue-shift, saturation-mult and lightness-mult from vars.
// Missing or unparsable values fall back to the identity.
func KnobsFrom(vars VariableSet) Knobs {
	k := IdentityKnobs()
	if v, ok := parseKnob(vars[VarHueShift]); ok {
		k.HueShift = v
	}
	if v, ok := parseKnob(vars[VarSaturationMult]); ok {
		k.SaturationMult = v
	}
	if v, ok := parseKnob(vars[VarLightnessMult]); ok {
		k.LightnessMult = v
	}
	return k
}

func parseKnob(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Apply runs the HSL transform over styles. The identity returns a clone.
func (k Knobs) Apply(styles VariableSet) VariableSet {
	if k.IsIdentity() {
		return styles.Clone()
	}
	return ApplyHSLToThemeStyles(styles, k.HueShift, k.SaturationMult, k.LightnessMult)
}
