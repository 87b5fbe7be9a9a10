package theme

import (
	"maps"
	"slices"
)

// DefaultPreset is the preset key used when nothing is selected.
const DefaultPreset = "default"

const (
	fontSans  = `ui-sans-serif, system-ui, sans-serif, "Apple Color Emoji", "Segoe UI Emoji", "Segoe UI Symbol", "Noto Color Emoji"`
	fontSerif = `ui-serif, Georgia, Cambria, "Times New Roman", Times, serif`
	fontMono  = `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace`
)

// Mode-independent defaults carried by every built-in preset.
var presetKnobs = VariableSet{
	VarRadius:         "0.625rem",
	VarSpacing:        "0.25rem",
	VarTrackingNormal: "0em",
	VarShadowColor:    DefaultShadowColor,
	VarShadowOpacity:  DefaultShadowOpacity,
	VarShadowBlur:     DefaultShadowBlur,
	VarShadowSpread:   DefaultShadowSpread,
	VarShadowX:        DefaultShadowX,
	VarShadowY:        DefaultShadowY,
}

var neutralLight = VariableSet{
	VarBackground:          "#ffffff",
	VarForeground:          "#0a0a0a",
	VarCard:                "#ffffff",
	VarCardForeground:      "#0a0a0a",
	VarPopover:             "#ffffff",
	VarPopoverForeground:   "#0a0a0a",
	VarPrimary:             "#171717",
	VarPrimaryForeground:   "#fafafa",
	VarSecondary:           "#f5f5f5",
	VarSecondaryForeground: "#171717",
	VarMuted:               "#f5f5f5",
	VarMutedForeground:     "#737373",
	VarAccent:              "#f5f5f5",
	VarAccentForeground:    "#171717",
	VarDestructive:         "#e7000b",
	VarDestructiveFg:       "#ffffff",
	VarBorder:              "#e5e5e5",
	VarInput:               "#e5e5e5",
	VarRing:                "#a1a1a1",
	VarChart1:              "#f54900",
	VarChart2:              "#009689",
	VarChart3:              "#104e64",
	VarChart4:              "#ffb900",
	VarChart5:              "#fe9a00",
	VarSidebar:             "#fafafa",
	VarSidebarForeground:   "#0a0a0a",
	VarSidebarPrimary:      "#171717",
	VarSidebarPrimaryFg:    "#fafafa",
	VarSidebarAccent:       "#f5f5f5",
	VarSidebarAccentFg:     "#171717",
	VarSidebarBorder:       "#e5e5e5",
	VarSidebarRing:         "#a1a1a1",
	VarField:               "#ffffff",
}

var neutralDark = VariableSet{
	VarBackground:          "#0a0a0a",
	VarForeground:          "#fafafa",
	VarCard:                "#171717",
	VarCardForeground:      "#fafafa",
	VarPopover:             "#262626",
	VarPopoverForeground:   "#fafafa",
	VarPrimary:             "#e5e5e5",
	VarPrimaryForeground:   "#171717",
	VarSecondary:           "#262626",
	VarSecondaryForeground: "#fafafa",
	VarMuted:               "#262626",
	VarMutedForeground:     "#a1a1a1",
	VarAccent:              "#404040",
	VarAccentForeground:    "#fafafa",
	VarDestructive:         "#ff6467",
	VarDestructiveFg:       "#fafafa",
	VarBorder:              "#282828",
	VarInput:               "#343434",
	VarRing:                "#737373",
	VarChart1:              "#1447e6",
	VarChart2:              "#00bc7d",
	VarChart3:              "#fe9a00",
	VarChart4:              "#ad46ff",
	VarChart5:              "#ff2056",
	VarSidebar:             "#171717",
	VarSidebarForeground:   "#fafafa",
	VarSidebarPrimary:      "#1447e6",
	VarSidebarPrimaryFg:    "#fafafa",
	VarSidebarAccent:       "#262626",
	VarSidebarAccentFg:     "#fafafa",
	VarSidebarBorder:       "#282828",
	VarSidebarRing:         "#525252",
	VarField:               "#262626",
}

// accent builds the per-mode overrides for a single-hue preset.
func accent(primary, primaryFg, ring, soft, softFg string) VariableSet {
	return VariableSet{
		VarPrimary:           primary,
		VarPrimaryForeground: primaryFg,
		VarRing:              ring,
		VarAccent:            soft,
		VarAccentForeground:  softFg,
		VarChart1:            primary,
		VarSidebarPrimary:    primary,
		VarSidebarPrimaryFg:  primaryFg,
		VarSidebarRing:       ring,
	}
}

func newPreset(label string, light, dark VariableSet) Preset {
	build := func(colors VariableSet) VariableSet {
		vars := colors.Merge(presetKnobs)
		vars[VarFontSans] = fontSans
		vars[VarFontSerif] = fontSerif
		vars[VarFontMono] = fontMono
		maps.Copy(vars, ComposeShadows(vars))
		return vars
	}
	return Preset{
		Label:  label,
		Source: SourceBuiltIn,
		Styles: ModeStyles{Light: build(light), Dark: build(dark)},
	}
}

var presets = map[string]Preset{
	DefaultPreset: newPreset("Default", neutralLight, neutralDark),
	"amber": newPreset("Amber",
		neutralLight.Merge(accent("#f59e0b", "#000000", "#f59e0b", "#fffbeb", "#92400e")),
		neutralDark.Merge(accent("#f59e0b", "#000000", "#f59e0b", "#92400e", "#fde68a")),
	),
	"blue": newPreset("Blue",
		neutralLight.Merge(accent("#2563eb", "#f8fafc", "#3b82f6", "#eff6ff", "#1e40af")),
		neutralDark.Merge(accent("#3b82f6", "#0f172a", "#1d4ed8", "#1e3a8a", "#dbeafe")),
	),
	"rose": newPreset("Rose",
		neutralLight.Merge(accent("#e11d48", "#fff1f2", "#e11d48", "#fff1f2", "#9f1239")),
		neutralDark.Merge(accent("#e11d48", "#fff1f2", "#be123c", "#881337", "#ffe4e6")),
	),
	"violet": newPreset("Violet",
		neutralLight.Merge(accent("#7c3aed", "#f5f3ff", "#8b5cf6", "#f5f3ff", "#5b21b6")),
		neutralDark.Merge(accent("#6d28d9", "#f5f3ff", "#6d28d9", "#4c1d95", "#ede9fe")),
	),
}

// LookupPreset returns a copy of the named built-in preset.
func LookupPreset(key string) (Preset, bool) {
	p, ok := presets[key]
	if !ok {
		return Preset{}, false
	}
	p.Styles = p.Styles.Clone()
	return p, true
}

// PresetKeys returns the built-in preset keys in sorted order.
func PresetKeys() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Presets returns a copy of every built-in preset keyed by identifier.
func Presets() map[string]Preset {
	out := make(map[string]Preset, len(presets))
	for k := range presets {
		out[k], _ = LookupPreset(k)
	}
	return out
}
