// Package theme defines the theme data model: the CSS variable namespace
// shared with component collaborators, built-in presets, custom theme
// artifacts and the global HSL adjustment over a variable set.
package theme

import (
	"slices"
	"strings"
)

// Color roles. These are the only variables the global HSL transform touches.
const (
	VarBackground          = "background"
	VarForeground          = "foreground"
	VarCard                = "card"
	VarCardForeground      = "card-foreground"
	VarPopover             = "popover"
	VarPopoverForeground   = "popover-foreground"
	VarPrimary             = "primary"
	VarPrimaryForeground   = "primary-foreground"
	VarSecondary           = "secondary"
	VarSecondaryForeground = "secondary-foreground"
	VarMuted               = "muted"
	VarMutedForeground     = "muted-foreground"
	VarAccent              = "accent"
	VarAccentForeground    = "accent-foreground"
	VarDestructive         = "destructive"
	VarDestructiveFg       = "destructive-foreground"
	VarBorder              = "border"
	VarInput               = "input"
	VarRing                = "ring"
	VarChart1              = "chart-1"
	VarChart2              = "chart-2"
	VarChart3              = "chart-3"
	VarChart4              = "chart-4"
	VarChart5              = "chart-5"
	VarSidebar             = "sidebar"
	VarSidebarForeground   = "sidebar-foreground"
	VarSidebarPrimary      = "sidebar-primary"
	VarSidebarPrimaryFg    = "sidebar-primary-foreground"
	VarSidebarAccent       = "sidebar-accent"
	VarSidebarAccentFg     = "sidebar-accent-foreground"
	VarSidebarBorder       = "sidebar-border"
	VarSidebarRing         = "sidebar-ring"
)

// Non-color standard variables.
const (
	VarField     = "field"
	VarFontSans  = "font-sans"
	VarFontSerif = "font-serif"
	VarFontMono  = "font-mono"

	VarShadow2XS = "shadow-2xs"
	VarShadowXS  = "shadow-xs"
	VarShadowSM  = "shadow-sm"
	VarShadow    = "shadow"
	VarShadowMD  = "shadow-md"
	VarShadowLG  = "shadow-lg"
	VarShadowXL  = "shadow-xl"
	VarShadow2XL = "shadow-2xl"
)

// Knobs: mode-independent tunables preserved across theme swaps.
const (
	VarHueShift       = "hue-shift"
	VarSaturationMult = "saturation-mult"
	VarLightnessMult  = "lightness-mult"
	VarSpacing        = "spacing"
	VarTrackingNormal = "tracking-normal"
	VarRadius         = "radius"
	VarShadowColor    = "shadow-color"
	VarShadowOpacity  = "shadow-opacity"
	VarShadowBlur     = "shadow-blur"
	VarShadowSpread   = "shadow-spread"
	VarShadowX        = "shadow-x"
	VarShadowY        = "shadow-y"
)

// RequiredVariables must be present in both modes of an imported theme.
var RequiredVariables = []string{VarBackground, VarForeground, VarPrimary, VarPrimaryForeground}

var colorVariables = []string{
	VarBackground, VarForeground,
	VarCard, VarCardForeground,
	VarPopover, VarPopoverForeground,
	VarPrimary, VarPrimaryForeground,
	VarSecondary, VarSecondaryForeground,
	VarMuted, VarMutedForeground,
	VarAccent, VarAccentForeground,
	VarDestructive, VarDestructiveFg,
	VarBorder, VarInput, VarRing,
	VarChart1, VarChart2, VarChart3, VarChart4, VarChart5,
	VarSidebar, VarSidebarForeground,
	VarSidebarPrimary, VarSidebarPrimaryFg,
	VarSidebarAccent, VarSidebarAccentFg,
	VarSidebarBorder, VarSidebarRing,
}

var shadowVariables = []string{
	VarShadow2XS, VarShadowXS, VarShadowSM, VarShadow,
	VarShadowMD, VarShadowLG, VarShadowXL, VarShadow2XL,
}

var knobVariables = []string{
	VarHueShift, VarSaturationMult, VarLightnessMult,
	VarSpacing, VarTrackingNormal,
	VarShadowColor, VarShadowOpacity, VarShadowBlur, VarShadowSpread, VarShadowX, VarShadowY,
	VarRadius,
}

var fontVariables = []string{VarFontSans, VarFontSerif, VarFontMono}

// ColorVariables returns the 32 color roles subject to HSL adjustment.
func ColorVariables() []string {
	return slices.Clone(colorVariables)
}

// KnobVariables returns the preserved knob set, in preserve order.
func KnobVariables() []string {
	return slices.Clone(knobVariables)
}

// ShadowVariables returns the composite shadow tokens.
func ShadowVariables() []string {
	return slices.Clone(shadowVariables)
}

// FontVariables returns the font stack tokens.
func FontVariables() []string {
	return slices.Clone(fontVariables)
}

// StandardVariables returns every per-mode variable a preset defines:
// colors, field, fonts and composite shadows. Knobs are excluded.
func StandardVariables() []string {
	vars := make([]string, 0, len(colorVariables)+1+len(fontVariables)+len(shadowVariables))
	vars = append(vars, colorVariables...)
	vars = append(vars, VarField)
	vars = append(vars, fontVariables...)
	vars = append(vars, shadowVariables...)
	return vars
}

// AllVariables returns the full known namespace: standard variables followed
// by knobs. The engine clears exactly this set before every commit.
func AllVariables() []string {
	return append(StandardVariables(), knobVariables...)
}

// IsColorVariable reports whether name is one of the 32 color roles.
func IsColorVariable(name string) bool {
	return slices.Contains(colorVariables, NormalizeName(name))
}

// IsKnob reports whether name is a preserved knob.
func IsKnob(name string) bool {
	return slices.Contains(knobVariables, NormalizeName(name))
}

// IsKnown reports whether name belongs to the variable namespace.
func IsKnown(name string) bool {
	return slices.Contains(AllVariables(), NormalizeName(name))
}

// NormalizeName strips any leading "--" from a variable name.
func NormalizeName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "--")
}

// CSSName returns the custom property form of name ("--primary").
func CSSName(name string) string {
	return "--" + NormalizeName(name)
}
