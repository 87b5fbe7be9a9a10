// Package colormath converts between the color notations used by theme
// tokens (hex, rgb(), HSL) and composes alpha-carrying shadow values.
//
// Every function is fail-soft: unparsable input is reported through a
// boolean or returned unchanged, never as a panic.
package colormath

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a color in hue/saturation/lightness form.
// H is in degrees [0,360); S and L are percentages [0,100].
type HSL struct {
	H, S, L float64
}

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B int
}

// HSL converts the color to hue/saturation/lightness.
func (c RGB) HSL() HSL {
	h, s, l := c.colorful().Hsl()
	return HSL{H: h, S: s * 100, L: l * 100}
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampChannel(c.R), clampChannel(c.G), clampChannel(c.B))
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(clampChannel(c.R)) / 255,
		G: float64(clampChannel(c.G)) / 255,
		B: float64(clampChannel(c.B)) / 255,
	}
}

var (
	hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	// rgb(1, 2, 3) / rgba(1 2 3 / 50%) / rgba(1,2,3,0.5)
	rgbPattern = regexp.MustCompile(`(?i)^rgba?\(\s*(\d+(?:\.\d+)?)(?:\s*,\s*|\s+)(\d+(?:\.\d+)?)(?:\s*,\s*|\s+)(\d+(?:\.\d+)?)\s*(?:[,/]\s*\d*\.?\d+%?\s*)?\)$`)

	lengthPattern = regexp.MustCompile(`^(-?\d*\.?\d+)([a-zA-Z%]*)$`)
)

// HexToHSL parses a 3- or 6-digit hex color (leading # optional).
func HexToHSL(hex string) (HSL, bool) {
	c, ok := parseHex(hex)
	if !ok {
		return HSL{}, false
	}
	h, s, l := c.Hsl()
	return HSL{H: h, S: s * 100, L: l * 100}, true
}

// HexToRGB parses a 3- or 6-digit hex color (leading # optional).
func HexToRGB(hex string) (RGB, bool) {
	c, ok := parseHex(hex)
	if !ok {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, true
}

func parseHex(hex string) (colorful.Color, bool) {
	hex = strings.TrimSpace(hex)
	if !hexPattern.MatchString(hex) {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// HSLToHex encodes h/s/l as #rrggbb. The hue wraps into [0,360) and
// saturation and lightness are clamped into [0,100].
func HSLToHex(h, s, l float64) string {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sat := clamp(s, 0, 100) / 100
	light := clamp(l, 0, 100) / 100

	c := (1 - math.Abs(2*light-1)) * sat
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := light - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: int(math.Round((r + m) * 255)),
		G: int(math.Round((g + m) * 255)),
		B: int(math.Round((b + m) * 255)),
	}.Hex()
}

// ParseRGB parses rgb()/rgba() notation. Alpha, if present, is ignored.
func ParseRGB(css string) (RGB, bool) {
	m := rgbPattern.FindStringSubmatch(strings.TrimSpace(css))
	if m == nil {
		return RGB{}, false
	}
	var ch [3]int
	for i := range ch {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return RGB{}, false
		}
		ch[i] = clampChannel(int(math.Round(v)))
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// IsAdjustable reports whether value is a literal color the HSL transform
// can operate on. Empty strings, var() references, transparent and
// currentColor are left alone.
func IsAdjustable(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" || strings.HasPrefix(v, "var(") {
		return false
	}
	return !strings.EqualFold(v, "transparent") && !strings.EqualFold(v, "currentColor")
}

// ApplyHSLAdjustments shifts the hue by hueShift degrees and scales
// saturation and lightness by their multipliers. Values that are not
// adjustable, or that parse as neither hex nor rgb(), are returned
// unchanged. The identity transform returns value untouched.
func ApplyHSLAdjustments(value string, hueShift, saturationMult, lightnessMult float64) string {
	if !IsAdjustable(value) {
		return value
	}
	if hueShift == 0 && saturationMult == 1 && lightnessMult == 1 {
		return value
	}

	hsl, ok := HexToHSL(value)
	if !ok {
		rgb, ok := ParseRGB(value)
		if !ok {
			return value
		}
		hsl = rgb.HSL()
	}

	return HSLToHex(
		hsl.H+hueShift,
		clamp(hsl.S*saturationMult, 0, 100),
		clamp(hsl.L*lightnessMult, 0, 100),
	)
}

// DefaultShadowOpacity is used when the opacity primitive does not parse.
const DefaultShadowOpacity = 0.1

// BuildShadowValue composes "<x> <y> <blur> <spread> <color>" where color
// carries the given opacity as alpha.
func BuildShadowValue(color, opacity, blur, spread, x, y string) string {
	alpha := parseOpacity(opacity)
	return fmt.Sprintf("%s %s %s %s %s", x, y, blur, spread, withAlpha(color, alpha))
}

func parseOpacity(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return DefaultShadowOpacity
	}
	return clamp(v, 0, 1)
}

func withAlpha(color string, alpha float64) string {
	a := strconv.FormatFloat(alpha, 'f', -1, 64)
	c := strings.TrimSpace(color)
	lower := strings.ToLower(c)

	switch {
	case strings.HasPrefix(lower, "hsl(") || strings.HasPrefix(lower, "hsla("):
		if comps, ok := functionComponents(c); ok {
			return fmt.Sprintf("hsl(%s / %s)", comps, a)
		}
	case strings.HasPrefix(lower, "oklch("):
		if comps, ok := functionComponents(c); ok {
			return fmt.Sprintf("oklch(%s / %s)", comps, a)
		}
	case strings.HasPrefix(lower, "rgb"):
		if rgb, ok := ParseRGB(c); ok {
			return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, a)
		}
	default:
		if rgb, ok := HexToRGB(c); ok {
			return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, a)
		}
	}
	return fmt.Sprintf("rgba(0, 0, 0, %s)", a)
}

// functionComponents returns the first three space-joined components of a
// CSS color function, dropping any existing alpha.
func functionComponents(fn string) (string, bool) {
	open := strings.IndexByte(fn, '(')
	if open < 0 || !strings.HasSuffix(fn, ")") {
		return "", false
	}
	inner := fn[open+1 : len(fn)-1]
	if slash := strings.IndexByte(inner, '/'); slash >= 0 {
		inner = inner[:slash]
	}
	fields := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) < 3 {
		return "", false
	}
	return strings.Join(fields[:3], " "), true
}

// ScaleLength multiplies a CSS length ("4px", "0.5rem", "0") by factor,
// keeping the unit. Values that are not simple lengths are returned as is.
func ScaleLength(v string, factor float64) string {
	m := lengthPattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return v
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return v
	}
	scaled := math.Round(n*factor*1000) / 1000
	return strconv.FormatFloat(scaled, 'f', -1, 64) + m[2]
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampChannel(v int) int {
	return max(0, min(255, v))
}
