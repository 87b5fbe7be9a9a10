package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexPattern   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbPattern   = regexp.MustCompile(`(?i)^rgba?\(\s*(\d{1,3}%?)\s*[,\s]\s*(\d{1,3}%?)\s*[,\s]\s*(\d{1,3}%?)\s*(?:[,/]\s*\d*\.?\d+%?\s*)?\)$`)
	hslPattern   = regexp.MustCompile(`(?i)^hsla?\(\s*-?\d*\.?\d+(?:deg)?\s*[,\s]\s*\d*\.?\d+%\s*[,\s]\s*\d*\.?\d+%\s*(?:[,/]\s*\d*\.?\d+%?\s*)?\)$`)
	oklchPattern = regexp.MustCompile(`(?i)^oklch\(\s*\d*\.?\d+%?\s+\d*\.?\d+\s+\d*\.?\d+(?:deg)?\s*(?:/\s*\d*\.?\d+%?\s*)?\)$`)
	varPattern   = regexp.MustCompile(`^var\(--[A-Za-z0-9_-]+\)$`)

	numberPattern = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

	lengthPattern   = regexp.MustCompile(`^(?:0|\d*\.?\d+(?:px|rem|em|ch|ex|vh|vw|vmin|vmax|%))$`)
	trackingPattern = regexp.MustCompile(`^-?(?:0|\d*\.?\d+(?:em|rem|px))$`)
)

// ValidateColorValue accepts hex (3 or 6 digits), rgb(), rgba(), hsl(),
// hsla(), oklch(), var(--name), transparent and currentColor.
func ValidateColorValue(v string) Result {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return Invalid("Color value cannot be empty")
	case strings.EqualFold(v, "transparent"), strings.EqualFold(v, "currentColor"):
		return Valid()
	case strings.HasPrefix(v, "#"):
		if hexPattern.MatchString(v) {
			return Valid()
		}
		return Invalid("Invalid hex color %q: expected #rgb or #rrggbb", v)
	case rgbPattern.MatchString(v):
		return validateRGBChannels(v)
	case hslPattern.MatchString(v), oklchPattern.MatchString(v), varPattern.MatchString(v):
		return Valid()
	default:
		return Invalid("Invalid color value %q: use hex, rgb(), hsl(), oklch(), var(--name), transparent or currentColor", v)
	}
}

// ValidateRadiusValue requires a non-negative CSS length or 0.
func ValidateRadiusValue(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return Invalid("Radius value cannot be empty")
	}
	return validateLength("Radius", v, false)
}

// ValidateSpacingValue is the radius rule, except empty is allowed.
func ValidateSpacingValue(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return Valid()
	}
	return validateLength("Spacing", v, false)
}

// ValidateTrackingValue accepts a letter-spacing length, which may be negative.
func ValidateTrackingValue(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" || trackingPattern.MatchString(v) {
		return Valid()
	}
	return Invalid("Invalid tracking value %q: expected a length in em, rem or px", v)
}

// Shadow primitive kinds accepted by ValidateShadowValue.
const (
	ShadowColor   = "color"
	ShadowOpacity = "opacity"
	ShadowBlur    = "blur"
	ShadowSpread  = "spread"
	ShadowX       = "x"
	ShadowY       = "y"
)

// ValidateShadowValue checks one shadow primitive. Empty is always valid.
func ValidateShadowValue(v, kind string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return Valid()
	}
	switch kind {
	case ShadowOpacity:
		n, ok := parseNumber(v)
		if !ok {
			return Invalid("Shadow opacity must be a number, got %q", v)
		}
		if n < 0 || n > 1 {
			return Invalid("Shadow opacity must be between 0 and 1, got %s", v)
		}
		return Valid()
	case ShadowColor:
		return ValidateColorValue(v)
	case ShadowX, ShadowY:
		return validateLength("Shadow "+kind, v, true)
	default:
		return validateLength("Shadow "+kind, v, false)
	}
}

// HSL knob kinds accepted by ValidateHSLValue.
const (
	HSLHue        = "hue"
	HSLSaturation = "saturation"
	HSLLightness  = "lightness"
)

// ValidateHSLValue checks a hue shift or a saturation/lightness multiplier.
func ValidateHSLValue(v, kind string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return Valid()
	}
	n, ok := parseNumber(v)
	if !ok {
		return Invalid("%s value must be a number, got %q", knobLabel(kind), v)
	}
	if (kind == HSLSaturation || kind == HSLLightness) && n < 0 {
		return Invalid("%s multiplier cannot be negative", knobLabel(kind))
	}
	return Valid()
}

// ValidateFontValue requires a non-empty font stack without declaration syntax.
func ValidateFontValue(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return Invalid("Font value cannot be empty")
	}
	if strings.ContainsAny(v, ";{}") {
		return Invalid("Font value %q contains invalid characters", v)
	}
	return Valid()
}

// validateRGBChannels bounds each channel to 0-255, or 0-100 for percentages.
func validateRGBChannels(v string) Result {
	for _, ch := range rgbPattern.FindStringSubmatch(v)[1:] {
		digits, pct := strings.CutSuffix(ch, "%")
		n, _ := strconv.Atoi(digits)
		if (pct && n > 100) || n > 255 {
			return Invalid("Invalid rgb color %q: channel %s out of range", v, ch)
		}
	}
	return Valid()
}

// parseNumber accepts plain decimal notation only. strconv.ParseFloat alone
// would also take NaN, Inf and hex floats.
func parseNumber(v string) (float64, bool) {
	if !numberPattern.MatchString(v) {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func validateLength(label, v string, allowNegative bool) Result {
	if rest, neg := strings.CutPrefix(v, "-"); neg {
		if !allowNegative {
			return Invalid("%s value cannot be negative", label)
		}
		v = rest
	}
	if !lengthPattern.MatchString(v) {
		return Invalid("Invalid %s value %q: expected a CSS length (px, rem, em, ch, ex, vh, vw, vmin, vmax, %%) or 0", strings.ToLower(label), v)
	}
	return Valid()
}

func knobLabel(kind string) string {
	switch kind {
	case HSLHue:
		return "Hue"
	case HSLSaturation:
		return "Saturation"
	case HSLLightness:
		return "Lightness"
	default:
		return "HSL"
	}
}
