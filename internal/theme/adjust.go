package theme

import (
	"github.com/mindtris/uitheme/internal/colormath"
)

// ApplyHSLToThemeStyles applies one global hue/saturation/lightness
// transform to every color role in styles. Fonts, radius, shadows, spacing
// and unknown keys pass through untouched. The input is not modified.
func ApplyHSLToThemeStyles(styles VariableSet, hueShift, saturationMult, lightnessMult float64) VariableSet {
	out := make(VariableSet, len(styles))
	for key, value := range styles {
		if value != "" && IsColorVariable(key) {
			out[key] = colormath.ApplyHSLAdjustments(value, hueShift, saturationMult, lightnessMult)
			continue
		}
		out[key] = value
	}
	return out
}
