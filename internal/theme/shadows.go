package theme

import (
	"math"
	"strconv"
	"strings"

	"github.com/mindtris/uitheme/internal/colormath"
)

// Defaults for shadow primitives absent from a variable set.
const (
	DefaultShadowColor   = "#000000"
	DefaultShadowOpacity = "0.1"
	DefaultShadowBlur    = "3px"
	DefaultShadowSpread  = "0px"
	DefaultShadowX       = "0px"
	DefaultShadowY       = "1px"
)

type shadowStep struct {
	name    string
	offset  float64 // multiplier for x and y
	blur    float64
	opacity float64
}

var shadowSteps = []shadowStep{
	{VarShadow2XS, 1, 1, 0.5},
	{VarShadowXS, 1, 1, 0.5},
	{VarShadowSM, 1, 1, 1},
	{VarShadow, 1, 1, 1},
	{VarShadowMD, 2, 2, 1},
	{VarShadowLG, 4, 4, 1},
	{VarShadowXL, 8, 8, 1},
	{VarShadow2XL, 12, 12, 2.5},
}

// ComposeShadows derives the composite shadow tokens (shadow-2xs through
// shadow-2xl) from the shadow primitives found in vars.
func ComposeShadows(vars VariableSet) VariableSet {
	get := func(name, fallback string) string {
		if v := strings.TrimSpace(vars[name]); v != "" {
			return v
		}
		return fallback
	}
	color := get(VarShadowColor, DefaultShadowColor)
	opacity := get(VarShadowOpacity, DefaultShadowOpacity)
	blur := get(VarShadowBlur, DefaultShadowBlur)
	spread := get(VarShadowSpread, DefaultShadowSpread)
	x := get(VarShadowX, DefaultShadowX)
	y := get(VarShadowY, DefaultShadowY)

	base, err := strconv.ParseFloat(opacity, 64)
	if err != nil {
		base = colormath.DefaultShadowOpacity
	}

	out := make(VariableSet, len(shadowSteps))
	for _, step := range shadowSteps {
		out[step.name] = colormath.BuildShadowValue(
			color,
			strconv.FormatFloat(math.Round(base*step.opacity*1000)/1000, 'f', -1, 64),
			colormath.ScaleLength(blur, step.blur),
			spread,
			colormath.ScaleLength(x, step.offset),
			colormath.ScaleLength(y, step.offset),
		)
	}
	return out
}
