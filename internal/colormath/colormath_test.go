package colormath

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want HSL
	}{
		{"black", "#000000", HSL{0, 0, 0}},
		{"white short", "#fff", HSL{0, 0, 100}},
		{"red no hash", "ff0000", HSL{0, 100, 50}},
		{"green", "#00ff00", HSL{120, 100, 50}},
		{"blue upper", "#0000FF", HSL{240, 100, 50}},
		{"gray", "#808080", HSL{0, 0, 50.19607843137255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HexToHSL(tt.in)
			require.True(t, ok)
			require.InDelta(t, tt.want.H, got.H, 0.001)
			require.InDelta(t, tt.want.S, got.S, 0.001)
			require.InDelta(t, tt.want.L, got.L, 0.001)
		})
	}
}

func TestHexToHSL_Invalid(t *testing.T) {
	for _, in := range []string{"", "#", "#ff", "#ffff", "#fffff", "#fffffff", "#ggg", "red", "rgb(0,0,0)"} {
		_, ok := HexToHSL(in)
		require.False(t, ok, "input %q", in)
	}
}

func TestHSLToHex(t *testing.T) {
	require.Equal(t, "#ff0000", HSLToHex(0, 100, 50))
	require.Equal(t, "#ff0000", HSLToHex(360, 100, 50))
	require.Equal(t, "#0000ff", HSLToHex(-120, 100, 50), "negative hue wraps")
	require.Equal(t, "#00ff00", HSLToHex(480, 100, 50))
	require.Equal(t, "#ffffff", HSLToHex(0, 0, 150), "lightness clamps to 100")
	require.Equal(t, "#000000", HSLToHex(0, 50, -10), "lightness clamps to 0")
	require.Equal(t, "#808080", HSLToHex(200, -20, 50), "saturation clamps to 0")
}

func TestHexRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := rapid.IntRange(0, 255).Draw(rt, "r")
		g := rapid.IntRange(0, 255).Draw(rt, "g")
		b := rapid.IntRange(0, 255).Draw(rt, "b")
		hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)

		hsl, ok := HexToHSL(hex)
		require.True(rt, ok)
		back, ok := HexToRGB(HSLToHex(hsl.H, hsl.S, hsl.L))
		require.True(rt, ok)

		require.InDelta(rt, r, back.R, 1, "red channel of %s", hex)
		require.InDelta(rt, g, back.G, 1, "green channel of %s", hex)
		require.InDelta(rt, b, back.B, 1, "blue channel of %s", hex)
	})
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"rgb(0,0,0)", RGB{0, 0, 0}, true},
		{"rgb(255, 128, 7)", RGB{255, 128, 7}, true},
		{"rgba(10, 20, 30, 0.5)", RGB{10, 20, 30}, true},
		{"rgb(10 20 30 / 50%)", RGB{10, 20, 30}, true},
		{"RGB(300, 0, 0)", RGB{255, 0, 0}, true},
		{"rgb(1,2)", RGB{}, false},
		{"hsl(0, 0%, 0%)", RGB{}, false},
		{"#000", RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseRGB(tt.in)
		require.Equal(t, tt.ok, ok, "input %q", tt.in)
		require.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestApplyHSLAdjustments_Passthrough(t *testing.T) {
	for _, in := range []string{"", "var(--foo)", "transparent", "currentColor", "oklch(0.5 0.1 180)", "not a color"} {
		require.Equal(t, in, ApplyHSLAdjustments(in, 180, 2, 2), "input %q", in)
	}
}

func TestApplyHSLAdjustments_Identity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := rapid.IntRange(0, 255).Draw(rt, "r")
		g := rapid.IntRange(0, 255).Draw(rt, "g")
		b := rapid.IntRange(0, 255).Draw(rt, "b")

		hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		require.Equal(rt, hex, ApplyHSLAdjustments(hex, 0, 1, 1))

		rgb := fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
		require.Equal(rt, rgb, ApplyHSLAdjustments(rgb, 0, 1, 1))
	})
}

func TestApplyHSLAdjustments_Clamping(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hex := fmt.Sprintf("#%02x%02x%02x",
			rapid.IntRange(0, 255).Draw(rt, "r"),
			rapid.IntRange(0, 255).Draw(rt, "g"),
			rapid.IntRange(0, 255).Draw(rt, "b"))
		shift := rapid.Float64Range(-720, 720).Draw(rt, "shift")

		sat, ok := HexToHSL(ApplyHSLAdjustments(hex, shift, 10, 1))
		require.True(rt, ok)
		require.LessOrEqual(rt, sat.S, 100.0)

		light, ok := HexToHSL(ApplyHSLAdjustments(hex, shift, 1, 10))
		require.True(rt, ok)
		require.LessOrEqual(rt, light.L, 100.0)
	})
}

func TestApplyHSLAdjustments_Transforms(t *testing.T) {
	require.Equal(t, "#00ff00", ApplyHSLAdjustments("#ff0000", 120, 1, 1))
	require.Equal(t, "#808080", ApplyHSLAdjustments("#ff0000", 0, 0, 1.0039))
	require.Equal(t, "#0000ff", ApplyHSLAdjustments("rgb(255, 0, 0)", 240, 1, 1), "rgb input re-encodes as hex")
	require.Equal(t, "#000000", ApplyHSLAdjustments("#3366cc", 0, 1, 0))
}

func TestBuildShadowValue(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		opacity string
		want    string
	}{
		{"hex", "#000000", "0.1", "0px 1px 3px 0px rgba(0, 0, 0, 0.1)"},
		{"short hex", "#fff", "0.25", "0px 1px 3px 0px rgba(255, 255, 255, 0.25)"},
		{"rgb", "rgb(10, 20, 30)", "0.5", "0px 1px 3px 0px rgba(10, 20, 30, 0.5)"},
		{"hsl legacy", "hsl(210, 40%, 20%)", "0.2", "0px 1px 3px 0px hsl(210 40% 20% / 0.2)"},
		{"hsl with alpha", "hsl(210 40% 20% / 0.9)", "0.2", "0px 1px 3px 0px hsl(210 40% 20% / 0.2)"},
		{"oklch", "oklch(0.5 0.1 180)", "0.3", "0px 1px 3px 0px oklch(0.5 0.1 180 / 0.3)"},
		{"unknown falls back to black", "papayawhip", "0.4", "0px 1px 3px 0px rgba(0, 0, 0, 0.4)"},
		{"opacity clamps high", "#000", "4", "0px 1px 3px 0px rgba(0, 0, 0, 1)"},
		{"opacity clamps low", "#000", "-1", "0px 1px 3px 0px rgba(0, 0, 0, 0)"},
		{"opacity unparsable", "#000", "", "0px 1px 3px 0px rgba(0, 0, 0, 0.1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, BuildShadowValue(tt.color, tt.opacity, "3px", "0px", "0px", "1px"))
		})
	}
}

func TestScaleLength(t *testing.T) {
	require.Equal(t, "8px", ScaleLength("4px", 2))
	require.Equal(t, "0.5rem", ScaleLength("0.25rem", 2))
	require.Equal(t, "-2px", ScaleLength("-1px", 2))
	require.Equal(t, "0", ScaleLength("0", 3))
	require.Equal(t, "calc(1px)", ScaleLength("calc(1px)", 2))
}
