package validation

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/theme"
)

// ValidateImportedTheme checks a {light, dark} theme: both modes must be
// objects holding the required variables as valid colors. Keys may carry a
// leading "--". Accepts decoded JSON (map[string]any) or theme.ModeStyles.
func ValidateImportedTheme(raw any) Result {
	obj, ok := asObject(raw)
	if !ok {
		return Invalid("Theme must be an object")
	}
	for _, mode := range theme.Modes() {
		if _, present := obj[string(mode)]; !present {
			return Invalid("Theme must have light and dark properties")
		}
	}
	for _, mode := range theme.Modes() {
		vars, ok := asObject(obj[string(mode)])
		if !ok {
			return Invalid("Theme %s property must be an object", mode)
		}
		for _, name := range theme.RequiredVariables {
			v, present := lookupVariable(vars, name)
			if !present {
				return Invalid("Missing required variable %q in %s mode", name, mode)
			}
			s, isString := v.(string)
			if !isString {
				return Invalid("Variable %q in %s mode must be a string", name, mode)
			}
			if r := ValidateColorValue(s); !r.IsValid {
				return Invalid("Invalid %q in %s mode: %s", name, mode, r.Error)
			}
		}
	}
	return Valid()
}

// ValidateCustomThemeArtifact checks a custom theme artifact. Raw input
// (decoded JSON) gets shape checks first; the typed artifact then goes
// through the struct rules and, for imported bases, ValidateImportedTheme.
func ValidateCustomThemeArtifact(raw any) Result {
	switch a := raw.(type) {
	case *theme.Artifact:
		if a == nil {
			return Invalid("Artifact must be an object")
		}
		return validateTypedArtifact(a)
	case theme.Artifact:
		return validateTypedArtifact(&a)
	}

	obj, ok := asObject(raw)
	if !ok {
		return Invalid("Artifact must be an object")
	}
	if r := validateArtifactShape(obj); !r.IsValid {
		return r
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return Invalid("Artifact cannot be encoded: %v", err)
	}
	var a theme.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return Invalid("Artifact cannot be decoded: %v", err)
	}
	return validateTypedArtifact(&a)
}

// ParseArtifact decodes and validates artifact JSON.
func ParseArtifact(data []byte) (*theme.Artifact, Result) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Invalid("Invalid JSON: %v", err)
	}
	if r := ValidateCustomThemeArtifact(raw); !r.IsValid {
		log.Debug(log.CatValidate, "Artifact rejected", "error", r.Error)
		return nil, r
	}
	var a theme.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, Invalid("Invalid artifact: %v", err)
	}
	return &a, Valid()
}

func validateArtifactShape(obj map[string]any) Result {
	version, ok := asNumber(obj["version"])
	if !ok {
		return Invalid("Artifact version is required")
	}
	if version != theme.ArtifactVersion {
		return Invalid("Unsupported artifact version %v (expected %d)", obj["version"], theme.ArtifactVersion)
	}

	name, ok := obj["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return Invalid("Artifact name must be a non-empty string")
	}

	base, ok := asObject(obj["base"])
	if !ok {
		return Invalid("Artifact base must be an object")
	}
	switch base["type"] {
	case string(theme.BasePreset):
		value, ok := base["value"].(string)
		if !ok || value == "" {
			return Invalid("Preset base requires a string value")
		}
	case string(theme.BaseImported):
		t, present := base["theme"]
		if !present {
			return Invalid("Imported base requires a theme")
		}
		if r := ValidateImportedTheme(t); !r.IsValid {
			return Invalid("Imported base theme is invalid: %s", r.Error)
		}
	default:
		return Invalid("Artifact base type must be %q or %q", theme.BasePreset, theme.BaseImported)
	}

	overrides, ok := asObject(obj["overrides"])
	if !ok {
		return Invalid("Artifact overrides must be an object")
	}
	for _, key := range []string{"light", "dark", "other"} {
		sub, present := overrides[key]
		if !present || sub == nil {
			continue
		}
		m, ok := asObject(sub)
		if !ok {
			return Invalid("Overrides %s must be an object", key)
		}
		for name, v := range m {
			if _, isString := v.(string); !isString {
				return Invalid("Override %q in %s must be a string", name, key)
			}
		}
	}
	return Valid()
}

func validateTypedArtifact(a *theme.Artifact) Result {
	if r := validateStruct(a); !r.IsValid {
		return r
	}
	if a.Base.Type == theme.BaseImported {
		if r := ValidateImportedTheme(*a.Base.Theme); !r.IsValid {
			return Invalid("Imported base theme is invalid: %s", r.Error)
		}
	}
	return Valid()
}

// ValidateVariable checks a single edited variable using the rule that fits
// its name. Unknown names must still be non-empty.
func ValidateVariable(name, value string) Result {
	name = theme.NormalizeName(name)
	switch {
	case theme.IsColorVariable(name), name == theme.VarField:
		return ValidateColorValue(value)
	case name == theme.VarRadius:
		return ValidateRadiusValue(value)
	case name == theme.VarSpacing:
		return ValidateSpacingValue(value)
	case name == theme.VarTrackingNormal:
		return ValidateTrackingValue(value)
	case name == theme.VarHueShift:
		return ValidateHSLValue(value, HSLHue)
	case name == theme.VarSaturationMult:
		return ValidateHSLValue(value, HSLSaturation)
	case name == theme.VarLightnessMult:
		return ValidateHSLValue(value, HSLLightness)
	case strings.HasPrefix(name, "font-"):
		return ValidateFontValue(value)
	}

	if kind, ok := strings.CutPrefix(name, "shadow-"); ok && theme.IsKnob(name) {
		return ValidateShadowValue(value, kind)
	}
	if strings.TrimSpace(value) == "" {
		return Invalid("Value for %q cannot be empty", name)
	}
	if strings.ContainsAny(value, ";{}") {
		return Invalid("Value for %q contains invalid characters", name)
	}
	return Valid()
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case theme.VariableSet:
		return stringMap(m), m != nil
	case map[string]string:
		return stringMap(m), m != nil
	case theme.ModeStyles:
		return map[string]any{"light": m.Light, "dark": m.Dark}, true
	case *theme.ModeStyles:
		if m == nil {
			return nil, false
		}
		return map[string]any{"light": m.Light, "dark": m.Dark}, true
	default:
		return nil, false
	}
}

func stringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func lookupVariable(vars map[string]any, name string) (any, bool) {
	if v, ok := vars[name]; ok {
		return v, true
	}
	v, ok := vars[theme.CSSName(name)]
	return v, ok
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
