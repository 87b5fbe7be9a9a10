package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ArtifactVersion is the only artifact version this package reads or writes.
const ArtifactVersion = 1

// CustomPrefix marks a selection that refers to the stored custom artifact.
const CustomPrefix = "custom:"

// ErrUnknownPreset is returned when a preset key is not a built-in.
var ErrUnknownPreset = errors.New("unknown preset")

// BaseType discriminates the two artifact base forms.
type BaseType string

const (
	BasePreset   BaseType = "preset"
	BaseImported BaseType = "imported"
)

// Base is what an artifact's overrides are layered on.
type Base struct {
	Type  BaseType    `json:"type" validate:"required,oneof=preset imported"`
	Value string      `json:"value,omitempty" validate:"required_if=Type preset"`
	Theme *ModeStyles `json:"theme,omitempty" validate:"required_if=Type imported"`
}

// Resolve returns the base's light/dark styles with keys normalized.
func (b Base) Resolve() (ModeStyles, error) {
	switch b.Type {
	case BasePreset:
		p, ok := LookupPreset(b.Value)
		if !ok {
			return ModeStyles{}, fmt.Errorf("%w: %q", ErrUnknownPreset, b.Value)
		}
		return p.Styles, nil
	case BaseImported:
		if b.Theme == nil {
			return ModeStyles{}, errors.New("imported base has no theme")
		}
		return b.Theme.Normalized(), nil
	default:
		return ModeStyles{}, fmt.Errorf("unknown base type %q", b.Type)
	}
}

// Overrides are the sparse edits layered over a resolved base.
type Overrides struct {
	Light  VariableSet     `json:"light,omitempty"`
	Dark   VariableSet     `json:"dark,omitempty"`
	Other  VariableSet     `json:"other,omitempty"`
	Layout json.RawMessage `json:"layout,omitempty"`
}

// For returns the per-mode override set.
func (o Overrides) For(mode Mode) VariableSet {
	if mode.IsDark() {
		return o.Dark
	}
	return o.Light
}

// Artifact is the portable custom theme: a base plus sparse overrides.
type Artifact struct {
	Version   int       `json:"version" validate:"eq=1"`
	Name      string    `json:"name" validate:"required,has_slug"`
	Base      Base      `json:"base"`
	Overrides Overrides `json:"overrides"`
}

// Knobs returns the HSL transform carried in overrides.other.
func (a *Artifact) Knobs() Knobs {
	return KnobsFrom(a.Overrides.Other)
}

// Slug returns the storage slug derived from the artifact name.
func (a *Artifact) Slug() string {
	return Slug(a.Name)
}

// SelectionKey returns the "custom:<slug>" selection for the artifact.
func (a *Artifact) SelectionKey() string {
	return CustomPrefix + a.Slug()
}

// Resolve computes the artifact's variable set for mode: the base styles,
// adjusted by the artifact's knobs, with overrides[mode] merged on top.
func (a *Artifact) Resolve(mode Mode) (VariableSet, error) {
	base, err := a.AdjustedBase()
	if err != nil {
		return nil, err
	}
	return base.For(mode).Merge(a.Overrides.For(mode).Normalized()), nil
}

// AdjustedBase returns both base modes with the artifact's knobs applied.
func (a *Artifact) AdjustedBase() (ModeStyles, error) {
	base, err := a.Base.Resolve()
	if err != nil {
		return ModeStyles{}, err
	}
	k := a.Knobs()
	return ModeStyles{Light: k.Apply(base.Light), Dark: k.Apply(base.Dark)}, nil
}

// Clone deep-copies the artifact.
func (a *Artifact) Clone() *Artifact {
	if a == nil {
		return nil
	}
	c := *a
	if a.Base.Theme != nil {
		t := a.Base.Theme.Clone()
		c.Base.Theme = &t
	}
	c.Overrides.Light = a.Overrides.Light.Clone()
	c.Overrides.Dark = a.Overrides.Dark.Clone()
	c.Overrides.Other = a.Overrides.Other.Clone()
	if a.Overrides.Layout != nil {
		c.Overrides.Layout = append(json.RawMessage(nil), a.Overrides.Layout...)
	}
	return &c
}

// Slug lowercases name and collapses runs of anything that is not a letter
// or digit into a single "-", trimming dashes at either end.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// Selection is a parsed persisted selection string.
type Selection struct {
	Preset string // set when the selection names a built-in
	Custom string // custom slug when the selection is "custom:<slug>"
}

// IsCustom reports whether the selection refers to a custom artifact.
func (s Selection) IsCustom() bool {
	return s.Custom != ""
}

// String returns the persisted form of s.
func (s Selection) String() string {
	if s.IsCustom() {
		return CustomPrefix + s.Custom
	}
	return s.Preset
}

// ParseSelection splits a persisted selection into preset or custom slug.
func ParseSelection(s string) Selection {
	s = strings.TrimSpace(s)
	if slug, ok := strings.CutPrefix(s, CustomPrefix); ok {
		return Selection{Custom: slug}
	}
	return Selection{Preset: s}
}

// ImportKind discriminates the accepted import formats.
type ImportKind int

const (
	ImportCSS ImportKind = iota + 1
	ImportArtifact
)

func (k ImportKind) String() string {
	switch k {
	case ImportCSS:
		return "css"
	case ImportArtifact:
		return "artifact"
	default:
		return "unknown"
	}
}

// Imported is a validated import: either raw light/dark styles parsed from
// CSS or a custom theme artifact. Values are only built by the importer
// after validation has passed.
type Imported struct {
	Kind     ImportKind
	Styles   ModeStyles
	Artifact *Artifact
}
