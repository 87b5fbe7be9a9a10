package engine

import (
	"fmt"

	"github.com/mindtris/uitheme/internal/theme"
)

// Kind discriminates theme requests.
type Kind int

const (
	KindPreset Kind = iota + 1
	KindImported
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPreset:
		return "preset"
	case KindImported:
		return "imported"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Request names the theme to apply.
type Request struct {
	Kind     Kind
	Preset   string
	Imported theme.ModeStyles
	Artifact *theme.Artifact
}

// PresetRequest applies a built-in preset by key.
func PresetRequest(key string) Request {
	return Request{Kind: KindPreset, Preset: key}
}

// ImportedRequest applies raw light/dark styles.
func ImportedRequest(styles theme.ModeStyles) Request {
	return Request{Kind: KindImported, Imported: styles}
}

// CustomRequest applies a custom theme artifact.
func CustomRequest(a *theme.Artifact) Request {
	return Request{Kind: KindCustom, Artifact: a}
}

// RequestFor turns a validated import into a request.
func RequestFor(imp theme.Imported) Request {
	if imp.Kind == theme.ImportArtifact {
		return CustomRequest(imp.Artifact)
	}
	return ImportedRequest(imp.Styles)
}

func (r Request) String() string {
	switch r.Kind {
	case KindPreset:
		return "preset:" + r.Preset
	case KindCustom:
		if r.Artifact == nil {
			return "custom:<nil>"
		}
		return r.Artifact.SelectionKey()
	case KindImported:
		return fmt.Sprintf("imported:%d/%d", len(r.Imported.Light), len(r.Imported.Dark))
	default:
		return "unknown"
	}
}
