package validation

import (
	"strings"

	"github.com/mindtris/uitheme/internal/css"
	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/theme"
)

// ParseImport turns pasted text into a validated import. Text starting with
// "{" is a JSON artifact; anything else is CSS with a ":root" block and an
// optional ".dark" block.
func ParseImport(text string) (theme.Imported, Result) {
	text = strings.TrimSpace(text)
	if text == "" {
		return theme.Imported{}, Invalid("Nothing to import")
	}

	if strings.HasPrefix(text, "{") {
		a, r := ParseArtifact([]byte(text))
		if !r.IsValid {
			return theme.Imported{}, r
		}
		log.Debug(log.CatValidate, "Accepted artifact import", "name", a.Name, "base", a.Base.Type)
		return theme.Imported{Kind: theme.ImportArtifact, Artifact: a}, Valid()
	}

	styles, err := css.Parse(text)
	if err != nil {
		return theme.Imported{}, Invalid("Invalid CSS: %v", err)
	}
	styles = styles.Normalized()
	if r := ValidateImportedTheme(styles); !r.IsValid {
		return theme.Imported{}, r
	}
	log.Debug(log.CatValidate, "Accepted CSS import", "light", len(styles.Light), "dark", len(styles.Dark))
	return theme.Imported{Kind: theme.ImportCSS, Styles: styles}, Valid()
}
