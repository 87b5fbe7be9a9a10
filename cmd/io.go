package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mindtris/uitheme/internal/theme"
	"github.com/mindtris/uitheme/internal/validation"
)

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied theme file
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(path string, w io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // exported themes are not secret
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// importedStyles resolves a validated import to its light and dark sets.
func importedStyles(imp theme.Imported) (theme.ModeStyles, error) {
	if imp.Kind != theme.ImportArtifact {
		return imp.Styles, nil
	}
	var out theme.ModeStyles
	for _, mode := range theme.Modes() {
		vars, err := imp.Artifact.Resolve(mode)
		if err != nil {
			return theme.ModeStyles{}, err
		}
		if mode.IsDark() {
			out.Dark = vars
		} else {
			out.Light = vars
		}
	}
	return out, nil
}

// parseFile reads and validates a theme file.
func parseFile(path string, stdin io.Reader) (theme.Imported, error) {
	text, err := readInput(path, stdin)
	if err != nil {
		return theme.Imported{}, err
	}
	imp, res := validation.ParseImport(text)
	if !res.IsValid {
		return theme.Imported{}, res.Err()
	}
	return imp, nil
}
