// Package css reads and writes theme variables as CSS text: a ":root" block
// for light mode and a ".dark" block for dark mode.
package css

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/theme"
)

// Selectors used for the two modes.
const (
	RootSelector = ":root"
	DarkSelector = ".dark"
)

// ErrNoRootBlock is returned when CSS text has no ":root { ... }" block.
var ErrNoRootBlock = errors.New("no :root block found")

var (
	commentPattern     = regexp.MustCompile(`(?s)/\*.*?\*/`)
	rootBlockPattern   = regexp.MustCompile(`(?:^|[\s,}]):root\s*\{([^{}]*)\}`)
	darkBlockPattern   = regexp.MustCompile(`(?:^|[\s,}])\.dark\s*\{([^{}]*)\}`)
	declarationPattern = regexp.MustCompile(`--([A-Za-z0-9_-]+)\s*:\s*([^;]+)`)
)

// Parse extracts light variables from ":root" blocks and dark variables from
// ".dark" blocks. Comments are stripped first and values are trimmed. Later
// declarations win. When there is no ".dark" block, dark mirrors light.
func Parse(text string) (theme.ModeStyles, error) {
	text = commentPattern.ReplaceAllString(text, "")

	light := collect(rootBlockPattern, text)
	if light == nil {
		return theme.ModeStyles{}, ErrNoRootBlock
	}
	dark := collect(darkBlockPattern, text)
	if dark == nil {
		log.Debug(log.CatCSS, "No .dark block, dark mode mirrors :root")
		dark = light.Clone()
	}
	log.Debug(log.CatCSS, "Parsed CSS theme", "light", len(light), "dark", len(dark))
	return theme.ModeStyles{Light: light, Dark: dark}, nil
}

func collect(block *regexp.Regexp, text string) theme.VariableSet {
	matches := block.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	vars := make(theme.VariableSet)
	for _, m := range matches {
		for _, decl := range declarationPattern.FindAllStringSubmatch(m[1], -1) {
			value := strings.TrimSpace(decl[2])
			if value == "" {
				continue
			}
			vars[decl[1]] = value
		}
	}
	return vars
}

// Render writes styles as a ":root" block followed by a ".dark" block.
func Render(styles theme.ModeStyles) string {
	var b strings.Builder
	writeBlock(&b, RootSelector, styles.Light)
	if len(styles.Dark) > 0 {
		b.WriteString("\n")
		writeBlock(&b, DarkSelector, styles.Dark)
	}
	return b.String()
}

// RenderBlock writes a single selector block.
func RenderBlock(selector string, vars theme.VariableSet) string {
	var b strings.Builder
	writeBlock(&b, selector, vars)
	return b.String()
}

func writeBlock(b *strings.Builder, selector string, vars theme.VariableSet) {
	fmt.Fprintf(b, "%s {\n", selector)
	for _, name := range Order(vars) {
		if v := vars[name]; v != "" {
			fmt.Fprintf(b, "  %s: %s;\n", theme.CSSName(name), v)
		}
	}
	b.WriteString("}\n")
}

// Order returns the keys of vars with known variables first in namespace
// order, followed by any other keys sorted.
func Order(vars theme.VariableSet) []string {
	known := theme.AllVariables()
	out := make([]string, 0, len(vars))
	for _, name := range known {
		if _, ok := vars[name]; ok {
			out = append(out, name)
		}
	}
	var extra []string
	for name := range vars {
		if !slices.Contains(known, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
