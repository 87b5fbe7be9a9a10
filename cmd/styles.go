package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindtris/uitheme/internal/colormath"
	"github.com/mindtris/uitheme/internal/css"
	"github.com/mindtris/uitheme/internal/theme"
)

var (
	nameStyle    = lipgloss.NewStyle().Width(28)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"})
	headerStyle  = lipgloss.NewStyle().Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
)

// swatchHex returns a terminal-renderable hex for a CSS color value.
func swatchHex(value string) (string, bool) {
	if rgb, ok := colormath.HexToRGB(value); ok {
		return rgb.Hex(), true
	}
	if rgb, ok := colormath.ParseRGB(value); ok {
		return rgb.Hex(), true
	}
	return "", false
}

// swatch renders a two-cell color block, or blanks for non-colors.
func swatch(value string) string {
	hex, ok := swatchHex(value)
	if !ok {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// renderVariables writes one line per variable in canonical order.
func renderVariables(w io.Writer, title string, vars theme.VariableSet) {
	_, _ = fmt.Fprintln(w, headerStyle.Render(title))
	for _, name := range css.Order(vars) {
		value := vars[name]
		_, _ = fmt.Fprintf(w, "  %s %s %s\n", swatch(value), nameStyle.Render(theme.CSSName(name)), value)
	}
}

// renderDiff colors a unified CSS diff.
func renderDiff(w io.Writer, lines []css.DiffLine) {
	for _, l := range lines {
		switch l.Type {
		case css.LineAddition:
			_, _ = fmt.Fprintln(w, addedStyle.Render("+"+l.Text))
		case css.LineDeletion:
			_, _ = fmt.Fprintln(w, removedStyle.Render("-"+l.Text))
		default:
			_, _ = fmt.Fprintln(w, mutedStyle.Render(" "+l.Text))
		}
	}
}

// presetRow is one line of `uitheme presets`.
func presetRow(key string, p theme.Preset, active bool) string {
	marker := " "
	if active {
		marker = okStyle.Render("*")
	}
	light := p.Styles.Light[theme.VarPrimary]
	dark := p.Styles.Dark[theme.VarPrimary]
	return strings.Join([]string{
		marker,
		swatch(light) + swatch(dark),
		nameStyle.Render(key),
		mutedStyle.Render(p.Label),
	}, " ")
}
