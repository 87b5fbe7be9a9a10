package css

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mindtris/uitheme/internal/theme"
)

// LineType marks a line in a Diff.
type LineType int

const (
	LineContext LineType = iota
	LineDeletion
	LineAddition
)

// DiffLine is a single line of a rendered CSS diff.
type DiffLine struct {
	Type LineType
	Text string
}

// Diff renders both themes as CSS and compares them line by line.
func Diff(from, to theme.ModeStyles) []DiffLine {
	return DiffText(Render(from), Render(to))
}

// DiffText compares two CSS texts line by line.
func DiffText(from, to string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out []DiffLine
	for _, d := range diffs {
		lt := LineContext
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			lt = LineDeletion
		case diffmatchpatch.DiffInsert:
			lt = LineAddition
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Type: lt, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// Changed reports whether any line in the diff was added or deleted.
func Changed(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Type != LineContext {
			return true
		}
	}
	return false
}

// Unified formats a diff with "-", "+" and " " line prefixes.
func Unified(lines []DiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		switch l.Type {
		case LineDeletion:
			b.WriteString("-")
		case LineAddition:
			b.WriteString("+")
		default:
			b.WriteString(" ")
		}
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	return b.String()
}
