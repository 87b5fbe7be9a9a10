package manager

import (
	"fmt"
	"strings"

	"github.com/mindtris/uitheme/internal/theme"
)

// ModeChoice is the user's mode selection. ModeSystem defers to the
// ModePreference.
type ModeChoice string

const (
	ModeSystem ModeChoice = "system"
	ModeLight  ModeChoice = "light"
	ModeDark   ModeChoice = "dark"
)

// ParseModeChoice parses "light", "dark" or "system" (empty means system).
func ParseModeChoice(s string) (ModeChoice, error) {
	switch ModeChoice(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSystem:
		return ModeSystem, nil
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	default:
		return "", fmt.Errorf("invalid mode %q: expected light, dark or system", s)
	}
}

// ChoiceFor returns the explicit choice for dark.
func ChoiceFor(dark bool) ModeChoice {
	if dark {
		return ModeDark
	}
	return ModeLight
}

// ModePreference reports the environment's dark-mode preference.
type ModePreference interface {
	PrefersDark() bool
}

// ModePreferenceFunc adapts a function to ModePreference.
type ModePreferenceFunc func() bool

func (f ModePreferenceFunc) PrefersDark() bool { return f() }

// resolveMode applies explicit-wins: light or dark choices are used as is,
// system asks pref (light when pref is nil).
func resolveMode(choice ModeChoice, pref ModePreference) theme.Mode {
	switch choice {
	case ModeLight:
		return theme.ModeLight
	case ModeDark:
		return theme.ModeDark
	}
	if pref != nil && pref.PrefersDark() {
		return theme.ModeDark
	}
	return theme.ModeLight
}
