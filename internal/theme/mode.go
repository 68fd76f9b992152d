// Package theme manages the persisted light/dark/system preference and the
// visual class applied to the root of the interface.
package theme

import (
	"fmt"
	"strings"
)

// Mode is the user's theme preference.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// Modes lists every preference in toggle order.
var Modes = []Mode{ModeLight, ModeDark, ModeSystem}

// ParseMode converts user input into a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	case ModeSystem:
		return ModeSystem, nil
	default:
		return "", fmt.Errorf("unknown theme %q (expected light, dark or system)", value)
	}
}

// Next returns the mode that follows m in toggle order.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeLight
}

// Icon returns the glyph shown in the theme toggle.
func (m Mode) Icon() string {
	switch m {
	case ModeLight:
		return "☀"
	case ModeDark:
		return "☾"
	default:
		return "◐"
	}
}

// Label returns a capitalised name.
func (m Mode) Label() string {
	switch m {
	case ModeLight:
		return "Light"
	case ModeDark:
		return "Dark"
	default:
		return "System"
	}
}
