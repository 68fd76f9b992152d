package theme

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DetectSystem asks the desktop environment for its colour-scheme
// preference. When the desktop gives no answer the terminal background, as
// reported by lipgloss at startup, decides.
func DetectSystem(fallback bool) Detector {
	return func(ctx context.Context) bool {
		if dark, ok := desktopPrefersDark(ctx); ok {
			return dark
		}
		return fallback
	}
}

// TerminalIsDark reports whether the terminal has a dark background. Call it
// before a bubbletea program takes over the terminal.
func TerminalIsDark() bool {
	return lipgloss.HasDarkBackground()
}

func desktopPrefersDark(ctx context.Context) (bool, bool) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	switch runtime.GOOS {
	case "darwin":
		out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
		if err != nil {
			// The key is absent in light mode.
			if _, isExit := err.(*exec.ExitError); isExit {
				return false, true
			}
			return false, false
		}
		return strings.EqualFold(strings.TrimSpace(string(out)), "dark"), true
	case "linux", "freebsd", "openbsd":
		out, err := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
		if err != nil {
			return false, false
		}
		return parseGnomeScheme(string(out))
	default:
		return false, false
	}
}

func parseGnomeScheme(out string) (bool, bool) {
	value := strings.Trim(strings.TrimSpace(out), "'\"")
	switch value {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	default:
		return false, false
	}
}
