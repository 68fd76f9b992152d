package theme

import "github.com/charmbracelet/lipgloss"

// Palette describes the semantic colour slots used by the views.
type Palette struct {
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Surface   lipgloss.Color
	BadgeFg   lipgloss.Color
	BadgeBg   lipgloss.Color
	SuccessBg lipgloss.Color
	DangerBg  lipgloss.Color
}

// LightPalette mirrors the light visual class.
func LightPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#2563eb"), // blue-600
		Accent:    lipgloss.Color("#4f46e5"), // indigo-600
		Success:   lipgloss.Color("#15803d"), // green-700
		Danger:    lipgloss.Color("#b91c1c"), // red-700
		Warning:   lipgloss.Color("#a16207"), // yellow-700
		Text:      lipgloss.Color("#111827"), // gray-900
		Muted:     lipgloss.Color("#6b7280"), // gray-500
		Border:    lipgloss.Color("#d1d5db"), // gray-300
		Surface:   lipgloss.Color("#f9fafb"), // gray-50
		BadgeFg:   lipgloss.Color("#1d4ed8"), // blue-700
		BadgeBg:   lipgloss.Color("#dbeafe"), // blue-100
		SuccessBg: lipgloss.Color("#dcfce7"), // green-100
		DangerBg:  lipgloss.Color("#fee2e2"), // red-100
	}
}

// DarkPalette mirrors the dark visual class.
func DarkPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#60a5fa"), // blue-400
		Accent:    lipgloss.Color("#818cf8"), // indigo-400
		Success:   lipgloss.Color("#4ade80"), // green-400
		Danger:    lipgloss.Color("#f87171"), // red-400
		Warning:   lipgloss.Color("#facc15"), // yellow-400
		Text:      lipgloss.Color("#f9fafb"), // gray-50
		Muted:     lipgloss.Color("#9ca3af"), // gray-400
		Border:    lipgloss.Color("#4b5563"), // gray-600
		Surface:   lipgloss.Color("#1f2937"), // gray-800
		BadgeFg:   lipgloss.Color("#bfdbfe"), // blue-200
		BadgeBg:   lipgloss.Color("#1e3a8a"), // blue-900
		SuccessBg: lipgloss.Color("#14532d"), // green-900
		DangerBg:  lipgloss.Color("#7f1d1d"), // red-900
	}
}

// PaletteFor returns the palette of a visual class.
func PaletteFor(class string) Palette {
	if class == ClassDark {
		return DarkPalette()
	}
	return LightPalette()
}
