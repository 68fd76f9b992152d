package library

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/libris/internal/theme"
)

// styles holds every lipgloss style derived from the active palette. It is
// rebuilt whenever the applied visual class changes.
type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	welcome  lipgloss.Style
	themeTag lipgloss.Style

	item         lipgloss.Style
	selectedItem lipgloss.Style
	bookTitle    lipgloss.Style
	bookMeta     lipgloss.Style
	badge        lipgloss.Style

	panel      lipgloss.Style
	label      lipgloss.Style
	focusLabel lipgloss.Style
	choice     lipgloss.Style
	inlineErr  lipgloss.Style

	success lipgloss.Style
	failure lipgloss.Style

	toastSuccess lipgloss.Style
	toastError   lipgloss.Style

	confirmBox   lipgloss.Style
	confirmTitle lipgloss.Style

	emptyState lipgloss.Style
	spinner    lipgloss.Style
	footer     lipgloss.Style
	helpKey    lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			PaddingRight(2),
		header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border).
			PaddingBottom(1).
			MarginBottom(1),
		welcome: lipgloss.NewStyle().
			Foreground(p.Text),
		themeTag: lipgloss.NewStyle().
			Foreground(p.Muted).
			PaddingLeft(2),

		item: lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2),
		selectedItem: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Primary),
		bookTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		bookMeta: lipgloss.NewStyle().
			Foreground(p.Muted),
		badge: lipgloss.NewStyle().
			Foreground(p.BadgeFg).
			Background(p.BadgeBg).
			Padding(0, 1),

		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2).
			MarginBottom(1),
		label: lipgloss.NewStyle().
			Foreground(p.Muted).
			Width(10),
		focusLabel: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Width(10),
		choice: lipgloss.NewStyle().
			Foreground(p.Accent),
		inlineErr: lipgloss.NewStyle().
			Foreground(p.Danger),

		success: lipgloss.NewStyle().
			Foreground(p.Success).
			Background(p.SuccessBg).
			Padding(0, 1),
		failure: lipgloss.NewStyle().
			Foreground(p.Danger).
			Background(p.DangerBg).
			Padding(0, 1),

		toastSuccess: lipgloss.NewStyle().
			Foreground(p.Success).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Success).
			Padding(0, 1),
		toastError: lipgloss.NewStyle().
			Foreground(p.Danger).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Danger).
			Padding(0, 1),

		confirmBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(p.Warning).
			Padding(1, 3),
		confirmTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning).
			MarginBottom(1),

		emptyState: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true).
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(2),
		spinner: lipgloss.NewStyle().
			Foreground(p.Primary),
		footer: lipgloss.NewStyle().
			Foreground(p.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Border).
			MarginTop(1),
		helpKey: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
	}
}
