package library

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current model state.
func (m Model) View() string {
	var content strings.Builder

	switch m.screen {
	case ScreenAuth:
		content.WriteString(m.renderAuthView())
	default:
		content.WriteString(m.renderLibraryView())
	}

	if toasts := m.toasts.view(m.styles); toasts != "" {
		content.WriteString("\n")
		content.WriteString(toasts)
	}
	return content.String()
}

func (m Model) renderLibraryView() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.form.open {
		content.WriteString(m.renderBookForm())
		content.WriteString("\n")
	}

	if m.rows.confirm != nil {
		content.WriteString(m.renderConfirm())
		content.WriteString("\n")
	}

	content.WriteString(m.renderBookList())
	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	return content.String()
}

// renderHeader renders the title, the welcome line and the theme toggle.
func (m Model) renderHeader() string {
	st := m.styles
	mode := m.themeMode()

	title := lipgloss.JoinHorizontal(lipgloss.Top,
		st.title.Render("📚 Library Management"),
		st.themeTag.Render(mode.Icon()+" "+mode.Label()),
	)
	welcome := st.welcome.Render("Welcome, " + m.username)

	return st.header.Width(max(m.width-2, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, title, welcome))
}

func (m Model) renderFooter() string {
	st := m.styles

	var hints []string
	switch {
	case m.rows.confirm != nil:
		hints = []string{"y confirm", "n cancel"}
	case m.rows.edit != nil:
		hints = []string{"enter save", "tab next", "esc cancel"}
	case m.form.open:
		hints = []string{"enter add", "tab next", "esc cancel"}
	default:
		hints = []string{"↑/↓ move", "a add", "e edit", "d delete", "r refresh", "t theme", "L logout", "q quit"}
	}

	busy := m.selectedDeleting()
	rendered := make([]string, 0, len(hints))
	for _, hint := range hints {
		key, desc, _ := strings.Cut(hint, " ")
		if busy && (key == "e" || key == "d") {
			rendered = append(rendered, st.bookMeta.Render(hint))
			continue
		}
		rendered = append(rendered, st.helpKey.Render(key)+" "+desc)
	}
	return st.footer.Render(strings.Join(rendered, "  "))
}

// selectedDeleting reports whether the highlighted book has a delete in flight.
func (m Model) selectedDeleting() bool {
	book, ok := m.list.selected()
	return ok && m.rows.deleting[book.ID]
}
