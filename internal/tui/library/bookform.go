package library

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

const (
	msgToastNetworkError = "Network error. Please try again."
	msgToastWentWrong    = "Something went wrong!"
	msgCategoriesFailed  = "Failed to load categories"
	categoryPlaceholder  = "Select category"
)

const (
	formFieldTitle = iota
	formFieldAuthor
	formFieldPages
	formFieldCategory
	formFieldCount
)

// bookForm is the collapsible create form. Categories are re-fetched on every
// open; choice 0 is "no category".
type bookForm struct {
	open       bool
	inputs     []textinput.Model
	focus      int
	categories []catalog.Category
	choice     int
	loadingCat bool
	err        string
	submitting bool
}

func newBookForm() bookForm {
	return bookForm{inputs: []textinput.Model{
		newFieldInput("Book title", 200),
		newFieldInput("Author name", 200),
		newNumericInput("Number of pages"),
	}}
}

func newFieldInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.CharLimit = limit
	return input
}

func newNumericInput(placeholder string) textinput.Model {
	return newFieldInput(placeholder, 6)
}

// parsePages converts the numeric field. Blank or unparsable input becomes
// zero so validation reports it.
func parsePages(value string) int {
	pages, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return pages
}

func (f *bookForm) setFocus(index int) {
	f.focus = (index + formFieldCount) % formFieldCount
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// reset clears every value and the inline error.
func (f *bookForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.choice = 0
	f.err = ""
	f.setFocus(formFieldTitle)
}

func (f bookForm) input() catalog.BookInput {
	input := catalog.BookInput{
		Title:     strings.TrimSpace(f.inputs[formFieldTitle].Value()),
		Author:    strings.TrimSpace(f.inputs[formFieldAuthor].Value()),
		PageCount: parsePages(f.inputs[formFieldPages].Value()),
	}
	if f.choice > 0 && f.choice <= len(f.categories) {
		id := f.categories[f.choice-1].ID
		input.CategoryID = &id
	}
	return input
}

func (f *bookForm) cycleCategory(delta int) {
	options := len(f.categories) + 1
	f.choice = ((f.choice+delta)%options + options) % options
}

func (f bookForm) categoryLabel() string {
	if f.loadingCat {
		return "Loading categories..."
	}
	if f.choice == 0 || f.choice > len(f.categories) {
		return categoryPlaceholder
	}
	return f.categories[f.choice-1].Name
}

// openForm shows the form and fetches categories fresh.
func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.form.open = true
	m.form.loadingCat = true
	m.form.setFocus(formFieldTitle)
	return m, tea.Batch(textinput.Blink, fetchCategoriesCmd(m.requestContext(), m.service))
}

// handleFormKeys handles keys while the create form is open.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.form.submitting {
			return m, nil
		}
		m.form.open = false
		m.form.err = ""
		return m, nil

	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case "enter":
		return m.submitForm()
	}

	if m.form.focus == formFieldCategory {
		switch msg.String() {
		case "left", "h":
			m.form.cycleCategory(-1)
		case "right", "l", " ":
			m.form.cycleCategory(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}

	input := m.form.input()
	if err := catalog.Validate(input); err != nil {
		m.form.err = librisErrors.UserMessage(err, catalog.MsgAddFailed)
		return m, nil
	}

	m.form.err = ""
	m.form.submitting = true
	return m, tea.Batch(m.spinner.Tick, createBookCmd(m.requestContext(), m.service, input))
}

func (m Model) renderBookForm() string {
	st := m.styles
	f := m.form

	labels := []string{"Title", "Author", "Pages", "Category"}
	rows := make([]string, 0, formFieldCount)
	for i := 0; i < formFieldCount; i++ {
		label := st.label.Render(labels[i])
		if i == f.focus {
			label = st.focusLabel.Render(labels[i])
		}
		value := ""
		if i == formFieldCategory {
			value = st.choice.Render("‹ " + f.categoryLabel() + " ›")
		} else {
			value = f.inputs[i].View()
		}
		rows = append(rows, label+" "+value)
	}

	parts := []string{st.title.Render("Add New Book"), ""}
	parts = append(parts, rows...)
	if f.err != "" {
		parts = append(parts, "", st.inlineErr.Render(f.err))
	}
	parts = append(parts, "")
	if f.submitting {
		parts = append(parts, m.spinner.View()+" Adding...")
	} else {
		parts = append(parts, st.bookMeta.Render("enter: add book • tab: next field • ←/→: category • esc: cancel"))
	}

	return st.panel.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
