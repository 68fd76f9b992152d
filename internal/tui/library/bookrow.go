package library

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

const editFieldCount = 3

// rowEdit is the inline edit state of one row.
type rowEdit struct {
	id     int64
	inputs []textinput.Model
	focus  int
	err    string
	saving bool
}

// bookRows tracks per-row state that outlives a list re-fetch: the open
// edit, a pending delete confirmation, deletes in flight and inline errors.
type bookRows struct {
	edit     *rowEdit
	confirm  *catalog.Book
	deleting map[int64]bool
	errors   map[int64]string
}

func newBookRows() bookRows {
	return bookRows{
		deleting: make(map[int64]bool),
		errors:   make(map[int64]string),
	}
}

func newRowEdit(book catalog.Book) *rowEdit {
	title := newFieldInput("Title", 200)
	title.SetValue(book.Title)
	author := newFieldInput("Author", 200)
	author.SetValue(book.Author)
	pages := newNumericInput("Pages")
	pages.SetValue(fmt.Sprintf("%d", book.PageCount))

	edit := &rowEdit{id: book.ID, inputs: []textinput.Model{title, author, pages}}
	edit.setFocus(0)
	return edit
}

func (e *rowEdit) setFocus(index int) {
	e.focus = (index + editFieldCount) % editFieldCount
	for i := range e.inputs {
		if i == e.focus {
			e.inputs[i].Focus()
		} else {
			e.inputs[i].Blur()
		}
	}
}

// update returns the full editable field set.
func (e *rowEdit) update() catalog.BookUpdate {
	return catalog.BookUpdate{
		Title:     strings.TrimSpace(e.inputs[0].Value()),
		Author:    strings.TrimSpace(e.inputs[1].Value()),
		PageCount: parsePages(e.inputs[2].Value()),
	}
}

// startEdit opens inline editing on the selected row.
func (m Model) startEdit() (tea.Model, tea.Cmd) {
	book, ok := m.list.selected()
	if !ok || m.rows.deleting[book.ID] {
		return m, nil
	}
	m.rows.edit = newRowEdit(book)
	delete(m.rows.errors, book.ID)
	return m, textinput.Blink
}

// handleEditKeys handles keys while a row is being edited.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	edit := m.rows.edit

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if edit.saving {
			return m, nil
		}
		m.rows.edit = nil
		return m, nil

	case "tab", "down":
		edit.setFocus(edit.focus + 1)
		return m, nil

	case "shift+tab", "up":
		edit.setFocus(edit.focus - 1)
		return m, nil

	case "enter":
		if edit.saving {
			return m, nil
		}
		update := edit.update()
		if err := catalog.Validate(update); err != nil {
			edit.err = librisErrors.UserMessage(err, catalog.MsgUpdateFailed)
			return m, nil
		}
		edit.err = ""
		edit.saving = true
		return m, tea.Batch(m.spinner.Tick, updateBookCmd(m.requestContext(), m.service, edit.id, update))
	}

	var cmd tea.Cmd
	edit.inputs[edit.focus], cmd = edit.inputs[edit.focus].Update(msg)
	return m, cmd
}

// askDelete opens the confirmation prompt for the selected row.
func (m Model) askDelete() (tea.Model, tea.Cmd) {
	book, ok := m.list.selected()
	if !ok || m.rows.deleting[book.ID] {
		return m, nil
	}
	m.rows.confirm = &book
	return m, nil
}

// handleConfirmKeys answers the delete prompt. Only an explicit yes issues a
// request.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	book := m.rows.confirm

	switch msg.String() {
	case "y", "Y":
		m.rows.confirm = nil
		m.rows.deleting[book.ID] = true
		delete(m.rows.errors, book.ID)
		return m, tea.Batch(m.spinner.Tick, deleteBookCmd(m.requestContext(), m.service, book.ID))

	case "n", "N", "esc", "q":
		m.rows.confirm = nil
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	return m, nil
}

// failureToast is the notification pushed alongside an inline error.
func failureToast(err error) string {
	if librisErrors.IsNetwork(err) {
		return msgToastNetworkError
	}
	return msgToastWentWrong
}

func failureMessage(err error, fallback string) string {
	if librisErrors.IsNetwork(err) {
		return catalog.MsgNetworkError
	}
	return librisErrors.UserMessage(err, fallback)
}

// renderBookRow renders one book, read-only or in edit mode.
func (m Model) renderBookRow(index int, selected bool) string {
	st := m.styles
	book := m.list.books[index]

	var body string
	if edit := m.rows.edit; edit != nil && edit.id == book.ID {
		body = m.renderRowEdit(edit)
	} else {
		title := st.bookTitle.Render(book.Title)
		if m.rows.deleting[book.ID] {
			title = m.spinner.View() + " " + title
		}
		meta := st.bookMeta.Render(fmt.Sprintf("by %s · %d pages", book.Author, book.PageCount))
		if name := book.CategoryName(); name != "" {
			meta += " " + st.badge.Render(name)
		}
		lines := []string{title, meta}
		if m.rows.deleting[book.ID] {
			lines = append(lines, st.bookMeta.Render("Deleting... edit and delete unavailable"))
		}
		if msg := m.rows.errors[book.ID]; msg != "" {
			lines = append(lines, st.inlineErr.Render(msg))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if selected {
		return st.selectedItem.Render(body)
	}
	return st.item.Render(body)
}

func (m Model) renderRowEdit(edit *rowEdit) string {
	st := m.styles
	labels := []string{"Title", "Author", "Pages"}
	lines := make([]string, 0, editFieldCount+2)
	for i, input := range edit.inputs {
		label := st.label.Render(labels[i])
		if i == edit.focus {
			label = st.focusLabel.Render(labels[i])
		}
		lines = append(lines, label+" "+input.View())
	}
	if edit.err != "" {
		lines = append(lines, st.inlineErr.Render(edit.err))
	}
	if edit.saving {
		lines = append(lines, m.spinner.View()+" Saving...")
	} else {
		lines = append(lines, st.bookMeta.Render("enter: save • esc: cancel"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderConfirm() string {
	st := m.styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		st.confirmTitle.Render("Delete book"),
		catalog.ConfirmDeleteMessage(m.rows.confirm.Title),
		"",
		st.helpKey.Render("y")+" delete   "+st.helpKey.Render("n")+" keep",
	)
	return st.confirmBox.Render(content)
}
