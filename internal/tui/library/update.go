package library

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// Authentication
	case LoggedInMsg:
		m.auth.submitting = false
		m.username = msg.Session.Username
		m.logger.Info(m.requestContext(), "signed in", "username", m.username)
		cmd := m.enterLibrary()
		return m, cmd

	case LoginFailedMsg:
		m.auth.submitting = false
		m.auth.setMessage(messageError, authFailureMessage(msg.Err))
		return m, nil

	case RegisteredMsg:
		m.auth.submitting = false
		m.auth.registering = false
		m.auth.inputs[authFieldPassword].Reset()
		m.auth.setMessage(messageSuccess, catalog.MsgRegistrationComplete)
		return m, nil

	case RegisterFailedMsg:
		m.auth.submitting = false
		m.auth.setMessage(messageError, authFailureMessage(msg.Err))
		return m, nil

	case LoggedOutMsg:
		if msg.Err != nil {
			m.logger.Warn(m.requestContext(), "failed to clear stored session", "error", msg.Err)
		}
		cmd := m.leaveLibrary()
		return m, cmd

	// Book list
	case CatalogChangedMsg:
		if m.screen != ScreenLibrary {
			return m, nil
		}
		fetch := m.fetchBooks()
		return m, tea.Batch(m.spinner.Tick, fetch)

	case BooksLoadedMsg:
		m.list.settle()
		if m.screen != ScreenLibrary {
			return m, nil
		}
		m.list.replace(msg.Books)
		if m.rows.edit != nil {
			if _, ok := m.list.find(m.rows.edit.id); !ok {
				m.rows.edit = nil
			}
		}
		return m, nil

	case BooksFailedMsg:
		m.list.settle()
		m.logger.Error(m.requestContext(), "error fetching books", "error", msg.Err)
		return m, nil

	// Create form
	case CategoriesLoadedMsg:
		m.form.loadingCat = false
		m.form.categories = msg.Categories
		if m.form.choice > len(m.form.categories) {
			m.form.choice = 0
		}
		return m, nil

	case CategoriesFailedMsg:
		m.form.loadingCat = false
		m.form.categories = nil
		m.form.choice = 0
		m.logger.Warn(m.requestContext(), "error fetching categories", "error", msg.Err)
		cmd := m.toasts.error(msgCategoriesFailed)
		return m, cmd

	case BookCreatedMsg:
		m.form.submitting = false
		m.form.reset()
		m.form.open = false
		cmd := m.toasts.success(catalog.MsgBookAdded)
		return m, cmd

	case BookCreateFailedMsg:
		m.form.submitting = false
		m.form.err = failureMessage(msg.Err, catalog.MsgAddFailed)
		cmd := m.toasts.error(failureToast(msg.Err))
		return m, cmd

	// Rows
	case BookUpdatedMsg:
		if m.rows.edit != nil && m.rows.edit.id == msg.ID {
			m.rows.edit = nil
		}
		cmd := m.toasts.success(catalog.MsgBookUpdated)
		return m, cmd

	case BookUpdateFailedMsg:
		text := failureMessage(msg.Err, catalog.MsgUpdateFailed)
		if m.rows.edit != nil && m.rows.edit.id == msg.ID {
			m.rows.edit.saving = false
			m.rows.edit.err = text
		} else {
			m.rows.errors[msg.ID] = text
		}
		cmd := m.toasts.error(failureToast(msg.Err))
		return m, cmd

	case BookDeletedMsg:
		delete(m.rows.deleting, msg.ID)
		delete(m.rows.errors, msg.ID)
		cmd := m.toasts.success(catalog.MsgBookDeleted)
		return m, cmd

	case BookDeleteFailedMsg:
		delete(m.rows.deleting, msg.ID)
		m.rows.errors[msg.ID] = failureMessage(msg.Err, catalog.MsgDeleteFailed)
		cmd := m.toasts.error(failureToast(msg.Err))
		return m, cmd

	// Notifications
	case ToastExpiredMsg:
		m.toasts.expire(msg.ID)
		return m, nil

	case ThemeAppliedMsg:
		m.refreshStyles()
		return m, nil
	}

	return m, nil
}

// busy reports whether anything animates the spinner.
func (m Model) busy() bool {
	if m.auth.submitting || m.list.loading() || m.form.submitting || len(m.rows.deleting) > 0 {
		return true
	}
	return m.rows.edit != nil && m.rows.edit.saving
}

// handleKeyPress routes keyboard input to whichever view owns it.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == ScreenAuth {
		return m.handleAuthKeys(msg)
	}
	switch {
	case m.rows.confirm != nil:
		return m.handleConfirmKeys(msg)
	case m.rows.edit != nil:
		return m.handleEditKeys(msg)
	case m.form.open:
		return m.handleFormKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

// handleListKeys handles keys in the book list.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.list.moveUp()
		return m, nil

	case "down", "j":
		m.list.moveDown()
		return m, nil

	case "a":
		return m.openForm()

	case "e", "enter":
		return m.startEdit()

	case "d":
		return m.askDelete()

	case "r":
		fetch := m.fetchBooks()
		return m, tea.Batch(m.spinner.Tick, fetch)

	case "t":
		if m.theme == nil {
			return m, nil
		}
		mode, err := m.theme.Toggle()
		m.refreshStyles()
		if err != nil {
			m.logger.Warn(m.requestContext(), "failed to persist theme", "mode", mode, "error", err)
			cmd := m.toasts.error("Failed to save theme")
			return m, cmd
		}
		return m, nil

	case "L":
		return m, logoutCmd(m.requestContext(), m.service)
	}

	return m, nil
}
