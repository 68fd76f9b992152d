package library

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

type messageKind int

const (
	messageError messageKind = iota
	messageSuccess
)

const (
	authFieldUsername = iota
	authFieldPassword
	authFieldCount
)

// authView is the login/register form. Both modes share the inputs and the
// message slot.
type authView struct {
	inputs      []textinput.Model
	focus       int
	registering bool
	message     string
	kind        messageKind
	submitting  bool
}

func newAuthView() authView {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = ""
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return authView{inputs: []textinput.Model{username, password}}
}

func (a authView) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (a authView) credentials() catalog.Credentials {
	return catalog.Credentials{
		Username: strings.TrimSpace(a.inputs[authFieldUsername].Value()),
		Password: a.inputs[authFieldPassword].Value(),
	}
}

func (a *authView) setFocus(index int) {
	a.focus = (index + authFieldCount) % authFieldCount
	for i := range a.inputs {
		if i == a.focus {
			a.inputs[i].Focus()
		} else {
			a.inputs[i].Blur()
		}
	}
}

func (a *authView) setMessage(kind messageKind, text string) {
	a.kind = kind
	a.message = text
}

// toggleMode flips between login and register, clearing the message and the
// password.
func (a *authView) toggleMode() {
	a.registering = !a.registering
	a.message = ""
	a.inputs[authFieldPassword].Reset()
}

// handleAuthKeys handles keys on the authentication screen.
func (m Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+r":
		if m.auth.submitting {
			return m, nil
		}
		m.auth.toggleMode()
		return m, nil

	case "tab", "down":
		m.auth.setFocus(m.auth.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.auth.setFocus(m.auth.focus - 1)
		return m, nil

	case "enter":
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.auth.submitting {
		return m, nil
	}

	creds := m.auth.credentials()
	if err := catalog.Validate(creds); err != nil {
		m.auth.setMessage(messageError, librisErrors.UserMessage(err, catalog.MsgInvalidCredentials))
		return m, nil
	}

	m.auth.submitting = true
	m.auth.message = ""
	if m.auth.registering {
		return m, tea.Batch(m.spinner.Tick, registerCmd(m.requestContext(), m.service, creds))
	}
	return m, tea.Batch(m.spinner.Tick, loginCmd(m.requestContext(), m.service, creds))
}

// authFailureMessage maps a login or register failure to the text shown in
// the message slot.
func authFailureMessage(err error) string {
	if librisErrors.IsNetwork(err) {
		return catalog.MsgConnectFailed
	}
	return librisErrors.UserMessage(err, catalog.MsgInvalidCredentials)
}

func (m Model) renderAuthView() string {
	st := m.styles
	a := m.auth

	heading := "Login"
	action := "enter to sign in"
	switchHint := "ctrl+r: don't have an account? Register"
	if a.registering {
		heading = "Register"
		action = "enter to create account"
		switchHint = "ctrl+r: already have an account? Login"
	}

	labels := []string{"Username", "Password"}
	rows := make([]string, 0, len(a.inputs))
	for i, input := range a.inputs {
		label := st.label.Render(labels[i])
		if i == a.focus {
			label = st.focusLabel.Render(labels[i])
		}
		rows = append(rows, label+" "+input.View())
	}

	parts := []string{st.title.Render("📚 Library · " + heading), ""}
	parts = append(parts, rows...)
	parts = append(parts, "")

	if a.message != "" {
		style := st.failure
		if a.kind == messageSuccess {
			style = st.success
		}
		parts = append(parts, style.Render(a.message), "")
	}

	if a.submitting {
		parts = append(parts, m.spinner.View()+" Please wait...")
	} else {
		parts = append(parts, st.helpKey.Render(action))
	}
	parts = append(parts, st.bookMeta.Render(switchHint))

	return st.panel.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
