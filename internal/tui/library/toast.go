package library

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultToastTTL is how long a notification stays on screen.
const DefaultToastTTL = 3 * time.Second

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	id   int
	kind toastKind
	text string
}

// toasts is the notification stack, oldest first.
type toasts struct {
	items  []toast
	nextID int
	ttl    time.Duration
}

func (t *toasts) push(kind toastKind, text string) tea.Cmd {
	t.nextID++
	t.items = append(t.items, toast{id: t.nextID, kind: kind, text: text})
	ttl := t.ttl
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return expireToastCmd(t.nextID, ttl)
}

func (t *toasts) success(text string) tea.Cmd { return t.push(toastSuccess, text) }

func (t *toasts) error(text string) tea.Cmd { return t.push(toastError, text) }

func (t *toasts) expire(id int) {
	for i, item := range t.items {
		if item.id == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return
		}
	}
}

// texts returns the visible messages, oldest first.
func (t *toasts) texts() []string {
	out := make([]string, 0, len(t.items))
	for _, item := range t.items {
		out = append(out, item.text)
	}
	return out
}

func (t *toasts) view(st styles) string {
	if len(t.items) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(t.items))
	for _, item := range t.items {
		style := st.toastSuccess
		if item.kind == toastError {
			style = st.toastError
		}
		rendered = append(rendered, style.Render(item.text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
