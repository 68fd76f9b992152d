package library

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/libris/internal/ports"
	"github.com/alexisbeaulieu97/libris/internal/theme"
)

// Relay forwards messages produced outside the bubbletea loop into it. It is
// attached to the running program once it exists.
type Relay struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewRelay creates a relay delivering to send. A nil send drops messages
// until Attach is called.
func NewRelay(send func(tea.Msg)) *Relay {
	return &Relay{send: send}
}

// Attach routes messages to the program.
func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = p.Send
}

// Send delivers msg. It must not be called from inside Update.
func (r *Relay) Send(msg tea.Msg) {
	if r == nil {
		return
	}
	r.mu.RLock()
	send := r.send
	r.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

// subscribeCatalogChanges bridges catalog.changed events into the loop.
// Handlers run on the goroutine that completed the mutation.
func subscribeCatalogChanges(events ports.EventPublisher, relay *Relay) ports.Subscription {
	if events == nil || relay == nil {
		return nil
	}
	sub, err := events.Subscribe(ports.EventCatalogChanged, func(context.Context, ports.DomainEvent) error {
		relay.Send(CatalogChangedMsg{})
		return nil
	})
	if err != nil {
		return nil
	}
	return sub
}

// WatchTheme follows the environment's color scheme and tells the program to
// restyle whenever the applied theme changes. Call the returned function to
// stop watching.
func WatchTheme(store *theme.Store, relay *Relay) (teardown func()) {
	store.OnApply(func(string) {
		// OnApply may fire from inside Update via a toggle; p.Send would block.
		go relay.Send(ThemeAppliedMsg{})
	})
	return store.Watch()
}
