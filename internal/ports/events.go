package ports

import "context"

const (
	// EventLoggedIn is emitted after a successful login populated the session.
	EventLoggedIn = "session.logged_in"
	// EventLoggedOut is emitted after the session was cleared.
	EventLoggedOut = "session.logged_out"
	// EventBookCreated is emitted when the create endpoint succeeded.
	EventBookCreated = "book.created"
	// EventBookUpdated is emitted when the update endpoint succeeded.
	EventBookUpdated = "book.updated"
	// EventBookDeleted is emitted when the delete endpoint succeeded.
	EventBookDeleted = "book.deleted"
	// EventCatalogChanged is the single "data changed" signal emitted after
	// every successful mutation. The book list re-fetches on it.
	EventCatalogChanged = "catalog.changed"
)

// DomainEvent represents a significant occurrence within the application
// layer. Events carry structured payloads that subscribers can use for
// logging or UI updates.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish returns after every handler ran. Implementations must
// be thread-safe because mutations complete on background goroutines.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures are returned
// so publishers can log them and continue delivering to other subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events.
type Subscription interface {
	Unsubscribe()
}
