package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/libris/internal/logger"
	"github.com/alexisbeaulieu97/libris/internal/ports"
)

type testEvent struct {
	Type string
	Data map[string]interface{}
}

func (e testEvent) EventType() string   { return e.Type }
func (e testEvent) Payload() interface{} { return e.Data }

func newTestPublisher(t *testing.T, buf *bytes.Buffer) *LoggingPublisher {
	t.Helper()
	log, err := logger.New(logger.Options{Writer: buf, Level: "debug", Component: "publisher"})
	require.NoError(t, err)
	return NewLoggingPublisher(log)
}

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := newTestPublisher(t, buf)

	ctx := ports.WithCorrelationID(context.Background(), "abc-123")
	err := publisher.Publish(ctx, testEvent{
		Type: ports.EventBookCreated,
		Data: map[string]interface{}{"book_id": 7},
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "domain event", entry["message"])
	require.Equal(t, ports.EventBookCreated, entry["event_type"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.Equal(t, float64(7), entry["book_id"])
}

func TestLoggingPublisherInvokesSubscribersOfType(t *testing.T) {
	t.Parallel()

	publisher := newTestPublisher(t, &bytes.Buffer{})

	var changed, deleted int
	_, err := publisher.Subscribe(ports.EventCatalogChanged, func(context.Context, ports.DomainEvent) error {
		changed++
		return nil
	})
	require.NoError(t, err)
	_, err = publisher.Subscribe(ports.EventBookDeleted, func(context.Context, ports.DomainEvent) error {
		deleted++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), testEvent{Type: ports.EventCatalogChanged}))
	require.Equal(t, 1, changed)
	require.Equal(t, 0, deleted)
}

func TestLoggingPublisherUnsubscribe(t *testing.T) {
	t.Parallel()

	publisher := NewLoggingPublisher(nil)

	var calls int
	sub, err := publisher.Subscribe(ports.EventCatalogChanged, func(context.Context, ports.DomainEvent) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, publisher.SubscriberCount(ports.EventCatalogChanged))

	sub.Unsubscribe()
	sub.Unsubscribe()
	require.Equal(t, 0, publisher.SubscriberCount(ports.EventCatalogChanged))

	require.NoError(t, publisher.Publish(context.Background(), testEvent{Type: ports.EventCatalogChanged}))
	require.Equal(t, 0, calls)
}

func TestLoggingPublisherContinuesAfterHandlerError(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := newTestPublisher(t, buf)

	var second bool
	_, _ = publisher.Subscribe(ports.EventCatalogChanged, func(context.Context, ports.DomainEvent) error {
		return errors.New("boom")
	})
	_, _ = publisher.Subscribe(ports.EventCatalogChanged, func(context.Context, ports.DomainEvent) error {
		second = true
		return nil
	})

	require.NoError(t, publisher.Publish(context.Background(), testEvent{Type: ports.EventCatalogChanged}))
	require.True(t, second)
	require.Contains(t, buf.String(), "event handler failed")
}
