package events_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortener-go/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
	closeErr   error
}

func (m *mockPublisher) Publish(topic string, msgs ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.topic = topic
	m.messages = append(m.messages, msgs...)

	return nil
}

func (m *mockPublisher) Close() error {
	return m.closeErr
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("publishes operation event successfully", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := events.NewPublishFunc[events.OperationEvent](mock, events.TopicOperation)

		event := &events.OperationEvent{
			ID:        "op-1",
			Operation: "shorten",
			Outcome:   "ok",
			Backend:   "mongo",
			Code:      "abc123",
			At:        time.Now(),
		}

		err := publish(event)

		require.NoError(t, err)
		assert.Equal(t, events.TopicOperation, mock.topic)
		assert.Len(t, mock.messages, 1)
		assert.Contains(t, string(mock.messages[0].Payload), `"operation":"shorten"`)
		assert.Contains(t, string(mock.messages[0].Payload), `"code":"abc123"`)
	})

	t.Run("publishes fallback event successfully", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := events.NewPublishFunc[events.FallbackEvent](mock, events.TopicFallback)

		event := &events.FallbackEvent{
			ID:      "fb-1",
			Backend: "postgres",
			Reason:  "connection refused",
		}

		err := publish(event)

		require.NoError(t, err)
		assert.Equal(t, events.TopicFallback, mock.topic)
		assert.Contains(t, string(mock.messages[0].Payload), `"backend":"postgres"`)
	})

	t.Run("returns error when publish fails", func(t *testing.T) {
		mock := &mockPublisher{publishErr: errors.New("publish error")}
		publish := events.NewPublishFunc[events.OperationEvent](mock, events.TopicOperation)

		err := publish(&events.OperationEvent{ID: "op-1"})

		assert.Error(t, err)
	})
}

func TestPublisherGroup(t *testing.T) {
	t.Run("returns underlying publisher", func(t *testing.T) {
		mock := &mockPublisher{}
		group := events.NewPublisherGroup(mock)

		assert.Equal(t, mock, group.Publisher())
	})

	t.Run("shuts down successfully", func(t *testing.T) {
		mock := &mockPublisher{}
		group := events.NewPublisherGroup(mock)

		err := group.Shutdown()

		require.NoError(t, err)
	})

	t.Run("returns error when close fails", func(t *testing.T) {
		mock := &mockPublisher{closeErr: errors.New("close error")}
		group := events.NewPublisherGroup(mock)

		err := group.Shutdown()

		assert.Error(t, err)
	})
}
