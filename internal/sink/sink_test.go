package sink

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/utafrali/StorefrontGo/pkg/kafka"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// capturingPublisher records the last publish call instead of writing to a
// broker.
type capturingPublisher struct {
	topic string
	event *pkgkafka.Event
	err   error
	calls int
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event *pkgkafka.Event) error {
	p.calls++
	p.topic = topic
	p.event = event
	return p.err
}

func TestKafkaSink_PublishesItemAddedEvent(t *testing.T) {
	pub := &capturingPublisher{}
	s := NewKafkaSink(pub, "sess-42", newTestLogger())

	s.Notify(context.Background(), "Added to cart", "Wooden Chair")

	require.Equal(t, 1, pub.calls)
	assert.Equal(t, TopicItemAdded, pub.topic)

	require.NotNil(t, pub.event)
	assert.Equal(t, TopicItemAdded, pub.event.EventType)
	assert.Equal(t, "sess-42", pub.event.AggregateID, "events should be keyed by session")
	assert.Equal(t, aggregateTypeCart, pub.event.AggregateType)
	assert.Equal(t, sourceStorefront, pub.event.Source)

	var data itemAddedData
	require.NoError(t, json.Unmarshal(pub.event.Data, &data))
	assert.Equal(t, "sess-42", data.SessionID)
	assert.Equal(t, "Added to cart", data.Title)
	assert.Equal(t, "Wooden Chair", data.Message)
}

func TestKafkaSink_SwallowsPublishError(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker unreachable")}
	s := NewKafkaSink(pub, "sess-42", newTestLogger())

	assert.NotPanics(t, func() {
		s.Notify(context.Background(), "Added to cart", "Wooden Chair")
	})
	assert.Equal(t, 1, pub.calls)
}

func TestKafkaSink_PublishesOncePerNotify(t *testing.T) {
	pub := &capturingPublisher{}
	s := NewKafkaSink(pub, "sess-7", newTestLogger())

	s.Notify(context.Background(), "Added to cart", "Desk")
	s.Notify(context.Background(), "Added to cart", "Lamp")

	assert.Equal(t, 2, pub.calls)
	var data itemAddedData
	require.NoError(t, json.Unmarshal(pub.event.Data, &data))
	assert.Equal(t, "Lamp", data.Message)
}
