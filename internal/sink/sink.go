// Package sink delivers fire-and-forget UI notifications emitted by the cart
// ledger. Delivery is best effort: a failed notification is logged and
// dropped, never surfaced to the mutation that triggered it.
package sink

import (
	"context"
	"log/slog"

	pkgkafka "github.com/utafrali/StorefrontGo/pkg/kafka"
)

// Sink receives one notification per successful cart add.
type Sink interface {
	Notify(ctx context.Context, title, message string)
}

// Kafka topic and envelope constants for storefront notifications.
const (
	TopicItemAdded = "storefront.cart.item_added"

	aggregateTypeCart = "cart"
	sourceStorefront  = "storefront-state"
)

// itemAddedData is the payload for a cart.item_added event.
type itemAddedData struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}

// Publisher is the producer surface the sink publishes through.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// KafkaSink publishes notifications as storefront events. The producer should
// run in async mode so Notify does not block the mutation path.
type KafkaSink struct {
	producer  Publisher
	sessionID string
	logger    *slog.Logger
}

// NewKafkaSink creates a sink publishing on behalf of the given session.
func NewKafkaSink(producer Publisher, sessionID string, logger *slog.Logger) *KafkaSink {
	return &KafkaSink{producer: producer, sessionID: sessionID, logger: logger}
}

// Notify publishes a cart.item_added event. Errors are logged and dropped.
func (s *KafkaSink) Notify(ctx context.Context, title, message string) {
	data := itemAddedData{SessionID: s.sessionID, Title: title, Message: message}

	event, err := pkgkafka.NewEvent(TopicItemAdded, s.sessionID, aggregateTypeCart, sourceStorefront, data)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create item_added event",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.producer.Publish(ctx, TopicItemAdded, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish item_added event",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
	}
}

// Nop is a Sink that discards every notification. Used in tests and
// standalone mode without a broker.
type Nop struct{}

// Notify implements Sink.
func (Nop) Notify(context.Context, string, string) {}

// Recorder captures notifications for test assertions.
type Recorder struct {
	Titles   []string
	Messages []string
}

// Notify implements Sink.
func (r *Recorder) Notify(_ context.Context, title, message string) {
	r.Titles = append(r.Titles, title)
	r.Messages = append(r.Messages, message)
}
