package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// LogSink renders operational events as structured log records. It is the
// default destination for both event topics.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a new log-backed event sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) HandleOperation(_ context.Context, event *OperationEvent) error {
	s.logger.Info("operation completed",
		zap.String("id", event.ID),
		zap.String("requestId", event.RequestID),
		zap.String("operation", event.Operation),
		zap.String("outcome", event.Outcome),
		zap.String("backend", event.Backend),
		zap.String("code", event.Code),
		zap.Int64("durationMs", event.DurationMS),
		zap.Time("at", event.At),
	)

	return nil
}

func (s *LogSink) HandleFallback(_ context.Context, event *FallbackEvent) error {
	s.logger.Warn("durable backend abandoned",
		zap.String("id", event.ID),
		zap.String("backend", event.Backend),
		zap.String("reason", event.Reason),
		zap.Time("at", event.At),
	)

	return nil
}

// NewLogSinkGroup builds a consumer group draining both event topics into a
// log sink over the given subscriber.
func NewLogSinkGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	sink := NewLogSink(logger)

	group := NewConsumerGroup(subscriber, logger)
	group.Add(NewConsumer(subscriber, TopicOperation, sink.HandleOperation, logger))
	group.Add(NewConsumer(subscriber, TopicFallback, sink.HandleFallback, logger))

	return group
}
