// Package events publishes one record per handled query to Kafka.
package events

import (
	"context"
	"time"

	"frameworks/api_lookout/internal/engine"
	"frameworks/pkg/ctxkeys"
	"frameworks/pkg/logging"

	"github.com/google/uuid"
)

const EventType = "lookout.query.handled"

// Producer is the slice of pkg/kafka.KafkaProducer the publisher needs.
// PublishJSON must not wait for the broker; delivery errors arrive on done.
type Producer interface {
	PublishJSON(ctx context.Context, topic, key string, v any, headers map[string]string, done func(error)) error
	ClusterID() string
}

type ToolEvent struct {
	Tool      string `json:"tool"`
	Status    string `json:"status"`
	Kind      string `json:"kind,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

type QueryEvent struct {
	EventID    string      `json:"event_id"`
	EventType  string      `json:"event_type"`
	RequestID  string      `json:"request_id,omitempty"`
	Query      string      `json:"query"`
	Mode       string      `json:"mode"`
	Tools      []ToolEvent `json:"tools"`
	LLMStatus  string      `json:"llm_status"`
	Errors     int         `json:"errors"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Publisher implements engine.Observer. Events are handed to the producer
// without waiting for delivery; failures are logged and otherwise ignored.
type Publisher struct {
	producer Producer
	topic    string
	logger   logging.Logger
	now      func() time.Time
}

func NewPublisher(producer Producer, topic string, logger logging.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, logger: logger, now: time.Now}
}

func (p *Publisher) QueryHandled(ctx context.Context, query string, result engine.Result) {
	event := NewQueryEvent(ctx, query, result, p.now())
	headers := map[string]string{
		"event_type": EventType,
		"source":     "lookout",
		"cluster_id": p.producer.ClusterID(),
	}
	fields := logging.Fields{
		"topic":    p.topic,
		"event_id": event.EventID,
	}
	err := p.producer.PublishJSON(ctx, p.topic, event.EventID, event, headers, func(err error) {
		if err != nil {
			p.logger.WithError(err).WithFields(fields).Warn("Failed to deliver query event")
		}
	})
	if err != nil {
		p.logger.WithError(err).WithFields(fields).Warn("Failed to publish query event")
	}
}

func NewQueryEvent(ctx context.Context, query string, result engine.Result, at time.Time) QueryEvent {
	tools := make([]ToolEvent, 0, len(result.Tools))
	for _, t := range result.Tools {
		tools = append(tools, ToolEvent{
			Tool:      t.Tool,
			Status:    t.Status,
			Kind:      t.Kind,
			ElapsedMS: t.Elapsed.Milliseconds(),
		})
	}
	errCount := 0
	if result.Document != nil {
		errCount = len(result.Document.Errors())
	}
	return QueryEvent{
		EventID:    uuid.NewString(),
		EventType:  EventType,
		RequestID:  ctxkeys.GetRequestID(ctx),
		Query:      query,
		Mode:       string(result.Mode),
		Tools:      tools,
		LLMStatus:  result.LLMStatus,
		Errors:     errCount,
		ElapsedMS:  result.Elapsed.Milliseconds(),
		OccurredAt: at.UTC(),
	}
}
