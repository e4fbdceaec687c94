package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Rangdog/hanbin/internal/domain/event"
	"github.com/Rangdog/hanbin/internal/domain/port"
	pkgkafka "github.com/Rangdog/hanbin/pkg/kafka"
)

var (
	_ port.EventPublisher = (*OrderEventPublisher)(nil)
	_ port.EventPublisher = (*LogPublisher)(nil)
)

// MessageProducer is the subset of pkg/kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// OrderEventPublisher implements port.EventPublisher by writing each event to
// the topic named after its type, keyed by order ID so that events of one
// order stay ordered within a partition.
type OrderEventPublisher struct {
	producer    MessageProducer
	topicPrefix string
	logger      *slog.Logger
}

// NewOrderEventPublisher creates a publisher. topicPrefix is prepended to the
// event type to form the topic name and may be empty.
func NewOrderEventPublisher(producer MessageProducer, topicPrefix string, logger *slog.Logger) *OrderEventPublisher {
	return &OrderEventPublisher{producer: producer, topicPrefix: topicPrefix, logger: logger}
}

// Publish serialises and sends domain events to Kafka.
func (p *OrderEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	byTopic := make(map[string][]pkgkafka.Message)
	var topics []string

	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		topic := p.topicPrefix + evt.EventType()
		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"company_id", evt.CompanyID(),
			"topic", topic,
			"payload_size", len(payload),
		)

		if _, seen := byTopic[topic]; !seen {
			topics = append(topics, topic)
		}
		byTopic[topic] = append(byTopic[topic], pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
				"company_id": evt.CompanyID(),
			},
		})
	}

	for _, topic := range topics {
		if err := p.producer.Publish(ctx, topic, byTopic[topic]...); err != nil {
			return fmt.Errorf("publish events to topic %s: %w", topic, err)
		}
	}
	return nil
}

// LogPublisher only logs events. It stands in for Kafka in local runs.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		p.logger.InfoContext(ctx, "domain event",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
			"company_id", evt.CompanyID(),
		)
	}
	return nil
}
