package events

import (
	"context"
	"time"

	"hampernest-be/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const producerName = "hampernest-be"

// Publisher writes order events to Kafka. A nil *Publisher is a valid no-op,
// so environments without brokers (tests, local dev) skip wiring entirely.
type Publisher struct {
	w *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        TopicOrders,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish sends one enveloped event keyed by order id. Failures are logged
// and swallowed; order processing never waits on the broker.
func (p *Publisher) Publish(ctx context.Context, eventType, orderID string, payload any) {
	if p == nil {
		return
	}

	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producerName,
		Payload:    MustMarshal(payload),
	}

	err := p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderID),
		Value: MustMarshal(env),
		Time:  env.OccurredAt,
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("event publish failed",
			zap.String("event_type", eventType),
			zap.String("order_id", orderID),
			zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.w.Close()
}
