package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits order lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer  messageWriter
	logger  *zap.Logger
	timeout time.Duration
}

func NewKafkaProducer(brokers, topic string, logger *zap.Logger) (*KafkaProducer, error) {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no kafka brokers in %q", brokers)
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(addrs...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return newKafkaProducer(writer, logger), nil
}

func newKafkaProducer(w messageWriter, logger *zap.Logger) *KafkaProducer {
	return &KafkaProducer{
		writer:  w,
		logger:  logger,
		timeout: 10 * time.Second,
	}
}

// Publish keys messages by order so one order's events stay on one partition.
func (p *KafkaProducer) Publish(ctx context.Context, event OrderEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal order event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("ORDER#%d", event.OrderID)),
		Value: eventBytes,
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish order event",
			zap.String("event_id", event.EventID),
			zap.String("type", string(event.Type)),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Order event published",
		zap.String("event_id", event.EventID),
		zap.String("type", string(event.Type)),
		zap.Int("order_id", event.OrderID))
	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NopPublisher drops every event; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }
func (NopPublisher) Close() error { return nil }
