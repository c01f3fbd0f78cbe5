package publisher

import (
	"context"
	"encoding/json"

	v1 "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker/v1"
	"github.com/muhammadchandra19/hodlinfo/pkg/config"
	"github.com/muhammadchandra19/hodlinfo/pkg/errors"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// MessageKey keys every sync event so they land on one partition in order.
const MessageKey = "tickers"

// Writer is the subset of *kafka.Writer used by the publisher.
//
//go:generate mockgen -source publisher.go -destination=mock/publisher_mock.go -package=mock
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher publishes sync events to Kafka.
type Publisher struct {
	writer Writer
	topic  string
	logger logger.Interface
}

// NewPublisher creates a Kafka publisher for sync events.
func NewPublisher(cfg config.KafkaConfig, logger logger.Interface) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}

	return NewPublisherWithWriter(writer, cfg.Topic, logger)
}

// NewPublisherWithWriter creates a publisher on an existing writer.
func NewPublisherWithWriter(writer Writer, topic string, logger logger.Interface) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// PublishSynced publishes event.
func (p *Publisher) PublishSynced(ctx context.Context, event *v1.SyncEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return publishError("failed to encode sync event", err)
	}

	msg := kafka.Message{
		Key:   []byte(MessageKey),
		Value: value,
		Time:  event.SyncedAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Event)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, errors.TracerFromError(err),
			logger.Field{Key: "topic", Value: p.topic},
			logger.Field{Key: "stored", Value: event.Stored},
		)
		return publishError("failed to publish sync event", err)
	}

	p.logger.DebugContext(ctx, "Published sync event", logger.Field{
		Key:   "topic",
		Value: p.topic,
	})

	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func publishError(message string, err error) error {
	return errors.NewErrorDetails(message+": "+err.Error(), string(errors.PublishError), "kafka").Wrap(err)
}
