package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader     KafkaReader
	logger     *zap.Logger
	handler    func(context.Context, Event) error
	newBackOff func() backoff.BackOff
}

// handlerBackOff retries a failing handler without giving up; only
// cancelling the context stops it.
func handlerBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0
	return bo
}

// NewConsumer reads topic as part of consumer group groupID.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			Dialer:  kafka.DefaultDialer,
		}),
		logger:     logger.Named("kafka_consumer"),
		newBackOff: handlerBackOff,
	}
}

func (c *Consumer) RegisterHandler(fn func(context.Context, Event) error) {
	c.handler = fn
}

// Run fetches and handles messages until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("Failed to fetch message", zap.Error(err))
			continue
		}
		c.process(ctx, msg)
	}
}

// process hands one message to the handler and commits it. A failing
// handler is retried with backoff until it succeeds or ctx is done, so a
// later offset is never committed past an unhandled event. Messages that
// cannot be parsed are committed so they do not block the partition.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to parse event",
			zap.Error(err),
			zap.ByteString("value", msg.Value),
		)
		c.commit(ctx, msg, "")
		return
	}

	if c.handler != nil {
		bo := handlerBackOff
		if c.newBackOff != nil {
			bo = c.newBackOff
		}
		err := backoff.RetryNotify(func() error {
			return c.handler(ctx, event)
		}, backoff.WithContext(bo(), ctx), func(err error, wait time.Duration) {
			c.logger.Error("Failed to handle event",
				zap.Error(err),
				zap.String("event_type", string(event.Type)),
				zap.Duration("retry_in", wait),
			)
		})
		if err != nil {
			c.logger.Warn("Stopped handling event, leaving it uncommitted",
				zap.Error(err),
				zap.String("event_type", string(event.Type)),
			)
			return
		}
	}
	c.commit(ctx, msg, event.Type)
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message, eventType EventType) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message",
			zap.Error(err),
			zap.String("event_type", string(eventType)),
		)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
