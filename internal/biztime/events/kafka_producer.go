// Package events publishes biztime change events to Kafka and reads them back.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	CompanyCreated     EventType = "company.created"
	CompanyUpdated     EventType = "company.updated"
	CompanyDeleted     EventType = "company.deleted"
	InvoiceCreated     EventType = "invoice.created"
	InvoiceUpdated     EventType = "invoice.updated"
	InvoiceDeleted     EventType = "invoice.deleted"
	IndustryCreated    EventType = "industry.created"
	IndustryAssociated EventType = "industry.associated"
)

// Event is the JSON document written as the Kafka message value.
type Event struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type pendingEvent struct {
	eventType  EventType
	key        string
	payload    any
	occurredAt time.Time
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes events asynchronously through a bounded queue.
type Producer struct {
	writer    KafkaWriter
	events    chan pendingEvent
	logger    *zap.Logger
	closeChan chan struct{}
	done      chan struct{}
}

// QueueSize bounds the number of events waiting to be written.
const QueueSize = 1000

// NewProducer makes sure topic exists, retrying with bo while the brokers
// come up, and starts the publishing loop.
func NewProducer(ctx context.Context, brokers []string, topic string, logger *zap.Logger, bo backoff.BackOff) (*Producer, error) {
	err := backoff.Retry(func() error {
		return ensureTopic(brokers[0], topic)
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return nil, err
	}

	p := newProducer(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{},
		Topic:    topic,
	}, logger)
	go p.eventLoop()
	return p, nil
}

func newProducer(writer KafkaWriter, logger *zap.Logger) *Producer {
	return &Producer{
		writer:    writer,
		events:    make(chan pendingEvent, QueueSize),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func ensureTopic(broker, topic string) error {
	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return err
	}
	return nil
}

// Produce enqueues an event without blocking; a full queue drops it.
func (p *Producer) Produce(eventType EventType, key string, payload any) {
	select {
	case p.events <- pendingEvent{eventType: eventType, key: key, payload: payload, occurredAt: time.Now().UTC()}:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("key", key),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			for {
				select {
				case event := <-p.events:
					p.sendEvent(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, pending pendingEvent) {
	payload, err := jsonMarshal(pending.payload)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("key", pending.key),
		)
		return
	}
	value, err := jsonMarshal(Event{
		ID:         uuid.NewString(),
		Type:       pending.eventType,
		Key:        pending.key,
		Payload:    payload,
		OccurredAt: pending.occurredAt,
	})
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("key", pending.key),
		)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(pending.key),
		Value:   value,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(pending.eventType)}},
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(pending.eventType)),
			zap.String("key", pending.key),
		)
	}
}

// Close flushes queued events and closes the writer.
func (p *Producer) Close() {
	close(p.closeChan)
	<-p.done
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

// Nop discards every event. It stands in when no brokers are configured.
type Nop struct{}

func (Nop) Produce(EventType, string, any) {}
