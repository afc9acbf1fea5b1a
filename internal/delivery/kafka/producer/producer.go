package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	kafka "github.com/vogiaan1904/ticketbottle-counters/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

type Producer interface {
	PublishTicketIssued(ctx context.Context, event kafka.TicketIssuedEvent) error
	PublishTicketCalled(ctx context.Context, event kafka.TicketCalledEvent) error
	PublishQueueCleared(ctx context.Context, event kafka.QueueClearedEvent) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
	now  func() time.Time
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
		now:  time.Now,
	}
}

func (p *implProducer) PublishTicketIssued(ctx context.Context, event kafka.TicketIssuedEvent) error {
	event.Timestamp = p.now()
	if err := p.send(ctx, kafka.TopicTicketIssued, event.Section, event, event.Timestamp); err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishTicketIssued: %v", err)
		return err
	}
	return nil
}

func (p *implProducer) PublishTicketCalled(ctx context.Context, event kafka.TicketCalledEvent) error {
	event.Timestamp = p.now()
	if err := p.send(ctx, kafka.TopicTicketCalled, event.Section, event, event.Timestamp); err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishTicketCalled: %v", err)
		return err
	}
	return nil
}

func (p *implProducer) PublishQueueCleared(ctx context.Context, event kafka.QueueClearedEvent) error {
	event.Timestamp = p.now()
	if err := p.send(ctx, kafka.TopicQueueCleared, "", event, event.Timestamp); err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishQueueCleared: %v", err)
		return err
	}
	return nil
}

// send keys messages by section so one section's events stay ordered.
func (p *implProducer) send(ctx context.Context, topic, key string, event any, ts time.Time) error {
	val, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(ts.Format(time.RFC3339)),
			},
		},
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	partition, offset, err := p.prod.SendMessage(msg)
	if err != nil {
		return err
	}

	p.l.Debugf(ctx, "Published %s to partition %d at offset %d", topic, partition, offset)
	return nil
}

func (p *implProducer) Close() error {
	return p.prod.Close()
}
