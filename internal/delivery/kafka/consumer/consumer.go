package consumer

import (
	"context"
	"sync"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/ticketbottle-counters/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counters/internal/service"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

// Consumer turns kiosk and counter-desk commands from Kafka into service
// calls. Commands that fail are logged and committed; they are not retried.
type Consumer struct {
	consGr sarama.ConsumerGroup
	svc    service.CounterService
	l      logger.Logger
	wg     sync.WaitGroup
}

func NewConsumer(
	consGr sarama.ConsumerGroup,
	svc service.CounterService,
	l logger.Logger,
) *Consumer {
	return &Consumer{
		consGr: consGr,
		svc:    svc,
		l:      l,
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	switch msg.Topic {
	case kafka.TopicTicketRequested:
		return c.HandleTicketRequested(ctx, msg)
	case kafka.TopicCallRequested:
		return c.HandleCallRequested(ctx, msg)
	default:
		c.l.Warnf(ctx, "Unknown topic %s", msg.Topic)
		return nil
	}
}

func (c *Consumer) Start(ctx context.Context) {
	topics := []string{kafka.TopicTicketRequested, kafka.TopicCallRequested}
	c.wg.Go(func() {
		for {
			if err := c.consGr.Consume(ctx, topics, c); err != nil {
				c.l.Errorf(ctx, "delivery.kafka.consumer.Start: %v", err)
			}

			if ctx.Err() != nil {
				c.l.Infof(ctx, "delivery.kafka.consumer.Start: %v", ctx.Err())
				return
			}
		}
	})

	c.wg.Go(func() {
		for err := range c.consGr.Errors() {
			c.l.Errorf(ctx, "delivery.kafka.consumer.Start: %v", err)
		}
	})

	c.l.Infof(ctx, "Consumer is consuming topics: %v", topics)
}

func (c *Consumer) Close() error {
	if err := c.consGr.Close(); err != nil {
		return err
	}

	c.wg.Wait()
	return nil
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "Consumer group session started")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "Consumer group session ended")
	return nil
}

func (c *Consumer) ConsumeClaim(ss sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			if err := c.processMessage(ss.Context(), message); err != nil {
				c.l.Errorf(ss.Context(), "delivery.kafka.consumer.ConsumeClaim: topic %s offset %d: %v",
					message.Topic, message.Offset, err)
			}

			ss.MarkMessage(message, "")

		case <-ss.Context().Done():
			return nil
		}
	}
}
