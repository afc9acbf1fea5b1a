package consumer

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/ticketbottle-counters/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counters/internal/service"
)

func (c *Consumer) HandleTicketRequested(ctx context.Context, message *sarama.ConsumerMessage) error {
	var e kafka.TicketRequestedEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleTicketRequested: %v", err)
		return err
	}

	if _, err := c.svc.RequestTicket(ctx, service.RequestTicketInput{
		Section:    e.Section,
		Name:       e.Name,
		IsPriority: e.IsPriority,
	}); err != nil {
		c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleTicketRequested: %v", err)
		return err
	}

	return nil
}

func (c *Consumer) HandleCallRequested(ctx context.Context, message *sarama.ConsumerMessage) error {
	var e kafka.CallRequestedEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleCallRequested: %v", err)
		return err
	}

	if _, err := c.svc.CallNextTicket(ctx, service.CallNextTicketInput{
		Section: e.Section,
		Counter: e.Counter,
	}); err != nil {
		c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleCallRequested: %v", err)
		return err
	}

	return nil
}
