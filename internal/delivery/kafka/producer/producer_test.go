package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kafka "github.com/vogiaan1904/ticketbottle-counters/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

func TestPublishTicketIssued(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	defer sp.Close()

	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.TopicTicketIssued {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "Deli" {
			return errors.New("wrong key " + string(key))
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var ev kafka.TicketIssuedEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return err
		}
		if ev.Sequence != 4 || ev.Position != 2 || !ev.IsPriority || ev.Timestamp.IsZero() {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewProducer(sp, logger.InitializeTestZapLogger())
	err := p.PublishTicketIssued(context.Background(), kafka.TicketIssuedEvent{
		Section:    "Deli",
		Sequence:   4,
		Name:       "Jane",
		IsPriority: true,
		Position:   2,
		IssuedAt:   time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestPublishTicketCalled_Failure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	defer sp.Close()
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducer(sp, logger.InitializeTestZapLogger())
	err := p.PublishTicketCalled(context.Background(), kafka.TicketCalledEvent{Section: "Bakery", Sequence: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestPublishQueueCleared_Unkeyed(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	defer sp.Close()

	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.TopicQueueCleared {
			return errors.New("wrong topic " + msg.Topic)
		}
		if msg.Key != nil {
			return errors.New("cleared events are not keyed")
		}
		return nil
	})

	p := NewProducer(sp, logger.InitializeTestZapLogger())
	require.NoError(t, p.PublishQueueCleared(context.Background(), kafka.QueueClearedEvent{Sections: []string{"Deli"}}))
}
