package kafka

import (
	"fmt"

	"github.com/IBM/sarama"
)

const clientID = "ticketbottle-counters"

type ProducerConfig struct {
	Brokers      []string
	RetryMax     int
	RequiredAcks int
}

// NewProducer returns a sync producer that hashes message keys to
// partitions, so events of one section land in order on one partition.
func NewProducer(cfg ProducerConfig) (sarama.SyncProducer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = clientID
	saramaCfg.Producer.RequiredAcks = sarama.RequiredAcks(cfg.RequiredAcks)
	saramaCfg.Producer.Retry.Max = cfg.RetryMax
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner

	prod, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer on %v: %w", cfg.Brokers, err)
	}

	return prod, nil
}
