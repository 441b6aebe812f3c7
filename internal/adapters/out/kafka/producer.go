// Package kafka publishes order status changes and refund requests to Kafka
// topics through a synchronous sarama producer.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

// SaramaProducer sends keyed messages and waits for the broker ack.
type SaramaProducer struct {
	producer sarama.SyncProducer
	logger   *slog.Logger
}

// NewSaramaProducer connects to the brokers. Every message is acknowledged by
// all in-sync replicas before SendMessage returns.
func NewSaramaProducer(brokers []string, logger *slog.Logger) (*SaramaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Idempotent = true
	config.Producer.Retry.Max = 3
	config.Net.MaxOpenRequests = 1
	config.Producer.Timeout = 5 * time.Second

	prod, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewSaramaProducerFrom(prod, logger), nil
}

// NewSaramaProducerFrom wraps an existing producer.
func NewSaramaProducerFrom(producer sarama.SyncProducer, logger *slog.Logger) *SaramaProducer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SaramaProducer{producer: producer, logger: logger.With("component", "kafka_producer")}
}

func (p *SaramaProducer) Publish(ctx context.Context, topic, key string, value []byte, headers map[string]string) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	p.logger.DebugContext(ctx, "message stored",
		"topic", topic, "key", key, "partition", partition, "offset", offset)
	return nil
}

func (p *SaramaProducer) Close() error {
	return p.producer.Close()
}
