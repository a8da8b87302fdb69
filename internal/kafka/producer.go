package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

type ProducerInterface interface {
	PublishObjectAsync(key []byte, obj interface{})
}

type Producer struct {
	topic  string
	client *kgo.Client
	logger *slog.Logger
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	logger := slog.Default().With("component", "kafka-producer", "topic", topic)
	logger.Info("kafka producer initialized")
	return &Producer{topic: topic, client: client, logger: logger}, nil
}

func (p *Producer) Close() {
	p.client.Close()
}

func (p *Producer) Publish(key, value []byte) error {
	msg := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.client.ProduceSync(ctx, msg).FirstErr(); err != nil {
		return err
	}

	p.logger.Debug("published", "key", string(key))
	return nil
}

func (p *Producer) PublishObjectAsync(key []byte, obj interface{}) {
	go func() {
		value, err := json.Marshal(obj)
		if err != nil {
			p.logger.Error("failed to marshal object for kafka", "error", err)
			return
		}

		if err := p.Publish(key, value); err != nil {
			p.logger.Warn("kafka async publish failed", "key", string(key), "error", err)
		}
	}()
}
