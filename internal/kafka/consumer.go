package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

type Consumer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewConsumer(brokers []string, topic, group string) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}

	logger := slog.Default().With("component", "kafka-consumer", "topic", topic, "group", group)
	logger.Info("kafka consumer initialized")
	return &Consumer{client: client, topic: topic, logger: logger}, nil
}

// Start polls in a goroutine until Stop is called.
func (c *Consumer) Start(handler func(key, value []byte)) {
	go func() {
		for {
			fetches := c.client.PollFetches(context.Background())
			if fetches.IsClientClosed() {
				c.logger.Info("kafka consumer stopped")
				return
			}
			if errs := fetches.Errors(); len(errs) > 0 {
				c.logger.Warn("kafka fetch errors", "errors", fmt.Sprint(errs))
			}
			iter := fetches.RecordIter()
			for !iter.Done() {
				record := iter.Next()
				handler(record.Key, record.Value)
			}
		}
	}()
}

func (c *Consumer) Stop() {
	c.client.Close()
}
