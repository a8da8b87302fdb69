package kafka

type KafkaBundle struct {
	RatesProducer  *Producer
	MirrorConsumer *Consumer
}

// InitKafka builds the snapshot producer and, when withMirror is set, the
// consumer that feeds the mirror store.
func InitKafka(brokers []string, topic, group string, withMirror bool) (*KafkaBundle, error) {
	producer, err := NewProducer(brokers, topic)
	if err != nil {
		return nil, err
	}

	bundle := &KafkaBundle{RatesProducer: producer}
	if !withMirror {
		return bundle, nil
	}

	consumer, err := NewConsumer(brokers, topic, group)
	if err != nil {
		producer.Close()
		return nil, err
	}
	bundle.MirrorConsumer = consumer
	return bundle, nil
}

func (b *KafkaBundle) Close() {
	if b == nil {
		return
	}
	if b.MirrorConsumer != nil {
		b.MirrorConsumer.Stop()
	}
	if b.RatesProducer != nil {
		b.RatesProducer.Close()
	}
}
