package workers

import "context"

// Message is one record taken off a topic.
type Message struct {
	Key   []byte
	Value []byte
}

type WorkerHandler[T any] interface {
	Type() string
	Handle(ctx context.Context, key, value []byte) (*T, error)
	Store(ctx context.Context, item *T) error
}
