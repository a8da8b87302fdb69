package workers

import (
	"context"
	"log/slog"
)

type GenericWorker[T any] struct {
	messages <-chan Message
	handler  WorkerHandler[T]
	logger   *slog.Logger
}

type Worker interface {
	Start(ctx context.Context)
}

func NewGenericWorker[T any](
	messages <-chan Message,
	handler WorkerHandler[T],
	logger *slog.Logger,
) *GenericWorker[T] {
	return &GenericWorker[T]{
		messages: messages,
		handler:  handler,
		logger:   logger.With("component", handler.Type()+"-worker"),
	}
}

// Start blocks until ctx is done or the message channel is closed.
func (w *GenericWorker[T]) Start(ctx context.Context) {
	w.logger.Info("worker started")

	for {
		select {
		case msg, ok := <-w.messages:
			if !ok {
				w.logger.Info("worker input closed")
				return
			}
			w.process(ctx, msg)

		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return
		}
	}
}

func (w *GenericWorker[T]) process(ctx context.Context, msg Message) {
	item, err := w.handler.Handle(ctx, msg.Key, msg.Value)
	if err != nil {
		w.logger.Warn("message rejected", "key", string(msg.Key), "error", err)
		return
	}

	if err := w.handler.Store(ctx, item); err != nil {
		w.logger.Error("store failed", "key", string(msg.Key), "error", err)
		return
	}
	w.logger.Debug("message stored", "key", string(msg.Key))
}
