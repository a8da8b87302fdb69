package workers

import "log/slog"

// MessageSource is satisfied by *kafka.Consumer.
type MessageSource interface {
	Start(handler func(key, value []byte))
}

// StartPassthroughMultiplexer forwards every record to outCh, dropping records
// while the channel is full.
func StartPassthroughMultiplexer(source MessageSource, outCh chan<- Message, logger *slog.Logger) {
	if source == nil || outCh == nil {
		return
	}
	source.Start(func(key, value []byte) {
		select {
		case outCh <- Message{Key: key, Value: value}:
		default:
			logger.Warn("channel full, dropping message", "key", string(key))
		}
	})
}
