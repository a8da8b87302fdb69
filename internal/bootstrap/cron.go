package bootstrap

import (
	"context"
	"log/slog"

	"github.com/magicboy5300/exchange/internal/config"
	"github.com/magicboy5300/exchange/internal/cron"
	"github.com/magicboy5300/exchange/internal/kafka"
	"github.com/magicboy5300/exchange/internal/workers"
)

func StartCronJobs(ctx context.Context, cfg *config.Config, stores *Stores, logger *slog.Logger) *cron.RetentionPruner {
	pruner := cron.NewRetentionPruner(stores.Snapshots(), cfg.RetentionKeep, cfg.RetentionInterval, logger)
	go pruner.Start(ctx)
	return pruner
}

// StartWorkers runs the snapshot mirror when both the consumer and the mirror
// store exist.
func StartWorkers(ctx context.Context, kafkaBundle *kafka.KafkaBundle, stores *Stores, logger *slog.Logger) {
	if kafkaBundle == nil || kafkaBundle.MirrorConsumer == nil || stores.Mirror == nil {
		return
	}
	workers.StartSnapshotMirror(ctx, kafkaBundle.MirrorConsumer, stores.Mirror, logger)
}
