package workers

import (
	"context"
	"log/slog"

	"github.com/magicboy5300/exchange/internal/models"
	"github.com/magicboy5300/exchange/internal/repositories"
)

const mirrorBuffer = 100

// StartSnapshotMirror feeds snapshots from source into store until ctx is done.
func StartSnapshotMirror(
	ctx context.Context,
	source MessageSource,
	store repositories.SnapshotStore,
	logger *slog.Logger,
) Worker {
	if source == nil || store == nil {
		return nil
	}

	ch := make(chan Message, mirrorBuffer)
	StartPassthroughMultiplexer(source, ch, logger.With("component", "snapshot-mux"))

	worker := NewGenericWorker[models.RateSnapshot](ch, NewSnapshotHandler(store), logger)
	go worker.Start(ctx)
	return worker
}
