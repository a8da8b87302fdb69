package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magicboy5300/exchange/internal/models"
	"github.com/magicboy5300/exchange/internal/repositories"
)

// SnapshotHandler copies published rate snapshots into a mirror store.
type SnapshotHandler struct {
	store repositories.SnapshotStore
}

func NewSnapshotHandler(store repositories.SnapshotStore) SnapshotHandler {
	return SnapshotHandler{store: store}
}

func (SnapshotHandler) Type() string {
	return "snapshot"
}

func (SnapshotHandler) Handle(_ context.Context, _, value []byte) (*models.RateSnapshot, error) {
	var snap models.RateSnapshot
	if err := json.Unmarshal(value, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	if snap.UpdatedAt.IsZero() {
		return nil, fmt.Errorf("%w: missing updated_at", models.ErrInvalidSnapshot)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (h SnapshotHandler) Store(ctx context.Context, snap *models.RateSnapshot) error {
	return h.store.Insert(ctx, snap)
}
