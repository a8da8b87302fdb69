package repositories

import (
	"context"
	"errors"

	"github.com/magicboy5300/exchange/internal/models"
)

var (
	ErrNoSnapshot = errors.New("no rate snapshot stored")
	ErrNotFound   = errors.New("record not found")
)

// SnapshotStore is an append-only log of rate snapshots.
type SnapshotStore interface {
	Insert(ctx context.Context, snap *models.RateSnapshot) error
	// Latest returns the newest snapshot by UpdatedAt or ErrNoSnapshot.
	Latest(ctx context.Context) (*models.RateSnapshot, error)
	// Prune keeps the newest keep snapshots and reports how many were removed.
	Prune(ctx context.Context, keep int) (int64, error)
}
