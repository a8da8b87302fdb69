package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magicboy5300/exchange/internal/models"

	"github.com/redis/go-redis/v9"
)

const snapshotsKey = "rates:snapshots"

// RedisSnapshotStore keeps snapshots in a sorted set scored by UpdatedAt in
// milliseconds, so the newest member is always at the top.
type RedisSnapshotStore struct {
	redis *redis.Client
	key   string
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{redis: client, key: snapshotsKey}
}

func (r *RedisSnapshotStore) Insert(ctx context.Context, snap *models.RateSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return r.redis.ZAdd(ctx, r.key, redis.Z{
		Score:  float64(snap.UpdatedAt.UnixMilli()),
		Member: data,
	}).Err()
}

func (r *RedisSnapshotStore) Latest(ctx context.Context) (*models.RateSnapshot, error) {
	members, err := r.redis.ZRevRange(ctx, r.key, 0, 0).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrNoSnapshot
	}

	var snap models.RateSnapshot
	if err := json.Unmarshal([]byte(members[0]), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (r *RedisSnapshotStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	// ranks are ascending, so everything below the top keep members goes
	return r.redis.ZRemRangeByRank(ctx, r.key, 0, int64(-keep-1)).Result()
}
