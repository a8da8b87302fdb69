package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/magicboy5300/exchange/internal/models"
)

// MemorySnapshotStore is a process-local store for single-instance setups and tests.
type MemorySnapshotStore struct {
	mu    sync.RWMutex
	snaps []models.RateSnapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (m *MemorySnapshotStore) Insert(_ context.Context, snap *models.RateSnapshot) error {
	cp := *snap
	cp.Rates = snap.Rates.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps = append(m.snaps, cp)
	return nil
}

func (m *MemorySnapshotStore) Latest(_ context.Context) (*models.RateSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.snaps) == 0 {
		return nil, ErrNoSnapshot
	}
	latest := m.snaps[0]
	for _, s := range m.snaps[1:] {
		if s.UpdatedAt.After(latest.UpdatedAt) {
			latest = s
		}
	}
	latest.Rates = latest.Rates.Clone()
	return &latest, nil
}

func (m *MemorySnapshotStore) Prune(_ context.Context, keep int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	if len(m.snaps) <= keep {
		return 0, nil
	}
	sort.SliceStable(m.snaps, func(i, j int) bool {
		return m.snaps[i].UpdatedAt.After(m.snaps[j].UpdatedAt)
	})
	removed := int64(len(m.snaps) - keep)
	m.snaps = m.snaps[:keep]
	return removed, nil
}

// Len reports the number of stored snapshots.
func (m *MemorySnapshotStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snaps)
}
