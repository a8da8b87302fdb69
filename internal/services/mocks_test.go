package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/magicboy5300/exchange/internal/models"
)

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Insert(ctx context.Context, snap *models.RateSnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockSnapshotStore) Latest(ctx context.Context) (*models.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RateSnapshot), args.Error(1)
}

func (m *MockSnapshotStore) Prune(ctx context.Context, keep int) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) LatestRates(ctx context.Context, base string) (models.Rates, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Rates), args.Error(1)
}

type MockFavoritesStore struct {
	mock.Mock
}

func (m *MockFavoritesStore) List(ctx context.Context) ([]models.ConversionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConversionRecord), args.Error(1)
}

func (m *MockFavoritesStore) Upsert(ctx context.Context, rec models.ConversionRecord) (*models.ConversionRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConversionRecord), args.Error(1)
}

func (m *MockFavoritesStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// providerFunc adapts a function to RateProvider.
type providerFunc func(ctx context.Context, base string) (models.Rates, error)

func (f providerFunc) LatestRates(ctx context.Context, base string) (models.Rates, error) {
	return f(ctx, base)
}

// recordingProducer captures PublishObjectAsync calls synchronously.
type recordingProducer struct {
	mu   sync.Mutex
	keys []string
	objs []interface{}
}

func (p *recordingProducer) PublishObjectAsync(key []byte, obj interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, string(key))
	p.objs = append(p.objs, obj)
}

func (p *recordingProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}
