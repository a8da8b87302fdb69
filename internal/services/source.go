package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magicboy5300/exchange/internal/kafka"
	"github.com/magicboy5300/exchange/internal/models"
	"github.com/magicboy5300/exchange/internal/repositories"
)

var ErrStale = errors.New("cached snapshot is stale")

// RateSource is one tier of the acquisition chain.
type RateSource interface {
	Name() string
	Fetch(ctx context.Context) (*models.RateSnapshot, error)
}

// CacheSource serves the newest stored snapshot while it is younger than maxAge.
type CacheSource struct {
	name   string
	store  repositories.SnapshotStore
	maxAge time.Duration
	now    func() time.Time
}

func NewCacheSource(name string, store repositories.SnapshotStore, maxAge time.Duration) *CacheSource {
	return &CacheSource{name: name, store: store, maxAge: maxAge, now: time.Now}
}

func (s *CacheSource) Name() string { return s.name }

func (s *CacheSource) Fetch(ctx context.Context) (*models.RateSnapshot, error) {
	snap, err := s.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if age := s.now().Sub(snap.UpdatedAt); age >= s.maxAge {
		return nil, fmt.Errorf("%w: age %s", ErrStale, age.Round(time.Second))
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

type RateProvider interface {
	LatestRates(ctx context.Context, base string) (models.Rates, error)
}

const snapshotKey = "rates:USD"

// ProviderSource fetches fresh rates and writes them through to the store.
// Store and producer are optional.
type ProviderSource struct {
	provider RateProvider
	store    repositories.SnapshotStore
	producer kafka.ProducerInterface
	now      func() time.Time
	logger   *slog.Logger
}

func NewProviderSource(
	provider RateProvider,
	store repositories.SnapshotStore,
	producer kafka.ProducerInterface,
	logger *slog.Logger,
) *ProviderSource {
	return &ProviderSource{
		provider: provider,
		store:    store,
		producer: producer,
		now:      time.Now,
		logger:   logger.With("component", "provider-source"),
	}
}

func (p *ProviderSource) Name() string { return "provider" }

func (p *ProviderSource) Fetch(ctx context.Context) (*models.RateSnapshot, error) {
	rates, err := p.provider.LatestRates(ctx, models.BaseCurrency)
	if err != nil {
		return nil, err
	}
	if _, ok := rates[models.BaseCurrency]; !ok {
		rates[models.BaseCurrency] = 1
	}

	snap := &models.RateSnapshot{
		BaseCurrency: models.BaseCurrency,
		Rates:        rates,
		UpdatedAt:    p.now().UTC(),
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	if p.store != nil {
		if err := p.store.Insert(ctx, snap); err != nil {
			p.logger.Error("failed to cache rates", "error", err)
		}
	}
	if p.producer != nil {
		p.producer.PublishObjectAsync([]byte(snapshotKey), snap)
	}

	return snap, nil
}

// StaticSource is the last tier. It has no failure mode.
type StaticSource struct {
	rates models.Rates
}

func NewStaticSource() StaticSource {
	return StaticSource{rates: models.Rates{
		"USD": 1,
		"CNY": 7.25,
		"EUR": 0.92,
		"GBP": 0.79,
		"JPY": 148.50,
		"HKD": 7.82,
		"KRW": 1320.00,
		"SGD": 1.34,
		"AUD": 1.52,
		"CAD": 1.36,
		"TRY": 30.50,
		"CHF": 0.88,
		"INR": 83.00,
		"RUB": 91.50,
		"NZD": 1.63,
		"THB": 35.80,
		"VND": 24600,
		"MYR": 4.78,
	}}
}

func (s StaticSource) Name() string { return "static" }

func (s StaticSource) Rates() models.Rates { return s.rates.Clone() }
