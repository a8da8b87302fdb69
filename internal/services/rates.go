package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magicboy5300/exchange/internal/models"
	"github.com/magicboy5300/exchange/internal/repositories"
)

// Acquisition is the result of one pass through the chain.
type Acquisition struct {
	Rates  models.Rates
	Source string
}

// RateService walks its sources in order and falls back to the static table.
type RateService struct {
	sources  []RateSource
	fallback StaticSource
	timeout  time.Duration
	logger   *slog.Logger
}

// NewRateService builds the chain. timeout bounds each source; zero disables it.
func NewRateService(sources []RateSource, fallback StaticSource, timeout time.Duration, logger *slog.Logger) *RateService {
	return &RateService{
		sources:  sources,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger.With("component", "rates"),
	}
}

// GetRates never fails. Cancelling ctx does not abort the chain, so a
// provider fetch started for a departed client still lands in the cache.
func (s *RateService) GetRates(ctx context.Context) models.Rates {
	return s.Acquire(ctx).Rates
}

func (s *RateService) Acquire(ctx context.Context) Acquisition {
	base := context.WithoutCancel(ctx)

	for _, src := range s.sources {
		snap, err := s.fetch(base, src)
		if err != nil {
			s.logSourceError(src.Name(), err)
			continue
		}
		s.logger.Debug("rates served", "source", src.Name(), "updated_at", snap.UpdatedAt)
		return Acquisition{Rates: snap.Rates, Source: src.Name()}
	}

	s.logger.Warn("all rate sources failed, serving static table")
	return Acquisition{Rates: s.fallback.Rates(), Source: s.fallback.Name()}
}

func (s *RateService) fetch(ctx context.Context, src RateSource) (*models.RateSnapshot, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return src.Fetch(ctx)
}

func (s *RateService) logSourceError(name string, err error) {
	if errors.Is(err, repositories.ErrNoSnapshot) || errors.Is(err, ErrStale) {
		s.logger.Info("cache miss", "source", name, "reason", err)
		return
	}
	s.logger.Warn("rate source unavailable", "source", name, "error", err)
}

func (s *RateService) SourceNames() []string {
	names := make([]string, 0, len(s.sources)+1)
	for _, src := range s.sources {
		names = append(names, src.Name())
	}
	return append(names, s.fallback.Name())
}
