package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magicboy5300/exchange/internal/repositories"
)

// NamedStore pairs a snapshot store with the name used in logs.
type NamedStore struct {
	Name  string
	Store repositories.SnapshotStore
}

// RetentionPruner trims every configured snapshot store to its newest keep
// entries.
type RetentionPruner struct {
	stores   []NamedStore
	keep     int
	interval time.Duration
	logger   *slog.Logger
}

func NewRetentionPruner(stores []NamedStore, keep int, interval time.Duration, logger *slog.Logger) *RetentionPruner {
	return &RetentionPruner{
		stores:   stores,
		keep:     keep,
		interval: interval,
		logger:   logger.With("component", "retention"),
	}
}

func (p *RetentionPruner) Start(ctx context.Context) {
	if p.keep <= 0 || p.interval <= 0 || len(p.stores) == 0 {
		p.logger.Info("retention disabled")
		return
	}
	p.logger.Info("retention pruner started", "interval", p.interval, "keep", p.keep)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				p.logger.Warn("retention pass failed", "error", err)
			}

		case <-ctx.Done():
			p.logger.Info("retention pruner stopped")
			return
		}
	}
}

// RunOnce prunes each store and joins the failures. A failing store does not
// stop the others.
func (p *RetentionPruner) RunOnce(ctx context.Context) error {
	if p.keep <= 0 {
		return nil
	}

	var errs []error
	for _, s := range p.stores {
		removed, err := s.Store.Prune(ctx, p.keep)
		if err != nil {
			errs = append(errs, fmt.Errorf("prune %s: %w", s.Name, err))
			continue
		}
		if removed > 0 {
			p.logger.Info("pruned snapshots", "store", s.Name, "removed", removed)
		}
	}
	return errors.Join(errs...)
}
