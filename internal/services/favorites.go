package services

import (
	"context"
	"errors"

	"github.com/magicboy5300/exchange/internal/models"
)

var ErrFavoritesUnavailable = errors.New("favorites storage is not configured")

type FavoritesStore interface {
	List(ctx context.Context) ([]models.ConversionRecord, error)
	Upsert(ctx context.Context, rec models.ConversionRecord) (*models.ConversionRecord, error)
	Delete(ctx context.Context, id string) error
}

// Favorites has two variants: backed by a store, or unconfigured. The
// unconfigured variant lists nothing and rejects writes with
// ErrFavoritesUnavailable.
type Favorites interface {
	Configured() bool
	List(ctx context.Context) ([]models.ConversionRecord, error)
	Save(ctx context.Context, rec models.ConversionRecord) (*models.ConversionRecord, error)
	Remove(ctx context.Context, id string) error
}

func NewFavorites(store FavoritesStore) Favorites {
	if store == nil {
		return unconfiguredFavorites{}
	}
	return &storedFavorites{store: store}
}

type storedFavorites struct {
	store FavoritesStore
}

func (f *storedFavorites) Configured() bool { return true }

func (f *storedFavorites) List(ctx context.Context) ([]models.ConversionRecord, error) {
	return f.store.List(ctx)
}

// Save upserts by id. Everything in this store is a favorite.
func (f *storedFavorites) Save(ctx context.Context, rec models.ConversionRecord) (*models.ConversionRecord, error) {
	rec.IsFavorite = true
	return f.store.Upsert(ctx, rec)
}

func (f *storedFavorites) Remove(ctx context.Context, id string) error {
	return f.store.Delete(ctx, id)
}

type unconfiguredFavorites struct{}

func (unconfiguredFavorites) Configured() bool { return false }

func (unconfiguredFavorites) List(context.Context) ([]models.ConversionRecord, error) {
	return []models.ConversionRecord{}, nil
}

func (unconfiguredFavorites) Save(context.Context, models.ConversionRecord) (*models.ConversionRecord, error) {
	return nil, ErrFavoritesUnavailable
}

func (unconfiguredFavorites) Remove(context.Context, string) error {
	return ErrFavoritesUnavailable
}
