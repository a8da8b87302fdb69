package services

import (
	"context"
	"log/slog"

	"github.com/magicboy5300/exchange/internal/models"
)

type HistoryStore interface {
	Add(rec models.ConversionRecord) error
	List() ([]models.ConversionRecord, error)
	Get(id string) (*models.ConversionRecord, error)
	SetFavorite(id string, favorite bool) (*models.ConversionRecord, error)
	Delete(id string) error
	Clear() error
}

// HistoryService owns the local history. Only ToggleFavorite reaches the
// favorites store; recording, deleting and clearing stay local.
type HistoryService struct {
	store     HistoryStore
	favorites Favorites
	logger    *slog.Logger
}

func NewHistoryService(store HistoryStore, favorites Favorites, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		store:     store,
		favorites: favorites,
		logger:    logger.With("component", "history"),
	}
}

func (s *HistoryService) Record(rec models.ConversionRecord) error {
	return s.store.Add(rec)
}

func (s *HistoryService) List() ([]models.ConversionRecord, error) {
	return s.store.List()
}

func (s *HistoryService) Delete(id string) error {
	return s.store.Delete(id)
}

func (s *HistoryService) Clear() error {
	return s.store.Clear()
}

// ToggleFavorite flips the local flag and mirrors it to the favorites store.
// A failed remote write is logged and the local change is kept.
func (s *HistoryService) ToggleFavorite(ctx context.Context, id string) (*models.ConversionRecord, error) {
	current, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.SetFavorite(id, !current.IsFavorite)
	if err != nil {
		return nil, err
	}

	if updated.IsFavorite {
		_, err = s.favorites.Save(ctx, *updated)
	} else {
		err = s.favorites.Remove(ctx, id)
	}
	if err != nil {
		s.logger.Warn("favorite write-through failed", "id", id, "favorite", updated.IsFavorite, "error", err)
	}

	return updated, nil
}
