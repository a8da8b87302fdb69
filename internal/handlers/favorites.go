package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/magicboy5300/exchange/internal/models"
	"github.com/magicboy5300/exchange/internal/services"
)

type FavoritesHandler struct {
	service  services.Favorites
	validate *validator.Validate
	logger   *slog.Logger
}

func NewFavoritesHandler(service services.Favorites, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "favorites-handler"),
	}
}

// List degrades to [] when the store is missing or failing.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Warn("favorites unavailable, returning empty list", "error", err)
		records = []models.ConversionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *FavoritesHandler) Save(w http.ResponseWriter, r *http.Request) {
	if !h.service.Configured() {
		writeError(w, http.StatusServiceUnavailable, services.ErrFavoritesUnavailable.Error())
		return
	}

	var rec models.ConversionRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	rec.FromCurrency = strings.ToUpper(rec.FromCurrency)
	rec.ToCurrency = strings.ToUpper(rec.ToCurrency)

	if err := h.validate.Struct(rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.service.Save(r.Context(), rec)
	if err != nil {
		h.respondStoreError(w, "save", err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// Delete is idempotent: removing an unknown id still succeeds.
func (h *FavoritesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Remove(r.Context(), id); err != nil {
		h.respondStoreError(w, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *FavoritesHandler) respondStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, services.ErrFavoritesUnavailable) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.logger.Error("favorites "+op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "failed to "+op+" favorite")
}
