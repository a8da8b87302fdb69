package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/magicboy5300/exchange/internal/repositories"
	"github.com/magicboy5300/exchange/internal/services"
)

type HistoryHandler struct {
	service *services.HistoryService
	logger  *slog.Logger
}

func NewHistoryHandler(service *services.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{service: service, logger: logger.With("component", "history-handler")}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List()
	if err != nil {
		h.logger.Error("history list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read history")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(chi.URLParam(r, "id")); err != nil {
		h.logger.Error("history delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete history record")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(); err != nil {
		h.logger.Error("history clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HistoryHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("toggle favorite failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle favorite")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
