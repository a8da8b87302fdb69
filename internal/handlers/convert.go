package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/magicboy5300/exchange/internal/services"
)

type ConvertHandler struct {
	service *services.ConversionService
	logger  *slog.Logger
}

func NewConvertHandler(service *services.ConversionService, logger *slog.Logger) *ConvertHandler {
	return &ConvertHandler{service: service, logger: logger.With("component", "convert-handler")}
}

// Convert handles GET /api/convert?amount=100&from=CNY&to=EUR.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "query parameters from and to are required")
		return
	}

	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, services.ErrInvalidAmount.Error())
		return
	}

	rec, err := h.service.Convert(r.Context(), amount, from, to)
	switch {
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrUnknownCurrency):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("conversion failed", "from", from, "to", to, "error", err)
		writeError(w, http.StatusInternalServerError, "conversion failed")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
