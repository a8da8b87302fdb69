package handlers

import (
	"net/http"

	"github.com/magicboy5300/exchange/internal/services"
)

type RatesHandler struct {
	service *services.RateService
}

func NewRatesHandler(service *services.RateService) *RatesHandler {
	return &RatesHandler{service: service}
}

// GetRates always answers 200 with a flat code -> rate object.
func (h *RatesHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	result := h.service.Acquire(r.Context())

	w.Header().Set("X-Rates-Source", result.Source)
	writeJSON(w, http.StatusOK, result.Rates)
}
