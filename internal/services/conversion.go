package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/magicboy5300/exchange/internal/models"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
)

// ConversionService turns user input into a ConversionRecord and keeps it in
// history when history is enabled. Records carry unrounded values; rounding
// happens only where they are displayed.
type ConversionService struct {
	rates   *RateService
	history *HistoryService
	now     func() time.Time
	logger  *slog.Logger
}

func NewConversionService(rates *RateService, history *HistoryService, logger *slog.Logger) *ConversionService {
	return &ConversionService{
		rates:   rates,
		history: history,
		now:     time.Now,
		logger:  logger.With("component", "conversion"),
	}
}

func (s *ConversionService) Convert(ctx context.Context, amount float64, from, to string) (*models.ConversionRecord, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, ErrInvalidAmount
	}

	rates := s.rates.GetRates(ctx)
	for _, code := range []string{from, to} {
		if _, ok := rates[code]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
		}
	}

	now := s.now()
	rec := models.ConversionRecord{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		FromCurrency: from,
		ToCurrency:   to,
		FromAmount:   amount,
		ToAmount:     Convert(amount, from, to, rates),
		Rate:         EffectiveRate(from, to, rates),
		Timestamp:    now.UnixMilli(),
	}

	if s.history != nil {
		if err := s.history.Record(rec); err != nil {
			s.logger.Warn("failed to record history", "id", rec.ID, "error", err)
		}
	}
	return &rec, nil
}
