package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magicboy5300/exchange/internal/models"
)

var (
	ErrClient       = errors.New("rate provider rejected the request")
	ErrServer       = errors.New("rate provider failed")
	ErrMissingRates = errors.New("rate provider response has no rates")
)

const DefaultProviderURL = "https://open.er-api.com/v6/latest"

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 4 << 20

// RatesClient talks to an open.er-api.com compatible endpoint.
type RatesClient struct {
	baseURL string
	http    *http.Client
}

func NewRatesClient(baseURL string, timeout time.Duration) *RatesClient {
	if baseURL == "" {
		baseURL = DefaultProviderURL
	}
	return &RatesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Result    string             `json:"result"`
	BaseCode  string             `json:"base_code"`
	ErrorType string             `json:"error-type"`
	Rates     map[string]float64 `json:"rates"`
}

// LatestRates fetches the current table for base. One request, no retries.
func (c *RatesClient) LatestRates(ctx context.Context, base string) (models.Rates, error) {
	apiURL := c.baseURL + "/" + url.PathEscape(strings.ToUpper(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", ErrClient, resp.StatusCode)
	}

	var result latestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&result); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}

	if result.Result == "error" {
		return nil, fmt.Errorf("%w: %s", ErrClient, result.ErrorType)
	}
	if len(result.Rates) == 0 {
		return nil, ErrMissingRates
	}

	return models.Rates(result.Rates), nil
}
