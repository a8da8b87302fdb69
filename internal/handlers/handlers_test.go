package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicboy5300/exchange/internal/logger"
	"github.com/magicboy5300/exchange/internal/models"
	"github.com/magicboy5300/exchange/internal/repositories"
	"github.com/magicboy5300/exchange/internal/services"
)

// memFavorites is an in-memory favorites store keyed by id.
type memFavorites struct {
	mu      sync.Mutex
	records map[string]models.ConversionRecord
	failAll error
}

func newMemFavorites() *memFavorites {
	return &memFavorites{records: map[string]models.ConversionRecord{}}
}

func (m *memFavorites) List(context.Context) ([]models.ConversionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	out := []models.ConversionRecord{}
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (m *memFavorites) Upsert(_ context.Context, rec models.ConversionRecord) (*models.ConversionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	m.records[rec.ID] = rec
	return &rec, nil
}

func (m *memFavorites) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	delete(m.records, id)
	return nil
}

type stubSource struct {
	name  string
	rates models.Rates
	err   error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(context.Context) (*models.RateSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RateSnapshot{BaseCurrency: "USD", Rates: s.rates}, nil
}

type testEnv struct {
	server    *httptest.Server
	favorites *memFavorites
}

func newTestEnv(t *testing.T, favStore services.FavoritesStore, sources ...services.RateSource) *testEnv {
	t.Helper()
	log := logger.Discard()

	rateService := services.NewRateService(sources, services.NewStaticSource(), 0, log)

	favorites := services.NewFavorites(favStore)

	historyStore, err := repositories.NewHistoryStore(filepath.Join(t.TempDir(), "history.db"), 50)
	require.NoError(t, err)
	t.Cleanup(func() { historyStore.Close() })
	history := services.NewHistoryService(historyStore, favorites, log)

	ratesHandler := NewRatesHandler(rateService)
	favHandler := NewFavoritesHandler(favorites, log)
	convertHandler := NewConvertHandler(services.NewConversionService(rateService, history, log), log)
	historyHandler := NewHistoryHandler(history, log)

	r := chi.NewRouter()
	r.Get("/api/rates", ratesHandler.GetRates)
	r.Get("/api/convert", convertHandler.Convert)
	r.Get("/api/favorites", favHandler.List)
	r.Post("/api/favorites", favHandler.Save)
	r.Delete("/api/favorites/{id}", favHandler.Delete)
	r.Get("/api/history", historyHandler.List)
	r.Delete("/api/history", historyHandler.Clear)
	r.Delete("/api/history/{id}", historyHandler.Delete)
	r.Post("/api/history/{id}/favorite", historyHandler.ToggleFavorite)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv}
	if m, ok := favStore.(*memFavorites); ok {
		env.favorites = m
	}
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestGetRates_FromSource(t *testing.T) {
	env := newTestEnv(t, nil, stubSource{name: "cache", rates: models.Rates{"USD": 1, "EUR": 0.91}})

	resp, body := env.do(t, http.MethodGet, "/api/rates", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cache", resp.Header.Get("X-Rates-Source"))
	assert.JSONEq(t, `{"USD":1,"EUR":0.91}`, string(body))
}

func TestGetRates_AlwaysOK(t *testing.T) {
	env := newTestEnv(t, nil, stubSource{name: "cache", err: errors.New("down")})

	resp, body := env.do(t, http.MethodGet, "/api/rates", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "static", resp.Header.Get("X-Rates-Source"))

	var rates map[string]float64
	require.NoError(t, json.Unmarshal(body, &rates))
	assert.Equal(t, 1.0, rates["USD"])
	assert.Equal(t, 148.5, rates["JPY"])
}

func TestFavorites_DegradedMode(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodGet, "/api/favorites", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, _ = env.do(t, http.MethodPost, "/api/favorites", models.ConversionRecord{ID: "1", FromCurrency: "USD", ToCurrency: "EUR"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/favorites/1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFavorites_UnreachableListIsEmpty(t *testing.T) {
	store := newMemFavorites()
	store.failAll = errors.New("connection refused")
	env := newTestEnv(t, store)

	resp, body := env.do(t, http.MethodGet, "/api/favorites", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, _ = env.do(t, http.MethodPost, "/api/favorites", models.ConversionRecord{ID: "1", FromCurrency: "USD", ToCurrency: "EUR"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestFavorites_UpsertConvergesAndListsNewestFirst(t *testing.T) {
	env := newTestEnv(t, newMemFavorites())

	older := models.ConversionRecord{ID: "1000", FromCurrency: "usd", ToCurrency: "EUR", FromAmount: 10, ToAmount: 9.2, Rate: 0.92, Timestamp: 1000, IsFavorite: true}
	newer := models.ConversionRecord{ID: "2000", FromCurrency: "CNY", ToCurrency: "JPY", FromAmount: 1, ToAmount: 20.48, Rate: 20.4828, Timestamp: 2000, IsFavorite: true}

	for i := 0; i < 3; i++ {
		resp, body := env.do(t, http.MethodPost, "/api/favorites", older)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stored models.ConversionRecord
		require.NoError(t, json.Unmarshal(body, &stored))
		assert.Equal(t, "USD", stored.FromCurrency)
	}
	resp, _ := env.do(t, http.MethodPost, "/api/favorites", newer)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := env.do(t, http.MethodGet, "/api/favorites", nil)
	var list []models.ConversionRecord
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 2, "repeated upserts keep one record per id")
	assert.Equal(t, "2000", list[0].ID)
	assert.Equal(t, "1000", list[1].ID)
}

func TestFavorites_DeleteIsIdempotent(t *testing.T) {
	env := newTestEnv(t, newMemFavorites())

	for i := 0; i < 2; i++ {
		resp, body := env.do(t, http.MethodDelete, "/api/favorites/does-not-exist", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true}`, string(body))
	}
}

func TestFavorites_RejectsInvalidBody(t *testing.T) {
	env := newTestEnv(t, newMemFavorites())

	resp, _ := env.do(t, http.MethodPost, "/api/favorites", map[string]interface{}{"fromCurrency": "USD"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/favorites", models.ConversionRecord{ID: "1", FromCurrency: "USD", ToCurrency: "EUR", FromAmount: -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/api/favorites", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestConvert_Endpoint(t *testing.T) {
	env := newTestEnv(t, nil, stubSource{name: "cache", rates: models.Rates{"USD": 1, "EUR": 0.92, "CNY": 7.25}})

	resp, body := env.do(t, http.MethodGet, "/api/convert?amount=100&from=cny&to=EUR", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec models.ConversionRecord
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Equal(t, "CNY", rec.FromCurrency)
	assert.InDelta(t, 12.6897, rec.ToAmount, 1e-4)
	assert.Equal(t, 0.92/7.25, rec.Rate)

	_, body = env.do(t, http.MethodGet, "/api/history", nil)
	var history []models.ConversionRecord
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
}

func TestConvert_BadRequests(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{
		"/api/convert?amount=100&from=XXX&to=USD",
		"/api/convert?amount=-3&from=USD&to=EUR",
		"/api/convert?amount=0&from=USD&to=EUR",
		"/api/convert?amount=abc&from=USD&to=EUR",
		"/api/convert?amount=1&from=USD",
	} {
		resp, _ := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestConvert_SmallRateIsNotRoundedToZero(t *testing.T) {
	env := newTestEnv(t, newMemFavorites())

	resp, body := env.do(t, http.MethodGet, "/api/convert?amount=1000000&from=VND&to=USD", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec models.ConversionRecord
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.InDelta(t, 1/24600.0, rec.Rate, 1e-12)
	assert.InDelta(t, 40.6504, rec.ToAmount, 1e-4)

	resp, _ = env.do(t, http.MethodPost, "/api/history/"+rec.ID+"/favorite", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	favs, err := env.favorites.List(context.Background())
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, rec.Rate, favs[0].Rate)
}

func TestConvert_ZeroAmountIsNotRecorded(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.do(t, http.MethodGet, "/api/convert?amount=0&from=USD&to=EUR", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body := env.do(t, http.MethodGet, "/api/history", nil)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHistory_ToggleFavoriteWritesThrough(t *testing.T) {
	env := newTestEnv(t, newMemFavorites())

	_, body := env.do(t, http.MethodGet, "/api/convert?amount=10&from=USD&to=EUR", nil)
	var rec models.ConversionRecord
	require.NoError(t, json.Unmarshal(body, &rec))

	resp, body := env.do(t, http.MethodPost, "/api/history/"+rec.ID+"/favorite", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled models.ConversionRecord
	require.NoError(t, json.Unmarshal(body, &toggled))
	assert.True(t, toggled.IsFavorite)

	favs, _ := env.favorites.List(context.Background())
	require.Len(t, favs, 1)
	assert.Equal(t, rec.ID, favs[0].ID)

	// deleting the history entry leaves the favorite alone
	resp, _ = env.do(t, http.MethodDelete, "/api/history/"+rec.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	favs, _ = env.favorites.List(context.Background())
	assert.Len(t, favs, 1)

	resp, _ = env.do(t, http.MethodPost, "/api/history/missing/favorite", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHistory_Clear(t *testing.T) {
	env := newTestEnv(t, nil)

	env.do(t, http.MethodGet, "/api/convert?amount=10&from=USD&to=EUR", nil)
	resp, _ := env.do(t, http.MethodDelete, "/api/history", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := env.do(t, http.MethodGet, "/api/history", nil)
	assert.JSONEq(t, `[]`, string(body))
}
