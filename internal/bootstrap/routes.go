package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3"

	"github.com/magicboy5300/exchange/internal/middleware"
)

func InitRoutes(
	h *HandlersBundle,
	rateLimiter *limiter.Limiter,
	corsOrigins []string,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Rates-Source", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		if rateLimiter != nil {
			r.Use(middleware.RateLimit(rateLimiter))
		}

		r.Get("/rates", h.RatesHandler.GetRates)
		r.Get("/convert", h.ConvertHandler.Convert)

		r.Get("/favorites", h.FavoritesHandler.List)
		r.Post("/favorites", h.FavoritesHandler.Save)
		r.Delete("/favorites/{id}", h.FavoritesHandler.Delete)

		if h.HistoryHandler != nil {
			r.Get("/history", h.HistoryHandler.List)
			r.Delete("/history", h.HistoryHandler.Clear)
			r.Delete("/history/{id}", h.HistoryHandler.Delete)
			r.Post("/history/{id}/favorite", h.HistoryHandler.ToggleFavorite)
		}
	})

	return r
}
