package bootstrap

import (
	"log/slog"

	"github.com/magicboy5300/exchange/internal/api"
	"github.com/magicboy5300/exchange/internal/config"
	"github.com/magicboy5300/exchange/internal/handlers"
	"github.com/magicboy5300/exchange/internal/kafka"
	"github.com/magicboy5300/exchange/internal/services"
)

type ServicesBundle struct {
	Rates      *services.RateService
	Conversion *services.ConversionService
	Favorites  services.Favorites
	History    *services.HistoryService
}

type HandlersBundle struct {
	RatesHandler     *handlers.RatesHandler
	ConvertHandler   *handlers.ConvertHandler
	FavoritesHandler *handlers.FavoritesHandler
	// nil when history is disabled
	HistoryHandler *handlers.HistoryHandler
}

// InitServices assembles the acquisition chain: mirror, primary cache,
// provider, then the static table.
func InitServices(cfg *config.Config, stores *Stores, kafkaBundle *kafka.KafkaBundle, logger *slog.Logger) *ServicesBundle {
	var sources []services.RateSource
	if stores.Mirror != nil {
		sources = append(sources, services.NewCacheSource("mirror", stores.Mirror, cfg.CacheMaxAge))
	}
	if stores.Primary != nil {
		sources = append(sources, services.NewCacheSource("cache", stores.Primary, cfg.CacheMaxAge))
	}

	var producer kafka.ProducerInterface
	if kafkaBundle != nil && kafkaBundle.RatesProducer != nil {
		producer = kafkaBundle.RatesProducer
	}
	client := api.NewRatesClient(cfg.ProviderURL, cfg.ProviderTimeout)
	sources = append(sources, services.NewProviderSource(client, stores.Primary, producer, logger))

	rates := services.NewRateService(sources, services.NewStaticSource(), cfg.SourceTimeout, logger)

	var favorites services.Favorites
	if stores.Favorites != nil {
		favorites = services.NewFavorites(stores.Favorites)
	} else {
		favorites = services.NewFavorites(nil)
	}

	var history *services.HistoryService
	if stores.History != nil {
		history = services.NewHistoryService(stores.History, favorites, logger)
	}

	return &ServicesBundle{
		Rates:      rates,
		Conversion: services.NewConversionService(rates, history, logger),
		Favorites:  favorites,
		History:    history,
	}
}

func InitHandlers(svc *ServicesBundle, logger *slog.Logger) *HandlersBundle {
	bundle := &HandlersBundle{
		RatesHandler:     handlers.NewRatesHandler(svc.Rates),
		ConvertHandler:   handlers.NewConvertHandler(svc.Conversion, logger),
		FavoritesHandler: handlers.NewFavoritesHandler(svc.Favorites, logger),
	}
	if svc.History != nil {
		bundle.HistoryHandler = handlers.NewHistoryHandler(svc.History, logger)
	}
	return bundle
}
