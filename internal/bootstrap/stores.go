package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/magicboy5300/exchange/internal/config"
	"github.com/magicboy5300/exchange/internal/cron"
	"github.com/magicboy5300/exchange/internal/db"
	"github.com/magicboy5300/exchange/internal/repositories"
)

const postgresAttempts = 5

// Stores holds every backend the process managed to reach. Missing backends
// are nil and the features that need them run degraded.
type Stores struct {
	DB    *sql.DB
	Redis *redis.Client
	Mongo *mongo.Client

	Primary     repositories.SnapshotStore
	PrimaryName string
	Mirror      repositories.SnapshotStore

	Favorites *repositories.FavoritesRepository
	History   *repositories.HistoryStore

	logger *slog.Logger
}

func InitStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Stores {
	s := &Stores{logger: logger.With("component", "stores")}
	primary := cfg.ResolveRateStore()

	if cfg.DatabaseURL != "" {
		conn, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, postgresAttempts)
		if err != nil {
			s.logger.Warn("postgres unavailable, favorites disabled", "error", err)
		} else if err := db.Migrate(conn); err != nil {
			s.logger.Error("migrations failed, postgres disabled", "error", err)
			conn.Close()
		} else {
			s.DB = conn
			s.Favorites = repositories.NewFavoritesRepository(conn)
		}
	}

	if cfg.RedisURL != "" {
		client, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			s.logger.Warn("redis unavailable", "error", err)
		} else {
			s.Redis = client
		}
	}

	if primary == config.StoreMongo && cfg.MongoURL != "" {
		client, err := db.ConnectMongo(ctx, cfg.MongoURL)
		if err != nil {
			s.logger.Warn("mongo unavailable", "error", err)
		} else {
			s.Mongo = client
		}
	}

	switch {
	case primary == config.StorePostgres && s.DB != nil:
		s.Primary = repositories.NewPostgresSnapshotStore(s.DB)
	case primary == config.StoreRedis && s.Redis != nil:
		s.Primary = repositories.NewRedisSnapshotStore(s.Redis)
	case primary == config.StoreMongo && s.Mongo != nil:
		s.Primary = repositories.NewMongoSnapshotStore(s.Mongo.Database(cfg.MongoDatabase))
	case primary == config.StoreMemory:
		s.Primary = repositories.NewMemorySnapshotStore()
	}
	if s.Primary != nil {
		s.PrimaryName = primary
	} else if primary != config.StoreNone {
		s.logger.Warn("rate store unavailable, serving without a cache", "store", primary)
	}

	if cfg.KafkaEnabled() && s.Redis != nil && s.PrimaryName != config.StoreRedis {
		s.Mirror = repositories.NewRedisSnapshotStore(s.Redis)
	}

	if cfg.HistoryPath != "" {
		s.History = openHistory(cfg, s.logger)
	}

	s.logger.Info("stores ready",
		"primary", s.PrimaryName,
		"mirror", s.Mirror != nil,
		"favorites", s.Favorites != nil,
		"history", s.History != nil,
	)
	return s
}

func openHistory(cfg *config.Config, logger *slog.Logger) *repositories.HistoryStore {
	if dir := filepath.Dir(cfg.HistoryPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("history disabled", "path", cfg.HistoryPath, "error", err)
			return nil
		}
	}
	store, err := repositories.NewHistoryStore(cfg.HistoryPath, cfg.HistoryLimit)
	if err != nil {
		logger.Warn("history disabled", "path", cfg.HistoryPath, "error", err)
		return nil
	}
	return store
}

// Snapshots lists the snapshot stores that retention should prune.
func (s *Stores) Snapshots() []cron.NamedStore {
	var out []cron.NamedStore
	if s.Primary != nil {
		out = append(out, cron.NamedStore{Name: s.PrimaryName, Store: s.Primary})
	}
	if s.Mirror != nil {
		out = append(out, cron.NamedStore{Name: "mirror", Store: s.Mirror})
	}
	return out
}

func (s *Stores) Close() {
	if s.History != nil {
		if err := s.History.Close(); err != nil {
			s.logger.Error("history close error", "error", err)
		}
	}
	if s.Mongo != nil {
		if err := s.Mongo.Disconnect(context.Background()); err != nil {
			s.logger.Error("mongo close error", "error", err)
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.logger.Error("redis close error", "error", err)
		}
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.logger.Error("postgres close error", "error", err)
		}
	}
}
