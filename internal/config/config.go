package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string
	Env  string

	LogLevel  string
	LogFormat string

	DatabaseURL   string
	RedisURL      string
	MongoURL      string
	MongoDatabase string
	RateStore     string

	ProviderURL     string
	ProviderTimeout time.Duration
	SourceTimeout   time.Duration
	CacheMaxAge     time.Duration

	KafkaBrokers []string
	RatesTopic   string
	MirrorGroup  string

	HistoryPath  string
	HistoryLimit int

	RetentionKeep     int
	RetentionInterval time.Duration

	RateLimit   string
	CORSOrigins []string
}

// Load reads .env (if present), the optional config file and the environment.
// Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not loaded (ok for prod)")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Port:              v.GetString("port"),
		Env:               v.GetString("env"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
		DatabaseURL:       v.GetString("database_url"),
		RedisURL:          v.GetString("redis_url"),
		MongoURL:          v.GetString("mongo_url"),
		MongoDatabase:     v.GetString("mongo_database"),
		RateStore:         strings.ToLower(v.GetString("rate_store")),
		ProviderURL:       v.GetString("provider_url"),
		ProviderTimeout:   v.GetDuration("provider_timeout"),
		SourceTimeout:     v.GetDuration("source_timeout"),
		CacheMaxAge:       v.GetDuration("cache_max_age"),
		KafkaBrokers:      splitList(v.GetString("kafka_brokers")),
		RatesTopic:        v.GetString("rates_topic"),
		MirrorGroup:       v.GetString("mirror_group"),
		HistoryPath:       v.GetString("history_path"),
		HistoryLimit:      v.GetInt("history_limit"),
		RetentionKeep:     v.GetInt("retention_keep"),
		RetentionInterval: v.GetDuration("retention_interval"),
		RateLimit:         v.GetString("rate_limit"),
		CORSOrigins:       splitList(v.GetString("cors_origins")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("mongo_url", "")
	v.SetDefault("mongo_database", "exchange")
	v.SetDefault("rate_store", StoreAuto)
	v.SetDefault("provider_url", "https://open.er-api.com/v6/latest")
	v.SetDefault("provider_timeout", 10*time.Second)
	v.SetDefault("source_timeout", 15*time.Second)
	v.SetDefault("cache_max_age", 24*time.Hour)
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("rates_topic", "rates-updates")
	v.SetDefault("mirror_group", "rates-mirror")
	v.SetDefault("history_path", "data/history.db")
	v.SetDefault("history_limit", 50)
	v.SetDefault("retention_keep", 30)
	v.SetDefault("retention_interval", time.Hour)
	v.SetDefault("rate_limit", "120-M")
	v.SetDefault("cors_origins", "*")
}

// Rate store selectors.
const (
	StoreAuto     = "auto"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
	StoreNone     = "none"
)

func (c *Config) validate() error {
	switch c.RateStore {
	case StoreAuto, StorePostgres, StoreRedis, StoreMongo, StoreMemory, StoreNone:
	default:
		return fmt.Errorf("unknown rate_store %q", c.RateStore)
	}
	if c.CacheMaxAge <= 0 {
		return fmt.Errorf("cache_max_age must be positive, got %s", c.CacheMaxAge)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	return nil
}

// ResolveRateStore picks the primary snapshot store when rate_store is auto.
func (c *Config) ResolveRateStore() string {
	if c.RateStore != StoreAuto {
		return c.RateStore
	}
	switch {
	case c.DatabaseURL != "":
		return StorePostgres
	case c.RedisURL != "":
		return StoreRedis
	case c.MongoURL != "":
		return StoreMongo
	default:
		return StoreNone
	}
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
