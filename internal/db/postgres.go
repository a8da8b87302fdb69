package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/lib/pq"
)

// ConnectPostgres opens the pool and waits for the server to answer a ping.
func ConnectPostgres(ctx context.Context, dsn string, attempts uint) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	err = retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return db.PingContext(pingCtx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(3*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("postgres not reachable yet", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", attempts, err)
	}

	slog.Info("postgres connected")
	return db, nil
}
