package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/magicboy5300/exchange/internal/models"
)

type PostgresSnapshotStore struct {
	db *sql.DB
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

func (r *PostgresSnapshotStore) Insert(ctx context.Context, snap *models.RateSnapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exchange_rates (base_currency, rates, updated_at)
		VALUES ($1, $2, $3)
	`, snap.BaseCurrency, snap.Rates, snap.UpdatedAt)
	return err
}

func (r *PostgresSnapshotStore) Latest(ctx context.Context) (*models.RateSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT base_currency, rates, updated_at
		FROM exchange_rates
		ORDER BY updated_at DESC
		LIMIT 1
	`)

	var snap models.RateSnapshot
	if err := row.Scan(&snap.BaseCurrency, &snap.Rates, &snap.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return &snap, nil
}

func (r *PostgresSnapshotStore) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM exchange_rates
		WHERE id NOT IN (
			SELECT id FROM exchange_rates
			ORDER BY updated_at DESC
			LIMIT $1
		)
	`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
