package repositories

import (
	"context"
	"database/sql"

	"github.com/magicboy5300/exchange/internal/models"
)

type FavoritesRepository struct {
	db *sql.DB
}

func NewFavoritesRepository(db *sql.DB) *FavoritesRepository {
	return &FavoritesRepository{db: db}
}

// List returns every favorite, newest first.
func (r *FavoritesRepository) List(ctx context.Context) ([]models.ConversionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, from_currency, to_currency, from_amount, to_amount, rate, "timestamp", is_favorite
		FROM favorites
		ORDER BY "timestamp" DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.ConversionRecord{}
	for rows.Next() {
		var rec models.ConversionRecord
		if err := rows.Scan(
			&rec.ID, &rec.FromCurrency, &rec.ToCurrency,
			&rec.FromAmount, &rec.ToAmount, &rec.Rate,
			&rec.Timestamp, &rec.IsFavorite,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Upsert creates the record or replaces the one with the same id.
func (r *FavoritesRepository) Upsert(ctx context.Context, rec models.ConversionRecord) (*models.ConversionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO favorites (id, from_currency, to_currency, from_amount, to_amount, rate, "timestamp", is_favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			from_currency = EXCLUDED.from_currency,
			to_currency = EXCLUDED.to_currency,
			from_amount = EXCLUDED.from_amount,
			to_amount = EXCLUDED.to_amount,
			rate = EXCLUDED.rate,
			"timestamp" = EXCLUDED."timestamp",
			is_favorite = EXCLUDED.is_favorite
		RETURNING id, from_currency, to_currency, from_amount, to_amount, rate, "timestamp", is_favorite
	`, rec.ID, rec.FromCurrency, rec.ToCurrency, rec.FromAmount, rec.ToAmount, rec.Rate, rec.Timestamp, rec.IsFavorite)

	var stored models.ConversionRecord
	if err := row.Scan(
		&stored.ID, &stored.FromCurrency, &stored.ToCurrency,
		&stored.FromAmount, &stored.ToAmount, &stored.Rate,
		&stored.Timestamp, &stored.IsFavorite,
	); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Delete removes the record. Deleting a missing id is not an error.
func (r *FavoritesRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	return err
}
