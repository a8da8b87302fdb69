package repositories

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/magicboy5300/exchange/internal/models"
)

const historyBucket = "history"

// HistoryStore persists conversion history in a single bolt file. It holds at
// most limit records; adding past the limit evicts the oldest by timestamp.
type HistoryStore struct {
	db    *bolt.DB
	limit int
}

func NewHistoryStore(path string, limit int) (*HistoryStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(historyBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &HistoryStore{db: db, limit: limit}, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Add inserts or replaces the record with the same id, then trims to the limit.
func (s *HistoryStore) Add(rec models.ConversionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(historyBucket))
		if err := b.Put([]byte(rec.ID), data); err != nil {
			return err
		}

		records, err := readAll(b)
		if err != nil {
			return err
		}
		for _, old := range records[min(len(records), s.limit):] {
			if err := b.Delete([]byte(old.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns the records newest first, never nil.
func (s *HistoryStore) List() ([]models.ConversionRecord, error) {
	var records []models.ConversionRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		records, err = readAll(tx.Bucket([]byte(historyBucket)))
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *HistoryStore) Get(id string) (*models.ConversionRecord, error) {
	var rec models.ConversionRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(historyBucket)).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetFavorite flips the stored flag and returns the updated record.
func (s *HistoryStore) SetFavorite(id string, favorite bool) (*models.ConversionRecord, error) {
	var rec models.ConversionRecord
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(historyBucket))
		v := b.Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		if rec.IsFavorite == favorite {
			return nil
		}
		rec.IsFavorite = favorite
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes one record. A missing id is not an error.
func (s *HistoryStore) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(historyBucket)).Delete([]byte(id))
	})
}

func (s *HistoryStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(historyBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(historyBucket))
		return err
	})
}

func readAll(b *bolt.Bucket) ([]models.ConversionRecord, error) {
	records := []models.ConversionRecord{}
	err := b.ForEach(func(k, v []byte) error {
		var rec models.ConversionRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp > records[j].Timestamp
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}
