package repositories

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicboy5300/exchange/internal/models"
)

func newTestHistory(t *testing.T, limit int) *HistoryStore {
	t.Helper()
	s, err := NewHistoryStore(filepath.Join(t.TempDir(), "history.db"), limit)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func fakeRecord(t *testing.T, ts int64) models.ConversionRecord {
	t.Helper()
	var rec models.ConversionRecord
	require.NoError(t, faker.FakeData(&rec))
	rec.ID = fmt.Sprintf("%d", ts)
	rec.Timestamp = ts
	rec.IsFavorite = false
	return rec
}

func TestHistoryStore_ListEmpty(t *testing.T) {
	s := newTestHistory(t, 50)

	items, err := s.List()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestHistoryStore_NewestFirstAndCapped(t *testing.T) {
	s := newTestHistory(t, 3)

	for ts := int64(1000); ts <= 5000; ts += 1000 {
		require.NoError(t, s.Add(fakeRecord(t, ts)))
	}

	items, err := s.List()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"5000", "4000", "3000"}, []string{items[0].ID, items[1].ID, items[2].ID})

	_, err = s.Get("1000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryStore_AddSameIDReplaces(t *testing.T) {
	s := newTestHistory(t, 50)

	rec := fakeRecord(t, 1000)
	require.NoError(t, s.Add(rec))
	rec.ToAmount = 42
	require.NoError(t, s.Add(rec))

	items, err := s.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 42.0, items[0].ToAmount)
}

func TestHistoryStore_SetFavorite(t *testing.T) {
	s := newTestHistory(t, 50)
	require.NoError(t, s.Add(fakeRecord(t, 1000)))

	rec, err := s.SetFavorite("1000", true)
	require.NoError(t, err)
	assert.True(t, rec.IsFavorite)

	stored, err := s.Get("1000")
	require.NoError(t, err)
	assert.True(t, stored.IsFavorite)

	_, err = s.SetFavorite("missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryStore_DeleteAndClear(t *testing.T) {
	s := newTestHistory(t, 50)
	require.NoError(t, s.Add(fakeRecord(t, 1000)))
	require.NoError(t, s.Add(fakeRecord(t, 2000)))

	require.NoError(t, s.Delete("1000"))
	require.NoError(t, s.Delete("1000"), "deleting twice is fine")

	items, _ := s.List()
	assert.Len(t, items, 1)

	require.NoError(t, s.Clear())
	items, _ = s.List()
	assert.Empty(t, items)

	require.NoError(t, s.Add(fakeRecord(t, 3000)), "store stays usable after clear")
}
