package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marumo/koyomi/internal/kv"
)

func recordJSON(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	data, err := json.Marshal(NewRecord(json.RawMessage(`"v"`), expiresAt))
	require.NoError(t, err)
	return string(data)
}

func TestSweepExpiredSelectivity(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Set(ctx, "img-cache:v1:note-images:a.jpg", recordJSON(t, now.Add(-time.Hour))))
	require.NoError(t, store.Set(ctx, "other-key", "keep"))
	require.NoError(t, store.Set(ctx, "holiday-cache:2024-01", recordJSON(t, now.Add(time.Hour))))

	sweeper := NewSweeper(store)
	removed := sweeper.SweepExpired(ctx)

	assert.Equal(t, 1, removed)
	_, err := store.Get(ctx, "img-cache:v1:note-images:a.jpg")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	kept, err := store.Get(ctx, "other-key")
	require.NoError(t, err)
	assert.Equal(t, "keep", kept)

	_, err = store.Get(ctx, "holiday-cache:2024-01")
	assert.NoError(t, err)
}

func TestSweepExpiredSkipsVersionMarkerAndUnparseable(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()

	// The version marker matches the cal: prefix but is reserved.
	require.NoError(t, store.Set(ctx, VersionMarkerKey, "2024.06"))
	// Unparseable values under a cache prefix are not expiry-bearing records.
	require.NoError(t, store.Set(ctx, "cal:legacy", "not-json{"))
	// Records without a numeric expiry are left alone too.
	require.NoError(t, store.Set(ctx, "cal:odd", `{"value":1}`))

	removed := NewSweeper(store).SweepExpired(ctx)

	assert.Equal(t, 0, removed)
	assert.Equal(t, 3, store.Len())
}

func TestSweepExpiredRemovesOrphanedOldVersions(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "img-cache:v0:note-images:a.jpg", recordJSON(t, time.Now().Add(-time.Minute))))

	removed := NewSweeper(store).SweepExpired(ctx)
	assert.Equal(t, 1, removed)
}

type failingStore struct {
	kv.Store
	keysErr error
}

func (s failingStore) Keys(context.Context) ([]string, error) {
	return nil, s.keysErr
}

func TestSweepExpiredNeverFails(t *testing.T) {
	sweeper := NewSweeper(failingStore{keysErr: errors.New("storage disabled")})
	assert.Equal(t, 0, sweeper.SweepExpired(context.Background()))
}
