package holiday

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marumo/koyomi/internal/cache"
	"github.com/marumo/koyomi/internal/kv"
)

type fakeProvider struct {
	calls int
	pairs []Pair
	err   error
}

func (f *fakeProvider) FetchMonth(context.Context, int, int) ([]Pair, error) {
	f.calls++
	return f.pairs, f.err
}

var newYear = []Pair{{DateKey: "20240101", Info: Info{DateName: "신정", Date: "2024-01-01"}}}

func newTestCache(provider Provider, store kv.Store) *Cache {
	return NewCache(provider, cache.NewSafe(store, cache.NewSweeper(store)))
}

func TestHolidaysRoundTrip(t *testing.T) {
	provider := &fakeProvider{pairs: newYear}
	c := newTestCache(provider, kv.NewMemoryStore())
	ctx := context.Background()

	first := c.Holidays(ctx, 2024, 1)
	require.Len(t, first, 1)

	// Within the 24h window the second lookup is served from the durable
	// tier without touching the provider.
	second := c.Holidays(ctx, 2024, 1)
	require.Len(t, second, 1)
	assert.Equal(t, Info{DateName: "신정", Date: "2024-01-01"}, second["20240101"])
	assert.Equal(t, 1, provider.calls)

	info, ok := IsHoliday(2024, 0, 1, second)
	require.True(t, ok)
	assert.Equal(t, "신정", info.DateName)

	_, ok = IsHoliday(2024, 0, 2, second)
	assert.False(t, ok)
}

func TestHolidaysRefetchesAfterTTL(t *testing.T) {
	provider := &fakeProvider{pairs: newYear}
	c := newTestCache(provider, kv.NewMemoryStore())
	ctx := context.Background()

	start := time.Now()
	c.now = func() time.Time { return start }
	c.Holidays(ctx, 2024, 1)

	c.now = func() time.Time { return start.Add(25 * time.Hour) }
	c.Holidays(ctx, 2024, 1)
	assert.Equal(t, 2, provider.calls)
}

func TestHolidaysProviderFailureYieldsEmptyMap(t *testing.T) {
	provider := &fakeProvider{err: errors.New("proxy down")}
	c := newTestCache(provider, kv.NewMemoryStore())

	holidays := c.Holidays(context.Background(), 2024, 1)
	assert.NotNil(t, holidays)
	assert.Empty(t, holidays)
}

func TestHolidaysCorruptRecordFallsThrough(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, cache.HolidayKey(2024, 1), "corrupt{"))

	provider := &fakeProvider{pairs: newYear}
	c := newTestCache(provider, store)

	holidays := c.Holidays(ctx, 2024, 1)
	assert.Len(t, holidays, 1)
	assert.Equal(t, 1, provider.calls)
}

func TestHolidaysPersistFailureDoesNotAffectResult(t *testing.T) {
	provider := &fakeProvider{pairs: newYear}
	// One-byte quota: every durable write fails, the fetched map is
	// returned regardless.
	c := newTestCache(provider, kv.NewBoundedMemoryStore(1))

	holidays := c.Holidays(context.Background(), 2024, 1)
	assert.Len(t, holidays, 1)
}

func TestDateKeyZeroPads(t *testing.T) {
	assert.Equal(t, "20240101", DateKey(2024, 1, 1))
	assert.Equal(t, "20241231", DateKey(2024, 12, 31))
}
