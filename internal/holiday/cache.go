package holiday

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/marumo/koyomi/internal/cache"
)

// TTL is the fixed lifetime for cached month data. Holiday calendars change
// rarely; a day of staleness is acceptable.
const TTL = 24 * time.Hour

// Cache answers month lookups from the durable tier only. Month fetches are
// infrequent enough that a memory tier would buy nothing.
type Cache struct {
	provider Provider
	durable  *cache.Safe
	now      func() time.Time
}

func NewCache(provider Provider, durable *cache.Safe) *Cache {
	return &Cache{provider: provider, durable: durable, now: time.Now}
}

// Holidays returns the holiday map for a one-based month. Holidays are a
// non-critical enhancement: provider failures, malformed payloads, and
// corrupt cache entries all resolve to an empty map, never an error.
func (c *Cache) Holidays(ctx context.Context, year, month int) map[string]Info {
	key := cache.HolidayKey(year, month)

	if rec, ok := c.durable.GetRecord(ctx, key); ok && !rec.Expired(c.now()) {
		var pairs []Pair
		if err := json.Unmarshal(rec.Value, &pairs); err == nil {
			return toMap(pairs)
		}
		// Corrupt value: fall through to a fresh fetch.
	}

	pairs, err := c.provider.FetchMonth(ctx, year, month)
	if err != nil {
		log.Printf("holiday: fetch %04d-%02d failed: %v", year, month, err)
		return map[string]Info{}
	}

	if value, err := json.Marshal(pairs); err == nil {
		c.durable.SetRecord(ctx, key, cache.NewRecord(value, c.now().Add(TTL)))
	}
	return toMap(pairs)
}
