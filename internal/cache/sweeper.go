package cache

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/marumo/koyomi/internal/kv"
)

// Sweeper reclaims expired cache records from the durable store. It runs
// on demand when a write hits the storage quota, and optionally on a timer.
type Sweeper struct {
	store kv.Store
	now   func() time.Time
}

func NewSweeper(store kv.Store) *Sweeper {
	return &Sweeper{store: store, now: time.Now}
}

// SweepExpired walks every key in the durable store and deletes cache records
// whose expiry has passed, returning how many were removed. Only values that
// parse as expiry-bearing records are eligible; unparseable values and keys
// outside the recognized prefixes are left untouched, so the sweep is safe to
// run blindly against a store that also holds unrelated application data.
// It never fails: an iteration error returns the partial count.
func (s *Sweeper) SweepExpired(ctx context.Context) int {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		log.Printf("cache: sweep aborted listing keys: %v", err)
		return 0
	}

	now := s.now()
	removed := 0
	for _, key := range keys {
		if !sweepable(key) {
			continue
		}
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			continue
		}
		rec, ok := ParseRecord(raw)
		if !ok || !rec.Expired(now) {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			log.Printf("cache: sweep failed to delete %s: %v", key, err)
			continue
		}
		removed++
	}
	return removed
}

func sweepable(key string) bool {
	if key == VersionMarkerKey {
		return false
	}
	for _, prefix := range Prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
