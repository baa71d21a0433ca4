package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/marumo/koyomi/internal/kv"
)

// Safe wraps the durable store so that callers never see an error. Caches
// are an optimization, not a correctness requirement: a failed write degrades
// to false plus a logged warning, and a missing or corrupt read degrades to
// the caller's fallback.
type Safe struct {
	store   kv.Store
	sweeper *Sweeper
}

func NewSafe(store kv.Store, sweeper *Sweeper) *Safe {
	return &Safe{store: store, sweeper: sweeper}
}

// SetString writes a value, recovering once from a full store by sweeping
// expired cache records and retrying. Reports whether the value was stored.
func (s *Safe) SetString(ctx context.Context, key, value string) bool {
	err := s.store.Set(ctx, key, value)
	if err == nil {
		return true
	}
	if !errors.Is(err, kv.ErrQuotaExceeded) {
		log.Printf("cache: write %s failed: %v", key, err)
		return false
	}

	removed := s.sweeper.SweepExpired(ctx)
	log.Printf("cache: storage full writing %s, swept %d expired entries", key, removed)
	if removed == 0 {
		return false
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		log.Printf("cache: retry write %s failed: %v", key, err)
		return false
	}
	return true
}

// SetRecord serializes a record and stores it under key.
func (s *Safe) SetRecord(ctx context.Context, key string, rec Record) bool {
	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("cache: marshal %s failed: %v", key, err)
		return false
	}
	return s.SetString(ctx, key, string(data))
}

// GetJSON decodes the raw value stored under key into dest. Absent,
// unreadable, and corrupt values report false and leave dest untouched, so
// callers keep whatever fallback they initialized it with.
func (s *Safe) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("cache: read %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false
	}
	return true
}

// GetRecord reads and parses the record stored under key. Absent, unreadable,
// and corrupt entries all report ok=false; they are indistinguishable from a
// miss by design.
func (s *Safe) GetRecord(ctx context.Context, key string) (Record, bool) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("cache: read %s failed: %v", key, err)
		}
		return Record{}, false
	}
	return ParseRecord(raw)
}

// Delete removes key if present. Idempotent; failures are logged only.
func (s *Safe) Delete(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		log.Printf("cache: delete %s failed: %v", key, err)
	}
}

// Keys exposes durable-store enumeration for bulk operations such as
// clearing one cache family.
func (s *Safe) Keys(ctx context.Context) []string {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		log.Printf("cache: listing keys failed: %v", err)
		return nil
	}
	return keys
}
