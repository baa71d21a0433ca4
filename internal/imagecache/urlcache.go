package imagecache

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/marumo/koyomi/internal/cache"
)

const (
	// DefaultTTL is the validity requested from the signer when the caller
	// does not pick one.
	DefaultTTL = time.Hour

	// minCacheTTL floors the cached lifetime so very short signer TTLs
	// still get a usable cache window.
	minCacheTTL = 60 * time.Second
)

type memEntry struct {
	url       string
	expiresAt time.Time
}

// Cache resolves signed URLs for stored images through two tiers: a
// process-lifetime memory tier and the durable store. Entries are cached for
// 90% of the requested signer TTL so a cached URL is never served past the
// real token's expiry even under clock drift.
type Cache struct {
	signer  Signer
	durable *cache.Safe
	bucket  string
	ttl     time.Duration
	now     func() time.Time

	mu  sync.RWMutex
	mem map[string]memEntry
}

func New(signer Signer, durable *cache.Safe, defaultBucket string, defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		signer:  signer,
		durable: durable,
		bucket:  defaultBucket,
		ttl:     defaultTTL,
		now:     time.Now,
		mem:     make(map[string]memEntry),
	}
}

// Get resolves a signed URL for path in the default bucket with the default
// TTL. ok=false means the image is temporarily unavailable, never a reason
// to fail the caller.
func (c *Cache) Get(ctx context.Context, path string) (string, bool) {
	return c.GetFrom(ctx, c.bucket, path, c.ttl)
}

// GetFrom resolves a signed URL for path in bucket, minting with ttl on a
// cache miss. Memory tier first, then durable, then the signer.
func (c *Cache) GetFrom(ctx context.Context, bucket, path string, ttl time.Duration) (string, bool) {
	if path == "" {
		return "", false
	}
	if bucket == "" {
		bucket = c.bucket
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	key := cache.ImageKey(bucket, path)
	now := c.now()

	c.mu.RLock()
	entry, ok := c.mem[key]
	c.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.url, true
	}

	if rec, ok := c.durable.GetRecord(ctx, key); ok {
		if !rec.Expired(now) {
			var url string
			if err := json.Unmarshal(rec.Value, &url); err == nil && url != "" {
				expiresAt := time.UnixMilli(rec.ExpiresAt)
				c.mu.Lock()
				c.mem[key] = memEntry{url: url, expiresAt: expiresAt}
				c.mu.Unlock()
				return url, true
			}
		} else {
			c.durable.Delete(ctx, key)
		}
	}

	url, err := c.signer.SignURL(ctx, bucket, path, ttl)
	if err != nil || url == "" {
		log.Printf("imagecache: signing %s/%s failed: %v", bucket, path, err)
		return "", false
	}

	expiresAt := now.Add(cacheLifetime(ttl))
	c.mu.Lock()
	c.mem[key] = memEntry{url: url, expiresAt: expiresAt}
	c.mu.Unlock()

	// Best-effort persistence: a durable-write failure does not invalidate
	// the URL already resolved for this call.
	value, err := json.Marshal(url)
	if err == nil {
		c.durable.SetRecord(ctx, key, cache.NewRecord(value, expiresAt))
	}
	return url, true
}

// GetBatch resolves many paths concurrently against the default bucket.
// Paths that fail to resolve are omitted; one bad entry never fails the
// batch. Repeated paths are not deduplicated here, so callers that care
// should pass a unique slice.
func (c *Cache) GetBatch(ctx context.Context, paths []string) map[string]string {
	return c.GetBatchFrom(ctx, c.bucket, paths)
}

func (c *Cache) GetBatchFrom(ctx context.Context, bucket string, paths []string) map[string]string {
	urls := make(map[string]string, len(paths))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			url, ok := c.GetFrom(ctx, bucket, path, c.ttl)
			if !ok {
				return
			}
			mu.Lock()
			urls[path] = url
			mu.Unlock()
		}(path)
	}
	wg.Wait()
	return urls
}

// Clear empties the memory tier and removes every durable entry under the
// image-cache prefix, across all versions.
func (c *Cache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.mem = make(map[string]memEntry)
	c.mu.Unlock()

	for _, key := range c.durable.Keys(ctx) {
		if strings.HasPrefix(key, cache.PrefixImage) {
			c.durable.Delete(ctx, key)
		}
	}
}

// cacheLifetime applies the 10% safety margin to the signer TTL, floored at
// one minute.
func cacheLifetime(ttl time.Duration) time.Duration {
	margin := time.Duration(ttl.Seconds()*0.9) * time.Second
	if margin < minCacheTTL {
		return minCacheTTL
	}
	return margin
}
