package imagecache

import (
	"context"
	"time"
)

// Signer mints time-limited URLs for stored objects.
type Signer interface {
	SignURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error)
}
