package ports

import (
	"context"
	"time"
)

// ListCache caches list responses keyed by their query. GetOrSet serves the
// key from cache or fills it via getter, collapsing concurrent misses on one
// key onto a single fill. Cache failures degrade to a direct getter call.
type ListCache interface {
	GetOrSet(ctx context.Context, key string, target any, ttl time.Duration, getter func() (any, error)) error
	DeletePattern(ctx context.Context, pattern string) (int64, error)
}
