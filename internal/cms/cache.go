package cms

import (
	"context"
	"time"
)

// Cache stores raw CMS responses under tags so a content change can drop
// every response that depends on it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	InvalidateTags(ctx context.Context, tags ...string) (int, error)
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NopCache) Set(context.Context, string, []byte, time.Duration, ...string) error { return nil }

func (NopCache) InvalidateTags(context.Context, ...string) (int, error) { return 0, nil }
