package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RenderCache stores encoded PNG results by render key.
type RenderCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, png []byte) error
}

type redisRenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRenderCache struct{}
