package database

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"time"

	"github.com/ds124wfegd/pill-overlay/internal/entity"
	"github.com/redis/go-redis/v9"
)

const renderKeyPrefix = "overlay:"

func NewRedisRenderCache(client *redis.Client, ttl time.Duration) RenderCache {
	return &redisRenderCache{client: client, ttl: ttl}
}

func (r *redisRenderCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, renderKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *redisRenderCache) Set(ctx context.Context, key string, png []byte) error {
	return r.client.Set(ctx, renderKeyPrefix+key, png, r.ttl).Err()
}

// NewNoopRenderCache never hits and discards writes.
func NewNoopRenderCache() RenderCache {
	return noopRenderCache{}
}

func (noopRenderCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (noopRenderCache) Set(context.Context, string, []byte) error {
	return nil
}

// RenderKey identifies a render by its inputs and the fonts that drew it.
// Lengths are written before variable-size fields so different inputs cannot
// collide by concatenation.
func RenderKey(image []byte, text string, cfg entity.PillConfig, fontID string) string {
	h := sha256.New()

	var n [8]byte
	writeBytes := func(b []byte) {
		binary.BigEndian.PutUint64(n[:], uint64(len(b)))
		h.Write(n[:])
		h.Write(b)
	}
	writeInt := func(v int) {
		binary.BigEndian.PutUint64(n[:], uint64(int64(v)))
		h.Write(n[:])
	}

	writeBytes(image)
	writeBytes([]byte(text))
	writeBytes([]byte(fontID))
	for _, v := range []int{cfg.X, cfg.Y, cfg.Width, cfg.Height, cfg.FontSize, cfg.CornerRadius} {
		writeInt(v)
	}
	h.Write([]byte{
		cfg.PillColor.R, cfg.PillColor.G, cfg.PillColor.B, cfg.PillColor.A,
		cfg.TextColor.R, cfg.TextColor.G, cfg.TextColor.B, cfg.TextColor.A,
	})

	return hex.EncodeToString(h.Sum(nil))
}
