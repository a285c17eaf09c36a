package database

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/ds124wfegd/pill-overlay/internal/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyConfig() entity.PillConfig {
	return entity.PillConfig{
		X: 600, Y: 280, Width: 1120, Height: 420,
		PillColor:    color.NRGBA{R: 245, G: 242, B: 230, A: 255},
		TextColor:    color.NRGBA{R: 25, G: 42, B: 86, A: 255},
		FontSize:     280,
		CornerRadius: 45,
	}
}

func TestRenderKey(t *testing.T) {
	const fontID = "montserrat|dejavu|basicfont.Face7x13"

	base := RenderKey([]byte("img"), "CONNECT LINKEDIN", keyConfig(), fontID)
	assert.Len(t, base, 64)
	assert.Equal(t, base, RenderKey([]byte("img"), "CONNECT LINKEDIN", keyConfig(), fontID))

	moved := keyConfig()
	moved.X++
	recolored := keyConfig()
	recolored.TextColor.B++

	tests := []struct {
		name   string
		image  []byte
		text   string
		cfg    entity.PillConfig
		fontID string
	}{
		{"different text", []byte("img"), "CONNECT", keyConfig(), fontID},
		{"different image", []byte("img2"), "CONNECT LINKEDIN", keyConfig(), fontID},
		{"boundary shift between image and text", []byte("imgC"), "ONNECT LINKEDIN", keyConfig(), fontID},
		{"different position", []byte("img"), "CONNECT LINKEDIN", moved, fontID},
		{"different colour", []byte("img"), "CONNECT LINKEDIN", recolored, fontID},
		{"different fonts", []byte("img"), "CONNECT LINKEDIN", keyConfig(), "none|dejavu|basicfont.Face7x13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, RenderKey(tt.image, tt.text, tt.cfg, tt.fontID))
		})
	}
}

func TestNoopRenderCache(t *testing.T) {
	c := NewNoopRenderCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("png")))
	data, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestRedisRenderCacheUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisRenderCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "k", []byte("png")))
}
