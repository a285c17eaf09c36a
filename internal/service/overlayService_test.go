package service

import (
	"context"
	"encoding/base64"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/ds124wfegd/pill-overlay/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompositor struct {
	calls int
	data  []byte
	text  string
	cfg   entity.PillConfig
	out   []byte
	err   error
}

func (f *fakeCompositor) Render(data []byte, text string, cfg entity.PillConfig) ([]byte, error) {
	f.calls++
	f.data, f.text, f.cfg = data, text, cfg
	return f.out, f.err
}

type fakeCache struct {
	store  map[string][]byte
	getErr error
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	v, ok := f.store[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, png []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.store[key] = png
	return nil
}

func numPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func b64(data string) string { return base64.StdEncoding.EncodeToString([]byte(data)) }

func unb64(s string) []byte {
	out, _ := base64.StdEncoding.DecodeString(s)
	return out
}

func TestResolvePillConfigDefaults(t *testing.T) {
	for _, opts := range []*entity.PillOptions{nil, {}} {
		cfg, err := ResolvePillConfig(opts)
		require.NoError(t, err)

		assert.Equal(t, entity.PillConfig{
			X:            600,
			Y:            280,
			Width:        1120,
			Height:       420,
			PillColor:    color.NRGBA{R: 0xF5, G: 0xF2, B: 0xE6, A: 255},
			TextColor:    color.NRGBA{R: 0x19, G: 0x2A, B: 0x56, A: 255},
			FontSize:     280,
			CornerRadius: 45,
		}, cfg)
	}
}

func TestResolvePillConfigOverrides(t *testing.T) {
	cfg, err := ResolvePillConfig(&entity.PillOptions{
		PillX:        numPtr(0),
		PillWidth:    numPtr(-50),
		TextColor:    strPtr("FF0000"),
		CornerRadius: numPtr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.X)
	assert.Equal(t, 280, cfg.Y)
	assert.Equal(t, -50, cfg.Width, "geometry is passed through unvalidated")
	assert.Equal(t, 420, cfg.Height)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, cfg.TextColor)
	assert.Equal(t, 0, cfg.CornerRadius)
	assert.Equal(t, 280, cfg.FontSize)
}

func TestResolvePillConfigFractionalNumbers(t *testing.T) {
	cfg, err := ResolvePillConfig(&entity.PillOptions{
		PillX:        numPtr(600.0),
		PillY:        numPtr(280.9),
		PillWidth:    numPtr(-10.5),
		FontSize:     numPtr(1e300),
		CornerRadius: numPtr(-1e300),
	})
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.X)
	assert.Equal(t, 280, cfg.Y)
	assert.Equal(t, -11, cfg.Width)
	assert.Equal(t, math.MaxInt32, cfg.FontSize)
	assert.Equal(t, math.MinInt32, cfg.CornerRadius)
}

func TestResolvePillConfigBadColor(t *testing.T) {
	tests := []struct {
		name string
		opts entity.PillOptions
	}{
		{"short pill colour", entity.PillOptions{PillColor: strPtr("#FFF")}},
		{"non-hex text colour", entity.PillOptions{TextColor: strPtr("#12345Z")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePillConfig(&tt.opts)
			assert.ErrorIs(t, err, entity.ErrInvalidColor)
		})
	}
}

func TestAddText(t *testing.T) {
	comp := &fakeCompositor{out: []byte("png-bytes")}
	svc := NewOverlayService(comp, nil, "")

	out, err := svc.AddText(context.Background(), &entity.AddTextRequest{
		Image: b64("raw-image"),
		Text:  "CONNECT LINKEDIN",
	})
	require.NoError(t, err)

	assert.Equal(t, "png-bytes", string(unb64(out)))
	assert.Equal(t, "raw-image", string(comp.data))
	assert.Equal(t, "CONNECT LINKEDIN", comp.text)
	assert.Equal(t, 600, comp.cfg.X)
	assert.Equal(t, 45, comp.cfg.CornerRadius)
}

func TestAddTextErrors(t *testing.T) {
	decodeErr := errors.New("boom")

	tests := []struct {
		name    string
		req     entity.AddTextRequest
		compErr error
		wantErr error
	}{
		{"empty text", entity.AddTextRequest{Image: b64("x")}, nil, entity.ErrInvalidInput},
		{"invalid base64", entity.AddTextRequest{Image: "not base64!!", Text: "T"}, nil, entity.ErrInvalidInput},
		{"invalid colour", entity.AddTextRequest{Image: b64("x"), Text: "T", Config: &entity.PillOptions{PillColor: strPtr("nope")}}, nil, entity.ErrInvalidColor},
		{"compositor failure", entity.AddTextRequest{Image: b64("x"), Text: "T"}, decodeErr, decodeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewOverlayService(&fakeCompositor{err: tt.compErr}, nil, "")
			_, err := svc.AddText(context.Background(), &tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestAddTextUsesCache(t *testing.T) {
	comp := &fakeCompositor{out: []byte("png-bytes")}
	cache := newFakeCache()
	svc := NewOverlayService(comp, cache, "fonts-a")
	req := &entity.AddTextRequest{Image: b64("raw-image"), Text: "HELLO"}

	first, err := svc.AddText(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.AddText(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, comp.calls)
	assert.Len(t, cache.store, 1)
}

func TestAddTextCacheFailuresAreIgnored(t *testing.T) {
	comp := &fakeCompositor{out: []byte("png-bytes")}
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc := NewOverlayService(comp, cache, "fonts-a")

	out, err := svc.AddText(context.Background(), &entity.AddTextRequest{Image: b64("raw-image"), Text: "HELLO"})
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(unb64(out)))
	assert.Equal(t, 1, comp.calls)
}

func TestAddTextCacheIsPerFontSet(t *testing.T) {
	cache := newFakeCache()
	req := &entity.AddTextRequest{Image: b64("raw-image"), Text: "HELLO"}

	withFonts := &fakeCompositor{out: []byte("montserrat")}
	_, err := NewOverlayService(withFonts, cache, "fonts-a").AddText(context.Background(), req)
	require.NoError(t, err)

	withoutFonts := &fakeCompositor{out: []byte("builtin")}
	out, err := NewOverlayService(withoutFonts, cache, "fonts-b").AddText(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "builtin", string(unb64(out)))
	assert.Equal(t, 1, withoutFonts.calls)
	assert.Len(t, cache.store, 2)
}
