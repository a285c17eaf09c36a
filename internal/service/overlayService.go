package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"

	"github.com/ds124wfegd/pill-overlay/internal/database"
	"github.com/ds124wfegd/pill-overlay/internal/entity"
	"github.com/ds124wfegd/pill-overlay/internal/pkg/compositor"
	"github.com/sirupsen/logrus"
)

// AddText decodes the request image, draws the pill and text over it and
// returns the result as base64-encoded PNG.
func (s *overlayService) AddText(ctx context.Context, req *entity.AddTextRequest) (string, error) {
	if req.Text == "" {
		return "", fmt.Errorf("%w: text is required", entity.ErrInvalidInput)
	}

	cfg, err := ResolvePillConfig(req.Config)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return "", fmt.Errorf("%w: image is not valid base64: %v", entity.ErrInvalidInput, err)
	}

	key := database.RenderKey(data, req.Text, cfg, s.fontID)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		logrus.WithError(err).Warn("Render cache lookup failed")
	} else if ok {
		logrus.WithField("key", key).Debug("Render cache hit")
		return base64.StdEncoding.EncodeToString(cached), nil
	}

	out, err := s.compositor.Render(data, req.Text, cfg)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, out); err != nil {
		logrus.WithError(err).Warn("Render cache store failed")
	}

	return base64.StdEncoding.EncodeToString(out), nil
}

// ResolvePillConfig fills every option left out of opts with its default.
func ResolvePillConfig(opts *entity.PillOptions) (entity.PillConfig, error) {
	if opts == nil {
		opts = &entity.PillOptions{}
	}

	pillColor, err := compositor.ParseHexColor(stringOr(opts.PillColor, entity.DefaultPillColor))
	if err != nil {
		return entity.PillConfig{}, err
	}
	textColor, err := compositor.ParseHexColor(stringOr(opts.TextColor, entity.DefaultTextColor))
	if err != nil {
		return entity.PillConfig{}, err
	}

	return entity.PillConfig{
		X:            intOr(opts.PillX, entity.DefaultPillX),
		Y:            intOr(opts.PillY, entity.DefaultPillY),
		Width:        intOr(opts.PillWidth, entity.DefaultPillWidth),
		Height:       intOr(opts.PillHeight, entity.DefaultPillHeight),
		PillColor:    pillColor,
		TextColor:    textColor,
		FontSize:     intOr(opts.FontSize, entity.DefaultFontSize),
		CornerRadius: intOr(opts.CornerRadius, entity.DefaultCornerRadius),
	}, nil
}

// intOr floors v, saturating at the int32 range.
func intOr(v *float64, def int) int {
	if v == nil {
		return def
	}
	f := math.Floor(*v)
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
