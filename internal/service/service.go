package service

import (
	"context"

	"github.com/ds124wfegd/pill-overlay/internal/database"
	"github.com/ds124wfegd/pill-overlay/internal/entity"
	"github.com/ds124wfegd/pill-overlay/internal/pkg/compositor"
)

type OverlayService interface {
	AddText(ctx context.Context, req *entity.AddTextRequest) (string, error)
}

type overlayService struct {
	compositor compositor.ImageCompositor
	cache      database.RenderCache
	fontID     string
}

// NewOverlayService builds the service. fontID identifies the font files in
// use and becomes part of every render cache key.
func NewOverlayService(compositor compositor.ImageCompositor, cache database.RenderCache, fontID string) OverlayService {
	if cache == nil {
		cache = database.NewNoopRenderCache()
	}
	return &overlayService{
		compositor: compositor,
		cache:      cache,
		fontID:     fontID,
	}
}
