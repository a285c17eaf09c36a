package transport

import (
	"github.com/ds124wfegd/pill-overlay/internal/pkg/fonts"
	"github.com/ds124wfegd/pill-overlay/internal/service"
)

type OverlayHandler struct {
	service    service.OverlayService
	fontStatus fonts.ProvisionStatus
}

func NewOverlayHandler(service service.OverlayService, fontStatus fonts.ProvisionStatus) *OverlayHandler {
	return &OverlayHandler{service: service, fontStatus: fontStatus}
}
