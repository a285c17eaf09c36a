package transport

import (
	"net/http"

	"github.com/ds124wfegd/pill-overlay/internal/entity"
	"github.com/ds124wfegd/pill-overlay/internal/transport/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *OverlayHandler) AddText(c *gin.Context) {
	var req entity.AddTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, err)
		return
	}

	image, err := h.service.AddText(c.Request.Context(), &req)
	if err != nil {
		failure(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.AddTextResponse{
		Success: true,
		Image:   image,
	})
}

func (h *OverlayHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, entity.HealthResponse{Status: "healthy"})
}

func (h *OverlayHandler) FontStatus(c *gin.Context) {
	response := entity.FontStatusResponse{
		Provisioned: h.fontStatus.Available,
		URL:         h.fontStatus.URL,
		Path:        h.fontStatus.Path,
		Bytes:       h.fontStatus.Bytes,
	}
	if h.fontStatus.Err != nil {
		response.Error = h.fontStatus.Err.Error()
	}

	c.JSON(http.StatusOK, response)
}

// failure writes the uniform error body. Every /add-text failure is a 400.
func failure(c *gin.Context, err error) {
	c.Error(err)
	logrus.WithField("request_id", c.GetString(middleware.RequestIDKey)).WithError(err).Warn("Add text failed")

	c.AbortWithStatusJSON(http.StatusBadRequest, entity.AddTextResponse{
		Success: false,
		Error:   err.Error(),
	})
}
