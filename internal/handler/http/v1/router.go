package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты прогонов детекции изменений
	detections := api.Group("/detections")
	if len(h.cfg.APIKeys) > 0 {
		detections.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}
	{
		detections.POST("", h.runDetection)
		detections.GET("", h.listDetections)
		detections.GET("/:id", h.getDetection)
		detections.GET("/:id/heatmap.png", h.getHeatmap)
		detections.GET("/:id/mask.png", h.getMask)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
