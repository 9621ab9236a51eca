package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shelepov/geoslide_service/internal/config"
	"github.com/shelepov/geoslide_service/internal/models"
	"github.com/shelepov/geoslide_service/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	detectionService service.DetectionService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(detectionService service.DetectionService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		detectionService: detectionService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// @Summary Run change detection
// @Description Run the full change-detection pipeline for a point and two dates. Requires API key.
// @Tags Detections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param detection body RunDetectionRequest true "Detection run request"
// @Success 200 {object} DetectionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No usable imagery found"
// @Failure 422 {object} map[string]string "Raster decode failure"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /detections [post]
func (h *Handler) runDetection(c *gin.Context) {
	var input RunDetectionRequest
	log := h.logger.WithField("method", "runDetection")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	threshold := input.Threshold
	if threshold == 0 {
		threshold = h.cfg.DefaultThreshold
	}

	point := models.GeoPoint{Latitude: input.Latitude, Longitude: input.Longitude}
	run, err := h.detectionService.RunDetection(c.Request.Context(), point, input.DatePre, input.DatePost, threshold)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoImagery):
			log.WithError(err).Info("No usable imagery for request")
			c.JSON(http.StatusNotFound, gin.H{"error": "no usable imagery found"})
		case errors.Is(err, models.ErrDecode):
			log.WithError(err).Warn("Raster decode failed")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to decode imagery preview"})
		default:
			log.WithError(err).Error("Failed to run detection in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, ModelToDetectionResponse(run))
}

// @Summary List detection runs
// @Description Get a paginated list of detection runs, newest first. Requires API key.
// @Tags Detections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} DetectionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /detections [get]
func (h *Handler) listDetections(c *gin.Context) {
	log := h.logger.WithField("method", "listDetections")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	runs, err := h.detectionService.ListRuns(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list detection runs from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToDetectionResponses(runs))
}

// @Summary Get detection run by ID
// @Description Get a single detection run by its ID. Requires API key.
// @Tags Detections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Detection run ID"
// @Success 200 {object} DetectionResponse
// @Failure 400 {object} map[string]string "Invalid run ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Run not found"
// @Router /detections/{id} [get]
func (h *Handler) getDetection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run ID"})
		return
	}
	log := h.logger.WithField("method", "getDetection").WithField("id", id)

	run, err := h.detectionService.GetRun(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get detection run from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "detection run not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToDetectionResponse(run))
}

// @Summary Get heatmap raster
// @Description Get the heatmap PNG of a detection run. Requires API key.
// @Tags Detections
// @Produce png
// @Security ApiKeyAuth
// @Param id path string true "Detection run ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Raster not found or expired"
// @Router /detections/{id}/heatmap.png [get]
func (h *Handler) getHeatmap(c *gin.Context) {
	h.serveRaster(c, models.RasterHeatmap)
}

// @Summary Get anomaly mask raster
// @Description Get the binary anomaly mask PNG of a detection run. Requires API key.
// @Tags Detections
// @Produce png
// @Security ApiKeyAuth
// @Param id path string true "Detection run ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Raster not found or expired"
// @Router /detections/{id}/mask.png [get]
func (h *Handler) getMask(c *gin.Context) {
	h.serveRaster(c, models.RasterMask)
}

func (h *Handler) serveRaster(c *gin.Context, kind string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run ID"})
		return
	}
	log := h.logger.WithField("method", "serveRaster").WithField("id", id).WithField("kind", kind)

	data, err := h.detectionService.GetRaster(c.Request.Context(), id, kind)
	if err != nil {
		log.WithError(err).Warn("Failed to get raster from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "raster not found"})
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// @Summary Health check
// @Description Service liveness probe.
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Service: "geoslide-detection",
		Status:  "operational",
	})
}
