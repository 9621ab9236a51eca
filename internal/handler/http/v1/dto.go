package v1

import (
	"time"

	"github.com/google/uuid"
)

// RunDetectionRequest DTO для запуска прогона детекции изменений
// @Description DTO для запуска прогона детекции изменений
type RunDetectionRequest struct {
	Latitude  float64   `json:"latitude" validate:"required,latitude"`
	Longitude float64   `json:"longitude" validate:"required,longitude"`
	DatePre   time.Time `json:"date_pre" validate:"required"`
	DatePost  time.Time `json:"date_post" validate:"required"`
	// Порог дельты индекса; 0 означает значение из конфигурации
	Threshold float64 `json:"threshold,omitempty" validate:"omitempty,gt=0,lte=2"`
}

// DetectionResponse DTO для ответа с результатом прогона
// @Description DTO для ответа с результатом прогона
type DetectionResponse struct {
	ID                  uuid.UUID `json:"id"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	DatePre             time.Time `json:"date_pre"`
	DatePost            time.Time `json:"date_post"`
	Threshold           float64   `json:"threshold"`
	AssetPreID          string    `json:"asset_pre_id"`
	AssetPostID         string    `json:"asset_post_id"`
	AcquiredPre         time.Time `json:"acquired_pre"`
	AcquiredPost        time.Time `json:"acquired_post"`
	IsExpertZone        bool      `json:"is_expert_zone"`
	IsDesertZone        bool      `json:"is_desert_zone"`
	AnomalousPixelCount int       `json:"anomalous_pixel_count"`
	AnomalyMagnitudeSum float64   `json:"anomaly_magnitude_sum"`
	ConfidenceScore     float64   `json:"confidence_score"`
	SuppressMask        bool      `json:"suppress_mask"`
	HeatmapRasterURL    string    `json:"heatmap_raster_url"`
	MaskRasterURL       string    `json:"mask_raster_url"`
	CreatedAt           time.Time `json:"created_at"`
}

// HealthResponse DTO для ответа health-check
// @Description DTO для ответа health-check
type HealthResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}
