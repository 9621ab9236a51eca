package models

import (
	"time"

	"github.com/google/uuid"
)

// Виды растров, сохраняемых по результатам прогона
const (
	RasterHeatmap = "heatmap"
	RasterMask    = "mask"
)

// ChangeStatistics - агрегаты одного прогона анализатора.
// Живут только в рамках запроса, никуда не кешируются.
type ChangeStatistics struct {
	AnomalousPixelCount int     `json:"anomalous_pixel_count"`
	AnomalyMagnitudeSum float64 `json:"anomaly_magnitude_sum"`
}

// ConfidenceResult - калиброванная оценка уверенности, всегда в [0, 99].
// Score == 0 означает подавление маски на стороне клиента.
type ConfidenceResult struct {
	Score float64 `json:"score"`
}

// Suppressed возвращает true, если оверлей маски не должен отображаться
func (r ConfidenceResult) Suppressed() bool {
	return r.Score == 0
}

// DetectionRun - запись об одном выполненном прогоне детекции изменений
type DetectionRun struct {
	ID            uuid.UUID        `json:"id"`
	Latitude      float64          `json:"latitude"`
	Longitude     float64          `json:"longitude"`
	DatePre       time.Time        `json:"date_pre"`
	DatePost      time.Time        `json:"date_post"`
	Threshold     float64          `json:"threshold"`
	AssetPreID    string           `json:"asset_pre_id"`
	AssetPostID   string           `json:"asset_post_id"`
	AcquiredPre   time.Time        `json:"acquired_pre"`
	AcquiredPost  time.Time        `json:"acquired_post"`
	ZoneFlags     ZoneFlags        `json:"zone_flags"`
	Stats         ChangeStatistics `json:"stats"`
	Confidence    float64          `json:"confidence"`
	SuppressMask  bool             `json:"suppress_mask"`
	CreatedAt     time.Time        `json:"created_at"`
}
