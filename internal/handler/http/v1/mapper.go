package v1

import (
	"fmt"

	"github.com/shelepov/geoslide_service/internal/models"
)

// ModelToDetectionResponse преобразует доменную модель прогона в DTO ответа.
// Ссылки на растры строятся относительно базового пути API, чтобы клиент
// не знал про внутреннее хранилище.
func ModelToDetectionResponse(run *models.DetectionRun) *DetectionResponse {
	return &DetectionResponse{
		ID:                  run.ID,
		Latitude:            run.Latitude,
		Longitude:           run.Longitude,
		DatePre:             run.DatePre,
		DatePost:            run.DatePost,
		Threshold:           run.Threshold,
		AssetPreID:          run.AssetPreID,
		AssetPostID:         run.AssetPostID,
		AcquiredPre:         run.AcquiredPre,
		AcquiredPost:        run.AcquiredPost,
		IsExpertZone:        run.ZoneFlags.IsExpert,
		IsDesertZone:        run.ZoneFlags.IsDesert,
		AnomalousPixelCount: run.Stats.AnomalousPixelCount,
		AnomalyMagnitudeSum: run.Stats.AnomalyMagnitudeSum,
		ConfidenceScore:     run.Confidence,
		SuppressMask:        run.SuppressMask,
		HeatmapRasterURL:    fmt.Sprintf("/api/v1/detections/%s/heatmap.png", run.ID),
		MaskRasterURL:       fmt.Sprintf("/api/v1/detections/%s/mask.png", run.ID),
		CreatedAt:           run.CreatedAt,
	}
}

// ModelsToDetectionResponses преобразует слайс моделей в слайс DTO
func ModelsToDetectionResponses(runs []*models.DetectionRun) []*DetectionResponse {
	responses := make([]*DetectionResponse, len(runs))
	for i, run := range runs {
		responses[i] = ModelToDetectionResponse(run)
	}
	return responses
}
