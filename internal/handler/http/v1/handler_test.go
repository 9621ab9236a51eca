package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shelepov/geoslide_service/internal/config"
	"github.com/shelepov/geoslide_service/internal/models"
	"github.com/shelepov/geoslide_service/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockDetectionService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockDetectionService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:          []string{"test-api-key"},
		DefaultThreshold: 0.15,
		Zones:            config.DefaultZones(),
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authHeader() map[string]string {
	return map[string]string{"X-API-Key": "test-api-key"}
}

func sampleRun(id uuid.UUID) *models.DetectionRun {
	return &models.DetectionRun{
		ID:           id,
		Latitude:     30.4,
		Longitude:    79.3,
		DatePre:      time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		DatePost:     time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC),
		Threshold:    0.15,
		AssetPreID:   "PRE_TILE",
		AssetPostID:  "POST_TILE",
		ZoneFlags:    models.ZoneFlags{IsExpert: true},
		Stats:        models.ChangeStatistics{AnomalousPixelCount: 12000, AnomalyMagnitudeSum: 3000},
		Confidence:   90.0,
		SuppressMask: false,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestRunDetection_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	runID := uuid.New()

	reqBody := RunDetectionRequest{
		Latitude:  30.4,
		Longitude: 79.3,
		DatePre:   time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		DatePost:  time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC),
		Threshold: 0.15,
	}

	mockService.EXPECT().
		RunDetection(gomock.Any(), models.GeoPoint{Latitude: 30.4, Longitude: 79.3}, reqBody.DatePre, reqBody.DatePost, 0.15).
		Return(sampleRun(runID), nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/detections", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DetectionResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, runID, resp.ID)
	assert.Equal(t, 90.0, resp.ConfidenceScore)
	assert.False(t, resp.SuppressMask)
	assert.Equal(t, "/api/v1/detections/"+runID.String()+"/heatmap.png", resp.HeatmapRasterURL)
	assert.Equal(t, "/api/v1/detections/"+runID.String()+"/mask.png", resp.MaskRasterURL)
}

func TestRunDetection_DefaultThresholdApplied(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	runID := uuid.New()

	reqBody := RunDetectionRequest{
		Latitude:  30.4,
		Longitude: 79.3,
		DatePre:   time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		DatePost:  time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC),
	}

	// Порог не передан - сервис должен получить значение из конфигурации
	mockService.EXPECT().
		RunDetection(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 0.15).
		Return(sampleRun(runID), nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/detections", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunDetection_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().RunDetection(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/detections", bytes.NewBufferString(`{"latitude": 30.4`), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestRunDetection_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().RunDetection(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Отсутствуют даты
	reqBody := RunDetectionRequest{Latitude: 30.4, Longitude: 79.3}
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/detections", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunDetection_NoImagery(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		RunDetection(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, models.ErrNoImagery).
		Times(1)

	reqBody := RunDetectionRequest{
		Latitude:  30.4,
		Longitude: 79.3,
		DatePre:   time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		DatePost:  time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC),
	}
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/detections", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no usable imagery found")
}

func TestRunDetection_DecodeError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		RunDetection(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, models.ErrDecode).
		Times(1)

	reqBody := RunDetectionRequest{
		Latitude:  30.4,
		Longitude: 79.3,
		DatePre:   time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		DatePost:  time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC),
	}
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/detections", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRunDetection_Unauthorized(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().RunDetection(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/detections", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetDetection_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	runID := uuid.New()

	mockService.EXPECT().
		GetRun(gomock.Any(), runID).
		Return(sampleRun(runID), nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/detections/"+runID.String(), nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DetectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, runID, resp.ID)
	assert.True(t, resp.IsExpertZone)
}

func TestGetDetection_InvalidID(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/detections/not-a-uuid", nil, authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDetection_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	runID := uuid.New()

	mockService.EXPECT().
		GetRun(gomock.Any(), runID).
		Return(nil, models.ErrRunNotFound).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/detections/"+runID.String(), nil, authHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListDetections_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListRuns(gomock.Any(), 2, 5).
		Return([]*models.DetectionRun{sampleRun(uuid.New()), sampleRun(uuid.New())}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/detections?page=2&pageSize=5", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*DetectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetHeatmap_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	runID := uuid.New()
	payload := []byte{0x89, 0x50, 0x4E, 0x47}

	mockService.EXPECT().
		GetRaster(gomock.Any(), runID, models.RasterHeatmap).
		Return(payload, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/detections/"+runID.String()+"/heatmap.png", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, payload, w.Body.Bytes())
}

func TestGetMask_Expired(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	runID := uuid.New()

	mockService.EXPECT().
		GetRaster(gomock.Any(), runID, models.RasterMask).
		Return(nil, models.ErrRunNotFound).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/detections/"+runID.String()+"/mask.png", nil, authHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck_NoAuthRequired(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operational")
}
