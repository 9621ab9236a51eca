package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shelepov/geoslide_service/internal/analyzer"
	"github.com/shelepov/geoslide_service/internal/calibrator"
	"github.com/shelepov/geoslide_service/internal/models"
	"github.com/shelepov/geoslide_service/internal/webhook"
	"github.com/shelepov/geoslide_service/internal/zones"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/shelepov/geoslide_service/internal/service DetectionService,DetectionRepository,AssetSearcher,PreviewFetcher

// AssetSearcher определяет контракт поиска снимков в каталоге
type AssetSearcher interface {
	Search(ctx context.Context, point models.GeoPoint, targetDate time.Time) (*models.ImageAsset, error)
}

// PreviewFetcher определяет контракт загрузки и декодирования превью
type PreviewFetcher interface {
	Fetch(ctx context.Context, assetID string) (*image.NRGBA, error)
}

// DetectionRepository определяет контракт для хранения прогонов и растров
type DetectionRepository interface {
	SaveRun(ctx context.Context, run *models.DetectionRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*models.DetectionRun, error)
	ListRuns(ctx context.Context, page, pageSize int) ([]*models.DetectionRun, error)
	SaveRaster(ctx context.Context, runID uuid.UUID, kind string, data []byte) error
	GetRaster(ctx context.Context, runID uuid.UUID, kind string) ([]byte, error)
}

// DetectionService определяет контракт бизнес-логики детекции изменений
type DetectionService interface {
	RunDetection(ctx context.Context, point models.GeoPoint, datePre, datePost time.Time, threshold float64) (*models.DetectionRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*models.DetectionRun, error)
	ListRuns(ctx context.Context, page, pageSize int) ([]*models.DetectionRun, error)
	GetRaster(ctx context.Context, runID uuid.UUID, kind string) ([]byte, error)
}

type detectionService struct {
	classifier *zones.Classifier
	searcher   AssetSearcher
	fetcher    PreviewFetcher
	analyzer   *analyzer.Analyzer
	calibrator *calibrator.Calibrator
	repo       DetectionRepository
	publisher  webhook.WebhookPublisher
	logger     *logrus.Logger
}

// NewDetectionService собирает сервис детекции из компонентов конвейера
func NewDetectionService(
	classifier *zones.Classifier,
	searcher AssetSearcher,
	fetcher PreviewFetcher,
	anl *analyzer.Analyzer,
	cal *calibrator.Calibrator,
	repo DetectionRepository,
	publisher webhook.WebhookPublisher,
	logger *logrus.Logger,
) DetectionService {
	return &detectionService{
		classifier: classifier,
		searcher:   searcher,
		fetcher:    fetcher,
		analyzer:   anl,
		calibrator: cal,
		repo:       repo,
		publisher:  publisher,
		logger:     logger,
	}
}

// RunDetection выполняет полный конвейер: классификация зоны, два
// параллельных поиска в каталоге, параллельная загрузка и декодирование
// превью, попиксельный анализ, калибровка и сохранение результатов.
// Оба поиска и обе загрузки - точки соединения: дальше конвейер идет
// только когда готовы обе половины, любая ошибка роняет весь прогон.
func (s *detectionService) RunDetection(ctx context.Context, point models.GeoPoint, datePre, datePost time.Time, threshold float64) (*models.DetectionRun, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "detection",
		"method":  "RunDetection",
		"lat":     point.Latitude,
		"lon":     point.Longitude,
	})
	log.Info("Starting change detection run")

	flags := s.classifier.Classify(point)

	var assetPre, assetPost *models.ImageAsset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assetPre, err = s.searcher.Search(gctx, point, datePre)
		return err
	})
	g.Go(func() error {
		var err error
		assetPost, err = s.searcher.Search(gctx, point, datePost)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("Imagery search failed")
		return nil, fmt.Errorf("service: imagery search: %w", err)
	}

	var rasterPre, rasterPost *image.NRGBA
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rasterPre, err = s.fetcher.Fetch(gctx, assetPre.ID)
		return err
	})
	g.Go(func() error {
		var err error
		rasterPost, err = s.fetcher.Fetch(gctx, assetPost.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Preview fetch/decode failed")
		return nil, fmt.Errorf("service: preview decode: %w", err)
	}

	result, err := s.analyzer.Analyze(rasterPre, rasterPost, threshold)
	if err != nil {
		log.WithError(err).Error("Change analysis failed")
		return nil, fmt.Errorf("service: change analysis: %w", err)
	}

	confidence := s.calibrator.Calibrate(result.Stats, flags)

	run := &models.DetectionRun{
		ID:           uuid.New(),
		Latitude:     point.Latitude,
		Longitude:    point.Longitude,
		DatePre:      datePre,
		DatePost:     datePost,
		Threshold:    threshold,
		AssetPreID:   assetPre.ID,
		AssetPostID:  assetPost.ID,
		AcquiredPre:  assetPre.AcquiredAt,
		AcquiredPost: assetPost.AcquiredAt,
		ZoneFlags:    flags,
		Stats:        result.Stats,
		Confidence:   confidence.Score,
		SuppressMask: confidence.Suppressed(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.persistRasters(ctx, run.ID, result); err != nil {
		log.WithError(err).Error("Failed to persist result rasters")
		return nil, fmt.Errorf("service: persist rasters: %w", err)
	}

	if err := s.repo.SaveRun(ctx, run); err != nil {
		log.WithError(err).Error("Failed to persist detection run")
		return nil, fmt.Errorf("service: persist run: %w", err)
	}

	event := webhook.WebhookEvent{
		Event:               webhook.EventDetectionCompleted,
		RunID:               run.ID,
		Latitude:            run.Latitude,
		Longitude:           run.Longitude,
		Confidence:          run.Confidence,
		SuppressMask:        run.SuppressMask,
		AnomalousPixelCount: run.Stats.AnomalousPixelCount,
		Timestamp:           run.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Недоставленный вебхук не отменяет уже сохраненный результат
		log.WithError(err).Warn("Failed to publish detection.completed event")
	}

	log.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"confidence": run.Confidence,
		"anomalous":  run.Stats.AnomalousPixelCount,
	}).Info("Change detection run completed")
	return run, nil
}

// persistRasters кодирует тепловую карту и маску в PNG и сохраняет их
func (s *detectionService) persistRasters(ctx context.Context, runID uuid.UUID, result *analyzer.Result) error {
	heatmapPNG, err := encodePNG(result.Heatmap)
	if err != nil {
		return fmt.Errorf("encode heatmap: %w", err)
	}
	maskPNG, err := encodePNG(result.Mask)
	if err != nil {
		return fmt.Errorf("encode mask: %w", err)
	}

	if err := s.repo.SaveRaster(ctx, runID, models.RasterHeatmap, heatmapPNG); err != nil {
		return err
	}
	return s.repo.SaveRaster(ctx, runID, models.RasterMask, maskPNG)
}

func encodePNG(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetRun возвращает сохраненный прогон по ID
func (s *detectionService) GetRun(ctx context.Context, id uuid.UUID) (*models.DetectionRun, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "detection",
		"method":  "GetRun",
		"run_id":  id,
	})

	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get detection run")
		return nil, fmt.Errorf("service: get run: %w", err)
	}
	return run, nil
}

// ListRuns возвращает историю прогонов с пагинацией
func (s *detectionService) ListRuns(ctx context.Context, page, pageSize int) ([]*models.DetectionRun, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "detection",
		"method":    "ListRuns",
		"page":      page,
		"page_size": pageSize,
	})

	runs, err := s.repo.ListRuns(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list detection runs")
		return nil, fmt.Errorf("service: list runs: %w", err)
	}
	return runs, nil
}

// GetRaster возвращает PNG тепловой карты или маски прогона
func (s *detectionService) GetRaster(ctx context.Context, runID uuid.UUID, kind string) ([]byte, error) {
	if kind != models.RasterHeatmap && kind != models.RasterMask {
		return nil, fmt.Errorf("service: unknown raster kind %q: %w", kind, models.ErrRunNotFound)
	}

	data, err := s.repo.GetRaster(ctx, runID, kind)
	if err != nil {
		return nil, fmt.Errorf("service: get raster: %w", err)
	}
	return data, nil
}
