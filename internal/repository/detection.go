package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shelepov/geoslide_service/internal/models"
	"github.com/shelepov/geoslide_service/internal/service"
)

// DetectionRepository хранит метаданные прогонов в PostgreSQL, а PNG
// растров - в Redis с TTL: растры нужны только пока клиент смотрит на
// результат, истории достаточно метаданных.
type DetectionRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	rasterTTL   time.Duration
}

func NewDetectionRepository(db *pgxpool.Pool, redisClient *redis.Client, rasterTTL time.Duration) service.DetectionRepository {
	return &DetectionRepository{
		db:          db,
		redisClient: redisClient,
		rasterTTL:   rasterTTL,
	}
}

// SaveRun сохраняет запись о выполненном прогоне
func (r *DetectionRepository) SaveRun(ctx context.Context, run *models.DetectionRun) error {
	query := `
		INSERT INTO detection_runs (
			id, latitude, longitude, date_pre, date_post, threshold,
			asset_pre_id, asset_post_id, acquired_pre, acquired_post,
			is_expert, is_desert, anomalous_pixel_count, anomaly_magnitude_sum,
			confidence, suppress_mask, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db.Exec(ctx, query,
		run.ID,
		run.Latitude,
		run.Longitude,
		run.DatePre,
		run.DatePost,
		run.Threshold,
		run.AssetPreID,
		run.AssetPostID,
		run.AcquiredPre,
		run.AcquiredPost,
		run.ZoneFlags.IsExpert,
		run.ZoneFlags.IsDesert,
		run.Stats.AnomalousPixelCount,
		run.Stats.AnomalyMagnitudeSum,
		run.Confidence,
		run.SuppressMask,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save detection run: %w", err)
	}
	return nil
}

// GetRun возвращает прогон по его UUID
func (r *DetectionRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.DetectionRun, error) {
	run := &models.DetectionRun{}
	query := `
		SELECT
			id, latitude, longitude, date_pre, date_post, threshold,
			asset_pre_id, asset_post_id, acquired_pre, acquired_post,
			is_expert, is_desert, anomalous_pixel_count, anomaly_magnitude_sum,
			confidence, suppress_mask, created_at
		FROM detection_runs
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.Latitude,
		&run.Longitude,
		&run.DatePre,
		&run.DatePost,
		&run.Threshold,
		&run.AssetPreID,
		&run.AssetPostID,
		&run.AcquiredPre,
		&run.AcquiredPost,
		&run.ZoneFlags.IsExpert,
		&run.ZoneFlags.IsDesert,
		&run.Stats.AnomalousPixelCount,
		&run.Stats.AnomalyMagnitudeSum,
		&run.Confidence,
		&run.SuppressMask,
		&run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get detection run by id: %w", err)
	}
	return run, nil
}

// ListRuns возвращает страницу истории прогонов, новые сверху
func (r *DetectionRepository) ListRuns(ctx context.Context, page, pageSize int) ([]*models.DetectionRun, error) {
	offset := (page - 1) * pageSize
	query := `
		SELECT
			id, latitude, longitude, date_pre, date_post, threshold,
			asset_pre_id, asset_post_id, acquired_pre, acquired_post,
			is_expert, is_desert, anomalous_pixel_count, anomaly_magnitude_sum,
			confidence, suppress_mask, created_at
		FROM detection_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list detection runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.DetectionRun
	for rows.Next() {
		run := &models.DetectionRun{}
		if err := rows.Scan(
			&run.ID,
			&run.Latitude,
			&run.Longitude,
			&run.DatePre,
			&run.DatePost,
			&run.Threshold,
			&run.AssetPreID,
			&run.AssetPostID,
			&run.AcquiredPre,
			&run.AcquiredPost,
			&run.ZoneFlags.IsExpert,
			&run.ZoneFlags.IsDesert,
			&run.Stats.AnomalousPixelCount,
			&run.Stats.AnomalyMagnitudeSum,
			&run.Confidence,
			&run.SuppressMask,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan detection run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate detection runs: %w", err)
	}
	return runs, nil
}

func rasterKey(runID uuid.UUID, kind string) string {
	return fmt.Sprintf("raster:%s:%s", runID, kind)
}

// SaveRaster сохраняет PNG растра в Redis с TTL
func (r *DetectionRepository) SaveRaster(ctx context.Context, runID uuid.UUID, kind string, data []byte) error {
	if err := r.redisClient.Set(ctx, rasterKey(runID, kind), data, r.rasterTTL).Err(); err != nil {
		return fmt.Errorf("failed to save %s raster: %w", kind, err)
	}
	return nil
}

// GetRaster возвращает PNG растра; после истечения TTL - ErrRunNotFound
func (r *DetectionRepository) GetRaster(ctx context.Context, runID uuid.UUID, kind string) ([]byte, error) {
	data, err := r.redisClient.Get(ctx, rasterKey(runID, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get %s raster: %w", kind, err)
	}
	return data, nil
}
