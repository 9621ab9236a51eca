package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	webhookQueueKey = "webhook_events"

	// EventDetectionCompleted - единственный тип события на сегодня
	EventDetectionCompleted = "detection.completed"
)

// WebhookEvent - структура для данных вебхука о завершенном прогоне
type WebhookEvent struct {
	Event               string    `json:"event"`
	RunID               uuid.UUID `json:"run_id"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Confidence          float64   `json:"confidence"`
	SuppressMask        bool      `json:"suppress_mask"`
	AnomalousPixelCount int       `json:"anomalous_pixel_count"`
	Timestamp           time.Time `json:"timestamp"`
}

//go:generate mockgen -destination=mocks/mock_publisher.go -package=mocks github.com/shelepov/geoslide_service/internal/webhook WebhookPublisher

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
