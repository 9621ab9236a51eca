package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shelepov/geoslide_service/internal/config"
	"github.com/shelepov/geoslide_service/internal/models"
)

// DefaultTiers - фиксированная лестница эскалации поиска: сперва свежие и
// чистые снимки, затем шире окно и выше допуск облачности. Ровно три
// ступени, порядок от самой строгой к самой слабой.
var DefaultTiers = []models.SearchTier{
	{DayWindow: 10, MaxCloudCoverPct: 30},
	{DayWindow: 30, MaxCloudCoverPct: 60},
	{DayWindow: 90, MaxCloudCoverPct: 100},
}

const collectionSentinel2L2A = "sentinel-2-l2a"

// Client - клиент спутникового каталога (STAC search endpoint).
// Успешные ответы ступеней кешируются в Redis, чтобы повторные прогоны по
// той же точке не дергали каталог.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *logrus.Logger
	tiers       []models.SearchTier
}

// NewClient создает клиент каталога. redisClient может быть nil - тогда
// кеширование отключено.
func NewClient(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:     cfg.CatalogURL,
		httpClient:  &http.Client{Timeout: cfg.CatalogTimeout},
		redisClient: redisClient,
		cacheTTL:    cfg.CatalogCacheTTL,
		logger:      logger,
		tiers:       DefaultTiers,
	}
}

// Search ищет снимок рядом с целевой датой, последовательно ослабляя
// ограничения. Первая ступень с результатом выигрывает, ступени не
// сравниваются между собой. Транспортная ошибка ступени логируется и
// поиск продолжается со следующей; если все три ступени исчерпаны без
// результата, возвращается models.ErrNoImagery.
func (c *Client) Search(ctx context.Context, point models.GeoPoint, targetDate time.Time) (*models.ImageAsset, error) {
	log := c.logger.WithFields(logrus.Fields{
		"component": "catalog",
		"lat":       point.Latitude,
		"lon":       point.Longitude,
		"target":    targetDate.Format("2006-01-02"),
	})

	for i, tier := range c.tiers {
		asset, err := c.searchTier(ctx, point, targetDate, tier)
		if err != nil {
			// Отмена запроса прерывает весь поиск, а не только ступень
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			log.WithError(err).Warnf("Catalog tier %d failed, escalating", i+1)
			continue
		}
		if asset != nil {
			log.WithFields(logrus.Fields{
				"asset_id": asset.ID,
				"tier":     i + 1,
			}).Info("Imagery asset found")
			return asset, nil
		}
		log.Debugf("Catalog tier %d returned no assets, escalating", i+1)
	}

	log.Info("All catalog tiers exhausted without a result")
	return nil, models.ErrNoImagery
}

// searchRequest - тело поискового запроса STAC
type searchRequest struct {
	Collections []string                      `json:"collections"`
	Intersects  geoJSONPoint                  `json:"intersects"`
	Query       map[string]map[string]float64 `json:"query"`
	Datetime    string                        `json:"datetime"`
	Limit       int                           `json:"limit"`
	SortBy      []sortSpec                    `json:"sortby"`
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type sortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// featureCollection - ответ каталога (GeoJSON FeatureCollection)
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	ID         string            `json:"id"`
	BBox       []float64         `json:"bbox"`
	Properties featureProperties `json:"properties"`
}

type featureProperties struct {
	Datetime   string  `json:"datetime"`
	CloudCover float64 `json:"eo:cloud_cover"`
}

func (c *Client) searchTier(ctx context.Context, point models.GeoPoint, targetDate time.Time, tier models.SearchTier) (*models.ImageAsset, error) {
	cacheKey := fmt.Sprintf("catalog:%.5f:%.5f:%s:%d:%d",
		point.Latitude, point.Longitude, targetDate.Format("2006-01-02"), tier.DayWindow, tier.MaxCloudCoverPct)

	if cached := c.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	start := targetDate.AddDate(0, 0, -tier.DayWindow).UTC()
	end := targetDate.AddDate(0, 0, tier.DayWindow).UTC()

	body := searchRequest{
		Collections: []string{collectionSentinel2L2A},
		Intersects: geoJSONPoint{
			Type:        "Point",
			Coordinates: [2]float64{point.Longitude, point.Latitude},
		},
		Query: map[string]map[string]float64{
			"eo:cloud_cover": {"lte": float64(tier.MaxCloudCoverPct)},
		},
		Datetime: start.Format(time.RFC3339) + "/" + end.Format(time.RFC3339),
		Limit:    1,
		SortBy:   []sortSpec{{Field: "properties.datetime", Direction: "desc"}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if len(fc.Features) == 0 {
		return nil, nil
	}

	asset, err := featureToAsset(fc.Features[0])
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, cacheKey, asset)
	return asset, nil
}

func featureToAsset(f feature) (*models.ImageAsset, error) {
	acquired, err := time.Parse(time.RFC3339, f.Properties.Datetime)
	if err != nil {
		return nil, fmt.Errorf("malformed acquisition timestamp %q: %w", f.Properties.Datetime, err)
	}

	asset := &models.ImageAsset{ID: f.ID, AcquiredAt: acquired}
	if len(f.BBox) >= 4 {
		copy(asset.BoundingBox[:], f.BBox[:4])
	}
	return asset, nil
}

func (c *Client) fromCache(ctx context.Context, key string) *models.ImageAsset {
	if c.redisClient == nil {
		return nil
	}
	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var asset models.ImageAsset
	if err := json.Unmarshal(data, &asset); err != nil {
		return nil
	}
	return &asset
}

func (c *Client) toCache(ctx context.Context, key string, asset *models.ImageAsset) {
	if c.redisClient == nil {
		return
	}
	data, err := json.Marshal(asset)
	if err != nil {
		return
	}
	if err := c.redisClient.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.logger.WithError(err).Debug("Failed to cache catalog response")
	}
}
