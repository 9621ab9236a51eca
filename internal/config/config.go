package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/shelepov/geoslide_service/internal/models"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Imagery Config
	CatalogURL       string        `env:"CATALOG_URL"`
	PreviewURL       string        `env:"PREVIEW_URL"`
	CatalogTimeout   time.Duration `env:"CATALOG_TIMEOUT" envDefault:"15s"`
	CatalogCacheTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m"`
	RasterSize       int           `env:"RASTER_SIZE" envDefault:"800"`
	RasterTTL        time.Duration `env:"RASTER_TTL" envDefault:"24h"`
	DefaultThreshold float64       `env:"CHANGE_THRESHOLD" envDefault:"0.15"`

	// Zones Config
	ZonesFile string `env:"ZONES_FILE"`
	Zones     models.ZoneTable

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// DefaultZones возвращает встроенную таблицу опорных зон.
// Expert - долина Чамоли (размеченные оползни), Desert - Джайсалмер
// (голый грунт, источник спектральных ложных срабатываний).
func DefaultZones() models.ZoneTable {
	return models.ZoneTable{
		Expert: models.Zone{Name: "CHAMOLI", MinLat: 30.0, MaxLat: 30.8, MinLon: 78.8, MaxLon: 79.8},
		Desert: models.Zone{Name: "JAISALMER", MinLat: 26.0, MaxLat: 28.0, MinLon: 70.0, MaxLon: 72.0},
	}
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		CatalogURL:        os.Getenv("CATALOG_URL"),
		PreviewURL:        os.Getenv("PREVIEW_URL"),
		CatalogTimeout:    getEnvAsDuration("CATALOG_TIMEOUT", 15*time.Second),
		CatalogCacheTTL:   getEnvAsDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		RasterSize:        getEnvAsInt("RASTER_SIZE", 800),
		RasterTTL:         getEnvAsDuration("RASTER_TTL", 24*time.Hour),
		DefaultThreshold:  getEnvAsFloat("CHANGE_THRESHOLD", 0.15),
		ZonesFile:         os.Getenv("ZONES_FILE"),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	// Таблица зон: из YAML-файла, если задан, иначе встроенные значения
	zones, err := loadZones(cfg.ZonesFile)
	if err != nil {
		return nil, err
	}
	cfg.Zones = zones

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.CatalogURL == "" {
		return nil, fmt.Errorf("CATALOG_URL environment variable is required")
	}
	if cfg.PreviewURL == "" {
		return nil, fmt.Errorf("PREVIEW_URL environment variable is required")
	}

	return cfg, nil
}

// loadZones читает таблицу зон из YAML-файла или возвращает значения по умолчанию
func loadZones(path string) (models.ZoneTable, error) {
	if path == "" {
		return DefaultZones(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.ZoneTable{}, fmt.Errorf("ошибка чтения файла зон %s: %w", path, err)
	}

	var zones models.ZoneTable
	if err := yaml.Unmarshal(data, &zones); err != nil {
		return models.ZoneTable{}, fmt.Errorf("ошибка разбора файла зон %s: %w", path, err)
	}
	return zones, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
