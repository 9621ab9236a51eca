package imagery

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/shelepov/geoslide_service/internal/config"
	"github.com/shelepov/geoslide_service/internal/models"
)

// Fetcher загружает превью снимка по id ассета и приводит его к рабочему
// размеру анализатора. Endpoint превью обязан отдавать фиксированный
// размер, но загрузчик на всякий случай нормализует растр сам - так
// предусловие анализатора о равных размерах выполняется конструктивно.
type Fetcher struct {
	baseURL    string
	size       int
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewFetcher создает загрузчик превью
func NewFetcher(cfg *config.Config, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		baseURL:    strings.TrimRight(cfg.PreviewURL, "/"),
		size:       cfg.RasterSize,
		httpClient: &http.Client{Timeout: cfg.CatalogTimeout},
		logger:     logger,
	}
}

// Fetch загружает и декодирует превью. Ошибка декодирования фатальна для
// прогона и оборачивает models.ErrDecode.
func (f *Fetcher) Fetch(ctx context.Context, assetID string) (*image.NRGBA, error) {
	previewURL := fmt.Sprintf("%s/%s/preview.png", f.baseURL, url.PathEscape(assetID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, previewURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preview request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("preview endpoint returned status %d: %w", resp.StatusCode, models.ErrDecode)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDecode, assetID, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != f.size || bounds.Dy() != f.size {
		f.logger.WithFields(logrus.Fields{
			"asset_id": assetID,
			"width":    bounds.Dx(),
			"height":   bounds.Dy(),
		}).Debugf("Preview size differs from %dx%d, resizing", f.size, f.size)
		return imaging.Resize(img, f.size, f.size, imaging.Lanczos), nil
	}

	return imaging.Clone(img), nil
}
