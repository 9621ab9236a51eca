package analyzer

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelepov/geoslide_service/internal/models"
)

// fillImage создает растр, залитый одним цветом
func fillImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// randomImage создает растр с воспроизводимым псевдослучайным содержимым
func randomImage(width, height int, seed int64) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

func TestAnalyze_DimensionMismatch(t *testing.T) {
	a := New()
	pre := fillImage(10, 10, color.NRGBA{0, 255, 0, 255})
	post := fillImage(10, 12, color.NRGBA{0, 255, 0, 255})

	_, err := a.Analyze(pre, post, 0.15)
	assert.ErrorIs(t, err, models.ErrDimensionMismatch)
}

func TestAnalyze_IdenticalRasters_NoAnomalies(t *testing.T) {
	a := New()
	pre := randomImage(64, 64, 7)
	post := randomImage(64, 64, 7)

	res, err := a.Analyze(pre, post, 0.01)
	require.NoError(t, err)

	assert.Zero(t, res.Stats.AnomalousPixelCount)
	assert.Zero(t, res.Stats.AnomalyMagnitudeSum)

	// Все пиксели маски полностью прозрачны
	for i := 3; i < len(res.Mask.Pix); i += 4 {
		require.Zero(t, res.Mask.Pix[i])
	}
}

func TestAnalyze_GreenToRed_FullFrameAnomaly(t *testing.T) {
	a := New()
	pre := fillImage(800, 800, color.NRGBA{0, 255, 0, 255})
	post := fillImage(800, 800, color.NRGBA{255, 0, 0, 255})

	res, err := a.Analyze(pre, post, 0.15)
	require.NoError(t, err)

	assert.Equal(t, 800*800, res.Stats.AnomalousPixelCount)

	// VARI(зеленый) = 1/1.01, VARI(красный) = -1/1.01, |delta| = 2/1.01
	expectedPerPixel := 2.0 / 1.01
	assert.InDelta(t, expectedPerPixel*800*800, res.Stats.AnomalyMagnitudeSum, 1e-3)

	// Маска красная и непрозрачная, тепловая карта в крайнем "красном" углу
	assert.Equal(t, uint8(255), res.Mask.Pix[0])
	assert.Equal(t, uint8(255), res.Mask.Pix[3])
	assert.Equal(t, uint8(255), res.Heatmap.Pix[0])
	assert.Equal(t, uint8(0), res.Heatmap.Pix[1])
	assert.Equal(t, uint8(255), res.Heatmap.Pix[3])
}

func TestAnalyze_GreeningDoesNotTrigger(t *testing.T) {
	// Рост индекса (красный -> зеленый) не считается аномалией
	a := New()
	pre := fillImage(32, 32, color.NRGBA{255, 0, 0, 255})
	post := fillImage(32, 32, color.NRGBA{0, 255, 0, 255})

	res, err := a.Analyze(pre, post, 0.15)
	require.NoError(t, err)

	assert.Zero(t, res.Stats.AnomalousPixelCount)
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := New()
	pre := randomImage(128, 128, 1)
	post := randomImage(128, 128, 2)

	first, err := a.Analyze(pre, post, 0.1)
	require.NoError(t, err)
	second, err := a.Analyze(pre, post, 0.1)
	require.NoError(t, err)

	assert.Equal(t, first.Stats, second.Stats)
	assert.True(t, bytes.Equal(first.Heatmap.Pix, second.Heatmap.Pix))
	assert.True(t, bytes.Equal(first.Mask.Pix, second.Mask.Pix))
}

func TestAnalyze_MaskMatchesStats(t *testing.T) {
	a := New()
	pre := randomImage(100, 100, 3)
	post := randomImage(100, 100, 4)

	res, err := a.Analyze(pre, post, 0.1)
	require.NoError(t, err)

	opaque := 0
	for i := 3; i < len(res.Mask.Pix); i += 4 {
		if res.Mask.Pix[i] == 255 {
			opaque++
		}
	}
	assert.Equal(t, res.Stats.AnomalousPixelCount, opaque)
}

func TestAnalyze_ThresholdMonotonicity(t *testing.T) {
	a := New()
	pre := randomImage(100, 100, 5)
	post := randomImage(100, 100, 6)

	prev := 100 * 100 * 2 // заведомо больше максимума
	for _, threshold := range []float64{0.0, 0.05, 0.1, 0.2, 0.5, 1.0} {
		res, err := a.Analyze(pre, post, threshold)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Stats.AnomalousPixelCount, prev,
			"повышение порога не может увеличить число аномалий")
		prev = res.Stats.AnomalousPixelCount
	}
}

func TestAnalyze_HeatmapMidpointOnZeroDelta(t *testing.T) {
	a := New()
	img := fillImage(8, 8, color.NRGBA{120, 200, 40, 255})

	res, err := a.Analyze(img, img, 0.15)
	require.NoError(t, err)

	// delta = 0 -> heat = 127, пиксель (128, 127, 0, 255)
	assert.Equal(t, uint8(128), res.Heatmap.Pix[0])
	assert.Equal(t, uint8(127), res.Heatmap.Pix[1])
	assert.Equal(t, uint8(0), res.Heatmap.Pix[2])
	assert.Equal(t, uint8(255), res.Heatmap.Pix[3])
}
