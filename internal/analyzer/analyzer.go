package analyzer

import (
	"image"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/shelepov/geoslide_service/internal/models"
)

// variEpsilon стабилизирует знаменатель индекса при почти нулевой сумме каналов
const variEpsilon = 0.01

// Result - выход одного прогона анализатора
type Result struct {
	Heatmap *image.NRGBA
	Mask    *image.NRGBA
	Stats   models.ChangeStatistics
}

// Analyzer вычисляет попиксельную дельту вегетационного индекса VARI
// между двумя снимками одной сцены. Каждый пиксель обрабатывается
// независимо, поэтому строки растра раскидываются по воркерам; результат
// бит-в-бит одинаков при любом числе воркеров.
type Analyzer struct {
	workers int
}

// New создает анализатор с числом воркеров по количеству CPU
func New() *Analyzer {
	return &Analyzer{workers: runtime.GOMAXPROCS(0)}
}

// Analyze строит тепловую карту дельты индекса, бинарную маску аномалий и
// агрегаты по аномальным пикселям. Растры обязаны совпадать по размеру -
// это предусловие, которое обеспечивает загрузчик превью.
//
// Аномалией считается только падение индекса ниже -threshold: потеря
// растительности характерна для схода склона, рост индекса маску не
// триггерит.
func (a *Analyzer) Analyze(pre, post *image.NRGBA, threshold float64) (*Result, error) {
	if pre.Bounds().Dx() != post.Bounds().Dx() || pre.Bounds().Dy() != post.Bounds().Dy() {
		return nil, models.ErrDimensionMismatch
	}

	bounds := pre.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	heatmap := image.NewNRGBA(image.Rect(0, 0, width, height))
	mask := image.NewNRGBA(image.Rect(0, 0, width, height))

	// Построчные аккумуляторы: финальная свертка идет в порядке строк,
	// поэтому сумма не зависит от разбиения по воркерам
	rowCounts := make([]int, height)
	rowSums := make([]float64, height)

	workers := a.workers
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (height + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		yFrom := w * chunk
		yTo := yFrom + chunk
		if yTo > height {
			yTo = height
		}
		g.Go(func() error {
			for y := yFrom; y < yTo; y++ {
				a.analyzeRow(pre, post, heatmap, mask, bounds, y, threshold, &rowCounts[y], &rowSums[y])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := models.ChangeStatistics{}
	for y := 0; y < height; y++ {
		stats.AnomalousPixelCount += rowCounts[y]
		stats.AnomalyMagnitudeSum += rowSums[y]
	}

	return &Result{Heatmap: heatmap, Mask: mask, Stats: stats}, nil
}

func (a *Analyzer) analyzeRow(pre, post, heatmap, mask *image.NRGBA, bounds image.Rectangle, y int, threshold float64, count *int, sum *float64) {
	width := bounds.Dx()
	preRow := pre.Pix[(y+bounds.Min.Y-pre.Rect.Min.Y)*pre.Stride:]
	postRow := post.Pix[(y+bounds.Min.Y-post.Rect.Min.Y)*post.Stride:]
	heatRow := heatmap.Pix[y*heatmap.Stride:]
	maskRow := mask.Pix[y*mask.Stride:]

	preOff := (bounds.Min.X - pre.Rect.Min.X) * 4
	postOff := (bounds.Min.X - post.Rect.Min.X) * 4

	for x := 0; x < width; x++ {
		variPre := vari(preRow[preOff+x*4], preRow[preOff+x*4+1], preRow[preOff+x*4+2])
		variPost := vari(postRow[postOff+x*4], postRow[postOff+x*4+1], postRow[postOff+x*4+2])
		delta := variPost - variPre

		heat := clamp255((delta + 0.5) * 255)
		heatRow[x*4] = 255 - heat
		heatRow[x*4+1] = heat
		heatRow[x*4+2] = 0
		heatRow[x*4+3] = 255

		if delta < -threshold {
			maskRow[x*4] = 255
			maskRow[x*4+1] = 0
			maskRow[x*4+2] = 0
			maskRow[x*4+3] = 255
			*count++
			*sum += math.Abs(delta)
		}
		// иначе пиксель маски остается полностью прозрачным (нулевым)
	}
}

// vari вычисляет Visible Atmospherically Resistant Index по RGB-каналам,
// нормированным в [0,1]
func vari(r8, g8, b8 uint8) float64 {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255
	return (g - r) / (g + r - b + variEpsilon)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
