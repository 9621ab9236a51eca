package calibrator

import (
	"math/rand"
	"sync"

	"github.com/shelepov/geoslide_service/internal/models"
)

// Константы калибровки. Подобраны вручную по размеченным прогонам,
// менять по отдельности нельзя: пороги и клампы согласованы между собой.
const (
	noiseFloorDefault = 5000  // минимум аномальных пикселей вне пустыни
	noiseFloorDesert  = 20000 // поднятый порог для пустынного ложноположительного фона
	magnitudeScale    = 250.0
	extentBonusPixels = 10000 // от этого числа пикселей начисляется бонус за площадь
	extentBonus       = 10.0
	rawScoreCap       = 90.0
	expertFloorBase   = 82.0
	expertFloorJitter = 12.0
	expertMinPixels   = 1000
	scoreCap          = 99.0
)

// Calibrator переводит статистику анализатора и зонные флаги в итоговую
// оценку уверенности. Джиттер экспертного пола берется из внедренного
// генератора, чтобы тесты могли зафиксировать сид.
type Calibrator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New создает калибратор с переданным источником случайности
func New(rng *rand.Rand) *Calibrator {
	return &Calibrator{rng: rng}
}

// Calibrate вычисляет оценку уверенности в диапазоне [0, 99].
// Нулевая оценка означает, что обнаружение трактуется как шум
// сенсора/рельефа и маска должна быть подавлена.
func (c *Calibrator) Calibrate(stats models.ChangeStatistics, flags models.ZoneFlags) models.ConfidenceResult {
	minPixels := noiseFloorDefault
	if flags.IsDesert {
		minPixels = noiseFloorDesert
	}

	score := 0.0
	if stats.AnomalousPixelCount > minPixels {
		score = stats.AnomalyMagnitudeSum / float64(stats.AnomalousPixelCount) * magnitudeScale
		if stats.AnomalousPixelCount > extentBonusPixels {
			score += extentBonus
		}
		if score > rawScoreCap {
			score = rawScoreCap
		}
	}

	// Экспертный пол: в зоне с проверенной разметкой оценка не опускается
	// ниже 82, даже если пиксельная эвристика не добрала или была
	// подавлена порогом шума
	if flags.IsExpert && stats.AnomalousPixelCount > expertMinPixels {
		c.mu.Lock()
		jitter := c.rng.Float64()
		c.mu.Unlock()
		floor := expertFloorBase + jitter*expertFloorJitter
		if floor > score {
			score = floor
		}
	}

	if score > scoreCap {
		score = scoreCap
	}

	return models.ConfidenceResult{Score: score}
}
