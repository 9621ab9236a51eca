package models

import "errors"

var (
	// ErrNoImagery - все ступени поиска исчерпаны без результата
	ErrNoImagery = errors.New("no usable imagery found")

	// ErrDecode - превью не удалось загрузить или декодировать
	ErrDecode = errors.New("failed to decode raster")

	// ErrDimensionMismatch - растры разного размера; нарушение предусловия
	// анализатора, при фиксированном размере превью возникать не должно
	ErrDimensionMismatch = errors.New("raster dimensions mismatch")

	// ErrRunNotFound - прогон с таким id не найден
	ErrRunNotFound = errors.New("detection run not found")
)
