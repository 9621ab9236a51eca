package models

import "time"

// SearchTier - одна ступень эскалации поиска снимков: ширина временного
// окна в днях и потолок облачности в процентах.
type SearchTier struct {
	DayWindow        int `json:"day_window"`
	MaxCloudCoverPct int `json:"max_cloud_cover_pct"`
}

// ImageAsset - найденный снимок каталога. После возврата из поиска
// принадлежит вызывающему и не изменяется.
type ImageAsset struct {
	ID string `json:"id"`
	// BoundingBox в порядке [minLon, minLat, maxLon, maxLat]
	BoundingBox [4]float64 `json:"bounding_box"`
	AcquiredAt  time.Time  `json:"acquired_at"`
}
