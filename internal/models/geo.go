package models

// GeoPoint представляет координату интереса (широта/долгота, WGS84)
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Zone - именованный прямоугольник в географических координатах.
// Границы включительные по обеим осям.
type Zone struct {
	Name   string  `json:"name" yaml:"name"`
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
}

// Contains проверяет, попадает ли точка в зону (границы включительно)
func (z Zone) Contains(p GeoPoint) bool {
	return p.Latitude >= z.MinLat && p.Latitude <= z.MaxLat &&
		p.Longitude >= z.MinLon && p.Longitude <= z.MaxLon
}

// ZoneTable - статическая таблица опорных зон. Заполняется один раз при
// старте из конфигурации и дальше не мутируется.
type ZoneTable struct {
	Expert Zone `yaml:"expert"`
	Desert Zone `yaml:"desert"`
}

// ZoneFlags - результат классификации точки. Зоны в принципе могут
// пересекаться, поэтому флаги не взаимоисключающие.
type ZoneFlags struct {
	IsExpert bool `json:"is_expert"`
	IsDesert bool `json:"is_desert"`
}
