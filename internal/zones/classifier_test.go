package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelepov/geoslide_service/internal/models"
)

func testTable() models.ZoneTable {
	return models.ZoneTable{
		Expert: models.Zone{Name: "EXPERT", MinLat: 30.0, MaxLat: 30.8, MinLon: 78.8, MaxLon: 79.8},
		Desert: models.Zone{Name: "DESERT", MinLat: 26.0, MaxLat: 28.0, MinLon: 70.0, MaxLon: 72.0},
	}
}

func TestClassify_ExpertZone(t *testing.T) {
	c := NewClassifier(testTable())

	flags := c.Classify(models.GeoPoint{Latitude: 30.4, Longitude: 79.3})

	assert.True(t, flags.IsExpert)
	assert.False(t, flags.IsDesert)
}

func TestClassify_DesertZone(t *testing.T) {
	c := NewClassifier(testTable())

	flags := c.Classify(models.GeoPoint{Latitude: 27.0, Longitude: 71.0})

	assert.False(t, flags.IsExpert)
	assert.True(t, flags.IsDesert)
}

func TestClassify_OutsideAllZones(t *testing.T) {
	c := NewClassifier(testTable())

	flags := c.Classify(models.GeoPoint{Latitude: 55.75, Longitude: 37.62})

	assert.False(t, flags.IsExpert)
	assert.False(t, flags.IsDesert)
}

// Точка ровно на границе зоны считается внутри (границы включительные)
func TestClassify_BoundaryInclusive(t *testing.T) {
	c := NewClassifier(testTable())

	corners := []models.GeoPoint{
		{Latitude: 30.0, Longitude: 78.8},
		{Latitude: 30.8, Longitude: 79.8},
		{Latitude: 30.0, Longitude: 79.8},
		{Latitude: 30.8, Longitude: 78.8},
	}
	for _, p := range corners {
		flags := c.Classify(p)
		assert.True(t, flags.IsExpert, "corner %+v must be inside", p)
	}
}

// Перекрывающиеся зоны дают оба флага: взаимоисключительность не гарантируется
func TestClassify_OverlappingZones(t *testing.T) {
	table := models.ZoneTable{
		Expert: models.Zone{MinLat: 0, MaxLat: 10, MinLon: 0, MaxLon: 10},
		Desert: models.Zone{MinLat: 5, MaxLat: 15, MinLon: 5, MaxLon: 15},
	}
	c := NewClassifier(table)

	flags := c.Classify(models.GeoPoint{Latitude: 7, Longitude: 7})

	assert.True(t, flags.IsExpert)
	assert.True(t, flags.IsDesert)
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier(testTable())
	p := models.GeoPoint{Latitude: 30.4, Longitude: 79.3}

	first := c.Classify(p)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, c.Classify(p))
	}
}
