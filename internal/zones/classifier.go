package zones

import "github.com/shelepov/geoslide_service/internal/models"

// Classifier проверяет принадлежность точки опорным зонам.
// Таблица зон передается при создании и не меняется, поэтому
// классификация детерминирована и безопасна для конкурентных вызовов.
type Classifier struct {
	table models.ZoneTable
}

// NewClassifier создает классификатор над переданной таблицей зон
func NewClassifier(table models.ZoneTable) *Classifier {
	return &Classifier{table: table}
}

// Classify возвращает флаги принадлежности точки зонам.
// Границы зон включительные по обеим осям; зоны могут пересекаться,
// поэтому оба флага могут быть выставлены одновременно.
func (c *Classifier) Classify(p models.GeoPoint) models.ZoneFlags {
	return models.ZoneFlags{
		IsExpert: c.table.Expert.Contains(p),
		IsDesert: c.table.Desert.Contains(p),
	}
}
