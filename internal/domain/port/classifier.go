package port

import (
	"context"

	"glyphscan/internal/domain/entity"
)

// GlyphClassifier интерфейс классификатора одного символа
type GlyphClassifier interface {
	// Classify возвращает символ с максимальной уверенностью модели
	Classify(ctx context.Context, glyph *entity.NormalizedGlyph) (string, error)
}

// ClassifierRegistry выдаёт классификатор для письменности
type ClassifierRegistry interface {
	// Classifier возвращает ErrModelUnavailable, если модель не загружена
	Classifier(script entity.Script) (GlyphClassifier, error)
}
