package port

import (
	"glyphscan/internal/domain/entity"
)

// GlyphSegmenter интерфейс сегментатора слова на символы
type GlyphSegmenter interface {
	// Binarize декодирует изображение и строит бинарную маску (чернила — Foreground)
	Binarize(imageData []byte) (*entity.BinaryMask, error)

	// Locate находит области символов на маске в порядке обнаружения контуров
	Locate(mask *entity.BinaryMask) ([]entity.GlyphRegion, error)
}

// GlyphNormalizer приводит вырезанный символ к входному размеру модели
type GlyphNormalizer interface {
	Normalize(crop *entity.BinaryMask) (*entity.NormalizedGlyph, error)
}
