package vision

import (
	"github.com/disintegration/imaging"

	"glyphscan/internal/domain/entity"
	"glyphscan/internal/domain/port"
)

// Normalizer приводит символ к фиксированному размеру входа модели.
// Пропорции не сохраняются: символ растягивается без полей.
type Normalizer struct {
	Width  int
	Height int
	Filter imaging.ResampleFilter
}

// NewNormalizer создаёт нормализатор с бикубической интерполяцией.
func NewNormalizer(width, height int) *Normalizer {
	return &Normalizer{
		Width:  width,
		Height: height,
		Filter: imaging.CatmullRom,
	}
}

// Normalize масштабирует символ до Width x Height и оборачивает его в батч из одного элемента.
func (n *Normalizer) Normalize(crop *entity.BinaryMask) (*entity.NormalizedGlyph, error) {
	if crop == nil || crop.Width <= 0 || crop.Height <= 0 {
		return nil, entity.Errorf(entity.KindEmptyRegion, "normalize", "crop has no pixels")
	}
	if n.Width <= 0 || n.Height <= 0 {
		return nil, entity.Errorf(entity.KindInference, "normalize", "invalid target size %dx%d", n.Width, n.Height)
	}

	resized := imaging.Resize(crop.Gray(), n.Width, n.Height, n.Filter)

	pix := make([]float32, n.Width*n.Height)
	for y := 0; y < n.Height; y++ {
		off := resized.PixOffset(0, y)
		for x := 0; x < n.Width; x++ {
			pix[y*n.Width+x] = float32(resized.Pix[off+x*4])
		}
	}

	return &entity.NormalizedGlyph{
		Width:  n.Width,
		Height: n.Height,
		Pix:    pix,
	}, nil
}

// Проверка реализации интерфейса
var _ port.GlyphNormalizer = (*Normalizer)(nil)
