//go:build !gocv
// +build !gocv

package vision

import (
	"glyphscan/internal/domain/entity"
	"glyphscan/internal/domain/port"
)

// Segmenter сегментатор на чистом Go (сборка без тега gocv).
type Segmenter struct {
	params Params
}

// NewSegmenter создаёт сегментатор с заданными параметрами.
func NewSegmenter(params Params) *Segmenter {
	return &Segmenter{params: params}
}

// Backend возвращает название реализации.
func (s *Segmenter) Backend() string {
	return "pure-go"
}

// Binarize декодирует изображение и строит бинарную маску.
func (s *Segmenter) Binarize(imageData []byte) (*entity.BinaryMask, error) {
	img, err := decodeImage(imageData, s.params.MaxPixels)
	if err != nil {
		return nil, err
	}
	return BinarizeImage(img, s.params.Threshold), nil
}

// Locate наращивает чернила, чтобы склеить штрихи одного символа, и возвращает
// прямоугольники внешних контуров наращённой маски.
func (s *Segmenter) Locate(mask *entity.BinaryMask) ([]entity.GlyphRegion, error) {
	dilated := Dilate(mask, s.params.KernelSize, s.params.Iterations)
	return ExternalRegions(dilated), nil
}

// Проверка реализации интерфейса
var _ port.GlyphSegmenter = (*Segmenter)(nil)
