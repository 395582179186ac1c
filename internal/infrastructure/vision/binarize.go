package vision

import (
	"image"

	"github.com/disintegration/imaging"

	"glyphscan/internal/domain/entity"
)

// BinarizeImage переводит изображение в оттенки серого и применяет инвертированный порог:
// пиксели ярче threshold становятся фоном, остальные — чернилами.
func BinarizeImage(img image.Image, threshold uint8) *entity.BinaryMask {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	mask := entity.NewBinaryMask(b.Dx(), b.Dy())
	for y := 0; y < mask.Height; y++ {
		off := gray.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < mask.Width; x++ {
			// После Grayscale каналы R, G и B совпадают.
			if gray.Pix[off+x*4] <= threshold {
				mask.Pix[y*mask.Width+x] = entity.Foreground
			}
		}
	}
	return mask
}
