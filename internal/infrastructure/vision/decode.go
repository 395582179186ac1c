package vision

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"glyphscan/internal/domain/entity"
)

// decodeImage декодирует байты любого зарегистрированного растрового формата.
// Размер читается из заголовка до декодирования, изображения больше maxPixels отклоняются.
func decodeImage(imageData []byte, maxPixels int) (image.Image, error) {
	if len(imageData) == 0 {
		return nil, entity.NewError(entity.KindDecode, "decode", errors.New("empty image data"))
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, entity.NewError(entity.KindDecode, "decode header", err)
	}
	if err := checkPixels(cfg, format, maxPixels); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, entity.NewError(entity.KindDecode, "decode", err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, entity.Errorf(entity.KindDecode, "decode", "%s image has no pixels", format)
	}
	return img, nil
}

// checkImageSize проверяет размер по заголовку. Формат, которого нет среди
// зарегистрированных, пропускается: его проверит декодер OpenCV.
func checkImageSize(imageData []byte, maxPixels int) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if errors.Is(err, image.ErrFormat) {
		return nil
	}
	if err != nil {
		return entity.NewError(entity.KindDecode, "decode header", err)
	}
	return checkPixels(cfg, format, maxPixels)
}

func checkPixels(cfg image.Config, format string, maxPixels int) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return entity.Errorf(entity.KindDecode, "decode header", "%s image has no pixels", format)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return entity.Errorf(entity.KindDecode, "decode header", "%s image %dx%d exceeds %d pixels",
			format, cfg.Width, cfg.Height, maxPixels)
	}
	return nil
}
