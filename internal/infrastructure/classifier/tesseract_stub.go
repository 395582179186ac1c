//go:build !tesseract
// +build !tesseract

package classifier

import (
	"context"

	"glyphscan/internal/domain/entity"
)

// TesseractClassifier заглушка для сборки без тега tesseract.
type TesseractClassifier struct{}

// NewTesseractClassifier возвращает ошибку, если сборка без тега tesseract.
func NewTesseractClassifier(script entity.Script) (*TesseractClassifier, error) {
	_ = script
	return nil, entity.Errorf(entity.KindModelUnavailable, "tesseract", "tesseract build tag is not enabled")
}

// Classify возвращает ошибку, если сборка без тега tesseract.
func (c *TesseractClassifier) Classify(ctx context.Context, glyph *entity.NormalizedGlyph) (string, error) {
	_ = ctx
	_ = glyph
	return "", entity.Errorf(entity.KindInference, "tesseract", "tesseract build tag is not enabled")
}

// Close ничего не делает.
func (c *TesseractClassifier) Close() error {
	return nil
}
