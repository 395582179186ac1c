//go:build tesseract
// +build tesseract

package classifier

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"sync"
	"unicode"

	"github.com/otiai10/gosseract/v2"

	"glyphscan/internal/domain/entity"
	"glyphscan/internal/domain/port"
)

// tesseractLanguages коды языков Tesseract для письменностей.
var tesseractLanguages = map[entity.Script]string{
	entity.ScriptJapanese: "jpn",
	entity.ScriptKorean:   "kor",
	entity.ScriptRussian:  "rus",
}

// TesseractClassifier распознаёт одиночный символ движком Tesseract.
// Клиент gosseract не потокобезопасен, вызовы сериализуются.
type TesseractClassifier struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractClassifier создаёт клиент Tesseract для языка письменности.
func NewTesseractClassifier(script entity.Script) (*TesseractClassifier, error) {
	lang, ok := tesseractLanguages[script]
	if !ok {
		return nil, entity.Errorf(entity.KindUnknownScript, "tesseract language", "%q", script)
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(lang); err != nil {
		_ = client.Close()
		return nil, entity.NewError(entity.KindModelUnavailable, "tesseract language", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		_ = client.Close()
		return nil, entity.NewError(entity.KindModelUnavailable, "tesseract page mode", err)
	}
	return &TesseractClassifier{client: client}, nil
}

// Classify отдаёт символ Tesseract и возвращает первую распознанную букву.
func (c *TesseractClassifier) Classify(ctx context.Context, glyph *entity.NormalizedGlyph) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", entity.NewError(entity.KindInference, "classify", err)
	}

	// Tesseract ждёт тёмный текст на светлом фоне.
	img := image.NewGray(image.Rect(0, 0, glyph.Width, glyph.Height))
	for i, v := range glyph.Pix {
		img.Pix[i] = 255 - uint8(min(max(v, 0), 255))
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", entity.NewError(entity.KindInference, "encode glyph", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", entity.NewError(entity.KindInference, "set image", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", entity.NewError(entity.KindInference, "recognize", err)
	}

	for _, r := range strings.TrimSpace(text) {
		if !unicode.IsSpace(r) {
			return string(r), nil
		}
	}
	return "", entity.Errorf(entity.KindInference, "recognize", "tesseract returned no character")
}

// Close закрывает клиент Tesseract.
func (c *TesseractClassifier) Close() error {
	return c.client.Close()
}

// Проверка реализации интерфейса
var _ port.GlyphClassifier = (*TesseractClassifier)(nil)
