package entity

import (
	"strings"
)

// NormalizedGlyph символ фиксированного размера, обёрнутый в батч из одного элемента.
// Значения пикселей остаются в шкале 0..255.
type NormalizedGlyph struct {
	Width  int
	Height int
	Pix    []float32
}

// Shape возвращает форму батча: [1, Height, Width].
func (g *NormalizedGlyph) Shape() []int64 {
	return []int64{1, int64(g.Height), int64(g.Width)}
}

// Transcription хранит итог распознавания слова.
type Transcription struct {
	Script Script            // письменность запроса
	Text   string            // склеенные символы
	Glyphs []RecognizedGlyph // символы в порядке склейки
}

// NewTranscription собирает результат из распознанных символов.
func NewTranscription(script Script, glyphs []RecognizedGlyph) *Transcription {
	var b strings.Builder
	for _, g := range glyphs {
		b.WriteString(g.Char)
	}
	return &Transcription{
		Script: script,
		Text:   b.String(),
		Glyphs: glyphs,
	}
}
