package entity

import "image"

// GlyphRegion представляет область одного символа на маске
type GlyphRegion struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// RegionFromRect строит область из прямоугольника image.Rectangle.
func RegionFromRect(r image.Rectangle) GlyphRegion {
	return GlyphRegion{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect возвращает область как image.Rectangle
func (g GlyphRegion) Rect() image.Rectangle {
	return image.Rect(g.X, g.Y, g.X+g.Width, g.Y+g.Height)
}

// Empty сообщает, что у области нулевая ширина или высота.
func (g GlyphRegion) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// RecognizedGlyph — область и распознанный в ней символ.
type RecognizedGlyph struct {
	Region GlyphRegion
	Char   string
}
