package entity

import (
	"image"
)

// Значения пикселей бинарной маски.
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// BinaryMask бинарная маска изображения: чернила — Foreground, бумага — Background.
// Пиксели хранятся построчно.
type BinaryMask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBinaryMask создаёт пустую маску заданного размера.
func NewBinaryMask(width, height int) *BinaryMask {
	return &BinaryMask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Bounds возвращает прямоугольник маски.
func (m *BinaryMask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// Clone возвращает независимую копию маски.
func (m *BinaryMask) Clone() *BinaryMask {
	c := &BinaryMask{Width: m.Width, Height: m.Height, Pix: make([]uint8, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}

// Crop вырезает область из маски. Размер результата всегда равен размеру области.
// Пустая или выходящая за границы область даёт ErrEmptyRegion.
func (m *BinaryMask) Crop(region GlyphRegion) (*BinaryMask, error) {
	if region.Empty() {
		return nil, Errorf(KindEmptyRegion, "crop", "region %dx%d at (%d,%d) has no area",
			region.Width, region.Height, region.X, region.Y)
	}
	if !region.Rect().In(m.Bounds()) {
		return nil, Errorf(KindEmptyRegion, "crop", "region %v lies outside mask %dx%d",
			region.Rect(), m.Width, m.Height)
	}

	crop := NewBinaryMask(region.Width, region.Height)
	for y := 0; y < region.Height; y++ {
		src := (region.Y+y)*m.Width + region.X
		copy(crop.Pix[y*crop.Width:(y+1)*crop.Width], m.Pix[src:src+region.Width])
	}
	return crop, nil
}

// Gray возвращает маску как *image.Gray.
func (m *BinaryMask) Gray() *image.Gray {
	img := image.NewGray(m.Bounds())
	copy(img.Pix, m.Pix)
	return img
}
