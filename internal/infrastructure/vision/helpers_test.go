package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"glyphscan/internal/domain/entity"
)

// paperPNG рисует чёрные прямоугольники на белом листе и кодирует результат в PNG.
func paperPNG(t *testing.T, width, height int, ink ...image.Rectangle) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for _, r := range ink {
		draw.Draw(img, r, image.NewUniform(color.Black), image.Point{}, draw.Src)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// maskWith строит маску с закрашенными прямоугольниками.
func maskWith(width, height int, ink ...image.Rectangle) *entity.BinaryMask {
	m := entity.NewBinaryMask(width, height)
	for _, r := range ink {
		fillRect(m, r)
	}
	return m
}

func fillRect(m *entity.BinaryMask, r image.Rectangle) {
	r = r.Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Pix[y*m.Width+x] = entity.Foreground
		}
	}
}

// inkPixels считает пиксели чернил.
func inkPixels(m *entity.BinaryMask) int {
	n := 0
	for _, v := range m.Pix {
		n += inkCount(v)
	}
	return n
}
