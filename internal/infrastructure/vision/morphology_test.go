package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDilate_SinglePixel(t *testing.T) {
	m := maskWith(9, 9, image.Rect(4, 4, 5, 5))

	one := Dilate(m, 3, 1)
	require.Equal(t, maskWith(9, 9, image.Rect(3, 3, 6, 6)).Pix, one.Pix)

	two := Dilate(m, 3, 2)
	require.Equal(t, maskWith(9, 9, image.Rect(2, 2, 7, 7)).Pix, two.Pix)
}

func TestDilate_ClipsAtBorder(t *testing.T) {
	m := maskWith(10, 10, image.Rect(0, 0, 1, 1))
	out := Dilate(m, 3, 5)
	require.Equal(t, maskWith(10, 10, image.Rect(0, 0, 6, 6)).Pix, out.Pix)
}

func TestDilate_NoIterationsReturnsCopy(t *testing.T) {
	m := maskWith(5, 5, image.Rect(1, 1, 2, 2))
	out := Dilate(m, 3, 0)
	require.Equal(t, m.Pix, out.Pix)

	fillRect(out, out.Bounds())
	require.Equal(t, 1, inkPixels(m))
}

func TestDilate_EmptyMaskStaysEmpty(t *testing.T) {
	m := maskWith(16, 8)
	require.Zero(t, inkPixels(Dilate(m, 3, 5)))
}
