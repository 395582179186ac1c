package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"glyphscan/internal/domain/entity"
)

func TestExternalRegions_TwoSquares(t *testing.T) {
	m := maskWith(60, 30, image.Rect(5, 5, 15, 15), image.Rect(30, 3, 50, 23))

	regions := ExternalRegions(m)
	require.Equal(t, []entity.GlyphRegion{
		{X: 30, Y: 3, Width: 20, Height: 20},
		{X: 5, Y: 5, Width: 10, Height: 10},
	}, regions)
}

func TestExternalRegions_EmptyMask(t *testing.T) {
	require.Empty(t, ExternalRegions(maskWith(20, 20)))
	require.Empty(t, ExternalRegions(entity.NewBinaryMask(0, 0)))
}

func TestExternalRegions_DiagonalNeighboursConnect(t *testing.T) {
	m := maskWith(6, 6, image.Rect(1, 1, 2, 2), image.Rect(2, 2, 3, 3))
	require.Equal(t, []entity.GlyphRegion{{X: 1, Y: 1, Width: 2, Height: 2}}, ExternalRegions(m))
}

func TestExternalRegions_SkipsBlobInsideHole(t *testing.T) {
	m := maskWith(20, 20, image.Rect(2, 2, 18, 18))
	// Вырезаем дырку и кладём в неё точку.
	for y := 4; y < 16; y++ {
		for x := 4; x < 16; x++ {
			m.Pix[y*m.Width+x] = entity.Background
		}
	}
	m.Pix[9*m.Width+9] = entity.Foreground

	require.Equal(t, []entity.GlyphRegion{{X: 2, Y: 2, Width: 16, Height: 16}}, ExternalRegions(m))
}

func TestExternalRegions_BlobTouchingBorder(t *testing.T) {
	m := maskWith(10, 10, image.Rect(0, 4, 3, 10))
	require.Equal(t, []entity.GlyphRegion{{X: 0, Y: 4, Width: 3, Height: 6}}, ExternalRegions(m))
}
