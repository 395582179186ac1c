//go:build gocv
// +build gocv

package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoCVSegmenter_MatchesPureGo(t *testing.T) {
	data := paperPNG(t, 120, 50,
		image.Rect(5, 5, 20, 40),
		image.Rect(24, 10, 26, 12),
		image.Rect(60, 8, 90, 12),
		image.Rect(60, 30, 90, 34),
	)
	s := NewSegmenter(DefaultParams())
	require.Equal(t, "gocv", s.Backend())

	mask, err := s.Binarize(data)
	require.NoError(t, err)

	img, err := decodeImage(data, DefaultMaxPixels)
	require.NoError(t, err)
	require.Equal(t, BinarizeImage(img, 127).Pix, mask.Pix)

	regions, err := s.Locate(mask)
	require.NoError(t, err)

	p := DefaultParams()
	require.ElementsMatch(t, ExternalRegions(Dilate(mask, p.KernelSize, p.Iterations)), regions)
}
