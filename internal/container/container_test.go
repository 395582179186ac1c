package container

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	app "glyphscan/internal/application"
	"glyphscan/internal/domain/entity"
	"glyphscan/internal/infrastructure/classifier"
	"glyphscan/internal/infrastructure/vision"
)

type fixedClassifier string

func (f fixedClassifier) Classify(ctx context.Context, glyph *entity.NormalizedGlyph) (string, error) {
	return string(f), nil
}

func TestNew_WiresTranscription(t *testing.T) {
	registry := classifier.NewRegistry()
	registry.Register(entity.ScriptJapanese, fixedClassifier("あ"))

	c := New(vision.NewSegmenter(vision.DefaultParams()), vision.NewNormalizer(28, 28), registry, app.TranscriptionOptions{Workers: 2})
	require.NotNil(t, c.TranscriptionService)

	img := image.NewGray(image.Rect(0, 0, 64, 32))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(20, 8, 40, 24), image.NewUniform(color.Black), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	result, err := c.TranscriptionService.Transcribe(context.Background(), entity.ScriptJapanese, buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "あ", result.Text)

	_, err = c.TranscriptionService.Transcribe(context.Background(), entity.ScriptRussian, buf.Bytes())
	require.ErrorIs(t, err, entity.ErrModelUnavailable)
}
