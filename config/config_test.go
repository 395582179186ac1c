package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"HTTP_ADDR", "BINARY_THRESHOLD", "DILATE_KERNEL", "DILATE_ITERATIONS", "GLYPH_WIDTH", "GLYPH_HEIGHT", "GLYPH_ORDER", "CLASSIFY_WORKERS", "CLASSIFIER_BACKEND", "CORS_ORIGINS", "MAX_IMAGE_PIXELS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.HTTPAddr)
	require.Equal(t, 127, cfg.BinaryThreshold)
	require.Equal(t, 3, cfg.DilateKernel)
	require.Equal(t, 5, cfg.DilateIterations)
	require.Equal(t, 28, cfg.GlyphWidth)
	require.Equal(t, 28, cfg.GlyphHeight)
	require.Equal(t, "reading", cfg.GlyphOrder)
	require.Equal(t, 1, cfg.ClassifyWorkers)
	require.Equal(t, "onnx", cfg.ClassifierBackend)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Equal(t, 40_000_000, cfg.MaxImagePixels)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BINARY_THRESHOLD", "100")
	t.Setenv("DILATE_ITERATIONS", "2")
	t.Setenv("GLYPH_ORDER", "Discovery")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 100, cfg.BinaryThreshold)
	require.Equal(t, 2, cfg.DilateIterations)
	require.Equal(t, "discovery", cfg.GlyphOrder)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("DILATE_KERNEL", "4")
	_, err := Load()
	require.ErrorContains(t, err, "DILATE_KERNEL")

	t.Setenv("DILATE_KERNEL", "3")
	t.Setenv("BINARY_THRESHOLD", "abc")
	_, err = Load()
	require.ErrorContains(t, err, "BINARY_THRESHOLD")

	t.Setenv("BINARY_THRESHOLD", "127")
	t.Setenv("MAX_IMAGE_PIXELS", "0")
	_, err = Load()
	require.ErrorContains(t, err, "MAX_IMAGE_PIXELS")
}
