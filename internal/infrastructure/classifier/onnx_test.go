package classifier

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"glyphscan/internal/domain/entity"
)

// testdata/flatten.onnx — граф из одного Flatten(axis=1): выход модели совпадает
// с пикселями символа, поэтому argmax указывает на самый яркий пиксель.
const flattenModel = "testdata/flatten.onnx"

func pixelLabels(n int) entity.LabelMap {
	labels := make(entity.LabelMap, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

func newFlattenClassifier(t *testing.T, labels entity.LabelMap, channelLast bool) *ONNXClassifier {
	t.Helper()
	lib := os.Getenv("ONNXRUNTIME_LIB")
	if lib == "" {
		t.Skip("ONNXRUNTIME_LIB is not set")
	}
	require.NoError(t, initRuntime(lib))

	c, err := NewONNXClassifier(filepath.FromSlash(flattenModel), labels, channelLast)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })
	return c
}

func glyphWithPixel(x, y int) *entity.NormalizedGlyph {
	g := &entity.NormalizedGlyph{Width: 28, Height: 28, Pix: make([]float32, 28*28)}
	g.Pix[y*g.Width+x] = 255
	return g
}

func TestONNXClassifier_ArgmaxLabel(t *testing.T) {
	for _, channelLast := range []bool{false, true} {
		c := newFlattenClassifier(t, pixelLabels(28*28), channelLast)

		label, err := c.Classify(context.Background(), glyphWithPixel(5, 3))
		require.NoError(t, err)
		require.Equal(t, strconv.Itoa(3*28+5), label)

		// Пустой символ: все значения равны, побеждает нулевой класс.
		label, err = c.Classify(context.Background(), &entity.NormalizedGlyph{Width: 28, Height: 28, Pix: make([]float32, 28*28)})
		require.NoError(t, err)
		require.Equal(t, "0", label)
	}
}

func TestONNXClassifier_IndexOutsideLabelMap(t *testing.T) {
	c := newFlattenClassifier(t, pixelLabels(10), false)

	_, err := c.Classify(context.Background(), glyphWithPixel(27, 27))
	require.ErrorIs(t, err, entity.ErrInference)
}

func TestONNXClassifier_CancelledContext(t *testing.T) {
	c := newFlattenClassifier(t, pixelLabels(28*28), false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Classify(ctx, glyphWithPixel(0, 0))
	require.ErrorIs(t, err, entity.ErrInference)
}

func TestNewONNXClassifier_MissingModel(t *testing.T) {
	_, err := NewONNXClassifier(filepath.Join(t.TempDir(), "nomodel.onnx"), pixelLabels(1), false)
	require.ErrorIs(t, err, entity.ErrModelUnavailable)
}
