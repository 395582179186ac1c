package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgmax(t *testing.T) {
	require.Equal(t, 2, Argmax([]float32{0.1, 0.2, 0.7}))
	require.Equal(t, 0, Argmax([]float32{5}))
	require.Equal(t, -1, Argmax(nil))
}

func TestArgmax_TieTakesLowestIndex(t *testing.T) {
	require.Equal(t, 1, Argmax([]float32{0.1, 0.4, 0.4, 0.1}))
	require.Equal(t, 0, Argmax([]float32{0, 0, 0}))
}

func TestLabelMapLookup(t *testing.T) {
	labels := LabelMap{"а", "б", "в"}

	ch, err := labels.Lookup(1)
	require.NoError(t, err)
	require.Equal(t, "б", ch)

	_, err = labels.Lookup(3)
	require.ErrorIs(t, err, ErrInference)
	_, err = labels.Lookup(-1)
	require.ErrorIs(t, err, ErrInference)
}

func TestNewTranscription(t *testing.T) {
	tr := NewTranscription(ScriptRussian, []RecognizedGlyph{{Char: "д"}, {Char: "а"}})
	require.Equal(t, "да", tr.Text)
	require.Len(t, tr.Glyphs, 2)

	empty := NewTranscription(ScriptKorean, nil)
	require.Equal(t, "", empty.Text)
}

func TestNormalizedGlyphShape(t *testing.T) {
	g := &NormalizedGlyph{Width: 28, Height: 20, Pix: make([]float32, 28*20)}
	require.Equal(t, []int64{1, 20, 28}, g.Shape())
}
