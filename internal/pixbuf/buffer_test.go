package pixbuf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stjet/ming-wm/internal/wmtypes"
)

func newTestBuffer(t *testing.T, w, h int) *Buffer {
	t.Helper()
	b := New(false)
	b.Init(Info{
		ByteLen:       w * h * 3,
		Width:         w,
		Height:        h,
		BytesPerPixel: 3,
		Stride:        w,
	})
	return b
}

func TestDrawRectZeroDimsWritesNothing(t *testing.T) {
	b := newTestBuffer(t, 10, 10)
	before := append([]byte(nil), b.Bytes()...)
	b.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{0, 0}, wmtypes.Color{255, 0, 0})
	require.Equal(t, before, b.Bytes())
}

func TestDrawRectFillsBGR(t *testing.T) {
	b := newTestBuffer(t, 4, 2)
	b.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{4, 2}, wmtypes.Color{10, 20, 30})
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			off := (row*4 + col) * 3
			require.Equal(t, byte(30), b.Bytes()[off])
			require.Equal(t, byte(20), b.Bytes()[off+1])
			require.Equal(t, byte(10), b.Bytes()[off+2])
		}
	}
}

func TestDrawGradientSingleStepIsStartColor(t *testing.T) {
	b := newTestBuffer(t, 2, 4)
	b.DrawGradient(wmtypes.Point{0, 0}, wmtypes.Dimensions{2, 4}, wmtypes.Color{1, 2, 3}, wmtypes.Color{9, 9, 9}, 1)
	require.Equal(t, byte(3), b.Bytes()[0])
	require.Equal(t, byte(2), b.Bytes()[1])
	require.Equal(t, byte(1), b.Bytes()[2])
}

func TestDrawGradientStepsGreaterThanHeightNoOp(t *testing.T) {
	b := newTestBuffer(t, 2, 2)
	before := append([]byte(nil), b.Bytes()...)
	b.DrawGradient(wmtypes.Point{0, 0}, wmtypes.Dimensions{2, 2}, wmtypes.Color{1, 2, 3}, wmtypes.Color{9, 9, 9}, 5)
	require.Equal(t, before, b.Bytes())
}

func TestDrawCharBlendsAlpha(t *testing.T) {
	b := newTestBuffer(t, 3, 3)
	b.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{3, 3}, wmtypes.Color{0, 0, 255})
	glyph := GlyphChar{Data: [][]uint8{{128}}}
	b.DrawChar(wmtypes.Point{0, 0}, glyph, wmtypes.Color{255, 0, 0}, wmtypes.Color{0, 0, 255})
	require.InDelta(t, 128, b.Bytes()[2], 1) // red channel
	require.InDelta(t, 127, b.Bytes()[0], 1) // blue channel (stored first = B)
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	b := newTestBuffer(t, 2, 2)
	b.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{2, 2}, wmtypes.Color{1, 1, 1})
	b.SaveBuffer()
	b.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{2, 2}, wmtypes.Color{9, 9, 9})
	b.RestoreBuffer()
	require.Equal(t, byte(1), b.Bytes()[0])
}

func TestBlendBoundaries(t *testing.T) {
	fg := wmtypes.Color{255, 0, 0}
	bg := wmtypes.Color{0, 0, 255}
	require.Equal(t, bg, wmtypes.Blend(fg, bg, 0))
	require.Equal(t, fg, wmtypes.Blend(fg, bg, 255))
	mid := wmtypes.Blend(fg, bg, 128)
	require.InDelta(t, 128, mid[0], 1)
	require.InDelta(t, 0, mid[1], 1)
	require.InDelta(t, 127, mid[2], 1)
}
