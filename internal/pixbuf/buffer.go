// Package pixbuf is the CPU-only 2D drawing backend: it owns a contiguous
// pixel byte buffer and interprets drawing primitives against it. Grounded on
// original_source/src/framebuffer.rs's FramebufferWriter, kept idiomatic Go.
package pixbuf

import (
	"os"

	"golang.org/x/image/bmp"

	"github.com/stjet/ming-wm/internal/wmtypes"
)

// Info mirrors spec.md §3's FramebufferInfo: byte length, width, height,
// bytes-per-pixel (3 or 4), stride in pixels, and an optional pre-rotation
// stride used only when rotate mode is active.
type Info struct {
	ByteLen       int
	Width         int
	Height        int
	BytesPerPixel int
	Stride        int
	OldStride     *int
}

// Buffer owns the raw pixel memory and exposes the primitive drawing
// operations. All writes are BGR/BGRA ordered, matching spec.md §4.1.
type Buffer struct {
	info      Info
	buf       []byte
	saved     []byte
	grayscale bool
}

// New constructs an empty Buffer; call Init before drawing.
func New(grayscale bool) *Buffer {
	return &Buffer{grayscale: grayscale}
}

// Init allocates the backing store sized to info.ByteLen.
func (b *Buffer) Init(info Info) {
	b.info = info
	b.buf = make([]byte, info.ByteLen)
}

// Info returns a copy of the buffer's current geometry.
func (b *Buffer) Info() Info { return b.info }

// Bytes returns the current raw pixel buffer (read-only use expected).
func (b *Buffer) Bytes() []byte { return b.buf }

func applyGrayscale(c wmtypes.Color, on bool) wmtypes.Color {
	if on {
		return c.ToGrayscale()
	}
	return c
}

func (b *Buffer) pixelOffset(p wmtypes.Point) int {
	return (p[1]*b.info.Stride + p[0]) * b.info.BytesPerPixel
}

func (b *Buffer) writePixel(offset int, c wmtypes.Color) {
	// buffer order is BGR; callers pass RGB.
	bgr := wmtypes.Color{c[2], c[1], c[0]}
	bgr = applyGrayscale(bgr, b.grayscale)
	copy(b.buf[offset:offset+3], bgr[:])
}

// DrawPixel writes one pixel. No bounds check — callers must clip.
func (b *Buffer) DrawPixel(p wmtypes.Point, c wmtypes.Color) {
	b.writePixel(b.pixelOffset(p), c)
}

func (b *Buffer) rowBytes(c wmtypes.Color, width int) []byte {
	c = applyGrayscale(c, b.grayscale)
	bgr := []byte{c[2], c[1], c[0]}
	row := make([]byte, 0, width*b.info.BytesPerPixel)
	if b.info.BytesPerPixel > 3 {
		px := append(append([]byte{}, bgr...), 255)
		for i := 0; i < width; i++ {
			row = append(row, px...)
		}
	} else {
		for i := 0; i < width; i++ {
			row = append(row, bgr...)
		}
	}
	return row
}

func (b *Buffer) blitRow(offset int, row []byte) {
	copy(b.buf[offset:offset+len(row)], row)
}

// DrawRect fills a rectangle by constructing one pre-rendered row and
// repeating it, per spec.md §4.1's required single-row-buffer optimization.
// dimensions = (0,0) writes zero bytes.
func (b *Buffer) DrawRect(topLeft wmtypes.Point, dims wmtypes.Dimensions, c wmtypes.Color) {
	if dims[0] <= 0 || dims[1] <= 0 {
		return
	}
	row := b.rowBytes(c, dims[0])
	offset := b.pixelOffset(topLeft)
	stride := b.info.Stride * b.info.BytesPerPixel
	for y := 0; y < dims[1]; y++ {
		b.blitRow(offset, row)
		offset += stride
	}
}

// DrawGradient splits dims.Height into steps horizontal bands, linearly
// interpolating from start to end; the last band absorbs the remainder rows.
// Fails silently (no-op) when steps > dims.Height, per spec.md §4.1.
func (b *Buffer) DrawGradient(topLeft wmtypes.Point, dims wmtypes.Dimensions, start, end wmtypes.Color, steps int) {
	if steps <= 0 || steps > dims[1] {
		return
	}
	deltaR := (float64(end[0]) - float64(start[0])) / float64(steps)
	deltaG := (float64(end[1]) - float64(start[1])) / float64(steps)
	deltaB := (float64(end[2]) - float64(start[2])) / float64(steps)
	offset := b.pixelOffset(topLeft)
	stride := b.info.Stride * b.info.BytesPerPixel
	yPer := dims[1] / steps
	for s := 0; s < steps; s++ {
		color := wmtypes.Color{
			uint8(float64(start[0]) + deltaR*float64(s)),
			uint8(float64(start[1]) + deltaG*float64(s)),
			uint8(float64(start[2]) + deltaB*float64(s)),
		}
		rows := yPer
		if s == steps-1 {
			rows = dims[1] - yPer*steps + yPer
		}
		row := b.rowBytes(color, dims[0])
		for y := 0; y < rows; y++ {
			b.blitRow(offset, row)
			offset += stride
		}
	}
}

// DrawCircle fills a disk by scanning the first quadrant and mirroring to all
// four, per spec.md §4.1.
func (b *Buffer) DrawCircle(center wmtypes.Point, radius int, c wmtypes.Color) {
	for y := 0; y < radius; y++ {
		for x := 0; x < radius; x++ {
			if x*x+y*y <= radius*radius {
				b.DrawPixel(wmtypes.Point{center[0] + x, center[1] + y}, c)
				b.DrawPixel(wmtypes.Point{center[0] - x, center[1] + y}, c)
				b.DrawPixel(wmtypes.Point{center[0] - x, center[1] - y}, c)
				b.DrawPixel(wmtypes.Point{center[0] + x, center[1] - y}, c)
			}
		}
	}
}

// DrawLine draws a simple DDA line of the given pixel width; this primitive
// is minor per spec.md §4.1 so the implementation favors simplicity.
func (b *Buffer) DrawLine(p1, p2 wmtypes.Point, width int, c wmtypes.Color) {
	dx := p2[0] - p1[0]
	dy := p2[1] - p1[1]
	steps := wmtypes.Max(abs(dx), abs(dy))
	if steps == 0 {
		b.drawThickPixel(p1, width, c)
		return
	}
	xInc := float64(dx) / float64(steps)
	yInc := float64(dy) / float64(steps)
	x, y := float64(p1[0]), float64(p1[1])
	for i := 0; i <= steps; i++ {
		b.drawThickPixel(wmtypes.Point{int(x), int(y)}, width, c)
		x += xInc
		y += yInc
	}
}

func (b *Buffer) drawThickPixel(p wmtypes.Point, width int, c wmtypes.Color) {
	if width <= 1 {
		b.DrawPixel(p, c)
		return
	}
	half := width / 2
	for oy := -half; oy <= half; oy++ {
		for ox := -half; ox <= half; ox++ {
			b.DrawPixel(wmtypes.Point{p[0] + ox, p[1] + oy}, c)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// GlyphChar is the subset of fontcache.CharInfo that DrawChar needs, kept
// local to avoid an import cycle between pixbuf and fontcache.
type GlyphChar struct {
	Data      [][]uint8
	TopOffset int
}

// DrawChar alpha-blends a glyph's sample grid onto the buffer using
// wmtypes.Blend, adding TopOffset to y before plotting.
func (b *Buffer) DrawChar(topLeft wmtypes.Point, glyph GlyphChar, fg, bg wmtypes.Color) {
	for row, line := range glyph.Data {
		y := topLeft[1] + row + glyph.TopOffset
		offset := b.pixelOffset(wmtypes.Point{topLeft[0], y})
		for _, a := range line {
			if a > 0 && offset+3 <= len(b.buf) {
				b.writePixel(offset, wmtypes.Blend(fg, bg, a))
			}
			offset += b.info.BytesPerPixel
		}
	}
}

// DrawBmp decodes a BMP file at path and blits it at topLeft. reverseRGB
// swaps channel order at blit time, compensating for an upstream loader
// quirk per spec.md §4.1.
func (b *Buffer) DrawBmp(topLeft wmtypes.Point, path string, reverseRGB bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	offset := b.pixelOffset(topLeft)
	stride := b.info.Stride * b.info.BytesPerPixel
	for row := 0; row < height; row++ {
		rowOffset := offset
		for col := 0; col < width; col++ {
			r, g, bl, _ := img.At(bounds.Min.X+col, bounds.Min.Y+row).RGBA()
			c := wmtypes.Color{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
			if reverseRGB {
				c = wmtypes.Color{c[2], c[1], c[0]}
			}
			if rowOffset+3 <= len(b.buf) {
				b.writePixel(rowOffset, c)
			}
			rowOffset += b.info.BytesPerPixel
		}
		offset += stride
	}
	return nil
}

// DrawBuffer copies a sub-image row by row, advancing dest by stride*bpp and
// source by bytesPerRow, per spec.md §4.1. Used to blit a per-window buffer
// onto the main buffer.
func (b *Buffer) DrawBuffer(topLeft wmtypes.Point, height, bytesPerRow int, src []byte) {
	offset := b.pixelOffset(topLeft)
	stride := b.info.Stride * b.info.BytesPerPixel
	start := 0
	for y := 0; y < height; y++ {
		end := start + bytesPerRow
		if offset+bytesPerRow > len(b.buf) || end > len(src) {
			break
		}
		copy(b.buf[offset:offset+bytesPerRow], src[start:end])
		start = end
		offset += stride
	}
}

// SaveBuffer snapshots the entire pixel vector for the compositor's damage
// protocol (spec.md §4.8).
func (b *Buffer) SaveBuffer() {
	b.saved = append([]byte(nil), b.buf...)
}

// RestoreBuffer restores the pixel vector from the last snapshot.
func (b *Buffer) RestoreBuffer() {
	if b.saved != nil {
		copy(b.buf, b.saved)
	}
}

// TransposedBuffer returns a freshly allocated buffer with pixels rotated 90°
// for rotate mode, per spec.md §4.1. The direction is a configuration choice;
// this mirrors original_source/src/framebuffer.rs's get_transposed_buffer.
func (b *Buffer) TransposedBuffer() []byte {
	out := make([]byte, b.info.ByteLen)
	for i := range out {
		out[i] = 255
	}
	rowBytes := b.info.Stride * b.info.BytesPerPixel
	oldStride := b.info.Height
	if b.info.OldStride != nil {
		oldStride = *b.info.OldStride
	}
	rowBytesTransposed := oldStride * b.info.BytesPerPixel
	for y := 0; y < b.info.Height; y++ {
		for x := 0; x < b.info.Width; x++ {
			for i := 0; i < b.info.BytesPerPixel; i++ {
				dst := (b.info.Width-x-1)*rowBytesTransposed + y*b.info.BytesPerPixel + i
				src := y*rowBytes + x*b.info.BytesPerPixel + i
				if dst < len(out) && src < len(b.buf) {
					out[dst] = b.buf[src]
				}
			}
		}
	}
	return out
}
