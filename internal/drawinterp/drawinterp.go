// Package drawinterp turns proto.DrawInstruction values into actual pixel
// writes against a pixbuf.Buffer, resolving glyphs through a fontcache.Cache.
// Grounded on original_source/src/framebuffer.rs's draw_text/draw_rect and
// original_source/src/window_manager.rs's per-instruction clamp logic.
package drawinterp

import (
	"path/filepath"

	"github.com/stjet/ming-wm/internal/fontcache"
	"github.com/stjet/ming-wm/internal/pixbuf"
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// Interpreter resolves glyphs via a shared font cache and blits bitmap assets
// from a base directory (ming_bmps-adjacent), mirroring the host binary's
// asset layout.
type Interpreter struct {
	Glyphs  *fontcache.Cache
	BmpDir  string
}

func New(glyphs *fontcache.Cache, bmpDir string) *Interpreter {
	return &Interpreter{Glyphs: glyphs, BmpDir: bmpDir}
}

func toGlyphChar(info fontcache.CharInfo) pixbuf.GlyphChar {
	return pixbuf.GlyphChar{Data: info.Data, TopOffset: info.TopOffset}
}

// drawText mirrors FramebufferWriter::draw_text: space advances by mono_width
// (default 5), other characters draw via the font cache with either a fixed
// mono-width centered advance or a proportional char-width+spacing advance.
func (it *Interpreter) drawText(buf *pixbuf.Buffer, topLeft wmtypes.Point, families []string, text string, fg, bg wmtypes.Color, horizSpacing int, monoWidth *uint8) {
	x, y := topLeft[0], topLeft[1]
	for _, c := range text {
		if c == ' ' {
			w := 5
			if monoWidth != nil {
				w = int(*monoWidth)
			}
			x += w
			continue
		}
		info := it.Glyphs.Get(families, c)
		charWidth := info.Width
		var addAfter int
		if monoWidth != nil {
			mw := int(*monoWidth)
			if mw < charWidth {
				addAfter = mw
			} else {
				remainder := mw - charWidth
				x += remainder / 2
				addAfter = remainder - remainder/2 + charWidth
			}
		} else {
			addAfter = charWidth + horizSpacing
		}
		buf.DrawChar(wmtypes.Point{x, y}, toGlyphChar(info), fg, bg)
		x += addAfter
	}
}

// Run executes one instruction against buf. When clip is non-nil, Rect draws
// are clamped so they cannot overflow past clip from topLeft, matching the
// compositor's per-window overflow guard.
func (it *Interpreter) Run(buf *pixbuf.Buffer, instr proto.DrawInstruction, clip *wmtypes.Dimensions) {
	switch instr.Kind {
	case "Rect":
		dims := instr.Dims
		if clip != nil {
			dims = wmtypes.Dimensions{
				wmtypes.Min(dims[0], clip[0]-instr.Point[0]),
				wmtypes.Min(dims[1], clip[1]-instr.Point[1]),
			}
		}
		buf.DrawRect(instr.Point, dims, instr.Color)
	case "Gradient":
		buf.DrawGradient(instr.Point, instr.Dims, instr.Color, instr.Color2, instr.Steps)
	case "Circle":
		buf.DrawCircle(instr.Point, instr.Radius, instr.Color)
	case "Bmp":
		path := filepath.Join(it.BmpDir, instr.BmpName+".bmp")
		_ = buf.DrawBmp(instr.Point, path, instr.ReverseRGB)
	case "Text":
		spacing := 1
		if instr.HorizSpacing != nil {
			spacing = *instr.HorizSpacing
		}
		it.drawText(buf, instr.Point, instr.Families, instr.Text, instr.Color, instr.Color2, spacing, instr.VertSpacing)
	}
}

// RunAll executes a full instruction list in order.
func (it *Interpreter) RunAll(buf *pixbuf.Buffer, instructions []proto.DrawInstruction, clip *wmtypes.Dimensions) {
	for _, instr := range instructions {
		it.Run(buf, instr, clip)
	}
}
