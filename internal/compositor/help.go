package compositor

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// Help pages through ming_docs/system/shortcuts.md followed by every file
// under ming_docs/window-likes/, h/l or the arrow keys cycling between them.
// Grounded on essential/help.rs.
type Help struct {
	dimensions wmtypes.Dimensions
	files      []string
	fileIndex  int
	text       *paragraph
}

func NewHelp() *Help {
	files := []string{"ming_docs/system/shortcuts.md"}
	if entries, err := os.ReadDir("ming_docs/window-likes"); err == nil {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, n := range names {
			files = append(files, filepath.Join("ming_docs/window-likes", n))
		}
	}
	return &Help{files: files}
}

func (h *Help) readFile(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(content)
}

func (h *Help) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	switch msg.Kind {
	case "Init":
		h.dimensions = msg.Dims
		first := ""
		if len(h.files) > 0 {
			first = h.readFile(h.files[0])
		}
		intro := "Press the 'h' and 'l' keys (or the left and right arrow keys) to read the different help pages"
		h.text = newParagraph(wmtypes.Point{2, 22}, wmtypes.Dimensions{h.dimensions[0] - 4, h.dimensions[1] - 24}, intro+first)
		return proto.RespJustRedraw()
	case "KeyPress":
		if msg.Key == 'h' || proto.IsLeftArrow(msg.Key) || msg.Key == 'l' || proto.IsRightArrow(msg.Key) {
			if len(h.files) == 0 {
				return proto.RespDoNothing()
			}
			if msg.Key == 'h' || proto.IsLeftArrow(msg.Key) {
				if h.fileIndex == 0 {
					h.fileIndex = len(h.files) - 1
				} else {
					h.fileIndex--
				}
			} else {
				if h.fileIndex == len(h.files)-1 {
					h.fileIndex = 0
				} else {
					h.fileIndex++
				}
			}
			h.text.setText(h.readFile(h.files[h.fileIndex]))
			return proto.RespJustRedraw()
		}
		if h.text != nil && h.text.handleKey(msg.Key) {
			return proto.RespJustRedraw()
		}
		return proto.RespDoNothing()
	}
	return proto.RespDoNothing()
}

func (h *Help) Draw(theme proto.ThemeInfo) []proto.DrawInstruction {
	var instructions []proto.DrawInstruction
	if len(h.files) > 0 {
		zero := 0
		instructions = append(instructions, proto.DrawText(
			wmtypes.Point{2, 2}, []string{"nimbus-romono"}, filepath.Base(h.files[h.fileIndex]),
			theme.Text, theme.Background, &zero, nil,
		))
	}
	if h.text != nil {
		instructions = append(instructions, h.text.draw(theme)...)
	}
	return instructions
}

func (h *Help) Title() string                { return "Help" }
func (h *Help) Resizable() bool              { return false }
func (h *Help) Subtype() proto.WindowLikeType { return proto.TypeWindow }
func (h *Help) IdealDimensions(wmtypes.Dimensions) wmtypes.Dimensions {
	return wmtypes.Dimensions{500, 600}
}
