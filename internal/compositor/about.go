package compositor

import (
	"os"

	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// About shows ming_docs/system/README.md in a scrollable paragraph (the
// executable-relative asset directory original_source's dirs::exe_dir
// resolves to). Grounded on essential/about.rs.
type About struct {
	dimensions wmtypes.Dimensions
	text       *paragraph
}

func NewAbout() *About { return &About{} }

func (a *About) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	switch msg.Kind {
	case "Init":
		a.dimensions = msg.Dims
		content, err := os.ReadFile("ming_docs/system/README.md")
		body := "ming_docs/system/README.md not found"
		if err == nil {
			body = string(content)
		}
		a.text = newParagraph(wmtypes.Point{2, 2}, wmtypes.Dimensions{a.dimensions[0] - 4, a.dimensions[1] - 4}, body)
		return proto.RespJustRedraw()
	case "KeyPress":
		if a.text != nil && a.text.handleKey(msg.Key) {
			return proto.RespJustRedraw()
		}
		return proto.RespDoNothing()
	}
	return proto.RespDoNothing()
}

func (a *About) Draw(theme proto.ThemeInfo) []proto.DrawInstruction {
	if a.text == nil {
		return nil
	}
	return a.text.draw(theme)
}

func (a *About) Title() string                { return "About" }
func (a *About) Resizable() bool              { return false }
func (a *About) Subtype() proto.WindowLikeType { return proto.TypeWindow }
func (a *About) IdealDimensions(wmtypes.Dimensions) wmtypes.Dimensions {
	return wmtypes.Dimensions{500, 600}
}
