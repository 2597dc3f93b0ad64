package compositor

import (
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// DesktopBackground fills the space between the workspace indicator and the
// taskbar with a flat color. Grounded on essential/desktop_background.rs.
type DesktopBackground struct {
	dimensions wmtypes.Dimensions
}

func NewDesktopBackground() *DesktopBackground { return &DesktopBackground{} }

func (d *DesktopBackground) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	if msg.Kind == "Init" {
		d.dimensions = msg.Dims
		return proto.RespJustRedraw()
	}
	return proto.RespDoNothing()
}

func (d *DesktopBackground) Draw(proto.ThemeInfo) []proto.DrawInstruction {
	return []proto.DrawInstruction{
		proto.DrawRect(wmtypes.Point{0, 0}, d.dimensions, wmtypes.Color{0, 128, 128}),
	}
}

func (d *DesktopBackground) Title() string   { return "" }
func (d *DesktopBackground) Resizable() bool { return false }
func (d *DesktopBackground) Subtype() proto.WindowLikeType {
	return proto.TypeDesktopBackground
}
func (d *DesktopBackground) IdealDimensions(dims wmtypes.Dimensions) wmtypes.Dimensions {
	return wmtypes.Dimensions{dims[0], dims[1] - proto.TaskbarHeight - proto.IndicatorHeight}
}
