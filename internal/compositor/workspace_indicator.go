package compositor

import (
	"fmt"
	"time"

	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

const workspaceIndicatorWidth = 15

// WorkspaceIndicator draws the 9 numbered workspace tabs plus a UTC clock in
// the top strip. Grounded on essential/workspace_indicator.rs.
type WorkspaceIndicator struct {
	dimensions       wmtypes.Dimensions
	currentWorkspace uint8
}

func NewWorkspaceIndicator() *WorkspaceIndicator { return &WorkspaceIndicator{} }

func (w *WorkspaceIndicator) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	switch msg.Kind {
	case "Init":
		w.dimensions = msg.Dims
		return proto.RespJustRedraw()
	case "Shortcut":
		if msg.Shortcut.Kind == "SwitchWorkspace" {
			w.currentWorkspace = msg.Shortcut.Workspace
			return proto.RespJustRedraw()
		}
	}
	return proto.RespDoNothing()
}

func (w *WorkspaceIndicator) Draw(theme proto.ThemeInfo) []proto.DrawInstruction {
	instructions := []proto.DrawInstruction{
		proto.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{w.dimensions[0], w.dimensions[1] - 1}, theme.Background),
		proto.DrawRect(wmtypes.Point{0, w.dimensions[1] - 1}, wmtypes.Dimensions{w.dimensions[0], 1}, theme.BorderRightBottom),
	}
	families := []string{"times-new-roman"}
	for i := 0; i < 9; i++ {
		if i == int(w.currentWorkspace) {
			instructions = append(instructions,
				proto.DrawRect(wmtypes.Point{i * workspaceIndicatorWidth, 0}, wmtypes.Dimensions{workspaceIndicatorWidth, w.dimensions[1]}, theme.Top),
				proto.DrawText(wmtypes.Point{i*workspaceIndicatorWidth + 5, 4}, families, fmt.Sprintf("%d", i+1), theme.TopText, theme.Top, nil, nil),
			)
		} else {
			instructions = append(instructions,
				proto.DrawText(wmtypes.Point{i*workspaceIndicatorWidth + 5, 4}, families, fmt.Sprintf("%d", i+1), theme.Text, theme.Background, nil, nil),
			)
		}
	}
	now := time.Now().UTC()
	timeString := fmt.Sprintf("%02d:%02d~ UTC", now.Hour(), now.Minute())
	instructions = append(instructions, proto.DrawText(wmtypes.Point{w.dimensions[0] - 90, 4}, families, timeString, theme.Text, theme.Background, nil, nil))
	return instructions
}

func (w *WorkspaceIndicator) Title() string   { return "" }
func (w *WorkspaceIndicator) Resizable() bool { return false }
func (w *WorkspaceIndicator) Subtype() proto.WindowLikeType {
	return proto.TypeWorkspaceIndicator
}
func (w *WorkspaceIndicator) IdealDimensions(d wmtypes.Dimensions) wmtypes.Dimensions {
	return wmtypes.Dimensions{d[0], proto.IndicatorHeight}
}
