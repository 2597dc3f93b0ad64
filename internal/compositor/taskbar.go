package compositor

import (
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

const (
	taskbarPadding  = 4
	taskbarMetaWidth = 175
)

// Taskbar shows the start button and one button per window in the current
// workspace, highlighting the focused one. Grounded on essential/taskbar.rs;
// the original's generic ToggleButton component is inlined directly since
// there is only ever one kind of button drawn here.
type Taskbar struct {
	dimensions        wmtypes.Dimensions
	windowsInWorkspace []proto.WindowEntry
	focusedID         int
	startMenuOpen     bool
}

func NewTaskbar() *Taskbar { return &Taskbar{} }

func (t *Taskbar) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	switch msg.Kind {
	case "Init":
		t.dimensions = msg.Dims
		return proto.RespJustRedraw()
	case "Shortcut":
		if msg.Shortcut.Kind == "StartMenu" {
			if t.startMenuOpen {
				t.startMenuOpen = false
				return proto.RespRequest(proto.ReqCloseStartMenu())
			}
			t.startMenuOpen = true
			return proto.RespRequest(proto.ReqOpenWindow("StartMenu"))
		}
	case "Info":
		if msg.Info.Kind == "WindowsInWorkspace" {
			t.windowsInWorkspace = msg.Info.Windows
			t.focusedID = msg.Info.FocusedID
			return proto.RespJustRedraw()
		}
	}
	return proto.RespDoNothing()
}

func (t *Taskbar) button(topLeft wmtypes.Point, size wmtypes.Dimensions, name string, inverted bool, theme proto.ThemeInfo) []proto.DrawInstruction {
	bg, fg := theme.Background, theme.Text
	if inverted {
		bg, fg = theme.AltBackground, theme.AltText
	}
	families := []string{"nimbus-roman"}
	return []proto.DrawInstruction{
		proto.DrawRect(topLeft, size, bg),
		proto.DrawText(wmtypes.Point{topLeft[0] + 4, topLeft[1] + 4}, families, name, fg, bg, nil, nil),
	}
}

func (t *Taskbar) Draw(theme proto.ThemeInfo) []proto.DrawInstruction {
	instructions := []proto.DrawInstruction{
		proto.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{t.dimensions[0], 1}, theme.BorderLeftTop),
		proto.DrawRect(wmtypes.Point{0, 1}, wmtypes.Dimensions{t.dimensions[0], t.dimensions[1] - 1}, theme.Background),
	}
	instructions = append(instructions, t.button(
		wmtypes.Point{taskbarPadding, taskbarPadding},
		wmtypes.Dimensions{44, t.dimensions[1] - taskbarPadding*2},
		"Start", t.startMenuOpen, theme,
	)...)

	maxButtons := (t.dimensions[0] - 200) / taskbarMetaWidth
	for i, entry := range t.windowsInWorkspace {
		if i > maxButtons {
			break
		}
		topLeft := wmtypes.Point{taskbarPadding*2 + 44 + (taskbarMetaWidth+taskbarPadding)*i, taskbarPadding}
		size := wmtypes.Dimensions{taskbarMetaWidth, t.dimensions[1] - taskbarPadding*2}
		instructions = append(instructions, t.button(topLeft, size, entry.Title, entry.ID == t.focusedID, theme)...)
	}
	return instructions
}

func (t *Taskbar) Title() string   { return "" }
func (t *Taskbar) Resizable() bool { return false }
func (t *Taskbar) Subtype() proto.WindowLikeType { return proto.TypeTaskbar }
func (t *Taskbar) IdealDimensions(d wmtypes.Dimensions) wmtypes.Dimensions {
	return wmtypes.Dimensions{d[0], proto.TaskbarHeight}
}
