package compositor

import (
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

const (
	oskPaddingX = 15
	oskPaddingY = 15
	oskKeyPadX  = 5
	oskKeyPadY  = 5
)

type oskButton struct {
	topLeft wmtypes.Point
	size    wmtypes.Dimensions
	label   string
	kind    string // "key", "alt", "ctrl"
	char    rune
}

// OnscreenKeyboard is a touch-driven keyboard: each button either emits a
// KeyChar request (respecting the current alt/ctrl toggle state) or flips a
// modifier toggle. Grounded on essential/onscreen_keyboard.rs; the exact
// multi-board (shift/symbols) key layout there is explicitly out of scope
// here, so this implements one fixed alphanumeric board with the same
// touch-dispatch and modifier-toggle behavior.
type OnscreenKeyboard struct {
	dimensions wmtypes.Dimensions
	buttons    []oskButton
	alt        bool
	ctrl       bool
}

func NewOnscreenKeyboard() *OnscreenKeyboard { return &OnscreenKeyboard{} }

var oskRows = [][]rune{
	[]rune("qwertyuiop"),
	[]rune("asdfghjkl"),
	[]rune("zxcvbnm"),
}

func (o *OnscreenKeyboard) buildButtons() {
	o.buttons = nil
	rowCount := len(oskRows) + 1 // +1 for the control row
	keyHeight := (o.dimensions[1] - oskPaddingY*2 - oskKeyPadY*(rowCount-1)) / rowCount
	keyWidth := (o.dimensions[0] - oskPaddingX*2 - oskKeyPadX*9) / 10

	y := oskPaddingY
	for _, row := range oskRows {
		x := oskPaddingX + (10-len(row))*(keyWidth+oskKeyPadX)/2
		for _, c := range row {
			o.buttons = append(o.buttons, oskButton{
				topLeft: wmtypes.Point{x, y},
				size:    wmtypes.Dimensions{keyWidth, keyHeight},
				label:   string(c),
				kind:    "key",
				char:    c,
			})
			x += keyWidth + oskKeyPadX
		}
		y += keyHeight + oskKeyPadY
	}

	control := []oskButton{
		{label: "Alt", kind: "alt"},
		{label: "Ctrl", kind: "ctrl"},
		{label: "Space", kind: "key", char: ' '},
		{label: "Back", kind: "key", char: proto.RuneBackspace},
		{label: "Enter", kind: "key", char: proto.RuneEnter},
	}
	x := oskPaddingX
	controlWidth := (o.dimensions[0] - oskPaddingX*2 - oskKeyPadX*(len(control)-1)) / len(control)
	for _, b := range control {
		b.topLeft = wmtypes.Point{x, y}
		b.size = wmtypes.Dimensions{controlWidth, keyHeight}
		o.buttons = append(o.buttons, b)
		x += controlWidth + oskKeyPadX
	}
}

func (o *OnscreenKeyboard) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	switch msg.Kind {
	case "Init":
		o.dimensions = msg.Dims
		o.buildButtons()
		return proto.RespJustRedraw()
	case "Touch":
		p := wmtypes.Point{msg.TouchX, msg.TouchY}
		for _, b := range o.buttons {
			if !wmtypes.PointInside(p, b.topLeft, b.size) {
				continue
			}
			switch b.kind {
			case "alt":
				o.alt = !o.alt
				return proto.RespDoNothing()
			case "ctrl":
				o.ctrl = !o.ctrl
				return proto.RespDoNothing()
			case "key":
				var kc proto.KeyChar
				switch {
				case o.alt:
					kc = proto.KeyAlt(b.char)
				case o.ctrl:
					kc = proto.KeyCtrl(b.char)
				default:
					kc = proto.KeyPress(b.char)
				}
				return proto.RespRequest(proto.ReqDoKeyChar(kc))
			}
		}
	}
	return proto.RespDoNothing()
}

func (o *OnscreenKeyboard) Draw(theme proto.ThemeInfo) []proto.DrawInstruction {
	instructions := []proto.DrawInstruction{
		proto.DrawRect(wmtypes.Point{0, 0}, o.dimensions, theme.Background),
	}
	families := []string{"nimbus-roman"}
	for _, b := range o.buttons {
		bg, fg := theme.AltBackground, theme.AltText
		if (b.kind == "alt" && o.alt) || (b.kind == "ctrl" && o.ctrl) {
			bg, fg = theme.Top, theme.TopText
		}
		instructions = append(instructions,
			proto.DrawRect(b.topLeft, b.size, bg),
			proto.DrawText(wmtypes.Point{b.topLeft[0] + 4, b.topLeft[1] + 4}, families, b.label, fg, bg, nil, nil),
		)
	}
	return instructions
}

func (o *OnscreenKeyboard) Title() string   { return "" }
func (o *OnscreenKeyboard) Resizable() bool { return false }
func (o *OnscreenKeyboard) Subtype() proto.WindowLikeType {
	return proto.TypeOnscreenKeyboard
}
func (o *OnscreenKeyboard) IdealDimensions(d wmtypes.Dimensions) wmtypes.Dimensions {
	return wmtypes.Dimensions{d[0] - 175, 250}
}
