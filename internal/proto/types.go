// Package proto implements the compositor's wire vocabulary: the message and
// response types exchanged with window processes, and the text codec used to
// serialize them over stdio. Grounded on
// original_source/ming-wm-lib/src/{messages,window_manager_types,themes,serialize}.rs.
package proto

import "github.com/stjet/ming-wm/internal/wmtypes"

const (
	TaskbarHeight   = 38
	IndicatorHeight = 20
)

// KeyChar is a decoded keyboard event tagged with its modifier, mirroring
// window_manager_types.rs's KeyChar enum.
type KeyChar struct {
	Kind byte // 'P' press, 'A' alt, 'C' ctrl
	Char rune
}

func KeyPress(c rune) KeyChar { return KeyChar{Kind: 'P', Char: c} }
func KeyAlt(c rune) KeyChar   { return KeyChar{Kind: 'A', Char: c} }
func KeyCtrl(c rune) KeyChar  { return KeyChar{Kind: 'C', Char: c} }

// Linear A sentinel runes used for non-printable keys, per messages.rs's
// KeyPress::is_enter/is_backspace/... helpers.
const (
	RuneEnter     = '\U00010602'
	RuneBackspace = '\U00010601'
	RuneEscape    = '\U00010603'
	RuneArrowUp   = '\U00010658'
	RuneArrowDown = '\U0001061E'
	RuneArrowLeft = '\U00010663'
	RuneArrowRight = '\U00010665'
	RuneAlt        = '\U0001060E'
	RuneSwitchBoard = '\U000106A7'
	RuneOskCtrl     = '\U0001063E'
)

func IsEnter(c rune) bool     { return c == RuneEnter }
func IsBackspace(c rune) bool { return c == RuneBackspace }
func IsEscape(c rune) bool    { return c == RuneEscape }
func IsUpArrow(c rune) bool   { return c == RuneArrowUp }
func IsDownArrow(c rune) bool { return c == RuneArrowDown }
func IsLeftArrow(c rune) bool { return c == RuneArrowLeft }
func IsRightArrow(c rune) bool {
	return c == RuneArrowRight
}
func IsArrow(c rune) bool {
	return IsUpArrow(c) || IsDownArrow(c) || IsLeftArrow(c) || IsRightArrow(c)
}

// IsRegular reports the key is not Enter/Backspace/Escape/an arrow.
func IsRegular(c rune) bool {
	return !IsEnter(c) && !IsBackspace(c) && !IsEscape(c) && !IsArrow(c)
}

// Direction is a cardinal movement/resize direction.
type Direction int

const (
	DirLeft Direction = iota
	DirDown
	DirUp
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirDown:
		return "Down"
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	}
	return "Left"
}

// ShortcutType is every Alt-shortcut the compositor recognizes.
type ShortcutType struct {
	Kind                string // tag, e.g. "StartMenu", "SwitchWorkspace", ...
	Workspace           uint8
	Direction           Direction
	ClipboardPasteText  string
}

func ShortcutStartMenu() ShortcutType             { return ShortcutType{Kind: "StartMenu"} }
func ShortcutSwitchWorkspace(n uint8) ShortcutType { return ShortcutType{Kind: "SwitchWorkspace", Workspace: n} }
func ShortcutMoveWindowToWorkspace(n uint8) ShortcutType {
	return ShortcutType{Kind: "MoveWindowToWorkspace", Workspace: n}
}
func ShortcutFocusPrevWindow() ShortcutType { return ShortcutType{Kind: "FocusPrevWindow"} }
func ShortcutFocusNextWindow() ShortcutType { return ShortcutType{Kind: "FocusNextWindow"} }
func ShortcutQuitWindow() ShortcutType       { return ShortcutType{Kind: "QuitWindow"} }
func ShortcutMoveWindow(d Direction) ShortcutType {
	return ShortcutType{Kind: "MoveWindow", Direction: d}
}
func ShortcutMoveWindowToEdge(d Direction) ShortcutType {
	return ShortcutType{Kind: "MoveWindowToEdge", Direction: d}
}
func ShortcutChangeWindowSize(d Direction) ShortcutType {
	return ShortcutType{Kind: "ChangeWindowSize", Direction: d}
}
func ShortcutCenterWindow() ShortcutType     { return ShortcutType{Kind: "CenterWindow"} }
func ShortcutFullscreenWindow() ShortcutType { return ShortcutType{Kind: "FullscreenWindow"} }
func ShortcutHalfWidthWindow() ShortcutType  { return ShortcutType{Kind: "HalfWidthWindow"} }
func ShortcutClipboardCopy() ShortcutType    { return ShortcutType{Kind: "ClipboardCopy"} }
func ShortcutClipboardPaste(s string) ShortcutType {
	return ShortcutType{Kind: "ClipboardPaste", ClipboardPasteText: s}
}

// WindowEntry is one (id, title) pair in a WindowsInWorkspace info payload.
type WindowEntry struct {
	ID    int
	Title string
}

// InfoType carries compositor state pushed to the taskbar.
type InfoType struct {
	Kind              string // "WindowsInWorkspace"
	Windows           []WindowEntry
	FocusedID         int
}

func InfoWindowsInWorkspace(windows []WindowEntry, focusedID int) InfoType {
	return InfoType{Kind: "WindowsInWorkspace", Windows: windows, FocusedID: focusedID}
}

// WindowMessage is everything the compositor can send down to a WindowLike.
type WindowMessage struct {
	Kind       string
	Dims       wmtypes.Dimensions
	Key        rune
	Shortcut   ShortcutType
	Info       InfoType
	TouchX     int
	TouchY     int
}

func MsgInit(d wmtypes.Dimensions) WindowMessage     { return WindowMessage{Kind: "Init", Dims: d} }
func MsgKeyPress(c rune) WindowMessage               { return WindowMessage{Kind: "KeyPress", Key: c} }
func MsgCtrlKeyPress(c rune) WindowMessage           { return WindowMessage{Kind: "CtrlKeyPress", Key: c} }
func MsgShortcut(s ShortcutType) WindowMessage       { return WindowMessage{Kind: "Shortcut", Shortcut: s} }
func MsgInfo(i InfoType) WindowMessage               { return WindowMessage{Kind: "Info", Info: i} }
func MsgFocus() WindowMessage                        { return WindowMessage{Kind: "Focus"} }
func MsgUnfocus() WindowMessage                      { return WindowMessage{Kind: "Unfocus"} }
func MsgFocusClick() WindowMessage                   { return WindowMessage{Kind: "FocusClick"} }
func MsgChangeDimensions(d wmtypes.Dimensions) WindowMessage {
	return WindowMessage{Kind: "ChangeDimensions", Dims: d}
}
func MsgTouch(x, y int) WindowMessage { return WindowMessage{Kind: "Touch", TouchX: x, TouchY: y} }

// WindowManagerRequest is what a WindowLike hands back to ask the compositor
// to do something on its behalf.
type WindowManagerRequest struct {
	Kind           string
	WindowName     string
	ClipboardText  string
	DoKeyChar      KeyChar
}

func ReqOpenWindow(name string) WindowManagerRequest {
	return WindowManagerRequest{Kind: "OpenWindow", WindowName: name}
}
func ReqClipboardCopy(text string) WindowManagerRequest {
	return WindowManagerRequest{Kind: "ClipboardCopy", ClipboardText: text}
}
func ReqCloseStartMenu() WindowManagerRequest { return WindowManagerRequest{Kind: "CloseStartMenu"} }
func ReqUnlock() WindowManagerRequest         { return WindowManagerRequest{Kind: "Unlock"} }
func ReqLock() WindowManagerRequest           { return WindowManagerRequest{Kind: "Lock"} }
func ReqDoKeyChar(kc KeyChar) WindowManagerRequest {
	return WindowManagerRequest{Kind: "DoKeyChar", DoKeyChar: kc}
}

// WindowMessageResponse is a WindowLike's reply to handle_message.
type WindowMessageResponse struct {
	Kind    string // "JustRedraw", "DoNothing", "Request"
	Request WindowManagerRequest
}

func RespJustRedraw() WindowMessageResponse { return WindowMessageResponse{Kind: "JustRedraw"} }
func RespDoNothing() WindowMessageResponse  { return WindowMessageResponse{Kind: "DoNothing"} }
func RespRequest(r WindowManagerRequest) WindowMessageResponse {
	return WindowMessageResponse{Kind: "Request", Request: r}
}

// IsKeyCharRequest mirrors WindowMessageResponse::is_key_char_request.
func (r WindowMessageResponse) IsKeyCharRequest() bool {
	return r.Kind == "Request" && r.Request.Kind == "DoKeyChar"
}

// DrawInstruction is one primitive the compositor interprets into pixels.
type DrawInstruction struct {
	Kind string // "Rect", "Text", "Gradient", "Bmp", "Circle"

	// Rect / Gradient / Bmp / Circle
	Point wmtypes.Point
	Dims  wmtypes.Dimensions
	Color wmtypes.Color

	// Gradient
	Color2 wmtypes.Color
	Steps  int

	// Text
	Families  []string
	Text      string
	HorizSpacing *int
	VertSpacing  *uint8

	// Bmp
	BmpName    string
	ReverseRGB bool

	// Circle
	Radius int
}

func DrawRect(p wmtypes.Point, d wmtypes.Dimensions, c wmtypes.Color) DrawInstruction {
	return DrawInstruction{Kind: "Rect", Point: p, Dims: d, Color: c}
}
func DrawText(p wmtypes.Point, families []string, text string, c1, c2 wmtypes.Color, horiz *int, vert *uint8) DrawInstruction {
	return DrawInstruction{Kind: "Text", Point: p, Families: families, Text: text, Color: c1, Color2: c2, HorizSpacing: horiz, VertSpacing: vert}
}
func DrawGradient(p wmtypes.Point, d wmtypes.Dimensions, c1, c2 wmtypes.Color, steps int) DrawInstruction {
	return DrawInstruction{Kind: "Gradient", Point: p, Dims: d, Color: c1, Color2: c2, Steps: steps}
}
func DrawBmp(p wmtypes.Point, name string, reverseRGB bool) DrawInstruction {
	return DrawInstruction{Kind: "Bmp", Point: p, BmpName: name, ReverseRGB: reverseRGB}
}
func DrawCircle(p wmtypes.Point, radius int, c wmtypes.Color) DrawInstruction {
	return DrawInstruction{Kind: "Circle", Point: p, Radius: radius, Color: c}
}

// WindowLikeType tags what kind of WindowLike a window is.
type WindowLikeType string

const (
	TypeLockScreen         WindowLikeType = "LockScreen"
	TypeWindow             WindowLikeType = "Window"
	TypeDesktopBackground  WindowLikeType = "DesktopBackground"
	TypeTaskbar            WindowLikeType = "Taskbar"
	TypeStartMenu          WindowLikeType = "StartMenu"
	TypeWorkspaceIndicator WindowLikeType = "WorkspaceIndicator"
	TypeOnscreenKeyboard   WindowLikeType = "OnscreenKeyboard"
)

// ThemeInfo is the full palette for one theme, per themes.rs.
type ThemeInfo struct {
	Top              wmtypes.Color
	Background       wmtypes.Color
	BorderLeftTop    wmtypes.Color
	BorderRightBottom wmtypes.Color
	Text             wmtypes.Color
	TopText          wmtypes.Color
	AltBackground    wmtypes.Color
	AltText          wmtypes.Color
	AltSecondary     wmtypes.Color
}

// Themes are the named built-in palettes.
type Theme string

const (
	ThemeStandard   Theme = "Standard"
	ThemeNight      Theme = "Night"
	ThemeIndustrial Theme = "Industrial"
	ThemeForest     Theme = "Forest"
	ThemeRoyal      Theme = "Royal"
)

var themeInfos = map[Theme]ThemeInfo{
	ThemeStandard: {
		Top: wmtypes.Color{0, 0, 128}, Background: wmtypes.Color{192, 192, 192},
		BorderLeftTop: wmtypes.Color{255, 255, 255}, BorderRightBottom: wmtypes.Color{0, 0, 0},
		Text: wmtypes.Color{0, 0, 0}, TopText: wmtypes.Color{255, 255, 255},
		AltBackground: wmtypes.Color{0, 0, 0}, AltText: wmtypes.Color{255, 255, 255},
		AltSecondary: wmtypes.Color{128, 128, 128},
	},
	ThemeNight: {
		Top: wmtypes.Color{0, 0, 0}, Background: wmtypes.Color{34, 34, 34},
		BorderLeftTop: wmtypes.Color{239, 239, 239}, BorderRightBottom: wmtypes.Color{0, 0, 0},
		Text: wmtypes.Color{239, 239, 239}, TopText: wmtypes.Color{239, 239, 239},
		AltBackground: wmtypes.Color{0, 0, 0}, AltText: wmtypes.Color{239, 239, 239},
		AltSecondary: wmtypes.Color{128, 128, 128},
	},
	ThemeIndustrial: {
		Top: wmtypes.Color{40, 40, 40}, Background: wmtypes.Color{160, 160, 160},
		BorderLeftTop: wmtypes.Color{255, 255, 255}, BorderRightBottom: wmtypes.Color{0, 0, 0},
		Text: wmtypes.Color{0, 0, 0}, TopText: wmtypes.Color{255, 255, 255},
		AltBackground: wmtypes.Color{0, 0, 0}, AltText: wmtypes.Color{255, 255, 255},
		AltSecondary: wmtypes.Color{128, 128, 128},
	},
	ThemeForest: {
		Top: wmtypes.Color{0, 128, 0}, Background: wmtypes.Color{192, 192, 192},
		BorderLeftTop: wmtypes.Color{255, 255, 255}, BorderRightBottom: wmtypes.Color{0, 0, 0},
		Text: wmtypes.Color{0, 0, 0}, TopText: wmtypes.Color{255, 255, 255},
		AltBackground: wmtypes.Color{0, 0, 0}, AltText: wmtypes.Color{255, 255, 255},
		AltSecondary: wmtypes.Color{128, 128, 128},
	},
	ThemeRoyal: {
		Top: wmtypes.Color{128, 0, 128}, Background: wmtypes.Color{192, 192, 192},
		BorderLeftTop: wmtypes.Color{255, 255, 255}, BorderRightBottom: wmtypes.Color{0, 0, 0},
		Text: wmtypes.Color{0, 0, 0}, TopText: wmtypes.Color{255, 255, 255},
		AltBackground: wmtypes.Color{0, 0, 0}, AltText: wmtypes.Color{255, 255, 255},
		AltSecondary: wmtypes.Color{128, 128, 128},
	},
}

// GetThemeInfo looks up a named theme, defaulting to Standard when unknown.
func GetThemeInfo(t Theme) ThemeInfo {
	if info, ok := themeInfos[t]; ok {
		return info
	}
	return themeInfos[ThemeStandard]
}

func ParseTheme(name string) (Theme, bool) {
	switch Theme(name) {
	case ThemeStandard, ThemeNight, ThemeIndustrial, ThemeForest, ThemeRoyal:
		return Theme(name), true
	}
	return "", false
}
