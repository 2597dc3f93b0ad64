package proto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stjet/ming-wm/internal/wmtypes"
)

// The wire format uses four in-band separators that the protocol assumes
// never occur in user-visible strings: \x1F (unit separator, between array
// elements), \x1E (record separator, between a variant's positional
// arguments), \x1D (group separator, between successive draw instructions),
// and "/" (tag/argument separator). Every decoder here is defensive: a
// malformed line never panics, it returns an error so the caller can fall
// back to a safe default, per spec.md §4.4's protocol robustness rule.

const (
	unitSep   = "\x1F"
	recordSep = "\x1E"
	groupSep  = "\x1D"
)

func stripNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}

func arrayToString2(a [2]int) string {
	return strconv.Itoa(a[0]) + unitSep + strconv.Itoa(a[1])
}

func colorToString(c wmtypes.Color) string {
	return fmt.Sprintf("%d%s%d%s%d", c[0], unitSep, c[1], unitSep, c[2])
}

func optionIntToString(o *int) string {
	if o == nil {
		return "N"
	}
	return "S" + strconv.Itoa(*o)
}

func optionU8ToString(o *uint8) string {
	if o == nil {
		return "N"
	}
	return "S" + strconv.Itoa(int(*o))
}

func getColor(s string) (wmtypes.Color, error) {
	parts := strings.Split(s, unitSep)
	var c wmtypes.Color
	for i, p := range parts {
		if i == 3 {
			return wmtypes.Color{}, fmt.Errorf("too many color components")
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return wmtypes.Color{}, fmt.Errorf("bad color component %q", p)
		}
		c[i] = uint8(n)
	}
	return c, nil
}

func getTwoArray(s string) ([2]int, error) {
	parts := strings.Split(s, unitSep)
	var a [2]int
	for i := 0; i < 2; i++ {
		if i >= len(parts) {
			return a, fmt.Errorf("missing component %d", i)
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return a, err
		}
		a[i] = n
	}
	return a, nil
}

func parseOptionInt(s string) *int {
	if s == "N" || len(s) <= 1 {
		return nil
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return nil
	}
	return &n
}

func parseOptionU8(s string) *uint8 {
	if s == "N" || len(s) <= 1 {
		return nil
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n > 255 {
		return nil
	}
	v := uint8(n)
	return &v
}

// --- ThemeInfo ---

func EncodeThemeInfo(t ThemeInfo) string {
	fields := []wmtypes.Color{t.Top, t.Background, t.BorderLeftTop, t.BorderRightBottom, t.Text, t.TopText, t.AltBackground, t.AltText, t.AltSecondary}
	parts := make([]string, len(fields))
	for i, c := range fields {
		parts[i] = colorToString(c)
	}
	return strings.Join(parts, ":")
}

func DecodeThemeInfo(s string) (ThemeInfo, error) {
	s = stripNewline(s)
	var t ThemeInfo
	parts := strings.Split(s, ":")
	if len(parts) != 9 {
		return ThemeInfo{}, fmt.Errorf("theme info needs 9 fields, got %d", len(parts))
	}
	colors := make([]wmtypes.Color, 9)
	for i, p := range parts {
		c, err := getColor(p)
		if err != nil {
			return ThemeInfo{}, err
		}
		colors[i] = c
	}
	t.Top, t.Background, t.BorderLeftTop, t.BorderRightBottom = colors[0], colors[1], colors[2], colors[3]
	t.Text, t.TopText, t.AltBackground, t.AltText, t.AltSecondary = colors[4], colors[5], colors[6], colors[7], colors[8]
	return t, nil
}

// --- WindowMessageResponse ---

func encodeKeyChar(kc KeyChar) string {
	var tag string
	switch kc.Kind {
	case 'A':
		tag = "Alt"
	case 'C':
		tag = "Ctrl"
	default:
		tag = "Press"
	}
	return tag + "/" + string(kc.Char)
}

func decodeKeyChar(s string) KeyChar {
	parts := strings.SplitN(s, "/", 2)
	arg := "?"
	if len(parts) == 2 && len(parts[1]) > 0 {
		arg = parts[1]
	}
	r := []rune(arg)[0]
	switch parts[0] {
	case "Alt":
		return KeyAlt(r)
	case "Ctrl":
		return KeyCtrl(r)
	case "Press":
		return KeyPress(r)
	default:
		return KeyPress('?')
	}
}

func EncodeWindowMessageResponse(r WindowMessageResponse) string {
	switch r.Kind {
	case "JustRedraw":
		return "JustRedraw"
	case "DoNothing":
		return "DoNothing"
	case "Request":
		var req string
		switch r.Request.Kind {
		case "OpenWindow":
			req = "OpenWindow/" + r.Request.WindowName
		case "ClipboardCopy":
			req = "ClipboardCopy/" + r.Request.ClipboardText
		case "CloseStartMenu":
			req = "CloseStartMenu"
		case "Unlock":
			req = "Unlock"
		case "Lock":
			req = "Lock"
		case "DoKeyChar":
			req = "DoKeyChar/" + encodeKeyChar(r.Request.DoKeyChar)
		}
		return "Request/" + req
	}
	return "DoNothing"
}

func DecodeWindowMessageResponse(s string) (WindowMessageResponse, error) {
	s = stripNewline(s)
	parts := strings.SplitN(s, "/", 2)
	switch parts[0] {
	case "JustRedraw":
		return RespJustRedraw(), nil
	case "DoNothing":
		return RespDoNothing(), nil
	case "Request":
		if len(parts) < 2 {
			return WindowMessageResponse{}, fmt.Errorf("missing request body")
		}
		rparts := strings.SplitN(parts[1], "/", 2)
		switch rparts[0] {
		case "OpenWindow":
			return RespRequest(ReqOpenWindow(rest(rparts))), nil
		case "ClipboardCopy":
			return RespRequest(ReqClipboardCopy(rest(rparts))), nil
		case "CloseStartMenu":
			return RespRequest(ReqCloseStartMenu()), nil
		case "Unlock":
			return RespRequest(ReqUnlock()), nil
		case "Lock":
			return RespRequest(ReqLock()), nil
		case "DoKeyChar":
			return RespRequest(ReqDoKeyChar(decodeKeyChar(rest(rparts)))), nil
		}
	}
	return WindowMessageResponse{}, fmt.Errorf("unrecognized response %q", s)
}

func rest(parts []string) string {
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// --- DrawInstruction / DrawInstructionsVec ---

func EncodeDrawInstruction(d DrawInstruction) string {
	switch d.Kind {
	case "Rect":
		return fmt.Sprintf("Rect/%s%s%s%s%s", arrayToString2(d.Point), recordSep, arrayToString2(d.Dims), recordSep, colorToString(d.Color))
	case "Text":
		return fmt.Sprintf("Text/%s%s%s%s%s%s%s%s%s%s%s", arrayToString2(d.Point), recordSep,
			strings.Join(d.Families, unitSep), recordSep, d.Text, recordSep,
			colorToString(d.Color), recordSep, colorToString(d.Color2), recordSep,
			optionIntToString(d.HorizSpacing)) + recordSep + optionU8ToString(d.VertSpacing)
	case "Gradient":
		return fmt.Sprintf("Gradient/%s%s%s%s%s%s%s%s%d", arrayToString2(d.Point), recordSep, arrayToString2(d.Dims), recordSep, colorToString(d.Color), recordSep, colorToString(d.Color2), recordSep, d.Steps)
	case "Bmp":
		return fmt.Sprintf("Bmp/%s%s%s%s%t", arrayToString2(d.Point), recordSep, d.BmpName, recordSep, d.ReverseRGB)
	case "Circle":
		return fmt.Sprintf("Circle/%s%s%d%s%s", arrayToString2(d.Point), recordSep, d.Radius, recordSep, colorToString(d.Color))
	}
	return ""
}

func DecodeDrawInstruction(s string) (DrawInstruction, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) < 2 {
		return DrawInstruction{}, fmt.Errorf("missing draw instruction body")
	}
	args := strings.Split(parts[1], recordSep)
	switch parts[0] {
	case "Rect":
		if len(args) < 3 {
			return DrawInstruction{}, fmt.Errorf("Rect needs 3 args")
		}
		p, err := getTwoArray(args[0])
		if err != nil {
			return DrawInstruction{}, err
		}
		d, err := getTwoArray(args[1])
		if err != nil {
			return DrawInstruction{}, err
		}
		c, err := getColor(args[2])
		if err != nil {
			return DrawInstruction{}, err
		}
		return DrawRect(p, d, c), nil
	case "Text":
		if len(args) < 6 {
			return DrawInstruction{}, fmt.Errorf("Text needs 6 args")
		}
		p, err := getTwoArray(args[0])
		if err != nil {
			return DrawInstruction{}, err
		}
		families := strings.Split(args[1], unitSep)
		text := args[2]
		c1, err := getColor(args[3])
		if err != nil {
			return DrawInstruction{}, err
		}
		c2, err := getColor(args[4])
		if err != nil {
			return DrawInstruction{}, err
		}
		horiz := parseOptionInt(args[5])
		var vert *uint8
		if len(args) >= 7 {
			vert = parseOptionU8(args[6])
		}
		return DrawText(p, families, text, c1, c2, horiz, vert), nil
	case "Gradient":
		if len(args) < 5 {
			return DrawInstruction{}, fmt.Errorf("Gradient needs 5 args")
		}
		p, err := getTwoArray(args[0])
		if err != nil {
			return DrawInstruction{}, err
		}
		d, err := getTwoArray(args[1])
		if err != nil {
			return DrawInstruction{}, err
		}
		c1, err := getColor(args[2])
		if err != nil {
			return DrawInstruction{}, err
		}
		c2, err := getColor(args[3])
		if err != nil {
			return DrawInstruction{}, err
		}
		steps, err := strconv.Atoi(args[4])
		if err != nil {
			return DrawInstruction{}, err
		}
		return DrawGradient(p, d, c1, c2, steps), nil
	case "Bmp":
		if len(args) < 3 {
			return DrawInstruction{}, fmt.Errorf("Bmp needs 3 args")
		}
		p, err := getTwoArray(args[0])
		if err != nil {
			return DrawInstruction{}, err
		}
		if args[2] != "true" && args[2] != "false" {
			return DrawInstruction{}, fmt.Errorf("bad bool %q", args[2])
		}
		return DrawBmp(p, args[1], args[2] == "true"), nil
	case "Circle":
		if len(args) < 3 {
			return DrawInstruction{}, fmt.Errorf("Circle needs 3 args")
		}
		p, err := getTwoArray(args[0])
		if err != nil {
			return DrawInstruction{}, err
		}
		radius, err := strconv.Atoi(args[1])
		if err != nil {
			return DrawInstruction{}, err
		}
		c, err := getColor(args[2])
		if err != nil {
			return DrawInstruction{}, err
		}
		return DrawCircle(p, radius, c), nil
	}
	return DrawInstruction{}, fmt.Errorf("unrecognized draw instruction %q", parts[0])
}

// EncodeDrawInstructions serializes a slice, using the literal "empty" for a
// zero-length slice so the wire form is never a blank line.
func EncodeDrawInstructions(instructions []DrawInstruction) string {
	if len(instructions) == 0 {
		return "empty"
	}
	parts := make([]string, len(instructions))
	for i, ins := range instructions {
		parts[i] = EncodeDrawInstruction(ins)
	}
	return strings.Join(parts, groupSep)
}

func DecodeDrawInstructions(s string) ([]DrawInstruction, error) {
	s = stripNewline(s)
	if s == "empty" {
		return nil, nil
	}
	parts := strings.Split(s, groupSep)
	out := make([]DrawInstruction, 0, len(parts))
	for _, p := range parts {
		ins, err := DecodeDrawInstruction(p)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, nil
}

// --- WindowLikeType ---

func EncodeWindowLikeType(t WindowLikeType) string { return string(t) }

func DecodeWindowLikeType(s string) (WindowLikeType, error) {
	s = stripNewline(s)
	switch WindowLikeType(s) {
	case TypeLockScreen, TypeWindow, TypeDesktopBackground, TypeTaskbar, TypeStartMenu, TypeWorkspaceIndicator, TypeOnscreenKeyboard:
		return WindowLikeType(s), nil
	}
	return "", fmt.Errorf("unrecognized window-like type %q", s)
}

// --- Dimensions ---

func EncodeDimensions(d wmtypes.Dimensions) string {
	return arrayToString2([2]int{d[0], d[1]})
}

func DecodeDimensions(s string) (wmtypes.Dimensions, error) {
	s = stripNewline(s)
	a, err := getTwoArray(s)
	if err != nil {
		return wmtypes.Dimensions{}, err
	}
	return wmtypes.Dimensions{a[0], a[1]}, nil
}

// --- WindowMessage ---

func EncodeWindowMessage(m WindowMessage) string {
	switch m.Kind {
	case "Init":
		return "Init/" + arrayToString2([2]int{m.Dims[0], m.Dims[1]})
	case "KeyPress":
		return "KeyPress/" + string(m.Key)
	case "CtrlKeyPress":
		return "CtrlKeyPress/" + string(m.Key)
	case "Shortcut":
		return "Shortcut/" + encodeShortcut(m.Shortcut)
	case "Info":
		return "Info/" + encodeInfo(m.Info)
	case "Focus":
		return "Focus"
	case "Unfocus":
		return "Unfocus"
	case "FocusClick":
		return "FocusClick"
	case "ChangeDimensions":
		return "ChangeDimensions/" + arrayToString2([2]int{m.Dims[0], m.Dims[1]})
	case "Touch":
		return fmt.Sprintf("Touch/%d%s%d", m.TouchX, recordSep, m.TouchY)
	}
	return ""
}

func encodeShortcut(s ShortcutType) string {
	switch s.Kind {
	case "StartMenu", "FocusPrevWindow", "FocusNextWindow", "QuitWindow", "CenterWindow", "FullscreenWindow", "HalfWidthWindow", "ClipboardCopy":
		return s.Kind
	case "SwitchWorkspace":
		return fmt.Sprintf("SwitchWorkspace/%d", s.Workspace)
	case "MoveWindowToWorkspace":
		return fmt.Sprintf("MoveWindowToWorkspace/%d", s.Workspace)
	case "MoveWindow":
		return "MoveWindow/" + s.Direction.String()
	case "MoveWindowToEdge":
		return "MoveWindowToEdge/" + s.Direction.String()
	case "ChangeWindowSize":
		return "ChangeWindowSize/" + s.Direction.String()
	case "ClipboardPaste":
		return "ClipboardPaste/" + s.ClipboardPasteText
	}
	return s.Kind
}

func encodeInfo(i InfoType) string {
	switch i.Kind {
	case "WindowsInWorkspace":
		var b strings.Builder
		for _, w := range i.Windows {
			b.WriteString(strconv.Itoa(w.ID))
			b.WriteString(unitSep)
			b.WriteString(w.Title)
			b.WriteString(unitSep)
		}
		wvString := strings.TrimSuffix(b.String(), unitSep)
		return fmt.Sprintf("WindowsInWorkspace/%s%s%d", wvString, recordSep, i.FocusedID)
	}
	return ""
}

func parseDirection(s string) (Direction, bool) {
	switch s {
	case "Left":
		return DirLeft, true
	case "Down":
		return DirDown, true
	case "Up":
		return DirUp, true
	case "Right":
		return DirRight, true
	}
	return 0, false
}

func DecodeWindowMessage(s string) (WindowMessage, error) {
	s = stripNewline(s)
	parts := strings.SplitN(s, "/", 2)
	switch parts[0] {
	case "Init":
		if len(parts) < 2 {
			return WindowMessage{}, fmt.Errorf("Init missing dims")
		}
		a, err := getTwoArray(parts[1])
		if err != nil {
			return WindowMessage{}, err
		}
		return MsgInit(wmtypes.Dimensions{a[0], a[1]}), nil
	case "KeyPress":
		if len(parts) < 2 || len(parts[1]) == 0 {
			return WindowMessage{}, fmt.Errorf("KeyPress missing key")
		}
		return MsgKeyPress([]rune(parts[1])[0]), nil
	case "CtrlKeyPress":
		if len(parts) < 2 || len(parts[1]) == 0 {
			return WindowMessage{}, fmt.Errorf("CtrlKeyPress missing key")
		}
		return MsgCtrlKeyPress([]rune(parts[1])[0]), nil
	case "Shortcut":
		if len(parts) < 2 {
			return WindowMessage{}, fmt.Errorf("Shortcut missing body")
		}
		sc, err := decodeShortcut(parts[1])
		if err != nil {
			return WindowMessage{}, err
		}
		return MsgShortcut(sc), nil
	case "Info":
		if len(parts) < 2 {
			return WindowMessage{}, fmt.Errorf("Info missing body")
		}
		info, err := decodeInfo(parts[1])
		if err != nil {
			return WindowMessage{}, err
		}
		return MsgInfo(info), nil
	case "Focus":
		return MsgFocus(), nil
	case "Unfocus":
		return MsgUnfocus(), nil
	case "FocusClick":
		return MsgFocusClick(), nil
	case "ChangeDimensions":
		if len(parts) < 2 {
			return WindowMessage{}, fmt.Errorf("ChangeDimensions missing dims")
		}
		a, err := getTwoArray(parts[1])
		if err != nil {
			return WindowMessage{}, err
		}
		return MsgChangeDimensions(wmtypes.Dimensions{a[0], a[1]}), nil
	case "Touch":
		if len(parts) < 2 {
			return WindowMessage{}, fmt.Errorf("Touch missing body")
		}
		sub := strings.SplitN(parts[1], recordSep, 2)
		if len(sub) < 2 {
			return WindowMessage{}, fmt.Errorf("Touch needs 2 components")
		}
		x, err := strconv.Atoi(sub[0])
		if err != nil {
			return WindowMessage{}, err
		}
		y, err := strconv.Atoi(sub[1])
		if err != nil {
			return WindowMessage{}, err
		}
		return MsgTouch(x, y), nil
	}
	return WindowMessage{}, fmt.Errorf("unrecognized window message %q", parts[0])
}

func decodeShortcut(s string) (ShortcutType, error) {
	parts := strings.SplitN(s, "/", 2)
	switch parts[0] {
	case "StartMenu":
		return ShortcutStartMenu(), nil
	case "FocusPrevWindow":
		return ShortcutFocusPrevWindow(), nil
	case "FocusNextWindow":
		return ShortcutFocusNextWindow(), nil
	case "QuitWindow":
		return ShortcutQuitWindow(), nil
	case "CenterWindow":
		return ShortcutCenterWindow(), nil
	case "FullscreenWindow":
		return ShortcutFullscreenWindow(), nil
	case "HalfWidthWindow":
		return ShortcutHalfWidthWindow(), nil
	case "ClipboardCopy":
		return ShortcutClipboardCopy(), nil
	case "SwitchWorkspace", "MoveWindowToWorkspace":
		if len(parts) < 2 {
			return ShortcutType{}, fmt.Errorf("missing workspace number")
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return ShortcutType{}, err
		}
		if parts[0] == "SwitchWorkspace" {
			return ShortcutSwitchWorkspace(uint8(n)), nil
		}
		return ShortcutMoveWindowToWorkspace(uint8(n)), nil
	case "MoveWindow", "MoveWindowToEdge", "ChangeWindowSize":
		if len(parts) < 2 {
			return ShortcutType{}, fmt.Errorf("missing direction")
		}
		d, ok := parseDirection(parts[1])
		if !ok {
			return ShortcutType{}, fmt.Errorf("bad direction %q", parts[1])
		}
		switch parts[0] {
		case "MoveWindow":
			return ShortcutMoveWindow(d), nil
		case "MoveWindowToEdge":
			return ShortcutMoveWindowToEdge(d), nil
		default:
			return ShortcutChangeWindowSize(d), nil
		}
	case "ClipboardPaste":
		return ShortcutClipboardPaste(rest(parts)), nil
	}
	return ShortcutType{}, fmt.Errorf("unrecognized shortcut %q", parts[0])
}

func decodeInfo(s string) (InfoType, error) {
	// the original always writes a leading "WindowsInWorkspace/" tag; skip it.
	parts := strings.SplitN(s, "/", 2)
	if len(parts) < 2 {
		return InfoType{}, fmt.Errorf("info missing body")
	}
	fields := strings.SplitN(parts[1], recordSep, 2)
	if len(fields) < 2 {
		return InfoType{}, fmt.Errorf("info needs 2 fields")
	}
	var windows []WindowEntry
	tuple := WindowEntry{}
	for i, a := range strings.Split(fields[0], unitSep) {
		if i%2 == 0 {
			n, err := strconv.Atoi(a)
			if err == nil {
				tuple.ID = n
			}
		} else {
			tuple.Title = a
			windows = append(windows, tuple)
		}
	}
	focused, err := strconv.Atoi(fields[1])
	if err != nil {
		return InfoType{}, err
	}
	return InfoWindowsInWorkspace(windows, focused), nil
}
