package compositor

import (
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

const moveDelta = 15

// shortcutTable is the Alt-key binding map, carried verbatim from
// window_manager.rs's handle_message (Alt+E is handled one layer up, at the
// keyboard reader, since it exits the host process entirely).
var shortcutTable = map[rune]proto.ShortcutType{
	's': proto.ShortcutStartMenu(),
	'[': proto.ShortcutFocusPrevWindow(),
	']': proto.ShortcutFocusNextWindow(),
	'q': proto.ShortcutQuitWindow(),
	'c': proto.ShortcutCenterWindow(),
	'f': proto.ShortcutFullscreenWindow(),
	'w': proto.ShortcutHalfWidthWindow(),
	'C': proto.ShortcutClipboardCopy(),
	'P': proto.ShortcutClipboardPaste(""),
	'h': proto.ShortcutMoveWindow(proto.DirLeft),
	'j': proto.ShortcutMoveWindow(proto.DirDown),
	'k': proto.ShortcutMoveWindow(proto.DirUp),
	'l': proto.ShortcutMoveWindow(proto.DirRight),
	'H': proto.ShortcutMoveWindowToEdge(proto.DirLeft),
	'J': proto.ShortcutMoveWindowToEdge(proto.DirDown),
	'K': proto.ShortcutMoveWindowToEdge(proto.DirUp),
	'L': proto.ShortcutMoveWindowToEdge(proto.DirRight),
	'n': proto.ShortcutChangeWindowSize(proto.DirRight),
	'm': proto.ShortcutChangeWindowSize(proto.DirDown),
	'N': proto.ShortcutChangeWindowSize(proto.DirLeft),
	'M': proto.ShortcutChangeWindowSize(proto.DirUp),
	'1': proto.ShortcutSwitchWorkspace(0),
	'2': proto.ShortcutSwitchWorkspace(1),
	'3': proto.ShortcutSwitchWorkspace(2),
	'4': proto.ShortcutSwitchWorkspace(3),
	'5': proto.ShortcutSwitchWorkspace(4),
	'6': proto.ShortcutSwitchWorkspace(5),
	'7': proto.ShortcutSwitchWorkspace(6),
	'8': proto.ShortcutSwitchWorkspace(7),
	'9': proto.ShortcutSwitchWorkspace(8),
	'!': proto.ShortcutMoveWindowToWorkspace(0),
	'@': proto.ShortcutMoveWindowToWorkspace(1),
	'#': proto.ShortcutMoveWindowToWorkspace(2),
	'$': proto.ShortcutMoveWindowToWorkspace(3),
	'%': proto.ShortcutMoveWindowToWorkspace(4),
	'^': proto.ShortcutMoveWindowToWorkspace(5),
	'&': proto.ShortcutMoveWindowToWorkspace(6),
	'*': proto.ShortcutMoveWindowToWorkspace(7),
	'(': proto.ShortcutMoveWindowToWorkspace(8),
}

// HandleKeyChar dispatches one decoded keyboard event. Alt+E is intentionally
// absent from shortcutTable: the caller (the keyboard reader) handles process
// exit before this is ever reached.
func (m *Manager) HandleKeyChar(kc proto.KeyChar) {
	var response proto.WindowMessageResponse
	var redrawIDs []int
	var useSavedBuffer bool

	switch kc.Kind {
	case 'A':
		response, redrawIDs, useSavedBuffer = m.handleAltShortcut(kc.Char)
	case 'P', 'C':
		response, redrawIDs = m.handleFocusedKeyPress(kc)
	}

	if response.Kind == proto.RespDoNothing().Kind {
		return
	}
	isKeyCharRequest := response.IsKeyCharRequest()
	if response.Kind == "Request" {
		m.handleRequest(response.Request)
	}
	if !isKeyCharRequest {
		m.Draw(redrawIDs, useSavedBuffer)
	}
}

func (m *Manager) handleFocusedKeyPress(kc proto.KeyChar) (proto.WindowMessageResponse, []int) {
	focusedIndex, ok := m.getFocusedIndex()
	if !ok {
		return proto.RespDoNothing(), nil
	}
	var msg proto.WindowMessage
	if kc.Kind == 'P' {
		msg = proto.MsgKeyPress(kc.Char)
	} else {
		msg = proto.MsgCtrlKeyPress(kc.Char)
	}
	resp := m.windowInfos[focusedIndex].windowLike.HandleMessage(msg)
	redrawIDs := []int{m.windowInfos[focusedIndex].id}
	if resp.Kind != proto.RespJustRedraw().Kind {
		redrawIDs = nil
	}
	return resp, redrawIDs
}

func (m *Manager) handleAltShortcut(c rune) (proto.WindowMessageResponse, []int, bool) {
	response := proto.RespDoNothing()
	if m.Locked {
		return response, nil, false
	}
	shortcut, ok := shortcutTable[c]
	if !ok {
		return response, nil, false
	}

	var redrawIDs []int
	var useSavedBuffer bool

	switch shortcut.Kind {
	case "StartMenu":
		response = m.toggleStartMenu(false)
		if response != proto.RespRequest(proto.ReqCloseStartMenu()) {
			startMenuID := m.idCount + 1
			for _, w := range m.windowInfos {
				if w.windowLike.Subtype() == proto.TypeTaskbar {
					redrawIDs = []int{startMenuID, w.id}
					break
				}
			}
		}
	case "MoveWindow", "MoveWindowToEdge":
		if focusedIndex, ok := m.getFocusedIndex(); ok {
			info := m.windowInfos[focusedIndex]
			if info.windowLike.Subtype() == proto.TypeWindow && !info.fullscreen {
				if m.moveWindow(info, shortcut) {
					response = proto.RespJustRedraw()
					useSavedBuffer = true
					redrawIDs = []int{m.focusedID}
				}
			}
		}
	case "ChangeWindowSize":
		if focusedIndex, ok := m.getFocusedIndex(); ok {
			info := m.windowInfos[focusedIndex]
			if info.windowLike.Subtype() == proto.TypeWindow && info.windowLike.Resizable() && !info.fullscreen {
				if m.resizeWindow(info, shortcut.Direction) {
					response = proto.RespJustRedraw()
					useSavedBuffer = true
					redrawIDs = []int{m.focusedID}
				}
			}
		}
	case "SwitchWorkspace":
		if m.currentWorkspace != shortcut.Workspace {
			m.toggleStartMenu(true)
			m.currentWorkspace = shortcut.Workspace
			m.changeTheme()
			for _, w := range m.windowInfos {
				if w.windowLike.Subtype() == proto.TypeDesktopBackground {
					w.windowLike.HandleMessage(proto.MsgShortcut(proto.ShortcutSwitchWorkspace(m.currentWorkspace)))
				}
				if w.windowLike.Subtype() == proto.TypeWorkspaceIndicator {
					m.focusedID = w.id
					w.windowLike.HandleMessage(proto.MsgShortcut(proto.ShortcutSwitchWorkspace(m.currentWorkspace)))
				}
			}
			m.taskbarUpdateWindows()
			response = proto.RespJustRedraw()
		}
	case "MoveWindowToWorkspace":
		if m.currentWorkspace != shortcut.Workspace {
			if focusedIndex, ok := m.getFocusedIndex(); ok {
				if m.windowInfos[focusedIndex].windowLike.Subtype() == proto.TypeWindow {
					m.windowInfos[focusedIndex].workspace = workspaceOf(shortcut.Workspace)
					m.taskbarUpdateWindows()
					response = proto.RespJustRedraw()
				}
			}
		}
	case "FocusPrevWindow", "FocusNextWindow":
		response = m.cycleFocus(shortcut.Kind == "FocusPrevWindow")
	case "QuitWindow":
		if focusedIndex, ok := m.getFocusedIndex(); ok {
			if m.windowInfos[focusedIndex].windowLike.Subtype() == proto.TypeWindow {
				m.windowInfos = append(m.windowInfos[:focusedIndex], m.windowInfos[focusedIndex+1:]...)
				m.taskbarUpdateWindows()
				response = proto.RespJustRedraw()
			}
		}
	case "CenterWindow":
		if focusedIndex, ok := m.getFocusedIndex(); ok {
			d := m.windowInfos[focusedIndex].dimensions
			m.windowInfos[focusedIndex].topLeft = wmtypes.Point{m.dimensions[0]/2 - d[0]/2, m.dimensions[1]/2 - d[1]/2}
			useSavedBuffer = true
			response = proto.RespJustRedraw()
		}
	case "FullscreenWindow":
		if focusedIndex, ok := m.getFocusedIndex(); ok {
			response, redrawIDs = m.toggleFullscreen(focusedIndex)
		}
	case "HalfWidthWindow":
		if focusedIndex, ok := m.getFocusedIndex(); ok {
			response = m.halfWidthWindow(focusedIndex)
		}
	case "ClipboardCopy":
		if focusedIndex, ok := m.getFocusedIndex(); ok {
			if m.windowInfos[focusedIndex].windowLike.Subtype() == proto.TypeWindow {
				response = m.windowInfos[focusedIndex].windowLike.HandleMessage(proto.MsgShortcut(proto.ShortcutClipboardCopy()))
			}
		}
	case "ClipboardPaste":
		if focusedIndex, ok := m.getFocusedIndex(); ok {
			info := m.windowInfos[focusedIndex]
			if info.windowLike.Subtype() == proto.TypeWindow && m.clipboard != nil {
				response = info.windowLike.HandleMessage(proto.MsgShortcut(proto.ShortcutClipboardPaste(*m.clipboard)))
			}
		}
	}
	return response, redrawIDs, useSavedBuffer
}

// moveWindow applies MoveWindow/MoveWindowToEdge's boundary arithmetic,
// carried verbatim from window_manager.rs. Returns whether anything changed.
func (m *Manager) moveWindow(info *windowInfo, shortcut proto.ShortcutType) bool {
	toEdge := shortcut.Kind == "MoveWindowToEdge"
	x, y := info.topLeft[0], info.topLeft[1]
	switch shortcut.Direction {
	case proto.DirLeft:
		if x == 0 {
			return false
		}
		if x < moveDelta || toEdge {
			info.topLeft[0] = 0
		} else {
			info.topLeft[0] -= moveDelta
		}
	case proto.DirDown:
		maxY := m.dimensions[1] - proto.TaskbarHeight - info.dimensions[1]
		if y == maxY {
			return false
		}
		if y > maxY-moveDelta || toEdge {
			info.topLeft[1] = maxY
		} else {
			info.topLeft[1] += moveDelta
		}
	case proto.DirUp:
		minY := proto.IndicatorHeight
		if y == minY {
			return false
		}
		if y < minY+moveDelta || toEdge {
			info.topLeft[1] = minY
		} else {
			info.topLeft[1] -= moveDelta
		}
	case proto.DirRight:
		maxX := m.dimensions[0] - info.dimensions[0]
		if x == maxX {
			return false
		}
		if x > maxX-moveDelta || toEdge {
			info.topLeft[0] = maxX
		} else {
			info.topLeft[0] += moveDelta
		}
	}
	return true
}

// resizeWindow applies ChangeWindowSize's exact clamp arithmetic, carried
// verbatim from window_manager.rs (the min size floor and the "would land
// exactly on the boundary" change-detection quirk included).
func (m *Manager) resizeWindow(info *windowInfo, dir proto.Direction) bool {
	minSize := m.cfg.MinWindowSize
	changed := false
	switch dir {
	case proto.DirRight:
		if info.dimensions[0]+moveDelta != m.dimensions[0] {
			info.dimensions[0] += moveDelta
			if maxWidth := m.dimensions[0] - info.topLeft[0]; info.dimensions[0] > maxWidth {
				info.dimensions[0] = maxWidth
			}
			changed = true
		}
	case proto.DirDown:
		maxHeight := m.dimensions[1] - info.topLeft[1] - proto.IndicatorHeight - proto.TaskbarHeight
		if info.dimensions[1]+moveDelta != maxHeight {
			info.dimensions[1] += moveDelta
			if info.dimensions[1] > maxHeight {
				info.dimensions[1] = maxHeight
			}
			changed = true
		}
	case proto.DirLeft:
		if info.dimensions[0]-moveDelta != minSize[0] {
			info.dimensions[0] -= moveDelta
			if info.dimensions[0] < minSize[0] {
				info.dimensions[0] = minSize[0]
			}
			changed = true
		}
	case proto.DirUp:
		if info.dimensions[1]-moveDelta != minSize[1] {
			info.dimensions[1] -= moveDelta
			if info.dimensions[1] < minSize[1] {
				info.dimensions[1] = minSize[1]
			}
			changed = true
		}
	}
	if changed {
		info.windowLike.HandleMessage(proto.MsgChangeDimensions(wmtypes.Dimensions{info.dimensions[0], info.dimensions[1] - windowTopHeight}))
	}
	return changed
}

func (m *Manager) cycleFocus(prev bool) proto.WindowMessageResponse {
	currentIndex, ok := m.getFocusedIndex()
	if !ok {
		currentIndex = 0
	}
	newIndex := currentIndex
	for {
		if prev {
			if newIndex == 0 {
				newIndex = len(m.windowInfos) - 1
			} else {
				newIndex--
			}
		} else {
			newIndex++
			if newIndex == len(m.windowInfos) {
				newIndex = 0
			}
		}
		w := m.windowInfos[newIndex]
		if w.windowLike.Subtype() == proto.TypeWindow && sameWorkspace(w.workspace, m.currentWorkspace) {
			m.focusedID = w.id
			m.moveIndexToTop(newIndex)
			m.taskbarUpdateWindows()
			return proto.RespJustRedraw()
		}
		if newIndex == currentIndex {
			return proto.RespDoNothing()
		}
	}
}

func (m *Manager) toggleFullscreen(focusedIndex int) (proto.WindowMessageResponse, []int) {
	info := m.windowInfos[focusedIndex]
	if info.windowLike.Subtype() != proto.TypeWindow || !info.windowLike.Resizable() {
		return proto.RespDoNothing(), nil
	}
	info.fullscreen = !info.fullscreen
	var redrawIDs []int
	var newDimensions wmtypes.Dimensions
	if info.fullscreen {
		newDimensions = wmtypes.Dimensions{m.dimensions[0], m.dimensions[1] - proto.TaskbarHeight - proto.IndicatorHeight}
		info.topLeft = wmtypes.Point{0, proto.IndicatorHeight}
		redrawIDs = []int{info.id}
	} else {
		newDimensions = info.dimensions
	}
	info.windowLike.HandleMessage(proto.MsgChangeDimensions(wmtypes.Dimensions{newDimensions[0], newDimensions[1] - windowTopHeight}))
	return proto.RespJustRedraw(), redrawIDs
}

func (m *Manager) halfWidthWindow(focusedIndex int) proto.WindowMessageResponse {
	info := m.windowInfos[focusedIndex]
	if info.windowLike.Subtype() != proto.TypeWindow || !info.windowLike.Resizable() {
		return proto.RespDoNothing()
	}
	info.fullscreen = false
	if info.topLeft[0] > m.dimensions[0]/2 {
		info.topLeft[0] = m.dimensions[0] / 2
	} else {
		info.topLeft[0] = 0
	}
	info.topLeft[1] = proto.IndicatorHeight
	newDimensions := wmtypes.Dimensions{m.dimensions[0] / 2, m.dimensions[1] - proto.IndicatorHeight - proto.TaskbarHeight}
	info.dimensions = newDimensions
	info.windowLike.HandleMessage(proto.MsgChangeDimensions(wmtypes.Dimensions{newDimensions[0], newDimensions[1] - windowTopHeight}))
	return proto.RespJustRedraw()
}

// HandleTouch routes a touch event: the top-left 100x100 corner toggles the
// onscreen keyboard, and touches inside an open keyboard are forwarded to it
// with coordinates offset into its local space.
func (m *Manager) HandleTouch(x, y int) {
	var response proto.WindowMessageResponse
	if x < 100 && y < 100 {
		if m.osk != nil {
			m.osk = nil
		} else {
			osk := NewOnscreenKeyboard()
			ideal := osk.IdealDimensions(m.dimensions)
			m.AddWindowLike(osk, wmtypes.Point{175, m.dimensions[1] - proto.TaskbarHeight - 250}, &ideal)
		}
		response = proto.RespJustRedraw()
	} else if m.osk != nil {
		if wmtypes.PointInside(wmtypes.Point{x, y}, m.osk.topLeft, m.osk.dimensions) {
			response = m.osk.windowLike.HandleMessage(proto.MsgTouch(x-m.osk.topLeft[0], y-m.osk.topLeft[1]))
		} else {
			response = proto.RespDoNothing()
		}
	} else {
		response = proto.RespDoNothing()
	}

	if response.Kind == proto.RespDoNothing().Kind {
		return
	}
	isKeyCharRequest := response.IsKeyCharRequest()
	if response.Kind == "Request" {
		m.handleRequest(response.Request)
	}
	if !isKeyCharRequest {
		m.Draw(nil, false)
	}
}

func (m *Manager) handleRequest(req proto.WindowManagerRequest) {
	var subtype proto.WindowLikeType
	var haveSubtype bool
	if focusedIndex, ok := m.getFocusedIndex(); ok {
		subtype = m.windowInfos[focusedIndex].windowLike.Subtype()
		haveSubtype = true
	}

	switch req.Kind {
	case "OpenWindow":
		if !haveSubtype || (subtype != proto.TypeTaskbar && subtype != proto.TypeStartMenu) {
			return
		}
		w, ok := m.openByName(req.WindowName)
		if !ok {
			return
		}
		m.toggleStartMenu(true)
		ideal := w.IdealDimensions(m.dimensions)
		var topLeft wmtypes.Point
		switch w.Subtype() {
		case proto.TypeStartMenu:
			topLeft = wmtypes.Point{0, m.dimensions[1] - proto.TaskbarHeight - ideal[1]}
		case proto.TypeWindow:
			topLeft = m.cfg.WindowOffset
		default:
			topLeft = wmtypes.Point{0, 0}
		}
		m.AddWindowLike(w, topLeft, &ideal)
		m.taskbarUpdateWindows()
	case "CloseStartMenu":
		if !haveSubtype || (subtype != proto.TypeTaskbar && subtype != proto.TypeStartMenu) {
			return
		}
		for i, w := range m.windowInfos {
			if w.windowLike.Subtype() == proto.TypeStartMenu {
				m.windowInfos = append(m.windowInfos[:i], m.windowInfos[i+1:]...)
				break
			}
		}
	case "Unlock":
		if !haveSubtype || subtype != proto.TypeLockScreen {
			return
		}
		m.unlock()
	case "Lock":
		if !haveSubtype || subtype != proto.TypeStartMenu {
			return
		}
		m.lock()
	case "ClipboardCopy":
		text := req.ClipboardText
		m.clipboard = &text
	case "DoKeyChar":
		m.HandleKeyChar(req.DoKeyChar)
	}
}

// openByName resolves one of the compositor-internal built-ins directly;
// anything else is delegated to the host binary's Opener (subprocess
// window-process binaries, a non-goal's worth of concrete application logic).
func (m *Manager) openByName(name string) (WindowLike, bool) {
	switch name {
	case "StartMenu":
		return NewStartMenu(m.opener), true
	case "About":
		return NewAbout(), true
	case "Help":
		return NewHelp(), true
	}
	if m.opener == nil {
		return nil, false
	}
	return m.opener.Open(name)
}
