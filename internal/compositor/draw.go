package compositor

import (
	"github.com/stjet/ming-wm/internal/pixbuf"
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// trueTopLeft offsets a window-local instruction's y by WINDOW_TOP_HEIGHT for
// Window subtypes, since a window's content never draws into its title bar.
func trueTopLeft(p wmtypes.Point, isWindow bool) wmtypes.Point {
	if isWindow {
		return wmtypes.Point{p[0], p[1] + windowTopHeight}
	}
	return p
}

func offsetInstruction(instr proto.DrawInstruction, isWindow bool) proto.DrawInstruction {
	switch instr.Kind {
	case "Rect", "Gradient", "Text":
		instr.Point = trueTopLeft(instr.Point, isWindow)
	case "Circle":
		instr.Point = trueTopLeft(instr.Point, isWindow)
	case "Bmp":
		instr.Point = trueTopLeft(instr.Point, isWindow)
	}
	return instr
}

// Draw is the damage-aware redraw pass: when redrawIDs is non-empty, only
// those windows (plus the onscreen keyboard, which always needs a fresh
// composite since it floats above everything) are redrawn; useSavedBuffer
// restores the last full-frame snapshot first so a moving window doesn't
// require redrawing everything underneath it. Grounded on
// window_manager.rs's WindowManager::draw.
func (m *Manager) Draw(redrawIDs []int, useSavedBuffer bool) {
	theme := proto.GetThemeInfo(m.theme)

	if useSavedBuffer {
		m.buf.RestoreBuffer()
	}

	allInWorkspace := m.getWindowsInWorkspace(true)
	if m.osk != nil {
		allInWorkspace = append(allInWorkspace, m.osk)
	}
	total := len(allInWorkspace)

	var toDraw []*windowInfo
	for _, w := range allInWorkspace {
		if len(redrawIDs) > 0 {
			if contains(redrawIDs, w.id) || w.windowLike.Subtype() == proto.TypeOnscreenKeyboard {
				toDraw = append(toDraw, w)
			}
		} else {
			toDraw = append(toDraw, w)
		}
	}

	maxIndex := total - 1
	if len(redrawIDs) > 0 {
		maxIndex = len(redrawIDs) - 1
	}

	info := m.buf.Info()
	bytesPerPixel := info.BytesPerPixel

	for wIndex, windowInfo := range toDraw {
		windowDimensions := windowInfo.dimensions
		if windowInfo.fullscreen {
			windowDimensions = wmtypes.Dimensions{m.dimensions[0], m.dimensions[1] - proto.TaskbarHeight - proto.IndicatorHeight}
		}
		instructions := windowInfo.windowLike.Draw(theme)
		isWindow := windowInfo.windowLike.Subtype() == proto.TypeWindow

		if isWindow {
			if wIndex == maxIndex && !useSavedBuffer && len(redrawIDs) == 0 {
				m.buf.SaveBuffer()
			}
			offset := make([]proto.DrawInstruction, len(instructions))
			for i, instr := range instructions {
				offset[i] = offsetInstruction(instr, true)
			}
			chrome := []proto.DrawInstruction{
				proto.DrawRect(wmtypes.Point{0, 0}, windowDimensions, theme.Background),
			}
			chrome = append(chrome, offset...)
			chrome = append(chrome,
				proto.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{windowDimensions[0], 1}, theme.BorderLeftTop),
				proto.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{1, windowDimensions[1]}, theme.BorderLeftTop),
				proto.DrawRect(wmtypes.Point{1, 1}, wmtypes.Dimensions{windowDimensions[0] - 2, windowTopHeight - 3}, theme.Top),
				proto.DrawText(wmtypes.Point{4, 4}, []string{"nimbus-roman"}, windowInfo.windowLike.Title(), theme.TopText, theme.Top, nil, nil),
				proto.DrawRect(wmtypes.Point{1, windowTopHeight - 2}, wmtypes.Dimensions{windowDimensions[0] - 2, 2}, theme.BorderLeftTop),
				proto.DrawRect(wmtypes.Point{windowDimensions[0] - 1, 1}, wmtypes.Dimensions{1, windowDimensions[1] - 1}, theme.BorderRightBottom),
				proto.DrawRect(wmtypes.Point{1, windowDimensions[1] - 1}, wmtypes.Dimensions{windowDimensions[0] - 1, 1}, theme.BorderRightBottom),
			)
			instructions = chrome
		}

		windowBuf := pixbuf.New(m.grayscale)
		windowBuf.Init(pixbuf.Info{
			ByteLen:       windowDimensions[0] * windowDimensions[1] * bytesPerPixel,
			Width:         windowDimensions[0],
			Height:        windowDimensions[1],
			BytesPerPixel: bytesPerPixel,
			Stride:        windowDimensions[0],
		})
		clip := windowDimensions
		m.interp.RunAll(windowBuf, instructions, &clip)
		m.buf.DrawBuffer(windowInfo.topLeft, windowDimensions[1], windowDimensions[0]*bytesPerPixel, windowBuf.Bytes())
	}

	var frame []byte
	if m.rotate {
		frame = m.buf.TransposedBuffer()
	} else {
		frame = m.buf.Bytes()
	}
	if m.writeFrame != nil {
		_ = m.writeFrame(frame)
	}
}
