// Package compositor implements the window manager state machine: window
// stacking, workspaces, focus, the Alt-shortcut table, and the damage-aware
// redraw pass that turns WindowLike.Draw output into pixbuf writes. Grounded
// on original_source/src/window_manager.rs's WindowManager.
package compositor

import (
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// WindowLike is anything the compositor can stack, focus and redraw: a
// subprocess window (wproc.ChildProxy) or one of the built-in window-likes
// in this package.
type WindowLike interface {
	HandleMessage(proto.WindowMessage) proto.WindowMessageResponse
	Draw(proto.ThemeInfo) []proto.DrawInstruction
	Title() string
	Resizable() bool
	Subtype() proto.WindowLikeType
	IdealDimensions(wmtypes.Dimensions) wmtypes.Dimensions
}

// windowInfo is one entry in the compositor's z-ordered window stack.
type windowInfo struct {
	id         int
	windowLike WindowLike
	topLeft    wmtypes.Point
	dimensions wmtypes.Dimensions
	// workspace is nil for "all workspaces" (taskbar, indicator, background,
	// lock screen, start menu); otherwise the workspace a Window belongs to.
	workspace  *uint8
	fullscreen bool
}

func workspaceOf(w uint8) *uint8 { return &w }

func sameWorkspace(w *uint8, current uint8) bool {
	return w != nil && *w == current
}

const (
	windowTopHeight = 26
)

// Config carries the tunables the compositor's host binary reads out of
// ming-wm's config.toml (internal/config), so constructors don't hardcode
// magic numbers that are meant to be operator-adjustable.
type Config struct {
	WindowOffset  wmtypes.Point
	MinWindowSize wmtypes.Dimensions
}

// DefaultConfig mirrors the original's hardcoded [42, 42] open offset and
// [100, WINDOW_TOP_HEIGHT+5] minimum resize floor.
func DefaultConfig() Config {
	return Config{
		WindowOffset:  wmtypes.Point{42, 42},
		MinWindowSize: wmtypes.Dimensions{100, windowTopHeight + 5},
	}
}
