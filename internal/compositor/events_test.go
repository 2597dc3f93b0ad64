package compositor

import (
	"testing"

	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// fakeWindow is a resizable, titled WindowLike stand-in used to exercise
// move/resize/fullscreen/half-width shortcut arithmetic without depending on
// a real window-process subprocess.
type fakeWindow struct {
	title          string
	resizable      bool
	lastDimensions wmtypes.Dimensions
	ideal          wmtypes.Dimensions
}

func (f *fakeWindow) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	if msg.Kind == "ChangeDimensions" {
		f.lastDimensions = msg.Dims
	}
	return proto.RespDoNothing()
}
func (f *fakeWindow) Draw(proto.ThemeInfo) []proto.DrawInstruction { return nil }
func (f *fakeWindow) Title() string                                { return f.title }
func (f *fakeWindow) Resizable() bool                              { return f.resizable }
func (f *fakeWindow) Subtype() proto.WindowLikeType                { return proto.TypeWindow }
func (f *fakeWindow) IdealDimensions(wmtypes.Dimensions) wmtypes.Dimensions {
	return f.ideal
}

func addFakeWindow(t *testing.T, m *Manager, title string, resizable bool, topLeft, dims wmtypes.Dimensions) *windowInfo {
	t.Helper()
	fw := &fakeWindow{title: title, resizable: resizable, ideal: dims}
	m.AddWindowLike(fw, wmtypes.Point{topLeft[0], topLeft[1]}, &dims)
	return m.windowInfos[len(m.windowInfos)-1]
}

func TestMoveWindowLeftSnapsAtThreshold(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	info := addFakeWindow(t, m, "W", true, wmtypes.Dimensions{10, 100}, wmtypes.Dimensions{200, 100})

	shortcut := proto.ShortcutMoveWindow(proto.DirLeft)
	if !m.moveWindow(info, shortcut) {
		t.Fatal("expected the move to report a change")
	}
	if info.topLeft[0] != 0 {
		t.Fatalf("expected x < moveDelta to snap to 0, got %d", info.topLeft[0])
	}
	if m.moveWindow(info, shortcut) {
		t.Fatal("expected no further change once already at x=0")
	}
}

func TestMoveWindowRightClampsToMax(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	info := addFakeWindow(t, m, "W", true, wmtypes.Dimensions{0, 100}, wmtypes.Dimensions{200, 100})
	maxX := m.dimensions[0] - info.dimensions[0]

	shortcut := proto.ShortcutMoveWindowToEdge(proto.DirRight)
	if !m.moveWindow(info, shortcut) {
		t.Fatal("expected move-to-edge to report a change")
	}
	if info.topLeft[0] != maxX {
		t.Fatalf("expected MoveWindowToEdge Right to jump straight to maxX=%d, got %d", maxX, info.topLeft[0])
	}
	if m.moveWindow(info, shortcut) {
		t.Fatal("expected no change once already at maxX")
	}
}

func TestResizeWindowRightRespectsMaxWidthAndSendsChangeDimensions(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	fw := &fakeWindow{title: "W", resizable: true, ideal: wmtypes.Dimensions{790, 100}}
	m.AddWindowLike(fw, wmtypes.Point{0, 0}, &wmtypes.Dimensions{790, 100})
	info := m.windowInfos[len(m.windowInfos)-1]

	if !m.resizeWindow(info, proto.DirRight) {
		t.Fatal("expected the resize to report a change")
	}
	maxWidth := m.dimensions[0] - info.topLeft[0]
	if info.dimensions[0] != maxWidth {
		t.Fatalf("expected width to clamp to maxWidth=%d, got %d", maxWidth, info.dimensions[0])
	}
	if fw.lastDimensions[0] != maxWidth {
		t.Fatalf("expected ChangeDimensions to carry the clamped width, got %v", fw.lastDimensions)
	}
}

func TestResizeWindowLeftRespectsMinSize(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	info := addFakeWindow(t, m, "W", true, wmtypes.Dimensions{0, 0}, m.cfg.MinWindowSize)

	if !m.resizeWindow(info, proto.DirLeft) {
		t.Fatal("expected the resize to report a change when shrinking toward the minimum")
	}
	if info.dimensions[0] != m.cfg.MinWindowSize[0] {
		t.Fatalf("expected width to clamp at MinWindowSize=%d, got %d", m.cfg.MinWindowSize[0], info.dimensions[0])
	}
}

func TestCycleFocusSkipsNonWindowAndWrapsAround(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	first := addFakeWindow(t, m, "First", false, wmtypes.Dimensions{0, 0}, wmtypes.Dimensions{100, 100})
	second := addFakeWindow(t, m, "Second", false, wmtypes.Dimensions{0, 0}, wmtypes.Dimensions{100, 100})
	m.focusedID = first.id

	resp := m.cycleFocus(false)
	if resp.Kind != "JustRedraw" || m.focusedID != second.id {
		t.Fatalf("expected focus to move to Second, got focusedID=%d resp=%+v", m.focusedID, resp)
	}
	// cycling again should wrap back to first, skipping Taskbar/DesktopBackground/WorkspaceIndicator.
	resp = m.cycleFocus(false)
	if resp.Kind != "JustRedraw" || m.focusedID != first.id {
		t.Fatalf("expected focus to wrap to First, got focusedID=%d resp=%+v", m.focusedID, resp)
	}
}

func TestToggleFullscreenRequiresResizable(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	addFakeWindow(t, m, "W", false, wmtypes.Dimensions{10, 10}, wmtypes.Dimensions{200, 100})
	focusedIndex, _ := m.getFocusedIndex()

	resp, redrawIDs := m.toggleFullscreen(focusedIndex)
	if resp.Kind != "DoNothing" || redrawIDs != nil {
		t.Fatalf("expected a non-resizable window to reject fullscreen, got resp=%+v redrawIDs=%v", resp, redrawIDs)
	}
}

func TestToggleFullscreenExpandsAndRestores(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	info := addFakeWindow(t, m, "W", true, wmtypes.Dimensions{10, 10}, wmtypes.Dimensions{200, 100})
	original := info.dimensions
	focusedIndex, _ := m.getFocusedIndex()

	resp, redrawIDs := m.toggleFullscreen(focusedIndex)
	if resp.Kind != "JustRedraw" || len(redrawIDs) != 1 {
		t.Fatalf("expected fullscreen-on to JustRedraw with the window's id, got %+v %v", resp, redrawIDs)
	}
	if !info.fullscreen {
		t.Fatal("expected fullscreen flag to be set")
	}
	if info.topLeft != (wmtypes.Point{0, proto.IndicatorHeight}) {
		t.Fatalf("expected fullscreen to reposition to [0, IndicatorHeight], got %v", info.topLeft)
	}

	resp, _ = m.toggleFullscreen(focusedIndex)
	if resp.Kind != "JustRedraw" || info.fullscreen {
		t.Fatalf("expected fullscreen to toggle back off, got resp=%+v fullscreen=%v", resp, info.fullscreen)
	}
	if info.dimensions != original {
		t.Fatalf("expected dimensions to be restored to %v, got %v", original, info.dimensions)
	}
}

func TestHandleAltShortcutIgnoredWhenLocked(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	// manager starts Locked; an Alt shortcut should be a no-op.
	resp, redrawIDs, useSaved := m.handleAltShortcut('s')
	if resp.Kind != "DoNothing" || redrawIDs != nil || useSaved {
		t.Fatalf("expected shortcuts to be ignored while locked, got resp=%+v", resp)
	}
}

func TestSwitchWorkspaceUpdatesCurrentWorkspace(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	resp, _, _ := m.handleAltShortcut('2')
	if resp.Kind != "JustRedraw" {
		t.Fatalf("expected switching workspace to JustRedraw, got %+v", resp)
	}
	if m.currentWorkspace != 1 {
		t.Fatalf("expected currentWorkspace to become 1 (0-indexed from key '2'), got %d", m.currentWorkspace)
	}
}

func TestQuitWindowRemovesFocusedWindow(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	before := len(m.windowInfos)
	addFakeWindow(t, m, "W", false, wmtypes.Dimensions{0, 0}, wmtypes.Dimensions{100, 100})
	resp, _, _ := m.handleAltShortcut('q')
	if resp.Kind != "JustRedraw" {
		t.Fatalf("expected quit to JustRedraw, got %+v", resp)
	}
	if len(m.windowInfos) != before {
		t.Fatalf("expected the focused window to be removed, stack length %d want %d", len(m.windowInfos), before)
	}
}
