package compositor

import (
	"testing"

	"github.com/stjet/ming-wm/internal/drawinterp"
	"github.com/stjet/ming-wm/internal/fontcache"
	"github.com/stjet/ming-wm/internal/pixbuf"
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// testOpener is a minimal Opener stub for compositor tests.
type testOpener struct {
	windows map[string][]CategoryWindow
	opened  []string
}

func (o *testOpener) Open(name string) (WindowLike, bool) {
	o.opened = append(o.opened, name)
	return nil, false
}

func (o *testOpener) Windows(category string) []CategoryWindow {
	return o.windows[category]
}

func newTestManager(t *testing.T, dims wmtypes.Dimensions) (*Manager, *testOpener) {
	t.Helper()
	buf := pixbuf.New(false)
	buf.Init(pixbuf.Info{
		ByteLen:       dims[0] * dims[1] * 4,
		Width:         dims[0],
		Height:        dims[1],
		BytesPerPixel: 4,
		Stride:        dims[0],
	})
	interp := drawinterp.New(fontcache.NewCache(fontcache.NewLoader(t.TempDir()), 64), t.TempDir())
	opener := &testOpener{windows: map[string][]CategoryWindow{}}
	cfg := DefaultConfig()
	m := New(buf, interp, func([]byte) error { return nil }, dims, false, false, opener, cfg, HashPassword("hunter2"), t.TempDir())
	return m, opener
}

func TestNewLocksScreen(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	if !m.Locked {
		t.Fatal("expected Manager to start locked")
	}
	if len(m.windowInfos) != 1 || m.windowInfos[0].windowLike.Subtype() != proto.TypeLockScreen {
		t.Fatalf("expected only a LockScreen in the stack, got %+v", m.windowInfos)
	}
}

func TestUnlockWithWrongPasswordStaysLocked(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	ls := m.windowInfos[0].windowLike.(*LockScreen)
	for _, c := range "wrongpass" {
		ls.HandleMessage(proto.MsgKeyPress(c))
	}
	resp := ls.HandleMessage(proto.MsgKeyPress(proto.RuneEnter))
	if resp.Kind != "JustRedraw" {
		t.Fatalf("expected JustRedraw on wrong password, got %+v", resp)
	}
	if len(ls.inputPassword) != 0 {
		t.Fatal("expected input to be cleared after a failed attempt")
	}
	if m.Locked != true {
		t.Fatal("manager itself should still report locked (handleRequest never ran)")
	}
}

func TestUnlockWithCorrectPasswordRequestsUnlock(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	ls := m.windowInfos[0].windowLike.(*LockScreen)
	for _, c := range "hunter2" {
		ls.HandleMessage(proto.MsgKeyPress(c))
	}
	resp := ls.HandleMessage(proto.MsgKeyPress(proto.RuneEnter))
	if resp.Kind != "Request" || resp.Request.Kind != "Unlock" {
		t.Fatalf("expected an Unlock request, got %+v", resp)
	}
	m.handleRequest(resp.Request)
	if m.Locked {
		t.Fatal("expected manager to unlock")
	}
	var subtypes []proto.WindowLikeType
	for _, w := range m.windowInfos {
		subtypes = append(subtypes, w.windowLike.Subtype())
	}
	want := []proto.WindowLikeType{proto.TypeDesktopBackground, proto.TypeTaskbar, proto.TypeWorkspaceIndicator}
	if len(subtypes) != len(want) {
		t.Fatalf("expected %v, got %v", want, subtypes)
	}
	for i := range want {
		if subtypes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, subtypes)
		}
	}
}

func unlock(t *testing.T, m *Manager) {
	t.Helper()
	ls := m.windowInfos[0].windowLike.(*LockScreen)
	resp := ls.HandleMessage(proto.MsgKeyPress(proto.RuneEnter))
	_ = resp
	m.unlock()
}

func TestAddWindowLikeAssignsIncreasingIDsAndFocuses(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	before := m.idCount
	m.AddWindowLike(NewAbout(), wmtypes.Point{10, 10}, nil)
	if m.idCount != before+1 {
		t.Fatalf("expected idCount to increase by 1, got %d -> %d", before, m.idCount)
	}
	last := m.windowInfos[len(m.windowInfos)-1]
	if last.id != m.idCount || m.focusedID != last.id {
		t.Fatalf("expected newly added window to be focused, got id=%d focusedID=%d", last.id, m.focusedID)
	}
	if last.windowLike.Subtype() != proto.TypeWindow {
		t.Fatalf("expected About to be a Window subtype, got %v", last.windowLike.Subtype())
	}
	if last.dimensions[1] != 600 {
		t.Fatalf("expected About's full dimensions to add windowTopHeight, got %v", last.dimensions)
	}
}

func TestOnscreenKeyboardGoesToOskSlotNotStack(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	stackLenBefore := len(m.windowInfos)
	m.HandleTouch(10, 10)
	if m.osk == nil {
		t.Fatal("expected touching the top-left corner to open the onscreen keyboard")
	}
	if len(m.windowInfos) != stackLenBefore {
		t.Fatalf("expected the osk to not be appended to windowInfos, stack grew from %d to %d", stackLenBefore, len(m.windowInfos))
	}
	m.HandleTouch(10, 10)
	if m.osk != nil {
		t.Fatal("expected a second corner touch to close the onscreen keyboard")
	}
}

func TestGetWindowsInWorkspaceFiltersByWorkspace(t *testing.T) {
	m, _ := newTestManager(t, wmtypes.Dimensions{800, 600})
	unlock(t, m)
	m.AddWindowLike(NewAbout(), wmtypes.Point{0, 0}, nil)
	m.currentWorkspace = 1
	inWorkspace1 := m.getWindowsInWorkspace(false)
	if len(inWorkspace1) != 0 {
		t.Fatalf("expected no Window-subtype entries visible in workspace 1, got %d", len(inWorkspace1))
	}
	withChrome := m.getWindowsInWorkspace(true)
	if len(withChrome) != 3 { // DesktopBackground + Taskbar + WorkspaceIndicator, all nil-workspace
		t.Fatalf("expected non-Window entries to remain visible across workspaces, got %d", len(withChrome))
	}
}
