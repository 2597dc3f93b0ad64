package compositor

import (
	"bufio"
	"crypto/sha512"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stjet/ming-wm/internal/drawinterp"
	"github.com/stjet/ming-wm/internal/pixbuf"
	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

const passwordSalt = "salt?sorrycryptographers!1!"

// HashPassword mirrors lock_screen.rs's hasher.update(password + salt), using
// Go's stdlib crypto/sha512 in place of the original's blake2 crate (spec
// decision: fixed-salt hash identity matters, the algorithm doesn't).
func HashPassword(password string) [64]byte {
	return sha512.Sum512([]byte(password + passwordSalt))
}

// CategoryWindow is one entry the start menu lists under a category: Title is
// shown on the button, Name is passed back to Opener.Open on click.
type CategoryWindow struct {
	Title string
	Name  string
}

// Opener spawns a named subprocess window and enumerates what is installed.
// The compositor itself only knows about the built-in window-likes
// (StartMenu, About, Help, the chrome); anything else is delegated to the
// host binary, which knows the install layout for window-process binaries.
type Opener interface {
	Open(name string) (WindowLike, bool)
	Windows(category string) []CategoryWindow
}

// Manager is the window manager / compositor: it owns the window stack, the
// focused id, the active workspace and theme, and drives the redraw pass.
type Manager struct {
	buf       *pixbuf.Buffer
	interp    *drawinterp.Interpreter
	writeFrame func([]byte) error

	opener Opener
	cfg    Config

	rotate    bool
	grayscale bool

	idCount         int
	windowInfos     []*windowInfo
	osk             *windowInfo
	dimensions      wmtypes.Dimensions
	theme           proto.Theme
	focusedID       int
	Locked          bool
	currentWorkspace uint8
	clipboard       *string
	passwordHash    [64]byte
	configDir       string
}

// New constructs a Manager, locking the screen and loading the initial theme
// immediately, matching WindowManager::new.
func New(buf *pixbuf.Buffer, interp *drawinterp.Interpreter, writeFrame func([]byte) error, dims wmtypes.Dimensions, rotate, grayscale bool, opener Opener, cfg Config, passwordHash [64]byte, configDir string) *Manager {
	m := &Manager{
		buf:        buf,
		interp:     interp,
		writeFrame: writeFrame,
		opener:     opener,
		cfg:        cfg,
		rotate:     rotate,
		grayscale:  grayscale,
		dimensions: dims,
		theme:      proto.ThemeStandard,
		passwordHash: passwordHash,
		configDir:  configDir,
	}
	m.lock()
	m.changeTheme()
	return m
}

// AddWindowLike inserts a window into the stack (or the osk slot), assigning
// it the next id and sending it its Init message.
func (m *Manager) AddWindowLike(w WindowLike, topLeft wmtypes.Point, dims *wmtypes.Dimensions) {
	subtype := w.Subtype()
	d := w.IdealDimensions(m.dimensions)
	if dims != nil {
		d = *dims
	}
	m.idCount++
	id := m.idCount
	w.HandleMessage(proto.MsgInit(d))
	full := d
	if w.Subtype() == proto.TypeWindow {
		full = wmtypes.Dimensions{d[0], d[1] + windowTopHeight}
	}
	var ws *uint8
	if subtype == proto.TypeWindow {
		ws = workspaceOf(m.currentWorkspace)
	}
	info := &windowInfo{id: id, windowLike: w, topLeft: topLeft, dimensions: full, workspace: ws}
	if subtype == proto.TypeOnscreenKeyboard {
		m.osk = info
	} else {
		m.focusedID = id
		m.windowInfos = append(m.windowInfos, info)
	}
}

func (m *Manager) getFocusedIndex() (int, bool) {
	for i, w := range m.windowInfos {
		if w.id == m.focusedID {
			return i, true
		}
	}
	return 0, false
}

// getWindowsInWorkspace returns windows visible in the current workspace;
// includeNonWindow controls whether taskbar/indicator/background/start-menu
// (workspace == nil) entries are included.
func (m *Manager) getWindowsInWorkspace(includeNonWindow bool) []*windowInfo {
	var out []*windowInfo
	for _, w := range m.windowInfos {
		if w.workspace == nil {
			if includeNonWindow {
				out = append(out, w)
			}
			continue
		}
		if sameWorkspace(w.workspace, m.currentWorkspace) {
			out = append(out, w)
		}
	}
	return out
}

func (m *Manager) lock() {
	m.Locked = true
	m.windowInfos = nil
	m.AddWindowLike(NewLockScreen(m.passwordHash), wmtypes.Point{0, 0}, nil)
}

func (m *Manager) unlock() {
	m.Locked = false
	m.windowInfos = nil
	m.AddWindowLike(NewDesktopBackground(), wmtypes.Point{0, proto.IndicatorHeight}, nil)
	m.AddWindowLike(NewTaskbar(), wmtypes.Point{0, m.dimensions[1] - proto.TaskbarHeight}, nil)
	m.AddWindowLike(NewWorkspaceIndicator(), wmtypes.Point{0, 0}, nil)
}

// changeTheme re-reads the per-workspace theme file ($XDG_CONFIG_HOME/ming-wm/themes,
// one theme name per line, indexed by workspace) and applies the line for
// the current workspace, defaulting to Standard on any miss.
func (m *Manager) changeTheme() {
	m.theme = proto.ThemeStandard
	f, err := os.Open(filepath.Join(m.configDir, "ming-wm", "themes"))
	if err != nil {
		return
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if int(m.currentWorkspace) < len(lines) {
		if t, ok := proto.ParseTheme(strings.TrimSpace(lines[m.currentWorkspace])); ok {
			m.theme = t
		}
	}
}

// toggleStartMenu mirrors WindowManager::toggle_start_menu: offOnly=true only
// closes an already-open start menu; offOnly=false opens/toggles it via the
// taskbar's start button.
func (m *Manager) toggleStartMenu(offOnly bool) proto.WindowMessageResponse {
	startMenuExists := false
	for _, w := range m.windowInfos {
		if w.windowLike.Subtype() == proto.TypeStartMenu {
			startMenuExists = true
			break
		}
	}
	if !((startMenuExists && offOnly) || !offOnly) {
		return proto.RespDoNothing()
	}
	taskbarIndex := -1
	for i, w := range m.windowInfos {
		if w.windowLike.Subtype() == proto.TypeTaskbar {
			taskbarIndex = i
			break
		}
	}
	if taskbarIndex == -1 {
		return proto.RespDoNothing()
	}
	m.focusedID = m.windowInfos[taskbarIndex].id
	if offOnly {
		m.handleRequest(proto.ReqCloseStartMenu())
	}
	return m.windowInfos[taskbarIndex].windowLike.HandleMessage(proto.MsgShortcut(proto.ShortcutStartMenu()))
}

func (m *Manager) taskbarUpdateWindows() {
	taskbarIndex := -1
	for i, w := range m.windowInfos {
		if w.windowLike.Subtype() == proto.TypeTaskbar {
			taskbarIndex = i
			break
		}
	}
	if taskbarIndex == -1 {
		return
	}
	relevant := make([]proto.WindowEntry, 0)
	for _, w := range m.getWindowsInWorkspace(false) {
		relevant = append(relevant, proto.WindowEntry{ID: w.id, Title: w.windowLike.Title()})
	}
	sort.Slice(relevant, func(i, j int) bool { return relevant[i].ID < relevant[j].ID })
	m.windowInfos[taskbarIndex].windowLike.HandleMessage(proto.MsgInfo(proto.InfoWindowsInWorkspace(relevant, m.focusedID)))
}

func (m *Manager) moveIndexToTop(index int) {
	w := m.windowInfos[index]
	m.windowInfos = append(append(m.windowInfos[:index:index], m.windowInfos[index+1:]...), w)
}
