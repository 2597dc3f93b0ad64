package compositor

import (
	"unicode"

	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

var startMenuCategories = []string{"About", "Utils", "Games", "Editing", "Files", "Internet", "Misc", "Help", "Logout"}

type startMenuItem struct {
	kind  string // "category", "window", "back"
	title string
	name  string // window name to open, for kind=="window"/"category" (About/Help)
}

// StartMenu lists categories, then the installed windows within a category,
// with keyboard navigation (j/k to move focus, Enter to activate, a letter
// key to jump to the next item starting with it). Grounded on
// essential/start_menu.rs; the original's generic HighlightButton component
// is inlined as plain draw instructions since there is only ever one button
// shape drawn here.
type StartMenu struct {
	dimensions wmtypes.Dimensions
	opener     Opener
	category   string // "" while showing the category list
	items      []startMenuItem
	focusIndex int
	yEach      int
}

func NewStartMenu(opener Opener) *StartMenu {
	return &StartMenu{opener: opener}
}

func (s *StartMenu) setCategories() {
	s.category = ""
	s.items = nil
	for _, c := range startMenuCategories {
		s.items = append(s.items, startMenuItem{kind: "category", title: c, name: c})
	}
	s.focusIndex = 0
}

func (s *StartMenu) setWindowsInCategory(category string) {
	s.category = category
	s.items = []startMenuItem{{kind: "back", title: "Back"}}
	if s.opener != nil {
		for _, w := range s.opener.Windows(category) {
			s.items = append(s.items, startMenuItem{kind: "window", title: w.Title, name: w.Name})
		}
	}
	s.focusIndex = 0
}

func (s *StartMenu) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	switch msg.Kind {
	case "Init":
		s.dimensions = msg.Dims
		s.yEach = (s.dimensions[1] - 1) / len(startMenuCategories)
		s.setCategories()
		return proto.RespJustRedraw()
	case "KeyPress":
		return s.handleKeyPress(msg.Key)
	}
	return proto.RespDoNothing()
}

func (s *StartMenu) handleKeyPress(key rune) proto.WindowMessageResponse {
	if len(s.items) == 0 {
		return proto.RespDoNothing()
	}
	switch {
	case key == 'k':
		if s.focusIndex == 0 {
			s.focusIndex = len(s.items) - 1
		} else {
			s.focusIndex--
		}
		return proto.RespJustRedraw()
	case key == 'j':
		s.focusIndex = (s.focusIndex + 1) % len(s.items)
		return proto.RespJustRedraw()
	case proto.IsEnter(key):
		return s.activate(s.items[s.focusIndex])
	default:
		lower := unicode.ToLower(key)
		for i := 1; i <= len(s.items); i++ {
			idx := (s.focusIndex + i) % len(s.items)
			if len(s.items[idx].title) > 0 && unicode.ToLower(rune(s.items[idx].title[0])) == lower {
				s.focusIndex = idx
				return proto.RespJustRedraw()
			}
		}
		return proto.RespDoNothing()
	}
}

func (s *StartMenu) activate(item startMenuItem) proto.WindowMessageResponse {
	switch item.kind {
	case "category":
		switch item.name {
		case "Logout":
			return proto.RespRequest(proto.ReqLock())
		case "About", "Help":
			return proto.RespRequest(proto.ReqOpenWindow(item.name))
		default:
			s.setWindowsInCategory(item.name)
			return proto.RespJustRedraw()
		}
	case "window":
		return proto.RespRequest(proto.ReqOpenWindow(item.name))
	case "back":
		s.setCategories()
		return proto.RespJustRedraw()
	}
	return proto.RespDoNothing()
}

func (s *StartMenu) Draw(theme proto.ThemeInfo) []proto.DrawInstruction {
	instructions := []proto.DrawInstruction{
		proto.DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{s.dimensions[0], 1}, theme.BorderLeftTop),
		proto.DrawRect(wmtypes.Point{s.dimensions[0] - 1, 0}, wmtypes.Dimensions{1, s.dimensions[1]}, theme.BorderRightBottom),
		proto.DrawRect(wmtypes.Point{0, 1}, wmtypes.Dimensions{s.dimensions[0] - 1, s.dimensions[1] - 1}, theme.Background),
		proto.DrawBmp(wmtypes.Point{2, 2}, "mingde", false),
		proto.DrawGradient(wmtypes.Point{2, 42}, wmtypes.Dimensions{40, s.dimensions[1] - 30}, wmtypes.Color{255, 201, 14}, wmtypes.Color{225, 219, 77}, 15),
	}
	families := []string{"nimbus-roman"}
	yEach := s.yEach
	if yEach == 0 {
		yEach = 1
	}
	for i, item := range s.items {
		topLeft := wmtypes.Point{42, yEach*i + 1}
		size := wmtypes.Dimensions{s.dimensions[0] - 42 - 1, yEach}
		bg, fg := theme.Background, theme.Text
		if i == s.focusIndex {
			bg, fg = theme.AltBackground, theme.AltText
		}
		instructions = append(instructions,
			proto.DrawRect(topLeft, size, bg),
			proto.DrawText(wmtypes.Point{topLeft[0] + 4, topLeft[1] + 4}, families, item.title, fg, bg, nil, nil),
		)
	}
	return instructions
}

func (s *StartMenu) Title() string   { return "" }
func (s *StartMenu) Resizable() bool { return false }
func (s *StartMenu) Subtype() proto.WindowLikeType { return proto.TypeStartMenu }
func (s *StartMenu) IdealDimensions(wmtypes.Dimensions) wmtypes.Dimensions {
	return wmtypes.Dimensions{175, 250}
}
