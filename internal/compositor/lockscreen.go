package compositor

import (
	"crypto/sha512"
	"strings"
	"sync/atomic"

	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// possibleLockScreenLines mirrors lock_screen.rs's possible_lines: two sets of
// three placeholder lines, one picked per LockScreen construction. The
// original picks pseudo-randomly off the wall clock; this picks off a
// per-process counter instead, since the compositor's core never depends on
// real time (see DESIGN.md).
var possibleLockScreenLines = [2][3]string{
	{
		"\"He took about forty pounds,\" the old man said aloud.",
		"He took my harpoon too and all the rope, he thought, and now my fish bleeds again and there will be others.",
		"He did not like to look at the fish anymore since it had been mutilated.",
	},
	{
		"The bulldozer outside the kitchen window was quite a big one.",
		"\"Yellow,\" he thought, and stomped off back to his bedroom to get dressed.",
		"He stared at it.",
	},
}

var lockScreenCounter uint64

// LockScreen covers the whole screen and accepts a typed password, comparing
// its salted hash against a fixed value injected at construction time.
// Grounded on essential/lock_screen.rs.
type LockScreen struct {
	dimensions    wmtypes.Dimensions
	inputPassword []rune
	passwordHash  [64]byte
	lines         [3]string
}

func NewLockScreen(passwordHash [64]byte) *LockScreen {
	index := atomic.AddUint64(&lockScreenCounter, 1) % uint64(len(possibleLockScreenLines))
	return &LockScreen{passwordHash: passwordHash, lines: possibleLockScreenLines[index]}
}

func (l *LockScreen) HandleMessage(msg proto.WindowMessage) proto.WindowMessageResponse {
	switch msg.Kind {
	case "Init":
		l.dimensions = msg.Dims
		return proto.RespJustRedraw()
	case "KeyPress":
		switch {
		case proto.IsEnter(msg.Key):
			if sha512.Sum512([]byte(string(l.inputPassword)+passwordSalt)) == l.passwordHash {
				return proto.RespRequest(proto.ReqUnlock())
			}
			l.inputPassword = nil
			return proto.RespJustRedraw()
		case proto.IsBackspace(msg.Key):
			if len(l.inputPassword) > 0 {
				l.inputPassword = l.inputPassword[:len(l.inputPassword)-1]
			}
			return proto.RespJustRedraw()
		case proto.IsRegular(msg.Key):
			l.inputPassword = append(l.inputPassword, msg.Key)
			return proto.RespJustRedraw()
		default:
			return proto.RespDoNothing()
		}
	}
	return proto.RespDoNothing()
}

func (l *LockScreen) Draw(proto.ThemeInfo) []proto.DrawInstruction {
	white := wmtypes.Color{255, 255, 255}
	black := wmtypes.Color{0, 0, 0}
	families := []string{"nimbus-roman"}
	return []proto.DrawInstruction{
		proto.DrawRect(wmtypes.Point{0, 0}, l.dimensions, black),
		proto.DrawText(wmtypes.Point{4, 4}, families, l.lines[0], white, black, nil, nil),
		proto.DrawText(wmtypes.Point{4, 4 + 16}, families, l.lines[1], white, black, nil, nil),
		proto.DrawText(wmtypes.Point{4, 4 + 16*2}, families, l.lines[2], white, black, nil, nil),
		proto.DrawText(wmtypes.Point{4, 4 + 16*3}, families, "Password: ", white, black, nil, nil),
		proto.DrawText(wmtypes.Point{80, 4 + 16*3}, families, strings.Repeat("*", len(l.inputPassword)), white, black, nil, nil),
	}
}

func (l *LockScreen) Title() string                { return "" }
func (l *LockScreen) Resizable() bool              { return false }
func (l *LockScreen) Subtype() proto.WindowLikeType { return proto.TypeLockScreen }
func (l *LockScreen) IdealDimensions(d wmtypes.Dimensions) wmtypes.Dimensions { return d }
