// Package inputio reads raw keyboard bytes and touchscreen events and
// decodes them into proto.KeyChar / touch coordinates. Grounded on
// original_source/linux/src/{keys,raw,input}.rs and
// original_source/src/bin/wm.rs's key_to_char mapping.
package inputio

import (
	"context"
	"io"
	"time"

	"golang.org/x/term"

	"github.com/stjet/ming-wm/internal/proto"
)

// Event is one decoded input occurrence fed to the compositor's event loop.
type Event struct {
	KeyChar  *proto.KeyChar
	TouchX   int
	TouchY   int
	IsTouch  bool
}

var alphabet = []rune("abcdefghijklmnopqrstuvwxyz")

// rawKey mirrors linux/src/keys.rs's Key enum before translation to a
// KeyChar, so the Esc-sequence peek logic reads the same either way.
type rawKey struct {
	kind byte // 'c' char, 'a' alt, 'k' ctrl, 'b' backspace, 'e' esc, 'u'/'d'/'l'/'r' arrows, 'o' other
	char rune
}

// decodeRawKey consumes bytes from next (blocking) and tryNext (non-blocking,
// ok=false on nothing pending) to reproduce keys.rs's escape-sequence peek:
// ESC followed immediately by '[' then a direction byte is an arrow key; ESC
// followed immediately by any other byte is Alt+<byte>; ESC with nothing
// pending is a bare Escape.
func decodeRawKey(next func() (byte, bool), tryNext func() (byte, bool)) (rawKey, bool) {
	first, ok := next()
	if !ok {
		return rawKey{}, false
	}
	switch {
	case first >= 1 && first <= 26:
		if first == 9 {
			return rawKey{kind: 'c', char: '\t'}, true
		}
		if first == 13 {
			return rawKey{kind: 'c', char: '\n'}, true
		}
		return rawKey{kind: 'k', char: alphabet[first-1]}, true
	case first == 27:
		if b, ok := tryNext(); ok {
			if b == '[' {
				if n, ok := next(); ok {
					switch n {
					case 'A':
						return rawKey{kind: 'u'}, true
					case 'B':
						return rawKey{kind: 'd'}, true
					case 'C':
						return rawKey{kind: 'r'}, true
					case 'D':
						return rawKey{kind: 'l'}, true
					default:
						return rawKey{kind: 'o', char: rune(n)}, true
					}
				}
				return rawKey{kind: 'e'}, true
			}
			return rawKey{kind: 'a', char: rune(b)}, true
		}
		return rawKey{kind: 'e'}, true
	case first == 127:
		return rawKey{kind: 'b'}, true
	default:
		return rawKey{kind: 'c', char: rune(first)}, true
	}
}

// keyToChar mirrors wm.rs's key_to_char, substituting Linear A sentinels for
// the non-printable keys. Returns ok=false for keys the compositor ignores
// (rawKey kind 'o').
func keyToChar(k rawKey) (proto.KeyChar, bool) {
	switch k.kind {
	case 'c':
		if k.char == '\n' {
			return proto.KeyPress(proto.RuneEnter), true
		}
		return proto.KeyPress(k.char), true
	case 'a':
		return proto.KeyAlt(k.char), true
	case 'k':
		return proto.KeyCtrl(k.char), true
	case 'b':
		return proto.KeyPress(proto.RuneBackspace), true
	case 'e':
		return proto.KeyPress(proto.RuneEscape), true
	case 'u':
		return proto.KeyPress(proto.RuneArrowUp), true
	case 'd':
		return proto.KeyPress(proto.RuneArrowDown), true
	case 'l':
		return proto.KeyPress(proto.RuneArrowLeft), true
	case 'r':
		return proto.KeyPress(proto.RuneArrowRight), true
	}
	return proto.KeyChar{}, false
}

// byteFeed turns a blocking io.Reader into next()/tryNext() functions backed
// by a buffered channel, reproducing the Rust implementation's background
// reader thread + channel receiver split.
type byteFeed struct {
	ch chan byte
}

func newByteFeed(r io.Reader) *byteFeed {
	f := &byteFeed{ch: make(chan byte, 256)}
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				f.ch <- buf[0]
			}
			if err != nil {
				close(f.ch)
				return
			}
		}
	}()
	return f
}

func (f *byteFeed) next() (byte, bool) {
	b, ok := <-f.ch
	return b, ok
}

func (f *byteFeed) tryNext() (byte, bool) {
	select {
	case b, ok := <-f.ch:
		return b, ok
	default:
		return 0, false
	}
}

// AltExitChar is the Alt+E shortcut wm.rs special-cases to mean "exit the
// host process entirely", bypassing the normal event channel.
const AltExitChar = 'E'

// RunKeyboard enters raw tty mode on fd, decodes bytes into Events, and sends
// them to out until ctx is cancelled or the reader hits EOF. onExit fires
// instead of emitting an event when Alt+E is pressed, matching wm.rs.
func RunKeyboard(ctx context.Context, fd int, r io.Reader, out chan<- Event, onExit func()) error {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	feed := newByteFeed(r)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		rk, ok := decodeRawKey(feed.next, feed.tryNext)
		if !ok {
			return nil
		}
		kc, ok := keyToChar(rk)
		if !ok {
			continue
		}
		if kc.Kind == 'A' && kc.Char == AltExitChar {
			if onExit != nil {
				onExit()
			}
			continue
		}
		select {
		case out <- Event{KeyChar: &kc}:
		case <-ctx.Done():
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}
