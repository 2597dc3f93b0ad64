package inputio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stjet/ming-wm/internal/proto"
)

func feedFrom(bytes []byte) (next func() (byte, bool), tryNext func() (byte, bool)) {
	i := 0
	next = func() (byte, bool) {
		if i >= len(bytes) {
			return 0, false
		}
		b := bytes[i]
		i++
		return b, true
	}
	tryNext = func() (byte, bool) {
		if i >= len(bytes) {
			return 0, false
		}
		b := bytes[i]
		i++
		return b, true
	}
	return
}

func TestDecodeRawKeyCtrlRange(t *testing.T) {
	next, tryNext := feedFrom([]byte{3}) // Ctrl+C
	rk, ok := decodeRawKey(next, tryNext)
	require.True(t, ok)
	require.Equal(t, byte('k'), rk.kind)
	require.Equal(t, 'c', rk.char)
}

func TestDecodeRawKeyTabAndEnterExceptions(t *testing.T) {
	next, tryNext := feedFrom([]byte{9})
	rk, _ := decodeRawKey(next, tryNext)
	require.Equal(t, byte('c'), rk.kind)
	require.Equal(t, '\t', rk.char)

	next, tryNext = feedFrom([]byte{13})
	rk, _ = decodeRawKey(next, tryNext)
	require.Equal(t, '\n', rk.char)
}

func TestDecodeRawKeyArrowSequence(t *testing.T) {
	next, tryNext := feedFrom([]byte{27, '[', 'A'})
	rk, ok := decodeRawKey(next, tryNext)
	require.True(t, ok)
	require.Equal(t, byte('u'), rk.kind)
}

func TestDecodeRawKeyAltChar(t *testing.T) {
	next, tryNext := feedFrom([]byte{27, 'e'})
	rk, ok := decodeRawKey(next, tryNext)
	require.True(t, ok)
	require.Equal(t, byte('a'), rk.kind)
	require.Equal(t, 'e', rk.char)
}

func TestDecodeRawKeyBareEscape(t *testing.T) {
	next, tryNext := feedFrom([]byte{27})
	rk, ok := decodeRawKey(next, tryNext)
	require.True(t, ok)
	require.Equal(t, byte('e'), rk.kind)
}

func TestDecodeRawKeyBackspace(t *testing.T) {
	next, tryNext := feedFrom([]byte{127})
	rk, _ := decodeRawKey(next, tryNext)
	require.Equal(t, byte('b'), rk.kind)
}

func TestKeyToCharMapsToLinearASentinels(t *testing.T) {
	kc, ok := keyToChar(rawKey{kind: 'e'})
	require.True(t, ok)
	require.Equal(t, proto.KeyPress(proto.RuneEscape), kc)

	kc, ok = keyToChar(rawKey{kind: 'c', char: '\n'})
	require.True(t, ok)
	require.Equal(t, proto.KeyPress(proto.RuneEnter), kc)
}

func TestKeyToCharIgnoresOtherKind(t *testing.T) {
	_, ok := keyToChar(rawKey{kind: 'o', char: 'x'})
	require.False(t, ok)
}
