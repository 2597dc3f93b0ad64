package proto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stjet/ming-wm/internal/wmtypes"
)

func TestThemeInfoRoundTrip(t *testing.T) {
	info := GetThemeInfo(ThemeStandard)
	enc := EncodeThemeInfo(info)
	dec, err := DecodeThemeInfo(enc)
	require.NoError(t, err)
	require.Equal(t, enc, EncodeThemeInfo(dec))
}

func TestThemeInfoDecodeRejectsShortInput(t *testing.T) {
	_, err := DecodeThemeInfo("0\x1f0\x1f0:0\x1f0\x1f0")
	require.Error(t, err)
}

func TestWindowMessageResponseRoundTrip(t *testing.T) {
	cases := []WindowMessageResponse{
		RespJustRedraw(),
		RespRequest(ReqOpenWindow("a")),
		RespRequest(ReqUnlock()),
		RespRequest(ReqDoKeyChar(KeyAlt('e'))),
	}
	for _, resp := range cases {
		enc := EncodeWindowMessageResponse(resp)
		dec, err := DecodeWindowMessageResponse(enc)
		require.NoError(t, err)
		require.Equal(t, enc, EncodeWindowMessageResponse(dec))
	}
}

func TestDecodeWindowMessageResponseInvalidIsError(t *testing.T) {
	_, err := DecodeWindowMessageResponse("NotARealVariant")
	require.Error(t, err)
}

func TestDrawInstructionsRoundTrip(t *testing.T) {
	horiz := 1
	vert2 := uint8(0)
	vert3 := uint8(10)
	instructions := []DrawInstruction{
		DrawRect(wmtypes.Point{15, 24}, wmtypes.Dimensions{100, 320}, wmtypes.Color{255, 0, 128}),
		DrawText(wmtypes.Point{0, 158}, []string{"nimbus-roman", "shippori-mincho"}, "Test test 1234 testing\nmictest / mictest is this thing\non?", wmtypes.Color{12, 36, 108}, wmtypes.Color{128, 128, 128}, &horiz, nil),
		DrawGradient(wmtypes.Point{0, 500}, wmtypes.Dimensions{750, 125}, wmtypes.Color{255, 255, 255}, wmtypes.Color{0, 0, 0}, 12),
		DrawBmp(wmtypes.Point{55, 98}, "mingde", true),
		DrawBmp(wmtypes.Point{55, 98}, "wooooo", false),
		DrawCircle(wmtypes.Point{0, 1}, 19, wmtypes.Color{128, 128, 128}),
	}
	enc := EncodeDrawInstructions(instructions)
	dec, err := DecodeDrawInstructions(enc)
	require.NoError(t, err)
	require.Equal(t, enc, EncodeDrawInstructions(dec))

	instructions2 := []DrawInstruction{
		DrawRect(wmtypes.Point{0, 0}, wmtypes.Dimensions{410, 410}, wmtypes.Color{0, 0, 0}),
		DrawText(wmtypes.Point{4, 4}, []string{"nimbus-romono"}, "Mingde Terminal", wmtypes.Color{255, 255, 255}, wmtypes.Color{0, 0, 0}, new(int), &vert3),
		DrawText(wmtypes.Point{4, 34}, []string{"nimbus-romono"}, "$ a", wmtypes.Color{255, 255, 255}, wmtypes.Color{0, 0, 0}, new(int), &vert2),
	}
	enc2 := EncodeDrawInstructions(instructions2) + "\n"
	dec2, err := DecodeDrawInstructions(enc2)
	require.NoError(t, err)
	require.Equal(t, enc2[:len(enc2)-1], EncodeDrawInstructions(dec2))
}

func TestDrawInstructionsEmptyIsLiteral(t *testing.T) {
	require.Equal(t, "empty", EncodeDrawInstructions(nil))
	dec, err := DecodeDrawInstructions("empty\n")
	require.NoError(t, err)
	require.Len(t, dec, 0)
}

func TestDecodeDrawInstructionUnrecognizedTagIsError(t *testing.T) {
	_, err := DecodeDrawInstruction("Triangle/0\x1f0")
	require.Error(t, err)
}

func TestWindowLikeTypeRoundTrip(t *testing.T) {
	enc := EncodeWindowLikeType(TypeWindow)
	dec, err := DecodeWindowLikeType(enc)
	require.NoError(t, err)
	require.Equal(t, TypeWindow, dec)
}

func TestWindowMessageRoundTrip(t *testing.T) {
	cases := []WindowMessage{
		MsgInit(wmtypes.Dimensions{1000, 1001}),
		MsgKeyPress('a'),
		MsgKeyPress('/'),
		MsgKeyPress(RuneEnter),
		MsgCtrlKeyPress(';'),
		MsgShortcut(ShortcutStartMenu()),
		MsgShortcut(ShortcutMoveWindowToWorkspace(7)),
		MsgShortcut(ShortcutClipboardPaste("105/20 Azumanga")),
		MsgInfo(InfoWindowsInWorkspace([]WindowEntry{{1, "Terminal"}, {2, "Minesweeper"}, {12, "Test Test"}}, 5)),
		MsgFocus(),
		MsgUnfocus(),
		MsgFocusClick(),
		MsgChangeDimensions(wmtypes.Dimensions{999, 250}),
		MsgTouch(12, 247),
	}
	for _, wm := range cases {
		enc := EncodeWindowMessage(wm)
		dec, err := DecodeWindowMessage(enc)
		require.NoError(t, err)
		require.Equal(t, enc, EncodeWindowMessage(dec))
	}
}

func TestDecodeWindowMessageInvalidTagIsError(t *testing.T) {
	_, err := DecodeWindowMessage("Bogus/whatever")
	require.Error(t, err)
}

func TestDimensionsRoundTrip(t *testing.T) {
	enc := EncodeDimensions(wmtypes.Dimensions{420, 420})
	dec, err := DecodeDimensions(enc)
	require.NoError(t, err)
	require.Equal(t, wmtypes.Dimensions{420, 420}, dec)
}
