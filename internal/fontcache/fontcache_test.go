package fontcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeGlyph(t *testing.T, dir, family string, c rune, contents string) {
	t.Helper()
	famDir := filepath.Join(dir, "ming_bmps", family)
	require.NoError(t, os.MkdirAll(famDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(famDir, string(c)+".alpha"), []byte(contents), 0o644))
}

func TestExpandRunLengthAbbreviations(t *testing.T) {
	require.Equal(t, "0,0,0,255", expandRunLength("0;255"))
	require.Equal(t, "0,0,0,0,255", expandRunLength("0:255"))
	require.Equal(t, "0,0,0,255", expandRunLength("0,,255"))
}

func TestLoadGlyphFileParsesTopOffsetAndRows(t *testing.T) {
	dir := t.TempDir()
	writeGlyph(t, dir, "default", 'A', "2\n0,255,0\n255,255,255\n")
	l := NewLoader(dir)
	info := l.GetFromFonts([]string{"default"}, 'A')
	require.Equal(t, 2, info.TopOffset)
	require.Equal(t, 2, info.Height)
	require.Equal(t, 3, info.Width)
	require.Equal(t, []uint8{0, 255, 0}, info.Data[0])
}

func TestGetFromFontsFallsThroughFamilyList(t *testing.T) {
	dir := t.TempDir()
	writeGlyph(t, dir, "fallback", 'B', "0\n100\n")
	l := NewLoader(dir)
	info := l.GetFromFonts([]string{"missing-family", "fallback"}, 'B')
	require.Equal(t, []uint8{100}, info.Data[0])
}

func TestGetFromFontsMissingReturnsQuestionMarkGlyph(t *testing.T) {
	dir := t.TempDir()
	writeGlyph(t, dir, "default", '?', "0\n9\n")
	l := NewLoader(dir)
	info := l.GetFromFonts([]string{"default"}, 'あ')
	require.Equal(t, []uint8{9}, info.Data[0])
}

func TestGetFromFontsNoFamiliesReturnsMissingGlyph(t *testing.T) {
	l := NewLoader(t.TempDir())
	info := l.GetFromFonts(nil, 'x')
	require.Equal(t, 1, info.Width)
	require.Equal(t, 1, info.Height)
	require.Equal(t, uint8(0), info.Data[0][0])
}

func TestForbiddenFilenameCharsAreSubstituted(t *testing.T) {
	dir := t.TempDir()
	writeGlyph(t, dir, "default", substituteChar('/'), "0\n1\n")
	l := NewLoader(dir)
	info := l.GetFromFonts([]string{"default"}, '/')
	require.Equal(t, []uint8{1}, info.Data[0])
}

func TestMeasureTextSumsWidthsWithSpacingBetweenNotAfter(t *testing.T) {
	dir := t.TempDir()
	writeGlyph(t, dir, "default", 'a', "0\n1,2,3\n")
	writeGlyph(t, dir, "default", 'b', "0\n4,5\n")
	l := NewLoader(dir)
	info := l.MeasureText([]string{"default"}, "ab", nil)
	require.Equal(t, 3+1+2, info.Width)
}

func TestMeasureTextEmptyStringIsZero(t *testing.T) {
	l := NewLoader(t.TempDir())
	info := l.MeasureText([]string{"default"}, "", nil)
	require.Equal(t, 0, info.Width)
	require.Equal(t, 0, info.Height)
}

func TestCacheEvictsAllEntriesAtMax(t *testing.T) {
	dir := t.TempDir()
	writeGlyph(t, dir, "default", 'a', "0\n1\n")
	writeGlyph(t, dir, "default", 'b', "0\n2\n")
	l := NewLoader(dir)
	c := NewCache(l, 1)
	c.Get([]string{"default"}, 'a')
	require.Len(t, c.entries, 1)
	c.Get([]string{"default"}, 'b')
	require.Len(t, c.entries, 1)
	_, stillA := c.entries['a']
	require.False(t, stillA)
}

func TestMeasureCacheReturnsSameValueOnRepeat(t *testing.T) {
	dir := t.TempDir()
	writeGlyph(t, dir, "default", 'a', "0\n1,2\n")
	l := NewLoader(dir)
	mc := NewMeasureCache(4)
	first := mc.Measure(l, []string{"default"}, "a", nil)
	second := mc.Measure(l, []string{"default"}, "a", nil)
	require.Equal(t, first, second)
}
