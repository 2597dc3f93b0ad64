// Package fontcache loads per-codepoint alpha masks from disk on demand and
// caches them. Grounded on original_source/ming-wm-lib/src/fonts.rs.
package fontcache

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CharInfo is one codepoint's rasterized glyph: a row-major alpha grid, a
// vertical top-offset, and explicit width/height. All rows have length =
// Width (spec.md §3 invariant).
type CharInfo struct {
	Char      rune
	Data      [][]uint8
	TopOffset int
	Height    int
	Width     int
}

// forbidden POSIX filename characters are substituted with fixed non-ASCII
// codepoints on lookup, per spec.md §4.2.
var filenameSubstitutions = map[rune]rune{
	'/':  '\U00010603', // 𐘃-adjacent Linear A sentinel reserved for '/'
	'\\': '\U00010686',
	'.':  '\U00010605',
}

func substituteChar(c rune) rune {
	if sub, ok := filenameSubstitutions[c]; ok {
		return sub
	}
	return c
}

// missingGlyph is the last-resort 1x1 zero-alpha glyph.
func missingGlyph() CharInfo {
	return CharInfo{Char: '?', Data: [][]uint8{{0}}, TopOffset: 0, Height: 1, Width: 1}
}

// expandRunLength undoes the three in-band run-length abbreviations by
// writing out the zero fields they stand for directly, so each abbreviation
// is expanded exactly once regardless of expansion order: ",," and ";" both
// stand for two zero fields, ":" for three, per spec.md §4.2.
func expandRunLength(line string) string {
	line = strings.ReplaceAll(line, ":", ",0,0,0,")
	line = strings.ReplaceAll(line, ";", ",0,0,")
	line = strings.ReplaceAll(line, ",,", ",0,0,")
	return line
}

func parseAlphaRow(line string) []uint8 {
	fields := strings.Split(expandRunLength(line), ",")
	row := make([]uint8, len(fields))
	for i, f := range fields {
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > 255 {
			continue
		}
		row[i] = uint8(n)
	}
	return row
}

func loadGlyphFile(dir string, c rune) (CharInfo, bool) {
	c = substituteChar(c)
	path := filepath.Join(dir, string(c)+".alpha")
	contents, err := os.ReadFile(path)
	if err != nil {
		return CharInfo{}, false
	}
	lines := strings.Split(string(contents), "\n")
	if len(lines) < 1 {
		return CharInfo{}, false
	}
	topOffset, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		topOffset = 0
	}
	dataLines := lines[1:]
	// a trailing empty line from a final newline isn't a row of data.
	if len(dataLines) > 0 && dataLines[len(dataLines)-1] == "" {
		dataLines = dataLines[:len(dataLines)-1]
	}
	data := make([][]uint8, 0, len(dataLines))
	width := 0
	for _, ln := range dataLines {
		row := parseAlphaRow(ln)
		if len(row) > width {
			width = len(row)
		}
		data = append(data, row)
	}
	return CharInfo{
		Char:      c,
		Data:      data,
		TopOffset: topOffset,
		Height:    len(data),
		Width:     width,
	}, true
}

// Loader resolves a codepoint against an ordered list of font-family
// directory roots (typically executable-relative ming_bmps/<family>/).
type Loader struct {
	// BaseDir is the directory under which each family's subdirectory lives.
	BaseDir string
}

func NewLoader(baseDir string) *Loader {
	return &Loader{BaseDir: baseDir}
}

func (l *Loader) familyDir(family string) string {
	return filepath.Join(l.BaseDir, "ming_bmps", family)
}

// GetFromFonts falls through the family list on miss; if every family misses,
// returns the '?' glyph of the first family; failing that, the 1x1 fallback.
func (l *Loader) GetFromFonts(families []string, c rune) CharInfo {
	for _, fam := range families {
		if info, ok := loadGlyphFile(l.familyDir(fam), c); ok {
			return info
		}
	}
	if len(families) == 0 {
		return missingGlyph()
	}
	if info, ok := loadGlyphFile(l.familyDir(families[0]), '?'); ok {
		return info
	}
	return missingGlyph()
}

// MeasureInfo is the aggregate size of a measured text run.
type MeasureInfo struct {
	Height int
	Width  int
}

// MeasureText sums glyph widths plus spacing between glyphs (not after the
// last glyph), per spec.md §4.2.
func (l *Loader) MeasureText(families []string, text string, horizSpacing *int) MeasureInfo {
	spacing := 1
	if horizSpacing != nil {
		spacing = *horizSpacing
	}
	var height, width int
	runes := []rune(text)
	for _, c := range runes {
		info := l.GetFromFonts(families, c)
		h := info.TopOffset + info.Height
		if h > height {
			height = h
		}
		width += info.Width + spacing
	}
	if len(runes) > 0 {
		width -= spacing
	}
	return MeasureInfo{Height: height, Width: width}
}

// Cache is the bounded, generationally-evicted font-char cache: when it
// reaches MaxEntries it is fully cleared rather than LRU-evicted, since the
// workload is read-heavy with high per-draw codepoint locality (spec.md
// §4.2, §9 Open Questions).
type Cache struct {
	loader     *Loader
	entries    map[rune]CharInfo
	maxEntries int
}

func NewCache(loader *Loader, maxEntries int) *Cache {
	return &Cache{loader: loader, entries: make(map[rune]CharInfo), maxEntries: maxEntries}
}

// Get returns the cached glyph for c, loading and caching it on miss.
func (c *Cache) Get(families []string, ch rune) CharInfo {
	if cached, ok := c.entries[ch]; ok {
		return cached
	}
	got := c.loader.GetFromFonts(families, ch)
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.entries = make(map[rune]CharInfo)
	}
	c.entries[ch] = got
	return got
}

// MeasureCache is a true-LRU cache of measured text-run dimensions, distinct
// from the generational glyph Cache above: repeated measurement of the same
// window title or button label benefits from real recency eviction, where
// the glyph cache's read pattern (whatever codepoints are on screen right
// now) does not.
type MeasureCache struct {
	cache *lru.Cache[string, MeasureInfo]
}

func NewMeasureCache(size int) *MeasureCache {
	if size <= 0 {
		size = 1
	}
	c, _ := lru.New[string, MeasureInfo](size)
	return &MeasureCache{cache: c}
}

func measureKey(families []string, text string, horizSpacing *int) string {
	spacing := "d"
	if horizSpacing != nil {
		spacing = strconv.Itoa(*horizSpacing)
	}
	return strings.Join(families, "\x00") + "\x01" + spacing + "\x01" + text
}

// Measure returns the cached measurement, computing and storing it on miss.
func (m *MeasureCache) Measure(l *Loader, families []string, text string, horizSpacing *int) MeasureInfo {
	key := measureKey(families, text, horizSpacing)
	if v, ok := m.cache.Get(key); ok {
		return v
	}
	v := l.MeasureText(families, text, horizSpacing)
	m.cache.Add(key, v)
	return v
}
