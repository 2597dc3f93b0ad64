package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stjet/ming-wm/internal/wmtypes"
)

const backgroundFileName = "desktop-background"

// Background is the parsed $XDG_CONFIG_HOME/ming-wm/desktop-background file:
// a single line whose first character is '0'/'1' for whether the background
// image's channels are reversed (BGR vs RGB), followed by either a bitmap
// path or a "#RRGGBB" flat color.
type Background struct {
	Reverse bool
	Path    string
	Color   *wmtypes.Color
}

// LoadBackground reads the desktop-background file out of dir; any miss or
// malformed line silently falls back to the plain teal flat color
// DesktopBackground already draws by default.
func LoadBackground(dir string) Background {
	data, err := os.ReadFile(filepath.Join(dir, backgroundFileName))
	if err != nil {
		return Background{}
	}
	line := strings.TrimSpace(string(data))
	if len(line) < 2 {
		return Background{}
	}
	reverse := line[0] == '1'
	rest := line[1:]
	if strings.HasPrefix(rest, "#") {
		if c, ok := parseHexColor(rest); ok {
			return Background{Reverse: reverse, Color: &c}
		}
		return Background{}
	}
	return Background{Reverse: reverse, Path: rest}
}

func parseHexColor(s string) (wmtypes.Color, bool) {
	var c wmtypes.Color
	if len(s) != 7 || s[0] != '#' {
		return c, false
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(s[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return c, false
		}
		c[i] = uint8(v)
	}
	return c, true
}
