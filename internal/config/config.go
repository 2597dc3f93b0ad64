// Package config reads ming-wm's runtime tunables: the TOML config file, the
// per-workspace theme list, and the desktop background setting. Grounded on
// noisetorch's config.go (exists/xdgOrFallback/toml.DecodeFile shape).
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/stjet/ming-wm/internal/wmtypes"
)

const configFileName = "config.toml"

// Config mirrors spec.md §6's tunables plus the font-cache sizes fontcache
// needs at construction time.
type Config struct {
	FontCacheMaxEntries int
	MeasureCacheSize    int
	WindowOffset        wmtypes.Point
	MinWindowSize       wmtypes.Dimensions
	DefaultFontFamily   string
}

// Default mirrors the original's hardcoded [42, 42] window-open offset and
// [100, WINDOW_TOP_HEIGHT+5] resize floor, plus reasonable cache sizes.
func Default() Config {
	return Config{
		FontCacheMaxEntries: 512,
		MeasureCacheSize:    256,
		WindowOffset:        wmtypes.Point{42, 42},
		MinWindowSize:       wmtypes.Dimensions{100, 31},
		DefaultFontFamily:   "nimbus-roman",
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			return dir
		}
	}
	return fallback
}

// Dir returns $XDG_CONFIG_HOME/ming-wm, falling back to ~/.config/ming-wm.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "ming-wm")
}

// Load reads config.toml out of dir, falling back to Default() silently on
// any absence or parse error: config is recovered locally, not fatal,
// mirroring spec.md §7's "external collaborator" treatment of config files.
func Load(dir string) Config {
	conf := Default()
	f := filepath.Join(dir, configFileName)
	ok, err := exists(f)
	if err != nil || !ok {
		return conf
	}
	if _, err := toml.DecodeFile(f, &conf); err != nil {
		log.Printf("ming-wm: couldn't parse %s, using defaults: %v", f, err)
		return Default()
	}
	return conf
}
