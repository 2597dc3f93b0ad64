package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stjet/ming-wm/internal/wmtypes"
)

func TestLoadFallsBackToDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	conf := Load(dir)
	if conf != Default() {
		t.Fatalf("expected missing config to fall back to Default(), got %+v", conf)
	}
}

func TestLoadReadsToml(t *testing.T) {
	dir := t.TempDir()
	content := "FontCacheMaxEntries = 10\nDefaultFontFamily = \"times-new-roman\"\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	conf := Load(dir)
	if conf.FontCacheMaxEntries != 10 || conf.DefaultFontFamily != "times-new-roman" {
		t.Fatalf("expected overridden fields, got %+v", conf)
	}
}

func TestLoadBackgroundParsesHexColor(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, backgroundFileName), []byte("1#ff8000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	bg := LoadBackground(dir)
	if !bg.Reverse || bg.Color == nil || *bg.Color != (wmtypes.Color{0xff, 0x80, 0x00}) {
		t.Fatalf("expected a reversed orange background, got %+v", bg)
	}
}

func TestLoadBackgroundParsesPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, backgroundFileName), []byte("0/tmp/bg.bmp\n"), 0644); err != nil {
		t.Fatal(err)
	}
	bg := LoadBackground(dir)
	if bg.Reverse || bg.Path != "/tmp/bg.bmp" {
		t.Fatalf("expected a non-reversed path background, got %+v", bg)
	}
}
