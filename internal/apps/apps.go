// Package apps resolves the window-process binaries installed alongside
// ming-wm into the compositor's Opener interface. Actual application logic
// (terminal, editor, file explorer, ...) is an explicit non-goal; this
// package only knows how to find and exec whatever is installed, the same
// division spec.md draws between the compositor and its subprocess windows.
package apps

import (
	"os/exec"

	"github.com/BurntSushi/toml"

	"github.com/stjet/ming-wm/internal/compositor"
	"github.com/stjet/ming-wm/internal/wproc"
)

// Entry is one row of apps.toml: a start-menu listing pointing at an
// installed window-process binary.
type Entry struct {
	Name     string // passed to Opener.Open, matched against WindowManagerRequest's OpenWindow name
	Title    string // shown on the start menu button
	Category string
	Command  string
	Args     []string
}

type manifest struct {
	Apps []Entry
}

// Registry implements compositor.Opener over a static list of installed
// window-process binaries, read once from apps.toml at startup.
type Registry struct {
	byName map[string]Entry
	byCat  map[string][]Entry
}

// Load reads $XDG_CONFIG_HOME/ming-wm/apps.toml. A missing or malformed file
// yields an empty registry (no installed windows beyond the built-ins),
// matching config.Load's "absence recovers to a usable default" rule.
func Load(path string) *Registry {
	r := &Registry{byName: map[string]Entry{}, byCat: map[string][]Entry{}}
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return r
	}
	for _, e := range m.Apps {
		r.byName[e.Name] = e
		r.byCat[e.Category] = append(r.byCat[e.Category], e)
	}
	return r
}

// Open spawns the named entry's command as a child process window, per
// wproc.New's convention (piped stdin/stdout, discarded stderr).
func (r *Registry) Open(name string) (compositor.WindowLike, bool) {
	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	proxy, err := wproc.New(exec.Command(e.Command, e.Args...))
	if err != nil {
		return nil, false
	}
	return proxy, true
}

// Windows lists the installed entries under category for the start menu.
func (r *Registry) Windows(category string) []compositor.CategoryWindow {
	entries := r.byCat[category]
	out := make([]compositor.CategoryWindow, 0, len(entries))
	for _, e := range entries {
		out = append(out, compositor.CategoryWindow{Title: e.Title, Name: e.Name})
	}
	return out
}
