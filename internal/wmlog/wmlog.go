// Package wmlog sets up ming-wm's process-wide logger and a panic guard that
// records the crash site before the process exits. Grounded on noisetorch's
// log.SetOutput(os.Stderr/io.Discard) toggle in cli.go and main.go, and on
// original_source/src/ipc.rs's panic::set_hook.
package wmlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
)

const logFileName = "logs.txt"

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" && exists(dir) {
		return dir
	}
	return fallback
}

// DataDir returns $XDG_DATA_HOME/ming-wm, falling back to ~/.local/share/ming-wm.
func DataDir() string {
	return filepath.Join(xdgOrFallback("XDG_DATA_HOME", filepath.Join(os.Getenv("HOME"), ".local", "share")), "ming-wm")
}

// Setup points the standard logger at the log file under DataDir, or at
// stderr when verbose is true (the -v flag), mirroring noisetorch's
// SetOutput(os.Stderr)/SetOutput(io.Discard) split.
func Setup(verbose bool) (close func(), err error) {
	if verbose {
		log.SetOutput(os.Stderr)
		return func() {}, nil
	}

	dir := DataDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("wmlog: couldn't create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("wmlog: couldn't open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}

// Guard recovers a panic in the calling goroutine, logs "file:line: cause"
// (as best runtime/debug can report it) and re-exits the process non-zero,
// rather than letting the panic crash silently off a detached terminal.
// Call as `defer wmlog.Guard()` at the top of main and of each spawned
// window-process subprocess's main.
func Guard() {
	if r := recover(); r != nil {
		log.Printf("panic: %v\n%s", r, debug.Stack())
		os.Exit(1)
	}
}
