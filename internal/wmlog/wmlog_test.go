package wmlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXdgOrFallbackPrefersExistingXDGDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	require.Equal(t, dir, xdgOrFallback("XDG_DATA_HOME", "/fallback"))
}

func TestXdgOrFallbackUsesFallbackWhenUnset(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	require.Equal(t, "/fallback", xdgOrFallback("XDG_DATA_HOME", "/fallback"))
}

func TestXdgOrFallbackUsesFallbackWhenXDGDirMissing(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "does-not-exist"))
	require.Equal(t, "/fallback", xdgOrFallback("XDG_DATA_HOME", "/fallback"))
}

func TestSetupVerboseNeverTouchesDisk(t *testing.T) {
	close, err := Setup(true)
	require.NoError(t, err)
	close()
}

func TestSetupNonVerboseCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	close, err := Setup(false)
	require.NoError(t, err)
	defer close()
	_, err = os.Stat(filepath.Join(dir, "ming-wm", logFileName))
	require.NoError(t, err)
}

// Guard itself (the recover + os.Exit(1) path) isn't exercised here: it would
// kill the test binary. It's only meaningful as a `defer`red call at a real
// process boundary (main, or a spawned window process's main); see DESIGN.md.
