// Command ming-wm is the framebuffer window manager's entry point: it opens
// /dev/fb0 (or the overridden path), wires up the compositor with the font
// cache and draw interpreter, spawns the keyboard and touch readers, and
// pumps their events into the compositor until Alt+E exits an unlocked
// session. Grounded on original_source/src/bin/wm.rs's init/main.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/stjet/ming-wm/internal/apps"
	"github.com/stjet/ming-wm/internal/caps"
	"github.com/stjet/ming-wm/internal/compositor"
	"github.com/stjet/ming-wm/internal/config"
	"github.com/stjet/ming-wm/internal/drawinterp"
	"github.com/stjet/ming-wm/internal/fb"
	"github.com/stjet/ming-wm/internal/fontcache"
	"github.com/stjet/ming-wm/internal/inputio"
	"github.com/stjet/ming-wm/internal/pixbuf"
	"github.com/stjet/ming-wm/internal/wmlog"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

const (
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"

	defaultFBPath    = "/dev/fb0"
	defaultTouchPath = "/dev/input/by-path/first-touchscreen"
)

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func main() {
	verbose := flag.Bool("v", false, "Verbose output (print logs to stderr instead of the log file)")
	fbPath := flag.String("fb", defaultFBPath, "framebuffer device path")
	touchPath := flag.String("touch-device", defaultTouchPath, "touchscreen input device path")
	flag.Parse()
	// rotate/grayscale/greyscale/touch are positional tokens, not flags, per
	// wm.rs's args.contains(...) style.
	positional := flag.Args()

	closeLog, err := wmlog.Setup(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	defer wmlog.Guard()

	// ming_bmps/ and ming_docs/ are installed next to the binary, mirroring
	// original_source's dirs::exe_dir asset resolution; chdir so every
	// relative asset path (font glyphs, bitmaps, About/Help markdown)
	// resolves the same way regardless of the caller's working directory.
	if exe, err := os.Executable(); err == nil {
		_ = os.Chdir(filepath.Dir(exe))
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "ming-wm: stdout is not a tty, refusing to start")
		os.Exit(1)
	}

	rotate := containsArg(positional, "rotate")
	grayscale := containsArg(positional, "grayscale") || containsArg(positional, "greyscale")
	touch := containsArg(positional, "touch")

	passwordHash := compositor.HashPassword(os.Getenv("MING_WM_PASSWORD"))

	caps.LogEffective()
	fbDev, err := fb.Open(*fbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer fbDev.Close()

	width, height := fbDev.Dimensions()
	if rotate {
		width, height = height, width
	}
	dims := wmtypes.Dimensions{width, height}

	cfgDir := config.Dir()
	conf := config.Load(cfgDir)

	buf := pixbuf.New(grayscale)
	buf.Init(pixbuf.Info{
		ByteLen:       width * height * fbDev.BytesPerPixel(),
		Width:         width,
		Height:        height,
		BytesPerPixel: fbDev.BytesPerPixel(),
		Stride:        width,
	})

	// "." here is the executable's own directory (see the chdir above);
	// Loader joins "ming_bmps/<family>" itself, so the base is just ".".
	loader := fontcache.NewLoader(".")
	glyphs := fontcache.NewCache(loader, conf.FontCacheMaxEntries)
	interp := drawinterp.New(glyphs, "ming_bmps")

	opener := apps.Load(filepath.Join(cfgDir, "apps.toml"))

	mgr := compositor.New(
		buf, interp, fbDev.WriteFrame, dims, rotate, grayscale, opener,
		compositor.Config{WindowOffset: conf.WindowOffset, MinWindowSize: conf.MinWindowSize},
		passwordHash, filepath.Dir(cfgDir),
	)

	fmt.Print(clearAll, hideCursor)
	mgr.Draw(nil, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan inputio.Event, 64)
	clearRequests := make(chan struct{}, 1)

	onExit := func() {
		if mgr.Locked {
			return
		}
		fmt.Print(showCursor)
		os.Exit(0)
	}

	go func() {
		defer wmlog.Guard()
		if err := inputio.RunKeyboard(ctx, int(os.Stdin.Fd()), os.Stdin, events, onExit); err != nil {
			fmt.Fprintln(os.Stderr, "ming-wm: keyboard reader:", err)
		}
	}()

	if touch {
		go func() {
			defer wmlog.Guard()
			if err := inputio.RunTouch(ctx, *touchPath, dims, rotate, events); err != nil {
				fmt.Fprintln(os.Stderr, "ming-wm: touch reader:", err)
			}
		}()
		// opens the onscreen keyboard immediately on touch builds, matching
		// wm.rs's unconditional Touch(1, 1) right after spawning the reader.
		mgr.HandleTouch(1, 1)
	}

	for {
		select {
		case <-clearRequests:
			fmt.Print(clearAll)
		case ev := <-events:
			if ev.IsTouch {
				// top-right corner: a manual screen clear, per wm.rs's comment
				// that some framebuffers don't repaint cleanly without one.
				if ev.TouchX > dims[0]-100 && ev.TouchY < 100 {
					select {
					case clearRequests <- struct{}{}:
					default:
					}
				}
				mgr.HandleTouch(ev.TouchX, ev.TouchY)
			} else if ev.KeyChar != nil {
				mgr.HandleKeyChar(*ev.KeyChar)
			}
		}
	}
}
