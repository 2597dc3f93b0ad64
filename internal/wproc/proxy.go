// Package wproc runs a window's logic in a child process and speaks the
// compositor's line-delimited stdio protocol to it. Grounded on
// original_source/src/proxy_window_like.rs, adapted from that file's RON
// encoding to this module's text codec (internal/proto).
package wproc

import (
	"bufio"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// ChildProxy is a WindowLike backed by a subprocess. Every method is
// synchronous: write one line to the child's stdin, block for one line back.
// Any failure (write error, EOF, decode error) falls through to the same
// safe default the child would produce if it had not crashed, so a dying
// window process degrades instead of taking the compositor down with it.
type ChildProxy struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	scanner *bufio.Scanner
}

// New spawns cmd with piped stdin/stdout and a discarded stderr — per
// spec.md's rule that a window process's own diagnostic output is never read
// by the compositor.
func New(cmd *exec.Cmd) (*ChildProxy, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &ChildProxy{cmd: cmd, stdin: stdin, scanner: bufio.NewScanner(stdout)}, nil
}

// call writes line to the child's stdin and returns the next line of its
// stdout, or ("", false) on any I/O failure.
func (p *ChildProxy) call(line string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.stdin, line+"\n"); err != nil {
		return "", false
	}
	if !p.scanner.Scan() {
		return "", false
	}
	return p.scanner.Text(), true
}

func (p *ChildProxy) HandleMessage(m proto.WindowMessage) proto.WindowMessageResponse {
	out, ok := p.call("handle_message " + proto.EncodeWindowMessage(m))
	if !ok {
		return proto.RespJustRedraw()
	}
	resp, err := proto.DecodeWindowMessageResponse(out)
	if err != nil {
		return proto.RespJustRedraw()
	}
	return resp
}

func (p *ChildProxy) Draw(theme proto.ThemeInfo) []proto.DrawInstruction {
	out, ok := p.call("draw " + proto.EncodeThemeInfo(theme))
	if !ok {
		return nil
	}
	instructions, err := proto.DecodeDrawInstructions(out)
	if err != nil {
		return nil
	}
	return instructions
}

func (p *ChildProxy) Title() string {
	out, ok := p.call("title")
	if !ok {
		return ""
	}
	return strings.TrimRight(out, "\n")
}

func (p *ChildProxy) Resizable() bool {
	out, ok := p.call("resizable")
	if !ok {
		return false
	}
	return strings.TrimSpace(out) == "true"
}

func (p *ChildProxy) Subtype() proto.WindowLikeType {
	out, ok := p.call("subtype")
	if !ok {
		return proto.TypeWindow
	}
	t, err := proto.DecodeWindowLikeType(out)
	if err != nil {
		return proto.TypeWindow
	}
	return t
}

func (p *ChildProxy) IdealDimensions(d wmtypes.Dimensions) wmtypes.Dimensions {
	out, ok := p.call("ideal_dimensions " + proto.EncodeDimensions(d))
	if !ok {
		return wmtypes.Dimensions{420, 420}
	}
	dims, err := proto.DecodeDimensions(out)
	if err != nil {
		return wmtypes.Dimensions{420, 420}
	}
	return dims
}

// Close kills the child process, matching ProxyWindowLike's Drop impl.
func (p *ChildProxy) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd.Process.Kill()
}
