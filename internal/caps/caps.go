// Package caps logs the process's effective Linux capability set before the
// compositor opens privileged devices (/dev/fb0, the touch input device).
// This is purely informational: framebuffer access is normally granted via
// group membership rather than capabilities, but surfacing the set here
// gives an operator a log line to explain a later EACCES. Grounded on
// noisetorch's capability.go (getCurrentCaps/hasCapSysResource).
package caps

import (
	"log"

	"github.com/syndtr/gocapability/capability"
)

// LogEffective loads the calling process's capability set and logs it,
// swallowing any error into a log line rather than failing the caller -
// this check is advisory, not a precondition for continuing.
func LogEffective() {
	caps, err := capability.NewPid2(0)
	if err != nil {
		log.Printf("caps: couldn't inspect self: %v", err)
		return
	}
	if err := caps.Load(); err != nil {
		log.Printf("caps: couldn't load self caps: %v", err)
		return
	}
	log.Printf("caps: effective capability set before device open: %s", caps.String())
}
