package inputio

import (
	"context"
	"encoding/binary"
	"time"

	"golang.org/x/sys/unix"

	"github.com/stjet/ming-wm/internal/wmtypes"
)

// linuxInputEvent mirrors the kernel's struct input_event on a 64-bit system:
// two 8-byte timeval fields followed by type/code (u16) and value (s32).
// Grounded on original_source/linux/src/input.rs's InputEvent/EventType.
type linuxInputEvent struct {
	Sec, Usec int64
	Type      uint16
	Code      uint16
	Value     int32
}

const linuxInputEventSize = 24

const (
	evAbs  = 3
	absX   = 0
	absY   = 1
)

func parseInputEvent(buf []byte) (linuxInputEvent, bool) {
	if len(buf) < linuxInputEventSize {
		return linuxInputEvent{}, false
	}
	var ev linuxInputEvent
	ev.Sec = int64(binary.LittleEndian.Uint64(buf[0:8]))
	ev.Usec = int64(binary.LittleEndian.Uint64(buf[8:16]))
	ev.Type = binary.LittleEndian.Uint16(buf[16:18])
	ev.Code = binary.LittleEndian.Uint16(buf[18:20])
	ev.Value = int32(binary.LittleEndian.Uint32(buf[20:24]))
	return ev, true
}

// rotateTouch applies the rotate-mode inverse coordinate mapping: screen
// dimensions swap under 90° rotation, so the event stream's (x, y) is
// remapped to (screenWidth - y, x), per wm.rs's touch thread.
func rotateTouch(screenDims wmtypes.Dimensions, x, y int) (int, int) {
	return screenDims[0] - y, x
}

// RunTouch opens devicePath, polls it for EV_ABS events, and sends completed
// (x, y) touch coordinate pairs to out. When rotate is set, coordinates are
// remapped via rotateTouch before being sent. A device open failure returns
// immediately — touch input is optional (the "touch" CLI token).
func RunTouch(ctx context.Context, devicePath string, screenDims wmtypes.Dimensions, rotate bool, out chan<- Event) error {
	fd, err := unix.Open(devicePath, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	var x, y *int
	buf := make([]byte, linuxInputEventSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(pfd, -1)
		if err != nil || n <= 0 {
			continue
		}
		nRead, err := unix.Read(fd, buf)
		if err != nil || nRead <= 0 {
			continue
		}
		ev, ok := parseInputEvent(buf[:nRead])
		if !ok || ev.Type != evAbs || (ev.Code != absX && ev.Code != absY) {
			time.Sleep(time.Millisecond)
			continue
		}
		v := int(ev.Value)
		if ev.Code == absX {
			x = &v
		} else {
			y = &v
		}
		if x != nil && y != nil {
			x2, y2 := *x, *y
			if rotate {
				x2, y2 = rotateTouch(screenDims, *x, *y)
			}
			select {
			case out <- Event{IsTouch: true, TouchX: x2, TouchY: y2}:
			case <-ctx.Done():
				return nil
			}
			x, y = nil, nil
		}
		time.Sleep(time.Millisecond)
	}
}
