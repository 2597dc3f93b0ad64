//go:build linux

// Package fb mmaps a Linux framebuffer device and exposes a single
// write_frame call, grounded on original_source/linux/src/fb.rs's
// Framebuffer (ioctl FBIOGET_V/FSCREENINFO, then mmap PROT_READ|PROT_WRITE,
// MAP_SHARED). Linux-only, since /dev/fb0 and these ioctls are Linux kernel
// ABI (spec.md §1's "framebuffer ioctl wiring beyond the capability set" is
// an explicit non-goal — this package is the minimal wiring that remains).
package fb

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/fb.h
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type bitfield struct {
	Offset, Length, MsbRight uint32
}

// varScreenInfo mirrors struct fb_var_screeninfo.
type varScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp bitfield
	Nonstd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	Pixclock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HsyncLen, VsyncLen       uint32
	Sync, Vmode              uint32
	Rotate                   uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

// fixScreenInfo mirrors struct fb_fix_screeninfo.
type fixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Framebuffer is an opened, mmapped /dev/fb-style device.
type Framebuffer struct {
	file *os.File
	mem  []byte
	Var  varScreenInfo
	Fix  fixScreenInfo
}

// Open opens path (typically "/dev/fb0"), reads its screen info via ioctl and
// mmaps its backing memory read-write shared.
func Open(path string) (*Framebuffer, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("fb: open %s: %w", path, err)
	}

	var vi varScreenInfo
	if err := ioctl(file.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&vi)); err != nil {
		file.Close()
		return nil, fmt.Errorf("fb: FBIOGET_VSCREENINFO: %w", err)
	}
	var fi fixScreenInfo
	if err := ioctl(file.Fd(), fbioGetFScreenInfo, unsafe.Pointer(&fi)); err != nil {
		file.Close()
		return nil, fmt.Errorf("fb: FBIOGET_FSCREENINFO: %w", err)
	}

	size := int(vi.YResVirtual) * int(fi.LineLength)
	mem, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("fb: mmap: %w", err)
	}

	return &Framebuffer{file: file, mem: mem, Var: vi, Fix: fi}, nil
}

func ioctl(fd uintptr, cmd uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, cmd, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// WriteFrame copies frame directly into the mmapped region, matching the
// original's ptr::copy_nonoverlapping.
func (f *Framebuffer) WriteFrame(frame []byte) error {
	n := copy(f.mem, frame)
	if n < len(frame) {
		return fmt.Errorf("fb: frame (%d bytes) larger than mapped region (%d bytes)", len(frame), len(f.mem))
	}
	return nil
}

// Dimensions returns the active (xres, yres) resolution.
func (f *Framebuffer) Dimensions() (int, int) {
	return int(f.Var.XRes), int(f.Var.YRes)
}

// BytesPerPixel returns the configured pixel depth in bytes.
func (f *Framebuffer) BytesPerPixel() int {
	return int(f.Var.BitsPerPixel) / 8
}

// Close unmaps the framebuffer memory and closes the underlying file,
// mirroring the original's Drop impl (munmap on scope exit).
func (f *Framebuffer) Close() error {
	err := unix.Munmap(f.mem)
	if cerr := f.file.Close(); err == nil {
		err = cerr
	}
	return err
}
