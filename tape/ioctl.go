//go:build linux

// Package tape wraps the ioctl surface of a SCSI tape device file: tape
// positioning, writing, drive configuration, and status queries. It has no
// interaction with the dedup core — it exists purely as a collaborator for
// operators who write dedup output to tape.
package tape

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Request encoding follows the same scheme the kernel's asm-generic
// ioctl.h (and the BSD mtio.h this driver originally targeted) uses:
// direction/size/type/number packed into a single word.
const (
	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	iocNrShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	mtMagic = 'm'
)

func ioc(dir, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (mtMagic << iocTypeShift) | (nr << iocNrShift) | (size << iocSizeShift)
}

func iowr(nr uintptr, size uintptr) uintptr { return ioc(iocRead|iocWrite, nr, size) }
func ior(nr uintptr, size uintptr) uintptr  { return ioc(iocRead, nr, size) }
func iow(nr uintptr, size uintptr) uintptr  { return ioc(iocWrite, nr, size) }

// ioctl issues a request against fd with arg pointing at the request's
// parameter struct (or nil for parameterless requests).
func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}