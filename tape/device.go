//go:build linux

package tape

import (
	"golang.org/x/sys/unix"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// Device is an open handle to a SCSI tape character device, e.g.
// /dev/nst0 or /dev/sa0.
type Device struct {
	fd   int
	path string
}

// Open opens the tape device at path for read/write ioctl operations.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, d2fnerr.NewTapeError(err, d2fnerr.CodeTapeOpenFailure, "unable to open tape device", path)
	}
	return &Device{fd: fd, path: path}, nil
}

// Close releases the underlying file descriptor.
func (d *Device) Close() error {
	return unix.Close(d.fd)
}

// Path returns the device path this handle was opened from.
func (d *Device) Path() string {
	return d.path
}