//go:build linux

package tape

import (
	"unsafe"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// Operation identifies one of the MTIOCTOP sub-commands.
type Operation uint16

const (
	OpWriteEOF Operation = iota
	OpForwardSpaceFile
	OpBackwardSpaceFile
	OpForwardSpaceRecord
	OpBackwardSpaceRecord
	OpRewind
	OpOffline
	OpNOP
	OpEnableCache
	OpDisableCache
	OpSetBlockSize
	OpSetDensity
	OpEraseToEnd
	OpJumpToEnd
	OpSetCompression
	OpRetension
	OpWriteSetmark
	OpForwardSpaceSetmark
	OpBackwardSpaceSetmark
	OpLoad
	OpWriteEOFImmediately
)

// mtOp mirrors the kernel's struct mtop: a sub-command plus a repeat count.
type mtOp struct {
	Op    uint16
	_     [2]byte
	Count int32
}

var reqTapeOp = iow(1, unsafe.Sizeof(mtOp{}))

// doTapeOp issues op against d with the given repeat count.
func (d *Device) doTapeOp(op Operation, count int32) error {
	param := mtOp{Op: uint16(op), Count: count}
	if err := ioctl(d.fd, reqTapeOp, unsafe.Pointer(&param)); err != nil {
		return d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "tape operation failed", d.path).
			WithDetail("operation", op)
	}
	return nil
}

// WriteEOF writes count filemarks.
func (d *Device) WriteEOF(count int32) error { return d.doTapeOp(OpWriteEOF, count) }

// WriteEOFImmediately writes count filemarks without waiting for completion.
func (d *Device) WriteEOFImmediately(count int32) error {
	return d.doTapeOp(OpWriteEOFImmediately, count)
}

// WriteSetmark writes count setmarks.
func (d *Device) WriteSetmark(count int32) error { return d.doTapeOp(OpWriteSetmark, count) }

// ForwardSpaceFile spaces forward over count filemarks.
func (d *Device) ForwardSpaceFile(count int32) error { return d.doTapeOp(OpForwardSpaceFile, count) }

// BackwardSpaceFile spaces backward over count filemarks.
func (d *Device) BackwardSpaceFile(count int32) error {
	return d.doTapeOp(OpBackwardSpaceFile, count)
}

// ForwardSpaceRecord spaces forward over count records.
func (d *Device) ForwardSpaceRecord(count int32) error {
	return d.doTapeOp(OpForwardSpaceRecord, count)
}

// BackwardSpaceRecord spaces backward over count records.
func (d *Device) BackwardSpaceRecord(count int32) error {
	return d.doTapeOp(OpBackwardSpaceRecord, count)
}

// ForwardSpaceSetmark spaces forward over count setmarks.
func (d *Device) ForwardSpaceSetmark(count int32) error {
	return d.doTapeOp(OpForwardSpaceSetmark, count)
}

// BackwardSpaceSetmark spaces backward over count setmarks.
func (d *Device) BackwardSpaceSetmark(count int32) error {
	return d.doTapeOp(OpBackwardSpaceSetmark, count)
}

// Rewind rewinds the tape to the beginning of the current partition.
func (d *Device) Rewind() error { return d.doTapeOp(OpRewind, 0) }

// RewindAndOffline rewinds the tape and takes the drive offline (eject, on
// drives that support it).
func (d *Device) RewindAndOffline() error { return d.doTapeOp(OpOffline, 0) }

// Load loads the tape.
func (d *Device) Load() error { return d.doTapeOp(OpLoad, 0) }

// SetBlockSize sets the drive's fixed block size; 0 selects variable-length
// blocks.
func (d *Device) SetBlockSize(size int32) error { return d.doTapeOp(OpSetBlockSize, size) }

// SetDensity sets the drive's recording density code.
func (d *Device) SetDensity(code int32) error { return d.doTapeOp(OpSetDensity, code) }

// SetCompression enables or disables hardware compression.
func (d *Device) SetCompression(enable bool) error {
	count := int32(0)
	if enable {
		count = 1
	}
	return d.doTapeOp(OpSetCompression, count)
}

// Erase erases the tape from the current position to the end.
func (d *Device) Erase() error { return d.doTapeOp(OpEraseToEnd, 0) }

// JumpToEOM positions the tape at the end of recorded media.
func (d *Device) JumpToEOM() error { return d.doTapeOp(OpJumpToEnd, 0) }

// Retension cycles the tape from start to end and back to seat it evenly.
func (d *Device) Retension() error { return d.doTapeOp(OpRetension, 0) }