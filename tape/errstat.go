//go:build linux

package tape

import (
	"unsafe"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// ErrorCounter is a cumulative read or write error counter (MTIOCERRSTAT).
type ErrorCounter struct {
	Retries   uint32
	Corrected uint32
	Processed uint32
	Failures  uint32
	NBytes    uint64
}

// ScsiTapeErrors is the latched error/status information for the last data
// and control I/O operations. Issuing GetLastError unlatches and clears it.
type ScsiTapeErrors struct {
	IOSense   [32]byte
	IOResid   int32
	IOCdb     [16]byte
	CtlSense  [32]byte
	CtlResid  int32
	CtlCdb    [16]byte
	WriteErr  ErrorCounter
	ReadErr   ErrorCounter
}

// mtErrStat mirrors the kernel's union mterrstat, sized to the same 256
// reserved bytes the SCSI variant uses.
type mtErrStat struct {
	Raw [256]byte
}

var reqReadErrorStatus = ior(7, unsafe.Sizeof(mtErrStat{}))

// GetLastError retrieves (and clears) the drive's latched error status from
// the last data and control I/O operations.
func (d *Device) GetLastError() (ScsiTapeErrors, error) {
	var raw mtErrStat
	if err := ioctl(d.fd, reqReadErrorStatus, unsafe.Pointer(&raw)); err != nil {
		return ScsiTapeErrors{}, d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to read tape error status", d.path)
	}

	var result ScsiTapeErrors
	copy(result.IOSense[:], raw.Raw[:32])
	result.IOResid = int32(leUint32(raw.Raw[32:36]))
	copy(result.IOCdb[:], raw.Raw[36:52])
	copy(result.CtlSense[:], raw.Raw[52:84])
	result.CtlResid = int32(leUint32(raw.Raw[84:88]))
	copy(result.CtlCdb[:], raw.Raw[88:104])
	return result, nil
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}