//go:build linux

package tape

import (
	"fmt"
	"unsafe"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// Density describes one recording density a drive can report.
type Density struct {
	Code        uint32
	BitsPerMM   uint32
	BitsPerInch uint32
	Description string
}

// densities is copied from freebsd-src/lib/libmt/mtlib.c, originally
// sourced from T10 Project 997D.
var densities = []Density{
	{Code: 0x40, BitsPerMM: 4880, BitsPerInch: 123952, Description: "LTO-1"},
	{Code: 0x42, BitsPerMM: 7398, BitsPerInch: 187909, Description: "LTO-2"},
	{Code: 0x44, BitsPerMM: 9638, BitsPerInch: 244805, Description: "LTO-3"},
	{Code: 0x46, BitsPerMM: 12725, BitsPerInch: 323215, Description: "LTO-4"},
	{Code: 0x58, BitsPerMM: 15142, BitsPerInch: 384607, Description: "LTO-5"},
	{Code: 0x5A, BitsPerMM: 15142, BitsPerInch: 384607, Description: "LTO-6"},
	{Code: 0x5C, BitsPerMM: 19107, BitsPerInch: 485318, Description: "LTO-7"},
	{Code: 0x5D, BitsPerMM: 19107, BitsPerInch: 485318, Description: "LTO-M8"},
	{Code: 0x5E, BitsPerMM: 20669, BitsPerInch: 524993, Description: "LTO-8"},
	{Code: 0x60, BitsPerMM: 23031, BitsPerInch: 584987, Description: "LTO-9"},
}

var unknownDensity = Density{Description: "Unknown"}

func lookupDensity(code uint32) Density {
	for _, d := range densities {
		if d.Code == code {
			return d
		}
	}
	return unknownDensity
}

// BlockSize is either variable-length or a fixed size in bytes.
type BlockSize struct {
	Fixed uint32 // zero means Variable
}

// Variable reports whether the drive is operating in variable block mode.
func (b BlockSize) Variable() bool { return b.Fixed == 0 }

func blockSizeFromRaw(value int32) BlockSize {
	if value == 0 {
		return BlockSize{}
	}
	return BlockSize{Fixed: uint32(value)}
}

// DriverState is the driver's MT_ISAR "dsreg" operating state.
type DriverState int16

const (
	StateNil              DriverState = 0
	StateRest             DriverState = 1
	StateBusy             DriverState = 2
	StateWriting          DriverState = 20
	StateWritingFilemarks DriverState = 21
	StateErasing          DriverState = 22
	StateReading          DriverState = 30
	StateSpacingForward   DriverState = 40
	StateSpacingReverse   DriverState = 41
	StatePositioning      DriverState = 42
	StateRewinding        DriverState = 43
	StateRetensioning     DriverState = 44
	StateUnloading        DriverState = 45
	StateLoading          DriverState = 46
)

func (s DriverState) String() string {
	switch s {
	case StateNil:
		return "Unknown"
	case StateRest:
		return "Doing Nothing"
	case StateBusy:
		return "Communicating with tape (but no motion)"
	case StateWriting:
		return "Writing"
	case StateWritingFilemarks:
		return "Writing Filemarks"
	case StateErasing:
		return "Erasing"
	case StateReading:
		return "Reading"
	case StateSpacingForward:
		return "Spacing Forward"
	case StateSpacingReverse:
		return "Spacing Reverse"
	case StatePositioning:
		return "Hardware Positioning (direction unknown)"
	case StateRewinding:
		return "Rewinding"
	case StateRetensioning:
		return "Retensioning"
	case StateUnloading:
		return "Unloading"
	case StateLoading:
		return "Loading"
	default:
		return fmt.Sprintf("DriverState(%d)", int16(s))
	}
}

// Compression identifies the active hardware compression scheme.
type Compression int

const (
	CompressionOff Compression = iota
	CompressionOn
	CompressionIDRC
	CompressionDCLZ
	CompressionUnknown
)

func compressionFromRaw(value uint32) Compression {
	switch value {
	case 0:
		return CompressionOff
	case 1, 0xffffffff:
		return CompressionOn
	case 0x10:
		return CompressionIDRC
	case 0x20:
		return CompressionDCLZ
	default:
		return CompressionUnknown
	}
}

// rawStatus mirrors the kernel's struct mtget (MTIOCGET).
type rawStatus struct {
	Type     int16
	Dsreg    int16
	Erreg    int16
	Resid    int16
	Blksiz   int32
	Density  int32
	Comp     uint32
	Blksiz0  int32
	Blksiz1  int32
	Blksiz2  int32
	Blksiz3  int32
	Density0 int32
	Density1 int32
	Density2 int32
	Density3 int32
	Comp0    uint32
	Comp1    uint32
	Comp2    uint32
	Comp3    uint32
	Fileno   int32
	Blkno    int32
}

// scsiDriverType is MT_ISAR, the "type" value a SCSI tape lib reports.
const scsiDriverType = 0x07

// TapeStatus is the drive's current operating status, decoded from
// MTIOCGET.
type TapeStatus struct {
	State       DriverState
	BlockSize   BlockSize
	Density     Density
	Compression Compression
	FileNo      int
	BlockNo     int
	Residual    int
}

var reqGetStatus = ior(2, unsafe.Sizeof(rawStatus{}))

// Status queries the drive's current operating status.
func (d *Device) Status() (TapeStatus, error) {
	var raw rawStatus
	if err := ioctl(d.fd, reqGetStatus, unsafe.Pointer(&raw)); err != nil {
		return TapeStatus{}, d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to read tape status", d.path)
	}
	if raw.Type != scsiDriverType {
		return TapeStatus{}, d2fnerr.NewTapeError(nil, d2fnerr.CodeTapeIOFailure, "tape driver is not SCSI", d.path).
			WithDetail("dsreg_type", raw.Type)
	}

	return TapeStatus{
		State:       DriverState(raw.Dsreg),
		BlockSize:   blockSizeFromRaw(raw.Blksiz),
		Density:     lookupDensity(uint32(raw.Density)),
		Compression: compressionFromRaw(raw.Comp),
		FileNo:      int(raw.Fileno),
		BlockNo:     int(raw.Blkno),
		Residual:    int(raw.Resid),
	}, nil
}