//go:build linux

package tape

import (
	"unsafe"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

type locateDestType uint32

const (
	locateDestObject locateDestType = iota
	locateDestFile
	locateDestSetmark
	locateDestEOD
)

const (
	locateFlagImmediate        uint32 = 0x01
	locateFlagChangePartition  uint32 = 0x02
	locateBlockAddressImplicit uint32 = 0x00
)

// mtLocate mirrors the kernel's struct mtlocate used by MTLOCATE.
type mtLocate struct {
	Flags             uint32
	DestType          uint32
	BlockAddressMode  uint32
	Partition         int64
	LogicalID         uint64
	Reserved          [64]byte
}

type locateTarget struct {
	destType locateDestType
	id       uint64
}

// Location describes a destination for Device.Locate, built through
// LocationBuilder.
type Location struct {
	target      locateTarget
	immediate   bool
	toPartition *int64
}

// LocationBuilder constructs a Location one option at a time.
type LocationBuilder struct {
	immediate   bool
	toPartition *int64
}

// NewLocationBuilder returns an empty LocationBuilder.
func NewLocationBuilder() LocationBuilder {
	return LocationBuilder{}
}

// Immediate marks the eventual locate as asynchronous: the ioctl returns
// before positioning completes.
func (b LocationBuilder) Immediate(val bool) LocationBuilder {
	b.immediate = val
	return b
}

// ChangePartition directs the locate to also switch to partition.
func (b LocationBuilder) ChangePartition(partition int64) LocationBuilder {
	b.toPartition = &partition
	return b
}

// File targets the file with the given logical (filemark-relative) number.
func (b LocationBuilder) File(file uint64) Location {
	return Location{target: locateTarget{locateDestFile, file}, immediate: b.immediate, toPartition: b.toPartition}
}

// Block targets the block with the given logical block address.
func (b LocationBuilder) Block(block uint64) Location {
	return Location{target: locateTarget{locateDestObject, block}, immediate: b.immediate, toPartition: b.toPartition}
}

// Setmark targets the setmark with the given logical number.
func (b LocationBuilder) Setmark(setmark uint64) Location {
	return Location{target: locateTarget{locateDestSetmark, setmark}, immediate: b.immediate, toPartition: b.toPartition}
}

// EndOfData targets the end of recorded data.
func (b LocationBuilder) EndOfData() Location {
	return Location{target: locateTarget{destType: locateDestEOD}, immediate: b.immediate, toPartition: b.toPartition}
}

var (
	reqLocate  = iow(10, unsafe.Sizeof(mtLocate{}))
	reqRdSPos  = ior(5, unsafe.Sizeof(uint32(0)))
	reqSLocate = iow(5, unsafe.Sizeof(uint32(0)))
)

// Locate positions the tape at loc.
//
// Note: positioning by logical block address generally requires the
// "non-rewind" device node (e.g. /dev/nst0 rather than /dev/st0) — on
// devices that auto-rewind on open, the drive reports beginning-of-partition
// regardless of the requested target.
func (d *Device) Locate(loc Location) error {
	param := mtLocate{
		DestType:         uint32(loc.target.destType),
		LogicalID:        loc.target.id,
		BlockAddressMode: locateBlockAddressImplicit,
	}
	if loc.immediate {
		param.Flags |= locateFlagImmediate
	}
	if loc.toPartition != nil {
		param.Partition = *loc.toPartition
		param.Flags |= locateFlagChangePartition
	}

	if err := ioctl(d.fd, reqLocate, unsafe.Pointer(&param)); err != nil {
		return d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to locate tape position", d.path)
	}
	return nil
}

// ReadSCSIPos returns the drive's current SCSI logical block position.
func (d *Device) ReadSCSIPos() (uint32, error) {
	var pos uint32
	if err := ioctl(d.fd, reqRdSPos, unsafe.Pointer(&pos)); err != nil {
		return 0, d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to read scsi position", d.path)
	}
	return pos, nil
}

// WriteSCSIPos sets the drive's SCSI logical block position without
// performing a full locate.
func (d *Device) WriteSCSIPos(pos uint32) error {
	if err := ioctl(d.fd, reqSLocate, unsafe.Pointer(&pos)); err != nil {
		return d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to write scsi position", d.path)
	}
	return nil
}