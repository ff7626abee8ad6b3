//go:build linux

package tape

import (
	"unsafe"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// BlockLimit reports the block-size limits the drive and loaded media
// support.
type BlockLimit struct {
	Granularity    uint32
	MinBlockLength uint32
	MaxBlockLength uint32
}

var reqReadBlockLimit = ior(9, unsafe.Sizeof(BlockLimit{}))

// ReadBlockLimit queries the drive's supported block-size range.
func (d *Device) ReadBlockLimit() (BlockLimit, error) {
	var limit BlockLimit
	if err := ioctl(d.fd, reqReadBlockLimit, unsafe.Pointer(&limit)); err != nil {
		return BlockLimit{}, d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to read block limit", d.path)
	}
	return limit, nil
}