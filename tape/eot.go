//go:build linux

package tape

import (
	"unsafe"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// EotModel is the number of filemarks a drive writes at end-of-tape.
// Typically two; some drives (QIC cartridge) support only one.
type EotModel struct {
	setmarks uint32 // 1 or 2; anything else is reported-only via Many
}

// OneSetmark selects a single end-of-tape filemark.
func OneSetmark() EotModel { return EotModel{setmarks: 1} }

// TwoSetmarks selects the (typical) two end-of-tape filemarks.
func TwoSetmarks() EotModel { return EotModel{setmarks: 2} }

// Many wraps a reported model value outside the settable {1, 2} range.
// It can only be observed from GetEOTModel, never written back with
// SetEOTModel.
func Many(value uint32) EotModel { return EotModel{setmarks: value} }

// Setmarks returns the raw filemark count this model represents.
func (m EotModel) Setmarks() uint32 { return m.setmarks }

var (
	reqGetEOTModel = ior(8, unsafe.Sizeof(uint32(0)))
	reqSetEOTModel = iow(8, unsafe.Sizeof(uint32(0)))
)

// GetEOTModel reads the drive's current end-of-tape filemark model.
func (d *Device) GetEOTModel() (EotModel, error) {
	var model uint32
	if err := ioctl(d.fd, reqGetEOTModel, unsafe.Pointer(&model)); err != nil {
		return EotModel{}, d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to read eot model", d.path)
	}
	return EotModel{setmarks: model}, nil
}

// SetEOTModel sets the drive's end-of-tape filemark model. Only
// OneSetmark() or TwoSetmarks() may be written; a Many() value returns an
// error, mirroring the drive's own restriction.
func (d *Device) SetEOTModel(model EotModel) error {
	if model.setmarks != 1 && model.setmarks != 2 {
		return d2fnerr.NewTapeError(nil, d2fnerr.CodeTapeIOFailure, "eot model must be 1 or 2 setmarks", d.path).
			WithDetail("requested", model.setmarks)
	}
	value := model.setmarks
	if err := ioctl(d.fd, reqSetEOTModel, unsafe.Pointer(&value)); err != nil {
		return d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to set eot model", d.path)
	}
	return nil
}