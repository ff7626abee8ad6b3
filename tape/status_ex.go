//go:build linux

package tape

import (
	"bytes"
	"encoding/xml"
	"unsafe"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// TapeStatusEx is the extended status structure some SCSI tape drivers
// report as XML (MTIOCEXTGET / "status_ex").
type TapeStatusEx struct {
	PeriphName           string     `xml:"periph_name"`
	UnitNumber           uint32     `xml:"unit_number"`
	Vendor               string     `xml:"vendor"`
	Product              string     `xml:"product"`
	Revision             string     `xml:"revision"`
	SerialNum            string     `xml:"serial_num"`
	MaxIO                uint32     `xml:"maxio"`
	CPIMaxIO             uint32     `xml:"cpi_maxio"`
	MaxBlk               uint32     `xml:"max_blk"`
	MinBlk               uint32     `xml:"min_blk"`
	BlkGran              uint32     `xml:"blk_gran"`
	MaxEffectiveIOSize   uint32     `xml:"max_effective_iosize"`
	FixedMode            int32      `xml:"fixed_mode"`
	CompressionSupported int32      `xml:"compression_supported"`
	CompressionEnabled   int32      `xml:"compression_enabled"`
	CompressionAlgorithm uint32     `xml:"compression_algorithm"`
	Protection           Protection `xml:"protection"`
	MediaBlockSize       uint32     `xml:"media_blocksize"`
	CalculatedFileno     int64      `xml:"calculated_fileno"`
	CalculatedRelBlkno   int64      `xml:"calculated_rel_blkno"`
	ReportedFileno       int64      `xml:"reported_fileno"`
	ReportedBlkno        int64      `xml:"reported_blkno"`
	Partition            int64      `xml:"partition"`
	BOP                  int32      `xml:"bop"`
	EOP                  int32      `xml:"eop"`
	BPEW                 int32      `xml:"bpew"`
	Residual             int64      `xml:"residual"`
	Dsreg                int32      `xml:"dsreg"`
	Density              MtDensity  `xml:"mtdensity"`
}

// Protection describes the drive's logical-block-protection capabilities.
type Protection struct {
	Supported int32  `xml:"protection_supported"`
	Method    uint32 `xml:"prot_method"`
	PILength  uint32 `xml:"pi_length"`
	LBPWrite  uint32 `xml:"lbp_w"`
	LBPRead   uint32 `xml:"lbp_r"`
	RBDP      uint32 `xml:"rbdp"`
}

// MtDensity reports the medium's current and supported densities.
type MtDensity struct {
	MediaDensity  uint32          `xml:"media_density"`
	DensityReport []DensityReport `xml:"density_report"`
}

// DensityReport is one density-support report for a medium or medium type.
type DensityReport struct {
	MediumTypeReport int32          `xml:"medium_type_report"`
	MediaReport      int32          `xml:"media_report"`
	DensityEntry     []DensityEntry `xml:"density_entry"`
}

// DensityEntry describes one supported density code.
type DensityEntry struct {
	PrimaryDensityCode   uint8  `xml:"primary_density_code"`
	SecondaryDensityCode uint8  `xml:"secondary_density_code"`
	DensityFlags         string `xml:"density_flags"`
	BitsPerMM            uint32 `xml:"bits_per_mm"`
	MediaWidth           uint32 `xml:"media_width"`
	Tracks               uint32 `xml:"tracks"`
	Capacity             uint32 `xml:"capacity"`
	AssigningOrg         string `xml:"assigning_org"`
	DensityName          string `xml:"density_name"`
	Description          string `xml:"description"`

	MediumType      *uint8           `xml:"medium_type"`
	NumDensityCodes *int8            `xml:"num_density_codes"`
	DensityCodeList *DensityCodeList `xml:"density_code_list"`
	MediumLength    *uint32          `xml:"medium_length"`
	MediumTypeName  *string          `xml:"medium_type_name"`
}

// DensityCodeList is the set of density codes a medium-type report covers.
type DensityCodeList struct {
	DensityCode []uint8 `xml:"density_code"`
}

type statusExResult int32

const (
	statusExNone statusExResult = iota
	statusExOK
	statusExNeedMoreSpace
	statusExGetError
)

const statusExAllocLen = 32768

// rawStatusEx mirrors the kernel's struct mtextget used by the status_ex
// ioctl: a caller-supplied buffer the driver fills with an XML document.
type rawStatusEx struct {
	AllocLen uint32
	Xml      uintptr
	FillLen  uint32
	Result   statusExResult
	ErrStr   [128]byte
	Reserved [64]byte
}

var reqGetStatusEx = iowr(11, unsafe.Sizeof(rawStatusEx{}))

func (d *Device) statusExXML() (string, bool, error) {
	buffer := make([]byte, statusExAllocLen)

	raw := rawStatusEx{
		AllocLen: statusExAllocLen,
		Xml:      uintptr(unsafe.Pointer(&buffer[0])),
	}
	if err := ioctl(d.fd, reqGetStatusEx, unsafe.Pointer(&raw)); err != nil {
		return "", false, d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to read extended tape status", d.path)
	}

	switch raw.Result {
	case statusExNone:
		return "", false, nil
	case statusExOK:
		end := bytes.IndexByte(buffer, 0)
		if end < 0 {
			end = len(buffer)
		}
		return string(buffer[:end]), true, nil
	case statusExNeedMoreSpace:
		return "", false, d2fnerr.NewTapeError(nil, d2fnerr.CodeTapeIOFailure, "extended status buffer too small", d.path)
	case statusExGetError:
		end := bytes.IndexByte(raw.ErrStr[:], 0)
		if end < 0 {
			end = len(raw.ErrStr)
		}
		return "", false, d2fnerr.NewTapeError(nil, d2fnerr.CodeTapeIOFailure, string(raw.ErrStr[:end]), d.path)
	default:
		return "", false, d2fnerr.NewTapeError(nil, d2fnerr.CodeTapeIOFailure, "unrecognized extended status result", d.path)
	}
}

// StatusEx queries the drive's extended (XML-encoded) status, if the
// driver supports it. A nil result with no error means the driver does
// not implement status_ex.
func (d *Device) StatusEx() (*TapeStatusEx, error) {
	content, ok, err := d.statusExXML()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var result TapeStatusEx
	if err := xml.Unmarshal([]byte(content), &result); err != nil {
		return nil, d2fnerr.NewTapeError(err, d2fnerr.CodeTapeIOFailure, "unable to decode extended tape status xml", d.path)
	}
	return &result, nil
}

// Protect returns the drive's protection-capability report, if status_ex
// is supported.
func (d *Device) Protect() (*Protection, error) {
	status, err := d.StatusEx()
	if err != nil || status == nil {
		return nil, err
	}
	return &status.Protection, nil
}

// DensitySupport returns the drive's supported-density report, if
// status_ex is supported.
func (d *Device) DensitySupport() (*MtDensity, error) {
	status, err := d.StatusEx()
	if err != nil || status == nil {
		return nil, err
	}
	return &status.Density, nil
}