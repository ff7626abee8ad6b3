//go:build linux

package tape

import (
	"encoding/xml"
	"testing"
)

func TestLookupDensityKnownAndUnknown(t *testing.T) {
	if d := lookupDensity(0x5E); d.Description != "LTO-8" {
		t.Fatalf("lookupDensity(0x5E) = %+v, want LTO-8", d)
	}
	if d := lookupDensity(0xFF); d.Description != "Unknown" {
		t.Fatalf("lookupDensity(0xFF) = %+v, want Unknown", d)
	}
}

func TestBlockSizeFromRaw(t *testing.T) {
	if bs := blockSizeFromRaw(0); !bs.Variable() {
		t.Fatalf("blockSizeFromRaw(0) should be variable")
	}
	if bs := blockSizeFromRaw(512); bs.Variable() || bs.Fixed != 512 {
		t.Fatalf("blockSizeFromRaw(512) = %+v, want Fixed=512", bs)
	}
}

func TestCompressionFromRaw(t *testing.T) {
	cases := map[uint32]Compression{
		0:          CompressionOff,
		1:          CompressionOn,
		0xffffffff: CompressionOn,
		0x10:       CompressionIDRC,
		0x20:       CompressionDCLZ,
		0x99:       CompressionUnknown,
	}
	for raw, want := range cases {
		if got := compressionFromRaw(raw); got != want {
			t.Errorf("compressionFromRaw(%#x) = %v, want %v", raw, got, want)
		}
	}
}

func TestDriverStateString(t *testing.T) {
	if s := StateWriting.String(); s != "Writing" {
		t.Fatalf("StateWriting.String() = %q", s)
	}
	if s := DriverState(99).String(); s == "" {
		t.Fatalf("unknown DriverState should still stringify")
	}
}

func TestTapeStatusExXMLDecoding(t *testing.T) {
	doc := `<drive-status>
		<periph_name>sa</periph_name>
		<unit_number>0</unit_number>
		<vendor>QUANTUM</vendor>
		<max_blk>8388608</max_blk>
		<mtdensity>
			<media_density>94</media_density>
			<density_report>
				<medium_type_report>0</medium_type_report>
				<media_report>1</media_report>
				<density_entry>
					<primary_density_code>94</primary_density_code>
					<density_name>LTO-8</density_name>
				</density_entry>
			</density_report>
		</mtdensity>
	</drive-status>`

	var status TapeStatusEx
	if err := xml.Unmarshal([]byte(doc), &status); err != nil {
		t.Fatalf("xml.Unmarshal() error = %v", err)
	}
	if status.Vendor != "QUANTUM" {
		t.Fatalf("Vendor = %q, want QUANTUM", status.Vendor)
	}
	if status.MaxBlk != 8388608 {
		t.Fatalf("MaxBlk = %d", status.MaxBlk)
	}
	if len(status.Density.DensityReport) != 1 {
		t.Fatalf("expected 1 density report, got %d", len(status.Density.DensityReport))
	}
	entries := status.Density.DensityReport[0].DensityEntry
	if len(entries) != 1 || entries[0].DensityName != "LTO-8" {
		t.Fatalf("unexpected density entries: %+v", entries)
	}
}

func TestLocationBuilder(t *testing.T) {
	loc := NewLocationBuilder().Immediate(true).ChangePartition(2).File(17)
	if loc.target.destType != locateDestFile || loc.target.id != 17 {
		t.Fatalf("unexpected target: %+v", loc.target)
	}
	if !loc.immediate {
		t.Fatalf("expected immediate flag to be set")
	}
	if loc.toPartition == nil || *loc.toPartition != 2 {
		t.Fatalf("expected partition 2, got %v", loc.toPartition)
	}
}

func TestIocEncoding(t *testing.T) {
	req := iow(1, 8)
	if req&(0x3<<iocDirShift)>>iocDirShift != iocWrite {
		t.Fatalf("iow() did not encode write direction: %#x", req)
	}
	if (req>>iocTypeShift)&0xff != mtMagic {
		t.Fatalf("iow() did not encode magic type byte: %#x", req)
	}
}

func TestSetEOTModelRejectsMany(t *testing.T) {
	d := &Device{fd: -1, path: "/dev/null-tape"}
	if err := d.SetEOTModel(Many(9)); err == nil {
		t.Fatalf("expected SetEOTModel(Many(9)) to be rejected before issuing an ioctl")
	}
}

func TestLeUint32(t *testing.T) {
	if got := leUint32([]byte{0x01, 0x00, 0x00, 0x00}); got != 1 {
		t.Fatalf("leUint32() = %d, want 1", got)
	}
	if got := leUint32([]byte{0xff, 0xff, 0xff, 0xff}); got != 0xffffffff {
		t.Fatalf("leUint32() = %#x, want 0xffffffff", got)
	}
}