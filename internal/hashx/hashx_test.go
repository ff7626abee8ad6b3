package hashx

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestChecksumFullIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 2*1024*1024)
	for i := range content {
		content[i] = byte(i)
	}
	a := writeFile(t, dir, "a.bin", content)
	b := writeFile(t, dir, "b.bin", content)

	ha, err := Checksum(a, Full())
	if err != nil {
		t.Fatalf("checksum a: %v", err)
	}
	hb, err := Checksum(b, Full())
	if err != nil {
		t.Fatalf("checksum b: %v", err)
	}
	if ha != hb {
		t.Fatalf("expected identical full hashes for identical content")
	}
}

func TestChecksumPartDiffersOnPrefixChange(t *testing.T) {
	dir := t.TempDir()
	base := make([]byte, 64)
	for i := range base {
		base[i] = byte(i)
	}
	other := append([]byte(nil), base...)
	other[0] ^= 0xFF

	a := writeFile(t, dir, "a.bin", base)
	b := writeFile(t, dir, "b.bin", other)

	ha, err := Checksum(a, Part(32))
	if err != nil {
		t.Fatalf("checksum a: %v", err)
	}
	hb, err := Checksum(b, Part(32))
	if err != nil {
		t.Fatalf("checksum b: %v", err)
	}
	if ha == hb {
		t.Fatalf("expected different partial hashes when prefix differs")
	}
}

func TestChecksumPartIgnoresTail(t *testing.T) {
	dir := t.TempDir()
	base := make([]byte, 64)
	tailDiffers := append([]byte(nil), base...)
	tailDiffers[63] ^= 0xFF

	a := writeFile(t, dir, "a.bin", base)
	b := writeFile(t, dir, "b.bin", tailDiffers)

	ha, err := Checksum(a, Part(32))
	if err != nil {
		t.Fatalf("checksum a: %v", err)
	}
	hb, err := Checksum(b, Part(32))
	if err != nil {
		t.Fatalf("checksum b: %v", err)
	}
	if ha != hb {
		t.Fatalf("expected identical partial hashes when only the tail differs")
	}
}

func TestChecksumZeroWindowIsConfigError(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.bin", []byte("x"))

	if _, err := Checksum(a, Part(0)); err == nil {
		t.Fatalf("expected a HashConfigError for Part(0)")
	}
}

func TestChecksumMissingFile(t *testing.T) {
	if _, err := Checksum("/nonexistent/path/does/not/exist", Full()); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
