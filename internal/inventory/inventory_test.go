package inventory

import (
	"path/filepath"
	"reflect"
	"testing"
)

func writeAndRead(t *testing.T, groups []Group) []Group {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.bin")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for _, g := range groups {
		if err := w.WriteGroup(g); err != nil {
			t.Fatalf("WriteGroup() error = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Writer.Close() error = %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if r.Total() != len(groups) {
		t.Fatalf("Total() = %d, want %d", r.Total(), len(groups))
	}

	var got []Group
	for {
		g, ok, err := r.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if !ok {
			break
		}
		got = append(got, g)
	}
	return got
}

// TestRoundTripPreservesPathBytes covers P5 (path round-trip): a path is
// byte-identical after writing and reading back, including paths that are
// not valid UTF-8.
func TestRoundTripPreservesPathBytes(t *testing.T) {
	groups := []Group{
		{Files: []Entry{
			{Ino: 1, Path: "file1.txt"},
			{Ino: 2, Path: "file2.txt"},
			{Ino: 3, Path: "\xe4\xb8\xad\xe6\x96\x87\xe5\xad\x97\xe7\xac\xa6.txt"},
		}},
		{Files: []Entry{
			{Ino: 4, Path: "符号(x).txt"},
			{Ino: 5, Path: "file5\x00.txt"},
			// Deliberately invalid UTF-8 byte sequence embedded in a path.
			{Ino: 6, Path: string([]byte{'a', 0xff, 0xfe, 'b'})},
		}},
	}

	got := writeAndRead(t, groups)
	if !reflect.DeepEqual(got, groups) {
		t.Fatalf("round trip mismatch:\ngot  %#v\nwant %#v", got, groups)
	}
}

func TestEmptyInventoryRoundTrips(t *testing.T) {
	got := writeAndRead(t, nil)
	if len(got) != 0 {
		t.Fatalf("expected zero groups, got %d", len(got))
	}
}

func TestOpenRejectsCorruptHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	if err := writeRawFile(path, []byte{1, 2, 3}); err != nil {
		t.Fatalf("writeRawFile: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatalf("expected Open() to fail on a truncated header")
	}
}

func TestOpenRejectsUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad-version.bin")
	header := []byte{0xFF, headerSize, 0, 0, 0, 0}
	if err := writeRawFile(path, header); err != nil {
		t.Fatalf("writeRawFile: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatalf("expected Open() to reject an unrecognized version byte")
	}
}
