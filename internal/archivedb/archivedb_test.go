package archivedb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nastools/d2fn/pkg/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	s, err := Open(path, logging.New("test"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateTapeAndAppendArchive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tapeID, err := s.CreateTape(ctx, 0, "shelf 3, box 2")
	if err != nil {
		t.Fatalf("CreateTape() error = %v", err)
	}

	archiveID, err := s.AppendArchive(ctx, Archive{
		Tape:          uint8(tapeID),
		TapeFileIndex: 1,
		Size:          4096,
		Timestamp:     1700000000,
	})
	if err != nil {
		t.Fatalf("AppendArchive() error = %v", err)
	}
	if archiveID == 0 {
		t.Fatalf("expected a nonzero archive id")
	}
}

func TestAppendFileAndQueryByInode(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tapeID, err := s.CreateTape(ctx, 0, "test tape")
	if err != nil {
		t.Fatalf("CreateTape() error = %v", err)
	}
	archiveID, err := s.AppendArchive(ctx, Archive{Tape: uint8(tapeID), TapeFileIndex: 1, Size: 10})
	if err != nil {
		t.Fatalf("AppendArchive() error = %v", err)
	}

	if err := s.AppendFile(ctx, FileOnDisk{Inode: 42, Path: "/data/a.bin", Archive: uint64(archiveID), Version: 1}); err != nil {
		t.Fatalf("AppendFile() error = %v", err)
	}
	if err := s.AppendFile(ctx, FileOnDisk{Inode: 42, Path: "/data/a.bin", Archive: uint64(archiveID), Version: 2}); err != nil {
		t.Fatalf("AppendFile() error = %v", err)
	}

	files, err := s.FilesByInode(ctx, 42)
	if err != nil {
		t.Fatalf("FilesByInode() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 file records for inode 42, got %d", len(files))
	}
	if files[0].Version != 2 {
		t.Fatalf("expected most recent version first, got %d", files[0].Version)
	}
}
