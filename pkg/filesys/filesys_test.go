package filesys

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirForceOverExisting(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out")

	if err := CreateDir(target, 0o755, true); err != nil {
		t.Fatalf("CreateDir() error = %v", err)
	}
	if err := CreateDir(target, 0o755, true); err != nil {
		t.Fatalf("CreateDir() on existing dir with force=true error = %v", err)
	}
}

func TestCreateDirRejectsFileAtPath(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := CreateDir(filePath, 0o755, true); err != ErrIsNotDir {
		t.Fatalf("CreateDir() error = %v, want ErrIsNotDir", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "present")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ok, err := Exists(filePath)
	if err != nil || !ok {
		t.Fatalf("Exists(present) = %v, %v; want true, nil", ok, err)
	}

	ok, err = Exists(filepath.Join(dir, "missing"))
	if err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v; want false, nil", ok, err)
	}
}

func TestReadDirGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bin", "b.bin", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	matches, err := ReadDir(filepath.Join(dir, "*.bin"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("ReadDir() = %d matches, want 2", len(matches))
	}
}
