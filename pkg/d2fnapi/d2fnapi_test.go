package d2fnapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nastools/d2fn/pkg/scanopts"
)

func TestInstanceDiscoverAndResult(t *testing.T) {
	dir := t.TempDir()
	content := []byte("duplicate content")
	for _, name := range []string{"a.bin", "b.bin"} {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	inst, err := NewInstance("test", dir, nil, scanopts.WithCompareSize(4096))
	if err != nil {
		t.Fatalf("NewInstance() error = %v", err)
	}
	defer inst.Close()

	if err := inst.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	groups, err := inst.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if len(groups) != 1 || len(groups[0].Records) != 2 {
		t.Fatalf("expected 1 group of 2 records, got %+v", groups)
	}
}

func TestInstanceCloseRejectsFurtherUse(t *testing.T) {
	dir := t.TempDir()
	inst, err := NewInstance("test", dir, nil)
	if err != nil {
		t.Fatalf("NewInstance() error = %v", err)
	}
	if err := inst.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := inst.Discover(context.Background()); err == nil {
		t.Fatalf("expected Discover() on a closed instance to fail")
	}
}
