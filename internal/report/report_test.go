package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nastools/d2fn/internal/dup"
	"github.com/nastools/d2fn/internal/metadata"
)

func sampleGroups() []dup.Group {
	return []dup.Group{
		{Records: []dup.FileRecord{
			{Path: "/data/keeper.bin", Metadata: metadata.FileMetadata{Ino: 1, Size: 1024}},
			{Path: "/data/dup1.bin", Metadata: metadata.FileMetadata{Ino: 2, Size: 1024}},
			{Path: "/data/it's a dup.bin", Metadata: metadata.FileMetadata{Ino: 3, Size: 1024}},
		}},
	}
}

func TestBuildViewsComputesSavings(t *testing.T) {
	views := BuildViews(sampleGroups())
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].Savings != 2048 {
		t.Fatalf("Savings = %d, want 2048", views[0].Savings)
	}
	if views[0].Keeper.Path != "/data/keeper.bin" {
		t.Fatalf("Keeper.Path = %q, want the first record", views[0].Keeper.Path)
	}
}

func TestBuildViewsDropsSingletons(t *testing.T) {
	groups := []dup.Group{{Records: []dup.FileRecord{{Path: "/only.bin"}}}}
	if views := BuildViews(groups); len(views) != 0 {
		t.Fatalf("expected singleton groups to be dropped, got %d views", len(views))
	}
}

func TestWriteHTMLIncludesKeeperAndSavings(t *testing.T) {
	views := BuildViews(sampleGroups())
	var buf bytes.Buffer
	if err := WriteHTML(&buf, views); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "keeper.bin") {
		t.Fatalf("HTML output missing keeper path:\n%s", out)
	}
	if !strings.Contains(out, "2.0 kB") && !strings.Contains(out, "2 kB") {
		t.Fatalf("HTML output missing humanized savings:\n%s", out)
	}
}

func TestWriteScriptQuotesApostrophes(t *testing.T) {
	views := BuildViews(sampleGroups())
	var buf bytes.Buffer
	if err := WriteScript(&buf, views); err != nil {
		t.Fatalf("WriteScript() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `ln -f '/data/keeper.bin' '/data/dup1.bin'`) {
		t.Fatalf("script missing expected ln command:\n%s", out)
	}
	if !strings.Contains(out, `'\''`) {
		t.Fatalf("script should escape the apostrophe in a path:\n%s", out)
	}
}
