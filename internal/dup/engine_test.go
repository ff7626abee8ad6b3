package dup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nastools/d2fn/internal/scanfilter"
	"github.com/nastools/d2fn/pkg/logging"
	"github.com/nastools/d2fn/pkg/scanopts"
)

func newTestEngine(t *testing.T, root string, opts scanopts.Options) *Engine {
	t.Helper()
	e, err := New(&Config{Root: root, Options: opts, Logger: logging.New("test")})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDiscoverGroupsIdenticalFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("duplicate content"))
	writeFile(t, filepath.Join(dir, "b.txt"), []byte("duplicate content"))
	writeFile(t, filepath.Join(dir, "c.txt"), []byte("unique content"))

	e := newTestEngine(t, dir, scanopts.NewDefaultOptions())
	if err := e.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	groups, err := e.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 duplicate group, got %d", len(groups))
	}
	if len(groups[0].Records) != 2 {
		t.Fatalf("expected 2 records in the duplicate group, got %d", len(groups[0].Records))
	}
}

// TestPushSuppressesHardLinks covers P1 (inode idempotence): a hard link
// discovered a second time under a different name must not spawn a second
// independent record, even though its path differs.
func TestPushSuppressesHardLinks(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "original.bin")
	writeFile(t, original, []byte("shared inode content"))

	linked := filepath.Join(dir, "linked.bin")
	if err := os.Link(original, linked); err != nil {
		t.Skipf("hard links unsupported on this filesystem: %v", err)
	}

	e := newTestEngine(t, dir, scanopts.NewDefaultOptions())
	if err := e.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	groups, err := e.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("hard-linked files must not be reported as duplicates, got %d groups", len(groups))
	}
	if len(e.Records()) != 1 {
		t.Fatalf("expected exactly 1 record for the shared inode, got %d", len(e.Records()))
	}
}

// TestResultExcludesSingletons covers P2 (no singleton groups): a unique
// file must never appear in the Result() output.
func TestResultExcludesSingletons(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "only.dat"), []byte("nothing else matches this"))

	e := newTestEngine(t, dir, scanopts.NewDefaultOptions())
	if err := e.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	groups, err := e.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	for _, g := range groups {
		if len(g.Records) < 2 {
			t.Fatalf("Result() must never include a singleton group")
		}
	}
}

// TestVerifySplitsFalsePartialCollision covers P4 (verify soundness):
// files sharing a (ext, size) bucket and an identical leading window but
// diverging content past it must not survive the Verify pass as a group.
func TestVerifySplitsFalsePartialCollision(t *testing.T) {
	dir := t.TempDir()
	prefix := make([]byte, 64)
	for i := range prefix {
		prefix[i] = 'x'
	}

	a := append(append([]byte{}, prefix...), []byte("AAAA")...)
	b := append(append([]byte{}, prefix...), []byte("BBBB")...)
	writeFile(t, filepath.Join(dir, "a.dat"), a)
	writeFile(t, filepath.Join(dir, "b.dat"), b)

	opts := scanopts.NewDefaultOptions()
	opts.CompareSize = uint64(len(prefix))
	opts.Verify = true

	e := newTestEngine(t, dir, opts)
	if err := e.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	groups, err := e.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("verify pass should have split the false partial-hash collision, got %d groups", len(groups))
	}
	if got := e.ConflictCount(); got != 2 {
		t.Fatalf("ConflictCount() = %d, want 2 (one full-hash group per file)", got)
	}
}

func TestDiscoverSkipsHiddenEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden", "a.txt"), []byte("content"))
	writeFile(t, filepath.Join(dir, ".dotfile"), []byte("content"))
	writeFile(t, filepath.Join(dir, "visible.txt"), []byte("content"))

	e := newTestEngine(t, dir, scanopts.NewDefaultOptions())
	if err := e.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(e.Records()) != 1 {
		t.Fatalf("expected only the visible file to be recorded, got %d records", len(e.Records()))
	}
}

func TestDiscoverAppliesFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"), []byte("pdf content"))
	writeFile(t, filepath.Join(dir, "b.txt"), []byte("txt content"))

	opts := scanopts.NewDefaultOptions()
	opts.Filter = scanfilter.NewExtensionWhitelist([]string{"pdf"})

	e := newTestEngine(t, dir, opts)
	if err := e.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(e.Records()) != 1 {
		t.Fatalf("expected only the .pdf file to survive the filter, got %d records", len(e.Records()))
	}
}

func TestOperationsOnClosedEngineFail(t *testing.T) {
	e := newTestEngine(t, t.TempDir(), scanopts.NewDefaultOptions())
	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := e.Close(); err != ErrEngineClosed {
		t.Fatalf("second Close() = %v, want ErrEngineClosed", err)
	}
	if err := e.Discover(context.Background()); err != ErrEngineClosed {
		t.Fatalf("Discover() on closed engine = %v, want ErrEngineClosed", err)
	}
	if _, err := e.Result(); err != ErrEngineClosed {
		t.Fatalf("Result() on closed engine = %v, want ErrEngineClosed", err)
	}
}
