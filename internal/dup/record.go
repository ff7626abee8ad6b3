package dup

import "github.com/nastools/d2fn/internal/metadata"

// RecordIndex indexes into an Engine's append-only record store. It is
// only ever handed out by the engine itself; callers never construct one.
type RecordIndex = int

// FileRecord is everything the engine retains about one discovered file:
// its path and the platform-normalized metadata captured at discovery
// time. Records are immutable once appended — the engine never revisits
// a record's path or metadata after Push returns.
type FileRecord struct {
	Path     string
	Metadata metadata.FileMetadata
}
