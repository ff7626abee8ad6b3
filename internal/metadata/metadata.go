// Package metadata normalizes the platform stat result for a file into the
// handful of fields the deduplication engine actually needs: inode, link
// count, size, and allocated block count.
package metadata

import (
	"io/fs"
	"syscall"
)

// FileMetadata is the immutable, platform-normalized metadata attached to
// every FileRecord. On platforms lacking inode semantics the deduplication
// guarantee degrades: Ino will be zero for every file and the inode-dedupe
// invariant (I1) cannot suppress hard-linked duplicates.
type FileMetadata struct {
	// Ino is the filesystem inode number.
	Ino uint64
	// LinkCount is the number of hard links to the file.
	LinkCount uint64
	// Size is the file size in bytes.
	Size uint64
	// Blocks is the number of allocated 512-byte blocks.
	Blocks uint64
}

// FromFileInfo extracts FileMetadata from a fs.FileInfo obtained via
// os.Lstat/os.Stat or a directory walk. It returns ok=false when the
// platform's FileInfo.Sys() does not expose a *syscall.Stat_t (non-Unix
// targets), in which case the caller should treat the file as having no
// inode-dedupe guarantee.
func FromFileInfo(info fs.FileInfo) (FileMetadata, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return FileMetadata{Size: uint64(info.Size())}, false
	}

	return FileMetadata{
		Ino:       stat.Ino,
		LinkCount: uint64(stat.Nlink),
		Size:      uint64(stat.Size),
		Blocks:    uint64(stat.Blocks),
	}, true
}
