// Package inventory implements the binary encoding used to persist a scan's
// duplicate groups to disk (§4.7/§6.2). The format is deliberately simple
// rather than built on a general-purpose serialization library:
//
//	offset 0: u8  version
//	offset 1: u8  header_size
//	offset 2: u32 group_count
//	offset 6: repeated group_count times:
//	              u32 payload_length
//	              payload_length bytes: varint file_count, then that many
//	                  (u64 inode, varint path_length, path_length raw bytes)
//
// Paths are stored as raw bytes, never assumed to be valid UTF-8 — NAS
// trees routinely contain filenames that fail to round-trip through a
// string codec that assumes otherwise.
package inventory

// CurrentVersion is written into every inventory file created by this
// package. A reader that encounters an unrecognized version should refuse
// to parse the body rather than guess at a layout.
const CurrentVersion uint8 = 1

// headerSize is the fixed byte length of the header: version (1) +
// headerSize (1) + groupCount (4), little-endian throughout.
const headerSize = 6

// header is the fixed-size preamble written at offset 0 of every inventory
// file. groupCount is unknown until the export finishes, so Writer writes
// a zeroed placeholder at Create time and rewrites the real value at Close.
type header struct {
	version    uint8
	headerSize uint8
	groupCount uint32
}

// Entry is one file belonging to a duplicate group: its inode (for
// hard-link-aware application, §4.8) and its path, stored as raw bytes to
// survive non-UTF-8 filenames intact.
type Entry struct {
	Ino  uint64
	Path string
}

// Group is one set of files the engine determined share identical content.
type Group struct {
	Files []Entry
}
