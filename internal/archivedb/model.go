// Package archivedb persists the tape-backup bookkeeping that sits behind
// the dedup core: which archive landed on which tape, and which on-disk
// file (by inode) a given scan most recently associated with which
// archive. It is a SQLite-backed collaborator, not part of the dedup
// engine itself — d2fn's core never imports this package.
package archivedb

// Tape is one physical (or virtual) tape the store knows about.
type Tape struct {
	ID          uint16
	Flag        uint32
	Description string
}

// Archive is one archive file written to a tape.
type Archive struct {
	ID            uint32
	Tape          uint8
	TapeFileIndex uint32
	Size          uint32
	Hash          [32]byte
	Timestamp     uint64
	Flag          uint32
}

// FileOnDisk is one scanned file's association with the archive that last
// captured it.
type FileOnDisk struct {
	ID      uint64
	Inode   uint64
	Path    string
	Flag    uint32
	Archive uint64
	Version uint64
}
