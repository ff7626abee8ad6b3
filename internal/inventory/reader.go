package inventory

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// Reader replays an inventory file's duplicate groups in the order they
// were written. It is a forward-only cursor: once Next has been called
// header.groupCount times, every subsequent call returns ok=false with a
// nil error.
type Reader struct {
	path   string
	file   *os.File
	br     *bufio.Reader
	header header
	read   uint32
}

// Open reads and validates path's header and returns a Reader positioned
// at the start of the group body.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryIO, "unable to open inventory file", path)
	}

	br := bufio.NewReaderSize(f, scratchSize)
	h, err := readHeader(br, path)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Reader{path: path, file: f, br: br, header: h}, nil
}

func readHeader(r io.Reader, path string) (header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return header{}, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryHeaderCorrupt, "unable to read inventory header", path).
			WithOffset(0)
	}

	h := header{
		version:    buf[0],
		headerSize: buf[1],
		groupCount: binary.LittleEndian.Uint32(buf[2:]),
	}
	if h.version != CurrentVersion {
		return header{}, d2fnerr.NewInventoryIOError(nil, d2fnerr.CodeInventoryHeaderCorrupt, "unsupported inventory version", path).
			WithDetail("version", h.version).WithDetail("expected", CurrentVersion)
	}
	if h.headerSize != headerSize {
		return header{}, d2fnerr.NewInventoryIOError(nil, d2fnerr.CodeInventoryHeaderCorrupt, "unexpected inventory header size", path).
			WithDetail("headerSize", h.headerSize).WithDetail("expected", headerSize)
	}

	return h, nil
}

// Total returns the number of groups recorded in the header.
func (r *Reader) Total() int {
	return int(r.header.groupCount)
}

// Next decodes and returns the next group. It reports ok=false (with a nil
// error) once every recorded group has been returned.
func (r *Reader) Next() (group Group, ok bool, err error) {
	if r.read >= r.header.groupCount {
		return Group{}, false, nil
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r.br, lenBuf[:]); err != nil {
		return Group{}, false, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryBodyCorrupt, "unable to read group payload length", r.path)
	}
	payloadLen := binary.LittleEndian.Uint32(lenBuf[:])

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r.br, payload); err != nil {
		return Group{}, false, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryBodyCorrupt, "unable to read group payload", r.path)
	}

	group, err = decodeGroup(payload, r.path)
	if err != nil {
		return Group{}, false, err
	}

	r.read++
	return group, true, nil
}

func decodeGroup(payload []byte, path string) (Group, error) {
	br := bytes.NewReader(payload)

	fileCount, err := binary.ReadUvarint(br)
	if err != nil {
		return Group{}, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryBodyCorrupt, "unable to read group file count", path)
	}

	files := make([]Entry, fileCount)
	for i := range files {
		entry, err := decodeEntry(br, path)
		if err != nil {
			return Group{}, err
		}
		files[i] = entry
	}

	return Group{Files: files}, nil
}

func decodeEntry(br *bytes.Reader, path string) (Entry, error) {
	var inoBuf [8]byte
	if _, err := io.ReadFull(br, inoBuf[:]); err != nil {
		return Entry{}, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryBodyCorrupt, "unable to read entry inode", path)
	}
	ino := binary.LittleEndian.Uint64(inoBuf[:])

	pathLen, err := binary.ReadUvarint(br)
	if err != nil {
		return Entry{}, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryBodyCorrupt, "unable to read entry path length", path)
	}

	pathBuf := make([]byte, pathLen)
	if _, err := io.ReadFull(br, pathBuf); err != nil {
		return Entry{}, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryBodyCorrupt, "unable to read entry path bytes", path)
	}

	return Entry{Ino: ino, Path: string(pathBuf)}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}
