package inventory

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// scratchSize sizes the Writer's buffered output, amortizing syscalls
// across the many small group records a large scan produces.
const scratchSize = 1024 * 1024

// Writer streams duplicate groups to an inventory file, rewriting the
// header with the final group count when Close is called. Groups must be
// written in the order they should be replayed by Reader.
type Writer struct {
	path       string
	file       *os.File
	bw         *bufio.Writer
	groupCount uint32
	varintBuf  []byte
}

// Create truncates (or creates) path and writes a placeholder header,
// returning a Writer ready to accept groups via WriteGroup.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryIO, "unable to create inventory file", path)
	}

	w := &Writer{
		path:      path,
		file:      f,
		bw:        bufio.NewWriterSize(f, scratchSize),
		varintBuf: make([]byte, binary.MaxVarintLen64),
	}

	if err := w.writeHeader(header{}); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader(h header) error {
	buf := make([]byte, headerSize)
	buf[0] = h.version
	buf[1] = h.headerSize
	binary.LittleEndian.PutUint32(buf[2:], h.groupCount)

	if _, err := w.bw.Write(buf); err != nil {
		return d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryIO, "unable to write inventory header", w.path)
	}
	return nil
}

// WriteGroup appends one duplicate group to the inventory. The group is
// first encoded into a scratch buffer so its total byte length is known
// up front: the wire format prefixes every group with a u32 payload
// length, letting a reader skip a group it doesn't care about without
// decoding it field by field.
func (w *Writer) WriteGroup(group Group) error {
	var payload bytes.Buffer

	n := binary.PutUvarint(w.varintBuf, uint64(len(group.Files)))
	payload.Write(w.varintBuf[:n])

	for _, entry := range group.Files {
		writeEntry(&payload, w.varintBuf, entry)
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(payload.Len()))
	if _, err := w.bw.Write(lenBuf[:]); err != nil {
		return d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryIO, "unable to write group payload length", w.path)
	}
	if _, err := w.bw.Write(payload.Bytes()); err != nil {
		return d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryIO, "unable to write group payload", w.path)
	}

	w.groupCount++
	return nil
}

func writeEntry(buf *bytes.Buffer, varintBuf []byte, entry Entry) {
	var inoBuf [8]byte
	binary.LittleEndian.PutUint64(inoBuf[:], entry.Ino)
	buf.Write(inoBuf[:])

	pathBytes := []byte(entry.Path)
	n := binary.PutUvarint(varintBuf, uint64(len(pathBytes)))
	buf.Write(varintBuf[:n])
	buf.Write(pathBytes)
}

// Close flushes any buffered group data, rewrites the header with the
// final group count, and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		w.file.Close()
		return d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryIO, "unable to flush inventory body", w.path)
	}

	buf := make([]byte, headerSize)
	buf[0] = CurrentVersion
	buf[1] = headerSize
	binary.LittleEndian.PutUint32(buf[2:], w.groupCount)

	if _, err := w.file.WriteAt(buf, 0); err != nil {
		w.file.Close()
		return d2fnerr.NewInventoryIOError(err, d2fnerr.CodeInventoryIO, "unable to rewrite inventory header", w.path).
			WithOffset(0)
	}

	return w.file.Close()
}
