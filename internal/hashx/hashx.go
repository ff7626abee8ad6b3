// Package hashx computes the 256-bit content hashes the classification
// index and verification pass rely on. It assumes BLAKE3's collision
// resistance: hash equality implies content equality (modulo the
// Part-mode prefix assumption — see Mode docs).
package hashx

import (
	"io"
	"os"

	"github.com/nastools/d2fn/pkg/d2fnerr"
	"lukechampine.com/blake3"
)

// scratchSize is the buffer size streamed through the hasher. 1 MiB
// amortizes syscall overhead across large files without holding an
// unreasonable amount of memory per concurrent hash (there is only ever
// one in flight, per the single-threaded engine model, but the size still
// matters for cache locality).
const scratchSize = 1024 * 1024

// Sum is a 256-bit BLAKE3 digest.
type Sum [32]byte

// Mode selects how much of a file's content is hashed.
type Mode struct {
	full bool
	n    uint64
}

// Full hashes the entire file.
func Full() Mode {
	return Mode{full: true}
}

// Part hashes only the first n bytes (or the whole file if it is shorter).
// HeadSize is the conventional default used for classification partial
// hashes (see scanopts.DefaultCompareSize).
func Part(n uint64) Mode {
	return Mode{n: n}
}

// HeadSize is the default partial-hash window, matching the Rust
// implementation's MODE_HEAD_1M.
const HeadSize uint64 = 1024 * 1024

// HeadMode is the conventional Part(HeadSize) mode used by the
// classification index's first collision check.
func HeadMode() Mode {
	return Part(HeadSize)
}

// Checksum opens path read-only and hashes it according to mode, stopping
// at EOF or at the mode's byte cap, whichever comes first. The last chunk
// read is truncated to the cap in Part mode so the digest never includes
// bytes beyond the requested window.
func Checksum(path string, mode Mode) (Sum, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sum{}, err
	}
	defer f.Close()

	return checksumReader(f, mode)
}

func checksumReader(r io.Reader, mode Mode) (Sum, error) {
	limit := mode.n
	if mode.full {
		limit = ^uint64(0)
	}
	if !mode.full && limit == 0 {
		return Sum{}, d2fnerr.NewHashConfigError(
			"partial hash requested with a zero-byte window", "Part(0)",
		).WithDetail("hint", "use hashx.Full() or a positive Part(n)")
	}

	hasher := blake3.New(32, nil)
	buf := make([]byte, scratchSize)

	var hashed uint64
	for hashed < limit {
		toRead := uint64(len(buf))
		if remain := limit - hashed; remain < toRead {
			toRead = remain
		}

		n, err := r.Read(buf[:toRead])
		if n > 0 {
			hasher.Write(buf[:n])
			hashed += uint64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Sum{}, err
		}
		if n == 0 {
			break
		}
	}

	var sum Sum
	copy(sum[:], hasher.Sum(nil))
	return sum, nil
}
