// Package dup implements the core content-addressed deduplication engine:
// discovery of candidate files, inode-suppressed classification into
// (extension, size) buckets, deferred two-tier hashing, and grouping of
// the records that turn out to share content.
package dup

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/nastools/d2fn/internal/classify"
	"github.com/nastools/d2fn/internal/hashx"
	"github.com/nastools/d2fn/internal/metadata"
	"github.com/nastools/d2fn/internal/scanfilter"
	"github.com/nastools/d2fn/pkg/d2fnerr"
	"github.com/nastools/d2fn/pkg/scanopts"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned when attempting to perform operations on a
// closed Engine.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

// defaultCapacity seeds the engine's internal maps and slices so a typical
// NAS-scale tree (on the order of a million files) doesn't force repeated
// map growth during discovery.
const defaultCapacity = 1_000_000

// Engine is the in-memory deduplication index for a single scan run. It is
// not safe for concurrent use from multiple goroutines: the scan loop
// (Discover/Push) is intentionally single-threaded so hashing work is
// deferred exactly once per classification bucket, per the push algorithm
// below.
type Engine struct {
	log    *zap.SugaredLogger
	opts   scanopts.Options
	closed atomic.Bool

	root string

	// records is the append-only store every RecordIndex points into.
	records []FileRecord

	// inodeSet suppresses re-processing a file the engine has already
	// recorded, which both avoids double-counting hard links discovered
	// twice under different paths and bounds work to one push per inode.
	inodeSet map[uint64]struct{}

	// classIndex maps (extension, size) to the one-way firstSeen ->
	// observed state machine (package classify) that defers hashing
	// until a bucket's second collision.
	classIndex map[classify.Key]classify.Slot

	// hashToRecords maps a partial content hash to every record index that
	// produced it. The verify pass in Result groups by full hash in a
	// separate map and leaves this one unchanged.
	hashToRecords map[hashx.Sum][]RecordIndex

	// status, if non-nil, receives a StatusReport every opts.ProgressStep
	// pushes.
	status chan<- StatusReport

	// conflicts counts, across the most recent Result() verify pass, how
	// many full-hash groups a split partial-hash entry produced, summed
	// over every entry that split (§4.5).
	conflicts uint64
}

// Config holds the parameters needed to construct a new Engine.
type Config struct {
	// Root is the directory tree Discover walks. Unused if the caller
	// only intends to call Push directly.
	Root string
	// Options configures filtering, partial-hash window, verification,
	// and progress reporting for this scan run.
	Options scanopts.Options
	// Logger receives structured diagnostics. Required.
	Logger *zap.SugaredLogger
	// Status, if set, receives progress snapshots. Optional.
	Status chan<- StatusReport
}

// New constructs an Engine ready to accept Push calls or run Discover.
func New(config *Config) (*Engine, error) {
	if config == nil || config.Logger == nil {
		return nil, d2fnerr.NewValidationError("engine configuration requires a logger").
			WithField("Logger")
	}

	filter := config.Options.Filter
	if filter == nil {
		filter = scanfilter.NoFilter{}
	}
	opts := config.Options
	opts.Filter = filter

	return &Engine{
		log:           config.Logger,
		opts:          opts,
		root:          config.Root,
		records:       make([]FileRecord, 0, defaultCapacity),
		inodeSet:      make(map[uint64]struct{}, defaultCapacity),
		classIndex:    make(map[classify.Key]classify.Slot, defaultCapacity),
		hashToRecords: make(map[hashx.Sum][]RecordIndex, defaultCapacity),
		status:        config.Status,
	}, nil
}

// Close marks the engine unusable. The engine holds no external resources
// of its own (no open files, no background goroutines), so Close exists
// chiefly to make the lifecycle symmetric with the rest of the codebase
// and to reject stray use-after-close calls.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	return nil
}

// Discover walks root, applies the configured filter, and pushes every
// surviving regular file into the engine. Per-file errors (an unreadable
// file, a hash failure) are logged and skipped — per the failure taxonomy,
// only a structural failure of the walk itself aborts the scan.
func (e *Engine) Discover(ctx context.Context) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	var scanned, duplicated uint64

	walkErr := filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			e.log.Warnw("walk error, skipping entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if isHidden(d.Name()) && path != e.root {
				return fs.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			e.log.Warnw("unable to stat entry, skipping", "path", path, "error", err)
			return nil
		}
		if info.Size() == 0 {
			return nil
		}

		meta, _ := metadata.FromFileInfo(info)
		if !e.opts.Filter.Allow(scanfilter.Candidate{Path: path, Size: meta.Size}) {
			return nil
		}

		if err := e.Push(FileRecord{Path: path, Metadata: meta}); err != nil {
			e.log.Warnw("unable to push file, skipping", "path", path, "error", err)
			return nil
		}

		scanned++
		if slot, ok := e.classIndex[classify.Key{Ext: classify.Hash(path), Size: meta.Size}]; ok {
			if _, observed := classify.ObservedHashes(slot); observed {
				duplicated++
			}
		}
		e.maybeReportProgress(scanned, duplicated, path)

		return nil
	})
	if walkErr != nil {
		return d2fnerr.NewDiscoveryError(walkErr, "directory walk failed", e.root)
	}

	return nil
}

func (e *Engine) maybeReportProgress(scanned, duplicated uint64, lastFile string) {
	if e.status == nil || e.opts.ProgressStep == 0 {
		return
	}
	if scanned%e.opts.ProgressStep != 0 {
		return
	}
	select {
	case e.status <- StatusReport{Scanned: scanned, Duplicated: duplicated, LastFile: lastFile}:
	default:
	}
}

// isHidden reports whether name (a base name, not a full path) starts with
// a dot, mirroring the filter_hidden_items(true) behavior of the original
// walker.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "."
}

// partialMode is the Mode used for a classification bucket's first and
// second collision check.
func (e *Engine) partialMode() hashx.Mode {
	if e.opts.CompareSize == 0 {
		return hashx.HeadMode()
	}
	return hashx.Part(e.opts.CompareSize)
}

// Push records a single file, classifying it and, only on a second
// collision within its (extension, size) bucket, hashing it and its
// bucket-mate. This is the engine's append algorithm (§4.4):
//
//  1. Files sharing an inode with one already recorded are ignored — the
//     inode-dedupe invariant (I1) guards against re-processing hard links.
//  2. The file is appended to the record store unconditionally.
//  3. Its (extension, size) classification bucket is consulted:
//     - empty: the bucket is seeded with this record's index, unhashed.
//     - firstSeen: this is the bucket's second member. Both records are
//       now hashed and the bucket transitions (one-way) to observed,
//       seeded with the first record's hash.
//     - observed: only this record needs hashing; its hash is inserted
//       into the bucket's set and into the global hash-to-records map.
func (e *Engine) Push(file FileRecord) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	// An inode of zero means the platform reported none (see
	// metadata.FromFileInfo); such records are never suppressed.
	if file.Metadata.Ino != 0 {
		if _, seen := e.inodeSet[file.Metadata.Ino]; seen {
			return nil
		}
		e.inodeSet[file.Metadata.Ino] = struct{}{}
	}

	index := len(e.records)
	e.records = append(e.records, file)

	key := classify.Key{Ext: classify.Hash(file.Path), Size: file.Metadata.Size}

	slot, exists := e.classIndex[key]
	if !exists {
		e.classIndex[key] = classify.NewFirstSeen(index)
		return nil
	}

	hash, err := hashx.Checksum(file.Path, e.partialMode())
	if err != nil {
		return fmt.Errorf("hash pushed file %s: %w", file.Path, err)
	}

	if prevIndex, ok := classify.FirstSeenIndex(slot); ok {
		previous := e.records[prevIndex]
		previousHash, err := hashx.Checksum(previous.Path, e.partialMode())
		if err != nil {
			return fmt.Errorf("hash bucket predecessor %s: %w", previous.Path, err)
		}

		slot = classify.PromoteToObserved(previousHash)
		e.classIndex[key] = slot
		e.hashToRecords[previousHash] = append(e.hashToRecords[previousHash], prevIndex)
	}

	classify.InsertObserved(slot, hash)
	e.hashToRecords[hash] = append(e.hashToRecords[hash], index)

	return nil
}

// Group is one set of records the engine believes share identical content.
type Group struct {
	Records []FileRecord
}

// Result returns every group of two or more records that collided on
// content hash. When Options.Verify is set, each partial-hash group is
// additionally re-hashed in full before being trusted (§4.5) — a shared
// 1 MiB prefix is not proof of identical content for larger files, and
// the full-hash pass splits any group whose members diverge past the
// partial-hash window.
func (e *Engine) Result() ([]Group, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	e.conflicts = 0

	if !e.opts.Verify {
		return e.groupsFromHashIndex(e.hashToRecords), nil
	}

	verified := make(map[hashx.Sum][]RecordIndex, len(e.hashToRecords))
	for _, indices := range e.hashToRecords {
		if len(indices) < 2 {
			continue
		}

		// local groups indices by full hash within this one partial-hash
		// entry, per §4.5, so the conflict counter reflects how many
		// full-hash groups a split partial entry produced rather than
		// how many entries merged into the same full hash globally.
		local := make(map[hashx.Sum][]RecordIndex, len(indices))
		for _, idx := range indices {
			full, err := hashx.Checksum(e.records[idx].Path, hashx.Full())
			if err != nil {
				return nil, fmt.Errorf("verify full hash of %s: %w", e.records[idx].Path, err)
			}
			local[full] = append(local[full], idx)
		}

		if len(local) > 1 {
			e.conflicts += uint64(len(local))
		}
		for full, members := range local {
			verified[full] = append(verified[full], members...)
		}
	}
	return e.groupsFromHashIndex(verified), nil
}

// ConflictCount reports how many full-hash groups the most recent verify
// pass produced while splitting a partial-hash entry whose members did not
// actually share full content (§4.5). It is reset by every Result() call
// and stays zero when Options.Verify is unset.
func (e *Engine) ConflictCount() uint64 {
	return e.conflicts
}

func (e *Engine) groupsFromHashIndex(idx map[hashx.Sum][]RecordIndex) []Group {
	groups := make([]Group, 0, len(idx))
	for _, indices := range idx {
		if len(indices) < 2 {
			continue
		}
		records := make([]FileRecord, len(indices))
		for i, recIdx := range indices {
			records[i] = e.records[recIdx]
		}
		groups = append(groups, Group{Records: records})
	}
	return groups
}

// Records returns the full append-only record store discovered so far.
// Callers must treat the returned slice as read-only.
func (e *Engine) Records() []FileRecord {
	return e.records
}
