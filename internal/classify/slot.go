// Package classify implements the (extension, size) bucketing strategy
// that lets the deduplication engine avoid hashing singleton files — the
// overwhelming majority of real trees — until a second member of the same
// bucket actually appears.
package classify

import "github.com/nastools/d2fn/internal/hashx"

// Key is the classification bucket a record falls into: its extension
// code and exact byte size. It exists purely as a map key.
type Key struct {
	Ext  ExtensionCode
	Size uint64
}

// recordIndex mirrors the engine's RecordIndex type (an index into its
// append-only record store) without importing the engine package, keeping
// classify free of a dependency cycle.
type recordIndex = int

// Slot is the tagged-variant state machine attached to a single
// ClassifyingKey. It starts as firstSeen (only a record index is known —
// nothing has been hashed yet) and transitions exactly once, on the
// bucket's second collision, to observed (a set of partial hashes seen so
// far). The transition is one-way: an observed slot never reverts.
type Slot interface {
	isSlot()
}

// firstSeen records the first record to land in a (ext, size) bucket. Its
// content has deliberately not been hashed yet — hashing it is deferred
// until a second record collides into the same bucket, since most buckets
// never see a second member.
type firstSeen struct {
	index recordIndex
}

func (firstSeen) isSlot() {}

// observed records the set of partial hashes seen so far for a bucket
// that has received at least two records. Membership in this set is what
// the push algorithm consults to decide whether a newly arriving record's
// partial hash is itself a duplicate hit or a fresh hash value.
type observed struct {
	hashes map[hashx.Sum]struct{}
}

func (*observed) isSlot() {}

// NewFirstSeen constructs the initial slot state for a bucket's first record.
func NewFirstSeen(index int) Slot {
	return firstSeen{index: index}
}

// FirstSeenIndex reports the record index held by slot if it is still in
// the firstSeen state.
func FirstSeenIndex(slot Slot) (int, bool) {
	fs, ok := slot.(firstSeen)
	if !ok {
		return 0, false
	}
	return fs.index, true
}

// ObservedHashes reports the partial-hash set held by slot if it has
// transitioned to the observed state.
func ObservedHashes(slot Slot) (map[hashx.Sum]struct{}, bool) {
	obs, ok := slot.(*observed)
	if !ok {
		return nil, false
	}
	return obs.hashes, true
}

// PromoteToObserved transitions a firstSeen slot into the observed state,
// seeding its hash set with the previously-stored record's partial hash.
// Callers must only invoke this once per key, at the moment a second
// record collides into a bucket that was still firstSeen.
func PromoteToObserved(previousHash hashx.Sum) Slot {
	hashes := make(map[hashx.Sum]struct{}, 4)
	hashes[previousHash] = struct{}{}
	return &observed{hashes: hashes}
}

// Insert records hash as seen for an already-observed slot.
func (o *observed) Insert(hash hashx.Sum) {
	o.hashes[hash] = struct{}{}
}

// InsertObserved records hash as seen on slot, which must already be in
// the observed state (the caller is expected to have promoted it via
// PromoteToObserved on the bucket's second collision). It panics if slot
// is still firstSeen, since that would indicate a push-algorithm bug
// rather than a recoverable runtime condition.
func InsertObserved(slot Slot, hash hashx.Sum) {
	slot.(*observed).Insert(hash)
}
