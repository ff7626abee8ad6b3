package classify

import (
	"testing"

	"github.com/nastools/d2fn/internal/hashx"
)

func TestFirstSeenRoundTrip(t *testing.T) {
	slot := NewFirstSeen(7)
	idx, ok := FirstSeenIndex(slot)
	if !ok || idx != 7 {
		t.Fatalf("FirstSeenIndex() = (%d, %v), want (7, true)", idx, ok)
	}
	if _, ok := ObservedHashes(slot); ok {
		t.Fatalf("a firstSeen slot must not report observed hashes")
	}
}

func TestPromoteToObservedSeedsPreviousHash(t *testing.T) {
	prev := hashx.Sum{1, 2, 3}
	slot := PromoteToObserved(prev)

	hashes, ok := ObservedHashes(slot)
	if !ok {
		t.Fatalf("promoted slot must report observed hashes")
	}
	if _, present := hashes[prev]; !present {
		t.Fatalf("promoted slot must seed the previous record's hash")
	}
	if _, ok := FirstSeenIndex(slot); ok {
		t.Fatalf("an observed slot must not report a first-seen index")
	}
}

func TestObservedInsertAccumulates(t *testing.T) {
	slot := PromoteToObserved(hashx.Sum{1})
	obs := slot.(*observed)
	obs.Insert(hashx.Sum{2})

	hashes, _ := ObservedHashes(slot)
	if len(hashes) != 2 {
		t.Fatalf("expected 2 distinct hashes after insert, got %d", len(hashes))
	}
}
