package dup

// StatusReport is a point-in-time snapshot of scan progress, sent on the
// engine's optional status channel every ProgressStep pushes (§4.9). A
// zero-value ProgressStep in the configured Options disables the channel
// entirely — Discover never sends without a consumer configured.
type StatusReport struct {
	// Scanned is the total number of records pushed so far, including
	// files later found to be duplicates.
	Scanned uint64
	// Duplicated is the number of pushed records whose classification
	// bucket was already in the observed state right after the push,
	// i.e. every bucket member after the first. A bucket's first record
	// is not counted.
	Duplicated uint64
	// LastFile is the path most recently pushed.
	LastFile string
}
