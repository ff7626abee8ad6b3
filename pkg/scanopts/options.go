// Package scanopts provides the functional-options configuration surface
// for a single scan/dedup run: whether to verify, what prefix size to
// compare, how often to report progress, and which scan filter to apply.
package scanopts

import "github.com/nastools/d2fn/internal/scanfilter"

// Options defines the configurable parameters for one scan run.
type Options struct {
	// Verify enables the post-discovery full-hash verification pass
	// (§4.5): partial-hash groups are re-checked against whole-file
	// content before being trusted.
	Verify bool

	// CompareSize is the number of leading bytes used for the Part-mode
	// partial hash. Ignored when Verify promotes a group to full-hash
	// comparison.
	CompareSize uint64

	// ProgressStep is how many scanned files elapse between progress
	// reports. Zero disables progress reporting entirely.
	ProgressStep uint64

	// Filter selects which candidate files enter the engine at all.
	// Defaults to scanfilter.NoFilter{} when unset.
	Filter scanfilter.Filter
}

// OptionFunc mutates an Options value during construction.
type OptionFunc func(*Options)

// WithDefaultOptions resets Options to the package baseline.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.Verify = opts.Verify
		o.CompareSize = opts.CompareSize
		o.ProgressStep = opts.ProgressStep
	}
}

// WithVerify enables or disables the full-hash verification pass.
func WithVerify(verify bool) OptionFunc {
	return func(o *Options) {
		o.Verify = verify
	}
}

// WithCompareSize sets the partial-hash prefix size, clamped to
// [MinCompareSize, MaxCompareSize].
func WithCompareSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size < MinCompareSize {
			size = MinCompareSize
		}
		if size > MaxCompareSize {
			size = MaxCompareSize
		}
		o.CompareSize = size
	}
}

// WithProgressStep sets how many scanned files elapse between progress
// reports. A step of zero disables progress reporting.
func WithProgressStep(step uint64) OptionFunc {
	return func(o *Options) {
		o.ProgressStep = step
	}
}

// WithFilter sets the scan filter applied to every discovered candidate.
func WithFilter(filter scanfilter.Filter) OptionFunc {
	return func(o *Options) {
		if filter != nil {
			o.Filter = filter
		}
	}
}
