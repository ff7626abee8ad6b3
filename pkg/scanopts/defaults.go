package scanopts

const (
	// DefaultCompareSize is the number of leading bytes hashed for a
	// Part-mode partial hash when no --compare-size flag is given.
	DefaultCompareSize uint64 = 1024 * 1024

	// MinCompareSize guards against a Part(0) request, which the hasher
	// rejects with a HashConfigError.
	MinCompareSize uint64 = 1

	// MaxCompareSize caps --compare-size at 4 GiB; larger prefixes defeat
	// the purpose of a partial hash and should use --full instead.
	MaxCompareSize uint64 = 4 * 1024 * 1024 * 1024

	// DefaultProgressStep is how many scanned files elapse between
	// StatusReport sends when progress reporting is enabled.
	DefaultProgressStep uint64 = 500
)

// defaultOptions holds the baseline configuration for a scan run.
var defaultOptions = Options{
	Verify:       false,
	CompareSize:  DefaultCompareSize,
	ProgressStep: 0,
}

// NewDefaultOptions returns a copy of the baseline scan configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
