// Package reportname generates and parses default output filenames for
// scan reports and inventories when a caller hasn't chosen a path of their
// own. Names carry a nanosecond timestamp so that repeated scan runs
// against the same directory never collide and sort in run order.
//
// Filename format: kind_timestamp.ext, e.g. "inventory_1690000000000000000.bin".
package reportname

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nastools/d2fn/pkg/filesys"
)

// Generate returns a new default filename for kind (e.g. "inventory",
// "report") with the given extension (without a leading dot).
func Generate(kind, ext string) string {
	return fmt.Sprintf("%s_%d.%s", kind, time.Now().UnixNano(), ext)
}

// ParseTimestamp extracts the nanosecond timestamp embedded in a name
// produced by Generate. It returns an error if name doesn't match the
// kind_timestamp.ext shape.
func ParseTimestamp(name, kind string) (int64, error) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, kind+"_") {
		return 0, fmt.Errorf("filename %s does not start with expected prefix %s_", base, kind)
	}

	withoutPrefix := strings.TrimPrefix(base, kind+"_")
	withoutExt := strings.SplitN(withoutPrefix, ".", 2)[0]

	ts, err := strconv.ParseInt(withoutExt, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse timestamp from %s: %w", base, err)
	}
	return ts, nil
}

// Latest finds the most recently generated file of the given kind and
// extension within dir, relying on the fact that Generate's timestamps
// are monotonically increasing and therefore sort lexicographically in
// creation order.
func Latest(dir, kind, ext string) (string, error) {
	pattern := filepath.Join(dir, kind+"_*."+ext)

	matches, err := filesys.ReadDir(pattern)
	if err != nil {
		return "", fmt.Errorf("failed to read directory with pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", nil
	}

	slices.Sort(matches)
	return matches[len(matches)-1], nil
}
