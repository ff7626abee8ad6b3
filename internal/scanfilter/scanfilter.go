// Package scanfilter defines the predicate that decides whether a
// discovered file is a dedup candidate at all, before it ever reaches the
// classification index.
package scanfilter

import (
	"path/filepath"
	"strings"
)

// Candidate is the minimal view of a discovered file a Filter needs: its
// path and size. It intentionally excludes inode/link-count so filters
// cannot depend on dedup-internal bookkeeping.
type Candidate struct {
	Path string
	Size uint64
}

// Filter decides whether a candidate file should be pushed into the
// deduplication engine at all.
type Filter interface {
	Allow(c Candidate) bool
}

// NoFilter accepts every candidate.
type NoFilter struct{}

// Allow always returns true.
func (NoFilter) Allow(Candidate) bool {
	return true
}

// DefaultExtensions is the stock media/archive/document whitelist (§6).
// Matching is case-insensitive by design: the Rust source compared raw
// bytes case-sensitively against a lowercase list, silently rejecting
// "FOO.PDF" even though the extension-code hash (package classify) treats
// it identically to "foo.pdf" — the open question in the distilled spec's
// Design Notes flags this as unintentional, and this implementation takes
// the documented fix: lower-case before comparing.
var DefaultExtensions = []string{
	// Document
	"pdf", "mdx", "epub", "djvu", "xps",
	// Build artifact
	"class", "exe", "dll", "so", "bin", "apk",
	// Archive
	"zip", "rar", "7z", "iso", "tar", "tgz", "bak",
	// Audio
	"mp3", "wav", "flac", "ape", "ogg", "aac",
	// Video
	"mp4", "rm", "mkv", "avi", "mov", "wmv", "flv", "webm", "rmvb", "f4v", "mpg", "mpeg", "ts",
	// Image
	"jpg", "bmp", "jpeg", "gif", "png", "webp", "tiff",
}

// ExtensionWhitelist accepts only files whose extension matches one of a
// fixed set, compared case-insensitively.
type ExtensionWhitelist struct {
	set map[string]struct{}
}

// NewExtensionWhitelist builds a whitelist filter from a list of
// extensions (without the leading dot). Extensions are lower-cased at
// construction time so Allow never has to re-normalize the whitelist.
func NewExtensionWhitelist(extensions []string) ExtensionWhitelist {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return ExtensionWhitelist{set: set}
}

// NewDefaultWhitelist builds the stock media/archive/document filter.
func NewDefaultWhitelist() ExtensionWhitelist {
	return NewExtensionWhitelist(DefaultExtensions)
}

// Allow returns true iff the candidate's extension (lower-cased) is a
// member of the whitelist. A missing extension never matches.
func (w ExtensionWhitelist) Allow(c Candidate) bool {
	ext := filepath.Ext(c.Path)
	if ext == "" {
		return false
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	_, ok := w.set[ext]
	return ok
}
