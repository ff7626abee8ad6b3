// Package report renders a completed scan's duplicate groups into the two
// human-facing output formats the CLI offers: an HTML summary and a
// directly-runnable shell script (§6.4). Both formats are built from the
// same normalized view of a group so they can never disagree about which
// file is the keeper or how much space a group would reclaim.
package report

import "github.com/nastools/d2fn/internal/dup"

// FileView is one file within a rendered group.
type FileView struct {
	Path string
	Ino  uint64
	Size uint64
}

// GroupView is a duplicate group normalized for rendering: its first
// record is always the keeper (§4.6 — first inserted becomes the keeper
// for link-application), and Savings is the space reclaimable by
// collapsing every other member onto the keeper's inode.
type GroupView struct {
	Keeper     FileView
	Duplicates []FileView
	Savings    uint64
}

// BuildViews converts engine groups into the view model templates render.
// Groups with fewer than two records are dropped — they carry no
// reclaimable space and should never have reached this stage anyway.
func BuildViews(groups []dup.Group) []GroupView {
	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		if len(g.Records) < 2 {
			continue
		}

		keeper := toFileView(g.Records[0])
		dupes := make([]FileView, 0, len(g.Records)-1)
		var savings uint64
		for _, rec := range g.Records[1:] {
			dupes = append(dupes, toFileView(rec))
			savings += rec.Metadata.Size
		}

		views = append(views, GroupView{Keeper: keeper, Duplicates: dupes, Savings: savings})
	}
	return views
}

func toFileView(rec dup.FileRecord) FileView {
	return FileView{Path: rec.Path, Ino: rec.Metadata.Ino, Size: rec.Metadata.Size}
}

// TotalSavings sums every group's reclaimable space.
func TotalSavings(views []GroupView) uint64 {
	var total uint64
	for _, v := range views {
		total += v.Savings
	}
	return total
}
