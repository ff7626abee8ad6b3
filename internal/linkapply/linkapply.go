// Package linkapply replays an inventory file against the live filesystem,
// collapsing each duplicate group onto a single inode via hard links
// (§4.8). It never reads file content — the inventory is trusted as the
// record of what was already proven identical by the scan that produced
// it.
package linkapply

import (
	"os"

	"github.com/nastools/d2fn/internal/inventory"
	"github.com/nastools/d2fn/pkg/d2fnerr"
	"go.uber.org/zap"
)

// Outcome records what happened to one non-keeper file in a group.
type Outcome struct {
	Path    string
	Skipped bool
	Error   error
}

// Applier walks an inventory's groups and applies hard links, logging and
// continuing past any single-file failure rather than aborting the run.
type Applier struct {
	log *zap.SugaredLogger
}

// New constructs an Applier.
func New(log *zap.SugaredLogger) *Applier {
	return &Applier{log: log}
}

// ApplyGroup treats group.Files[0] as the keeper and replaces every other
// file with a hard link to it. A destination already sharing the keeper's
// inode is left untouched (it is already deduplicated). The keeper itself
// is never unlinked.
func (a *Applier) ApplyGroup(group inventory.Group) []Outcome {
	if len(group.Files) < 2 {
		return nil
	}

	keeper := group.Files[0]
	outcomes := make([]Outcome, 0, len(group.Files)-1)

	for _, dup := range group.Files[1:] {
		if dup.Ino == keeper.Ino {
			outcomes = append(outcomes, Outcome{Path: dup.Path, Skipped: true})
			continue
		}

		if err := applyOne(keeper.Path, dup.Path); err != nil {
			a.log.Warnw("unable to apply hard link", "keeper", keeper.Path, "duplicate", dup.Path, "error", err)
			outcomes = append(outcomes, Outcome{Path: dup.Path, Error: err})
			continue
		}

		outcomes = append(outcomes, Outcome{Path: dup.Path})
	}

	return outcomes
}

// ApplyAll reads every group from r and applies it, returning the combined
// outcomes across all groups in encounter order.
func (a *Applier) ApplyAll(r *inventory.Reader) ([]Outcome, error) {
	var all []Outcome
	for {
		group, ok, err := r.Next()
		if err != nil {
			return all, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, a.ApplyGroup(group)...)
	}
}

// applyOne unlinks destination and replaces it with a hard link to keeper.
// The unlink-then-link sequence is not atomic: a crash between the two
// steps leaves destination missing. Callers that need atomicity should
// link to a temporary name first and rename over destination instead; this
// implementation uses the simpler two-step form.
func applyOne(keeper, destination string) error {
	if err := os.Remove(destination); err != nil {
		return d2fnerr.NewLinkApplyError(err, d2fnerr.CodeLinkUnlinkFailure, "unable to remove duplicate before linking", destination).
			WithKeeper(keeper)
	}

	if err := os.Link(keeper, destination); err != nil {
		return d2fnerr.NewLinkApplyError(err, d2fnerr.CodeLinkCreateFailure, "unable to create hard link", destination).
			WithKeeper(keeper)
	}

	return nil
}
