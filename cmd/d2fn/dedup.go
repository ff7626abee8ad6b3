package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nastools/d2fn/internal/inventory"
	"github.com/nastools/d2fn/internal/linkapply"
)

type dedupFlags struct {
	dryRun bool
}

func newDedupCmd() *cobra.Command {
	flags := &dedupFlags{}

	cmd := &cobra.Command{
		Use:   "dedup <inventory-path>",
		Short: "Apply an inventory file, replacing duplicates with hard links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedup(args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "list what would change without touching the filesystem")

	return cmd
}

func runDedup(path string, flags *dedupFlags) error {
	log := loggerFor("dedup")

	r, err := inventory.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	if flags.dryRun {
		return printDryRun(r)
	}

	applier := linkapply.New(log)
	outcomes, err := applier.ApplyAll(r)
	if err != nil {
		return err
	}

	var linked, skipped, failed int
	for _, o := range outcomes {
		switch {
		case o.Error != nil:
			failed++
		case o.Skipped:
			skipped++
		default:
			linked++
		}
	}

	fmt.Printf("applied %s: %d linked, %d already linked, %d failed\n",
		humanize.Comma(int64(len(outcomes))), linked, skipped, failed)
	return nil
}

// printDryRun reports the groups an inventory would apply without
// touching the filesystem, treating each group's first entry as the
// keeper the way linkapply.Applier does.
func printDryRun(r *inventory.Reader) error {
	fmt.Printf("%d group(s) recorded\n", r.Total())

	for {
		group, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if len(group.Files) < 2 {
			continue
		}

		keeper := group.Files[0]
		fmt.Printf("keeper: %s (inode %d)\n", keeper.Path, keeper.Ino)
		for _, dup := range group.Files[1:] {
			if dup.Ino == keeper.Ino {
				fmt.Printf("  already linked: %s\n", dup.Path)
				continue
			}
			fmt.Printf("  would link: %s\n", dup.Path)
		}
	}
}
