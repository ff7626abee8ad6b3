// Command d2fn scans a directory tree for duplicate files, reports
// reclaimable space, and can replace duplicates with hard links to the
// file that was first seen in each group. See the scan, dedup, hash,
// tape, and archive subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nastools/d2fn/pkg/d2fnerr"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		printFatal(err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "d2fn",
		Short:         "Content-addressed duplicate file finder for large NAS trees",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newDedupCmd())
	cmd.AddCommand(newHashCmd())
	cmd.AddCommand(newTapeCmd())
	cmd.AddCommand(newArchiveCmd())
	return cmd
}

// printFatal prints the causal chain of a structural error, the same way
// every layer below the CLI already reports its own wrapped cause.
func printFatal(err error) {
	fmt.Fprintf(os.Stderr, "d2fn: error: %+v\n", err)
}

// exitCodeFor maps a structural error to a process exit code. Input
// validation mistakes exit 2 (the conventional "bad usage" code); every
// other structural failure exits 1.
func exitCodeFor(err error) int {
	if d2fnerr.ErrorCode(err) == d2fnerr.CodeInvalidInput {
		return 2
	}
	return 1
}
