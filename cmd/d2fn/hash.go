package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nastools/d2fn/internal/hashx"
	"github.com/nastools/d2fn/pkg/d2fnerr"
	"github.com/nastools/d2fn/pkg/scanopts"
)

type hashFlags struct {
	full     bool
	hashSize string
}

func newHashCmd() *cobra.Command {
	flags := &hashFlags{}

	cmd := &cobra.Command{
		Use:   "hash <file>",
		Short: "Print a file's BLAKE3 content hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.full, "full", false, "hash the entire file instead of the leading window")
	cmd.Flags().StringVar(&flags.hashSize, "hash-size", "1m", "bytes of leading content to hash (ignored with --full)")

	return cmd
}

func runHash(path string, flags *hashFlags) error {
	mode := hashx.HeadMode()

	if flags.full {
		mode = hashx.Full()
	} else if flags.hashSize != "" {
		n, err := scanopts.ParseSize(flags.hashSize)
		if err != nil {
			return d2fnerr.NewValidationError("invalid --hash-size").
				WithField("hash-size").WithProvided(flags.hashSize)
		}
		mode = hashx.Part(n)
	}

	sum, err := hashx.Checksum(path, mode)
	if err != nil {
		return err
	}

	fmt.Println(hex.EncodeToString(sum[:]))
	return nil
}
