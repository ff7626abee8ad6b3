//go:build !linux

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// newTapeCmd is unavailable outside Linux: the tape package's ioctls are
// Linux SCSI-generic specific (see tape/ioctl.go).
func newTapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tape <device>",
		Short: "Inspect and position a SCSI tape drive (Linux only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("tape support is only built for linux")
		},
	}
}
