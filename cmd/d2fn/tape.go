//go:build linux

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nastools/d2fn/pkg/d2fnerr"
	"github.com/nastools/d2fn/tape"
)

func newTapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tape <device>",
		Short: "Inspect and position a SCSI tape drive",
	}

	cmd.AddCommand(
		newTapeStatusCmd(),
		newTapeStatusExCmd(),
		newTapeSimpleOpCmd("rewind", "rewind the tape", func(d *tape.Device, _ int32) error { return d.Rewind() }),
		newTapeSimpleOpCmd("offline", "rewind and unload the tape", func(d *tape.Device, _ int32) error { return d.RewindAndOffline() }),
		newTapeCountOpCmd("fsf", "forward-space count filemarks", (*tape.Device).ForwardSpaceFile),
		newTapeCountOpCmd("bsf", "backward-space count filemarks", (*tape.Device).BackwardSpaceFile),
		newTapeCountOpCmd("fsr", "forward-space count records", (*tape.Device).ForwardSpaceRecord),
		newTapeCountOpCmd("bsr", "backward-space count records", (*tape.Device).BackwardSpaceRecord),
		newTapeCountOpCmd("weof", "write count filemarks", (*tape.Device).WriteEOF),
		newTapeLocateCmd(),
		newTapeSetEOTCmd(),
		newTapeGetEOTCmd(),
		newTapeBlockLimitCmd(),
		newTapeLastErrorCmd(),
	)

	return cmd
}

func withDevice(devicePath string, fn func(*tape.Device) error) error {
	d, err := tape.Open(devicePath)
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(d)
}

func newTapeStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <device>",
		Short: "Print the drive's MTIOCGET status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(args[0], func(d *tape.Device) error {
				status, err := d.Status()
				if err != nil {
					return err
				}
				return printJSON(status)
			})
		},
	}
}

func newTapeStatusExCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status-ex <device>",
		Short: "Print the drive's extended (MTIOCEXTGET) XML status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(args[0], func(d *tape.Device) error {
				status, err := d.StatusEx()
				if err != nil {
					return err
				}
				return printJSON(status)
			})
		},
	}
}

func newTapeSimpleOpCmd(use, short string, op func(*tape.Device, int32) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <device>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(args[0], func(d *tape.Device) error { return op(d, 0) })
		},
	}
}

func newTapeCountOpCmd(use, short string, op func(*tape.Device, int32) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <device> [count]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := int32(1)
			if len(args) == 2 {
				n, err := strconv.ParseInt(args[1], 10, 32)
				if err != nil {
					return d2fnerr.NewValidationError("invalid count").WithField("count").WithProvided(args[1])
				}
				count = int32(n)
			}
			return withDevice(args[0], func(d *tape.Device) error { return op(d, count) })
		},
	}
}

func newTapeLocateCmd() *cobra.Command {
	var block, file, setmark uint64
	var toEOD, immediate bool

	cmd := &cobra.Command{
		Use:   "locate <device>",
		Short: "Position the tape at a block, file, or setmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := tape.NewLocationBuilder().Immediate(immediate)

			var loc tape.Location
			switch {
			case toEOD:
				loc = builder.EndOfData()
			case cmd.Flags().Changed("file"):
				loc = builder.File(file)
			case cmd.Flags().Changed("setmark"):
				loc = builder.Setmark(setmark)
			default:
				loc = builder.Block(block)
			}

			return withDevice(args[0], func(d *tape.Device) error { return d.Locate(loc) })
		},
	}

	cmd.Flags().Uint64Var(&block, "block", 0, "logical block address to seek to")
	cmd.Flags().Uint64Var(&file, "file", 0, "logical file number to seek to")
	cmd.Flags().Uint64Var(&setmark, "setmark", 0, "logical setmark number to seek to")
	cmd.Flags().BoolVar(&toEOD, "end-of-data", false, "seek to the end of recorded data")
	cmd.Flags().BoolVar(&immediate, "immediate", false, "return before positioning completes")

	return cmd
}

func newTapeGetEOTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-eot-model <device>",
		Short: "Print the drive's configured end-of-tape setmark count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(args[0], func(d *tape.Device) error {
				model, err := d.GetEOTModel()
				if err != nil {
					return err
				}
				fmt.Println(model.Setmarks())
				return nil
			})
		},
	}
}

func newTapeSetEOTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-eot-model <device> <1|2>",
		Short: "Set the drive's end-of-tape setmark count",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return d2fnerr.NewValidationError("invalid setmark count").WithField("setmarks").WithProvided(args[1])
			}

			var model tape.EotModel
			switch n {
			case 1:
				model = tape.OneSetmark()
			case 2:
				model = tape.TwoSetmarks()
			default:
				model = tape.Many(uint32(n))
			}

			return withDevice(args[0], func(d *tape.Device) error { return d.SetEOTModel(model) })
		},
	}
}

func newTapeBlockLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block-limit <device>",
		Short: "Print the drive's supported block size range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(args[0], func(d *tape.Device) error {
				limit, err := d.ReadBlockLimit()
				if err != nil {
					return err
				}
				return printJSON(limit)
			})
		},
	}
}

func newTapeLastErrorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last-error <device>",
		Short: "Print the drive's last SCSI error sense data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(args[0], func(d *tape.Device) error {
				errs, err := d.GetLastError()
				if err != nil {
					return err
				}
				return printJSON(errs)
			})
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
