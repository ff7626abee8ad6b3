package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nastools/d2fn/internal/archivedb"
	"github.com/nastools/d2fn/internal/hashx"
	"github.com/nastools/d2fn/internal/metadata"
	"github.com/nastools/d2fn/pkg/d2fnerr"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <db-path>",
		Short: "Record which tape an archive landed on and which files it captured",
	}

	cmd.AddCommand(
		newArchiveRegisterTapeCmd(),
		newArchiveRecordCmd(),
		newArchiveListCmd(),
	)

	return cmd
}

func openArchiveDB(path string) (*archivedb.Store, error) {
	return archivedb.Open(path, loggerFor("archive"))
}

func newArchiveRegisterTapeCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "register-tape <db-path>",
		Short: "Register a new tape and print its assigned id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openArchiveDB(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.CreateTape(cmd.Context(), 0, description)
			if err != nil {
				return err
			}

			fmt.Println(id)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "human-readable label for the tape")
	return cmd
}

func newArchiveRecordCmd() *cobra.Command {
	var tapeFileIndex uint32

	cmd := &cobra.Command{
		Use:   "record <db-path> <tape-id> <file>",
		Short: "Hash a file, record it as an archive entry on a tape, and associate it by inode",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tapeID, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return d2fnerr.NewValidationError("invalid tape id").WithField("tape-id").WithProvided(args[1])
			}

			path := args[2]
			info, err := os.Stat(path)
			if err != nil {
				return d2fnerr.NewValidationError("unable to stat file").WithField("file").WithProvided(path)
			}
			meta, _ := metadata.FromFileInfo(info)

			sum, err := hashx.Checksum(path, hashx.Full())
			if err != nil {
				return err
			}

			store, err := openArchiveDB(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			archiveID, err := store.AppendArchive(ctx, archivedb.Archive{
				Tape:          uint8(tapeID),
				TapeFileIndex: tapeFileIndex,
				Size:          uint32(meta.Size),
				Hash:          [32]byte(sum),
				Timestamp:     uint64(time.Now().Unix()),
			})
			if err != nil {
				return err
			}

			if err := store.AppendFile(ctx, archivedb.FileOnDisk{
				Inode:   meta.Ino,
				Path:    path,
				Archive: uint64(archiveID),
			}); err != nil {
				return err
			}

			fmt.Println(archiveID)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&tapeFileIndex, "tape-file-index", 0, "file number within the tape this archive occupies")
	return cmd
}

func newArchiveListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <db-path> <inode>",
		Short: "List every archive association recorded for an inode, most recent first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inode, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return d2fnerr.NewValidationError("invalid inode").WithField("inode").WithProvided(args[1])
			}

			store, err := openArchiveDB(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			files, err := store.FilesByInode(cmd.Context(), inode)
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Printf("archive=%d path=%s version=%d\n", f.Archive, f.Path, f.Version)
			}
			return nil
		},
	}

	return cmd
}
