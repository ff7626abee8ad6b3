package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nastools/d2fn/internal/dup"
	"github.com/nastools/d2fn/internal/inventory"
	"github.com/nastools/d2fn/internal/progressx"
	"github.com/nastools/d2fn/internal/report"
	"github.com/nastools/d2fn/internal/scanfilter"
	"github.com/nastools/d2fn/pkg/d2fnapi"
	"github.com/nastools/d2fn/pkg/d2fnerr"
	"github.com/nastools/d2fn/pkg/filesys"
	"github.com/nastools/d2fn/pkg/reportname"
	"github.com/nastools/d2fn/pkg/scanopts"
)

type scanFlags struct {
	verify      bool
	compareSize string
	format      string
	output      string
	filter      string
	progress    bool
}

func newScanCmd() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Walk a directory tree and find duplicate files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.verify, "verify", false, "re-hash full file content before trusting a partial-hash match")
	cmd.Flags().StringVar(&flags.compareSize, "compare-size", "1m", "bytes of leading content to hash for the partial-hash pass")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "html", "report format: html, script, or inventory")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (defaults to a generated file name; \"-\" writes html or script output to stdout)")
	cmd.Flags().StringVar(&flags.filter, "filter", "default", "candidate filter: default (whitelist) or none")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "show a live progress indicator on stderr")

	return cmd
}

func runScan(cmd *cobra.Command, root string, flags *scanFlags) error {
	compareSize, err := scanopts.ParseSize(flags.compareSize)
	if err != nil {
		return d2fnerr.NewValidationError("invalid --compare-size").
			WithField("compare-size").WithProvided(flags.compareSize)
	}

	var filter scanfilterFilter
	switch flags.filter {
	case "default":
		filter = scanfilter.NewDefaultWhitelist()
	case "none":
		filter = scanfilter.NoFilter{}
	default:
		return d2fnerr.NewValidationError("unknown --filter value").
			WithField("filter").WithProvided(flags.filter)
	}

	var status chan dup.StatusReport
	if flags.progress {
		status = make(chan dup.StatusReport, 16)
	}

	inst, err := d2fnapi.NewInstance("scan", root, status,
		scanopts.WithVerify(flags.verify),
		scanopts.WithCompareSize(compareSize),
		scanopts.WithFilter(filter),
		scanopts.WithProgressStep(scanopts.DefaultProgressStep),
	)
	if err != nil {
		return err
	}
	defer inst.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var reporterDone chan struct{}
	if status != nil {
		reporter := progressx.New(loggerFor("scan"))
		reporterDone = make(chan struct{})
		go func() {
			defer close(reporterDone)
			reporter.Run(ctx, status)
		}()
	}

	discoverErr := inst.Discover(ctx)

	// The engine only ever sends on status from within Discover, so it is
	// safe to close here: closing signals progressx.Reporter.Run to finish
	// rendering and return, per the progress channel's close-on-completion
	// contract.
	if status != nil {
		close(status)
		<-reporterDone
	}

	if discoverErr != nil {
		return discoverErr
	}

	groups, err := inst.Result()
	if err != nil {
		return err
	}

	if flags.verify {
		if conflicts := inst.ConflictCount(); conflicts > 0 {
			loggerFor("scan").Infow("verify pass split partial-hash collisions", "conflicts", conflicts)
		}
	}

	if flags.output != "" {
		if err := filesys.CreateDir(filepath.Dir(flags.output), 0o755, true); err != nil {
			return d2fnerr.NewValidationError("unable to create output directory").
				WithField("output").WithProvided(flags.output)
		}
	}

	switch flags.format {
	case "html":
		return writeReport(flags.output, "report", "html", groups, report.WriteHTML)
	case "script":
		return writeReport(flags.output, "report", "sh", groups, report.WriteScript)
	case "inventory":
		path := flags.output
		if path == "" {
			path = reportname.Generate("inventory", "bin")
		}
		if err := writeInventory(path, groups); err != nil {
			return err
		}
		loggerFor("scan").Infow("inventory written", "path", path)
		return nil
	default:
		return d2fnerr.NewValidationError("unknown --format value").
			WithField("format").WithProvided(flags.format)
	}
}

// writeReport renders groups with render to path, or to a freshly
// generated default filename when path is empty. Pass "-" to write to
// stdout instead of a file.
func writeReport(path, kind, ext string, groups []dup.Group, render func(io.Writer, []report.GroupView) error) error {
	views := report.BuildViews(groups)

	if path == "-" {
		return render(os.Stdout, views)
	}
	if path == "" {
		path = reportname.Generate(kind, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return d2fnerr.NewValidationError("unable to create output file").
			WithField("output").WithProvided(path)
	}
	defer f.Close()

	if err := render(f, views); err != nil {
		return err
	}
	loggerFor("scan").Infow("report written", "path", path)
	return nil
}

// scanfilterFilter is a local alias so this file doesn't need to repeat
// the scanfilter package qualifier on every filter variable.
type scanfilterFilter = scanfilter.Filter

// writeInventory converts the engine's groups into inventory.Group wire
// records and streams them to path (stdout is not seekable enough for the
// inventory writer's header rewrite, so an explicit file is required).
func writeInventory(path string, groups []dup.Group) error {
	if path == "" {
		return d2fnerr.NewValidationError("--format inventory requires --output").
			WithField("output")
	}

	w, err := inventory.Create(path)
	if err != nil {
		return err
	}

	for _, g := range groups {
		if len(g.Records) < 2 {
			continue
		}
		entry := inventory.Group{Files: make([]inventory.Entry, len(g.Records))}
		for i, rec := range g.Records {
			entry.Files[i] = inventory.Entry{Ino: rec.Metadata.Ino, Path: rec.Path}
		}
		if err := w.WriteGroup(entry); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}
