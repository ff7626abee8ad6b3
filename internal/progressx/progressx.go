// Package progressx drains an Engine's status channel and renders it as a
// terminal progress indicator (§4.9/§5). Rendering is silent whenever
// stderr is not a terminal — a scan piped into a file or run under cron
// must not accumulate megabytes of carriage-return noise.
package progressx

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/nastools/d2fn/internal/dup"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Reporter consumes StatusReport values from an Engine and reflects them
// onto stderr (when interactive) and into the structured log (always:
// each report at debug level and a final summary at info level — the bar
// is for a human watching, the log is for whoever greps the output later).
type Reporter struct {
	log *zap.SugaredLogger
	bar *progressbar.ProgressBar
}

// New constructs a Reporter. A live terminal bar is drawn only when
// IsInteractive reports that stderr is a terminal.
func New(log *zap.SugaredLogger) *Reporter {
	interactive := IsInteractive()

	var bar *progressbar.ProgressBar
	if interactive {
		bar = progressbar.NewOptions(
			-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	return &Reporter{log: log, bar: bar}
}

// IsInteractive reports whether stderr is attached to a terminal. Progress
// rendering and other human-facing decoration should be gated on this.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Run drains status until the channel is closed or ctx is done, updating
// the terminal bar (if interactive) and periodically logging a snapshot.
func (r *Reporter) Run(ctx context.Context, status <-chan dup.StatusReport) {
	var last dup.StatusReport

	for {
		select {
		case <-ctx.Done():
			r.finish(last)
			return
		case report, ok := <-status:
			if !ok {
				r.finish(last)
				return
			}
			last = report
			r.render(report)
		}
	}
}

func (r *Reporter) render(report dup.StatusReport) {
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf(
			"scanned %s, %s duplicated, last: %s",
			humanize.Comma(int64(report.Scanned)),
			humanize.Comma(int64(report.Duplicated)),
			report.LastFile,
		))
		_ = r.bar.Add(1)
	}
	r.log.Debugw("scan progress", "scanned", report.Scanned, "duplicated", report.Duplicated, "lastFile", report.LastFile)
}

func (r *Reporter) finish(last dup.StatusReport) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	r.log.Infow("scan progress finished", "scanned", last.Scanned, "duplicated", last.Duplicated)
}
