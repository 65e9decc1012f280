package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdmir/internal/ui/pretty"
	"github.com/yaklabco/mdmir/pkg/runner"
)

// TextReporter writes one line per file followed by a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	failed := writeOutcomes(r.bw, r.styles, result, r.opts.Quiet)

	if !r.opts.Quiet {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}

// writeOutcomes lists each file, skipping clean ones when quiet is set,
// and returns the number of failures.
func writeOutcomes(w *bufio.Writer, styles *pretty.Styles, result *runner.Result, quiet bool) int {
	var failed int

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			failed++
		} else if quiet {
			continue
		}
		fmt.Fprint(w, styles.FormatOutcome(outcome))
	}

	return failed
}
