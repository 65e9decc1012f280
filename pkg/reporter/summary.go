package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdmir/internal/ui/pretty"
	"github.com/yaklabco/mdmir/pkg/runner"
)

// SummaryReporter writes failures followed by a statistics block.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Clean files are never listed.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	failed := writeOutcomes(r.bw, r.styles, result, true)
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return failed, nil
}
