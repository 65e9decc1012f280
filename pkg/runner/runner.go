package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdmir/internal/logging"
	"github.com/yaklabco/mdmir/pkg/fsutil"
)

// ConvertFunc turns one Markdown source into its generated output.
type ConvertFunc func(ctx context.Context, path string, src []byte) ([]byte, error)

// Runner converts discovered files with a bounded worker pool.
type Runner struct {
	// Convert produces the output for each file.
	Convert ConvertFunc
}

// New creates a new Runner with the given conversion.
func New(convert ConvertFunc) *Runner {
	return &Runner{Convert: convert}
}

// Run discovers files under opts.Paths and converts them concurrently.
// A failing file is recorded in its outcome and does not stop the others.
// The returned outcomes are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	if opts.OutDir != "" && !filepath.IsAbs(opts.OutDir) {
		opts.OutDir = filepath.Join(workDir, opts.OutDir)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[i] = r.process(groupCtx, path, workDir, opts)
			return nil
		})
	}

	// Workers never return errors; failures live in the outcomes.
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome, opts.DryRun)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// process converts and writes a single file.
func (r *Runner) process(ctx context.Context, path, workDir string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	ctx = logging.WithFields(ctx, logging.FieldPath, path)

	if ctx.Err() != nil {
		outcome.Error = ctx.Err()
		return outcome
	}

	src, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	output, err := fsutil.OutputPath(path, workDir, opts.OutDir, OutputExtension)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Output = output

	content, err := r.Convert(ctx, path, src)
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}
	outcome.Bytes = len(content)

	if opts.DryRun {
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, output, content, fsutil.DefaultFileMode)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Written = written

	logging.FromContext(ctx).Debug("converted file",
		logging.FieldOutput, output,
		logging.FieldBytes, outcome.Bytes,
		logging.FieldWritten, written,
	)

	return outcome
}
