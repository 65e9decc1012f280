package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmir/internal/logging"
	"github.com/yaklabco/mdmir/pkg/config"
	"github.com/yaklabco/mdmir/pkg/mdast"
	"github.com/yaklabco/mdmir/pkg/parser"
	"github.com/yaklabco/mdmir/pkg/render"
	"github.com/yaklabco/mdmir/pkg/reporter"
	"github.com/yaklabco/mdmir/pkg/runner"
)

// ErrConversionFailed is returned when at least one file failed to convert.
var ErrConversionFailed = errors.New("conversion failed")

type convertFlags struct {
	render         renderFlags
	outDir         string
	jobs           int
	exclude        []string
	dryRun         bool
	fragment       bool
	followSymlinks bool
	quiet          bool
	report         string
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:     "convert [paths...]",
		Short:   "Convert Markdown files to HTML pages",
		Long:    convertLongDescription,
		Example: convertExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	flags.render.register(cmd)
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "write outputs under this directory, mirroring the source tree")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to exclude")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing any output")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "write bare HTML fragments instead of pages")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symbolic links during discovery")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "only report failures")
	cmd.Flags().StringVar(&flags.report, "report", "text", "report format: text, summary, json")

	return cmd
}

const convertExamples = `  mdmir convert < README.md > README.html   # Single page through pipes
  mdmir convert docs/                       # Convert a directory in place
  mdmir convert --out-dir site docs/        # Mirror docs/ into site/
  mdmir convert --dry-run --report json .   # Report without writing`

const convertLongDescription = `Convert Markdown files to HTML.

With no paths, reads Markdown from standard input and writes a complete HTML
page to standard output. With paths, every matching file under them is
converted concurrently and written next to its source with an .html
extension, or under --out-dir with the source layout mirrored.

Outputs whose content is unchanged are left untouched. A file that fails to
convert is reported and does not stop the others.`

func (f *convertFlags) overrides() []flagOverride {
	return append(f.render.overrides(),
		flagOverride{"out-dir", "convert.out_dir", func() any { return f.outDir }},
		flagOverride{"jobs", "convert.jobs", func() any { return f.jobs }},
		flagOverride{"exclude", "convert.exclude", func() any { return f.exclude }},
	)
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	cfg, err := loadConfig(cmd, flags.overrides()...)
	if err != nil {
		return err
	}

	conv, err := newHTMLConverter(cfg, flags.fragment)
	if err != nil {
		return err
	}

	reportFormat, err := reporter.ParseFormat(flags.report)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		src, name, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		logger.Debug("converting single input", logging.FieldInput, name, logging.FieldBytes, len(src))
		return conv.write(cmd.OutOrStdout(), parser.ParseBytes(src))
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     cfg.Convert.Extensions,
		ExcludeGlobs:   cfg.Convert.Exclude,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Convert.Jobs,
		OutDir:         cfg.Convert.OutDir,
		DryRun:         flags.dryRun,
	}

	logger.Debug("starting conversion",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	start := time.Now()
	result, err := runner.New(conv.convert).Run(commandContext(cmd), runOpts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	logger.Debug("conversion finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesUnchanged, result.Stats.FilesUnchanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start),
	)

	return reportConversion(cmd, result, reportFormat, flags)
}

func reportConversion(cmd *cobra.Command, result *runner.Result, format reporter.Format, flags *convertFlags) error {
	colorMode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer: cmd.OutOrStdout(),
		Format: format,
		Color:  colorMode,
		Quiet:  flags.quiet,
		DryRun: flags.dryRun,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(commandContext(cmd), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if !result.HasFailures() {
		return nil
	}

	failures := []error{ErrConversionFailed}
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			failures = append(failures, fmt.Errorf("%s: %w", outcome.Path, outcome.Error))
		}
	}
	return errors.Join(failures...)
}

// htmlConverter renders parsed documents as fragments or complete pages.
type htmlConverter struct {
	renderer *render.Renderer
	page     *render.Page
	title    string
}

// newHTMLConverter prepares a converter from the render configuration.
// A nil page means fragments are written.
func newHTMLConverter(cfg *config.Config, fragment bool) (*htmlConverter, error) {
	conv := &htmlConverter{
		renderer: render.New(render.Options{
			MaxHeading:     cfg.Render.MaxHeading,
			DetectLanguage: cfg.Render.DetectLanguage,
		}),
		title: cfg.Render.Title,
	}

	if !fragment {
		page, err := render.LoadPage(cfg.Render.Template)
		if err != nil {
			return nil, err
		}
		conv.page = page
	}

	return conv, nil
}

// write renders root to w.
func (c *htmlConverter) write(w io.Writer, root *mdast.Node) error {
	if c.page == nil {
		return c.renderer.Render(w, root)
	}
	return c.renderer.RenderPage(w, c.page, root, c.title)
}

// convert is the runner.ConvertFunc for one Markdown file.
func (c *htmlConverter) convert(_ context.Context, _ string, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.write(&buf, parser.ParseBytes(src)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
