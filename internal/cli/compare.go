package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmir/internal/logging"
	"github.com/yaklabco/mdmir/pkg/compare"
)

// ErrOutlinesDiffer is returned when the document outline differs from the
// reference parse. It only signals the exit code; the diff is already printed.
var ErrOutlinesDiffer = errors.New("outlines differ")

func newCompareCommand() *cobra.Command {
	var flavor string

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Compare the document outline against a CommonMark parse",
		Long: `Parse Markdown with both mdmir and a reference CommonMark parser, reduce each
tree to a block outline, and print the differences.

Exits with status 1 when the outlines differ, so the command can gate CI.`,
		Example: `  mdmir compare README.md
  mdmir compare --flavor gfm README.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flagOverride{"flavor", "compare.flavor", func() any { return flavor }})
			if err != nil {
				return err
			}

			src, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			report := compare.Compare(src, compare.Options{Flavor: cfg.Compare.Flavor})
			logging.FromContext(commandContext(cmd)).Debug("compared outlines",
				logging.FieldInput, name,
				logging.FieldFlavor, cfg.Compare.Flavor,
				logging.FieldDifferences, report.OursOnly+report.ReferenceOnly,
			)

			styles := outputStyles(cmd)
			out := cmd.OutOrStdout()

			if !report.Equal() {
				if _, err := io.WriteString(out, styles.FormatOutlineDiff(name, cfg.Compare.Flavor, report)); err != nil {
					return fmt.Errorf("write diff: %w", err)
				}
			}
			if _, err := io.WriteString(out, styles.FormatCompareSummary(report)); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}

			if !report.Equal() {
				return ErrOutlinesDiffer
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", compare.FlavorCommonMark, "reference grammar: commonmark, gfm")

	return cmd
}
