package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmir/internal/logging"
	"github.com/yaklabco/mdmir/pkg/scanner"
	"github.com/yaklabco/mdmir/pkg/wire"
)

func newTokenizeCommand() *cobra.Command {
	var indent int

	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Split Markdown into a token stream",
		Long: `Scan Markdown source and write the classified token stream.

Each token carries its kind, its exact source bytes, and the line and column
where it starts. The stream always ends with a single eof token. Reads the
named file, or standard input when no file is given.`,
		Example: `  mdmir tokenize README.md                 # JSON token stream
  mdmir tokenize --format yaml README.md   # YAML token stream
  cat notes.md | mdmir tokenize --indent 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flagOverride{"indent", "wire.indent", func() any { return indent }})
			if err != nil {
				return err
			}

			src, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			opts, err := wireOptions(cfg)
			if err != nil {
				return err
			}

			tokens := scanner.Tokenize(src)
			logging.FromContext(commandContext(cmd)).Debug("tokenized input",
				logging.FieldInput, name,
				logging.FieldBytes, len(src),
				logging.FieldTokens, len(tokens),
			)

			if err := wire.EncodeTokens(cmd.OutOrStdout(), tokens, opts); err != nil {
				return fmt.Errorf("write tokens: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&indent, "indent", 0, "spaces per nesting level (0 = compact JSON)")

	return cmd
}
