package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmir/pkg/parser"
	"github.com/yaklabco/mdmir/pkg/scanner"
)

func newInspectCommand() *cobra.Command {
	var tokens bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the document tree or token stream for humans",
		Long: `Parse Markdown and print its document tree with box-drawing guides.

With --tokens the classified token stream is printed as a table instead,
with non-printing characters spelled out.`,
		Example: `  mdmir inspect README.md
  mdmir inspect --tokens README.md
  echo '# Hi' | mdmir inspect --color always`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			styles := outputStyles(cmd)
			out := cmd.OutOrStdout()

			if tokens {
				if _, err := io.WriteString(out, styles.FormatTokens(scanner.Tokenize(src))); err != nil {
					return fmt.Errorf("write tokens: %w", err)
				}
				return nil
			}

			if err := styles.WriteTree(out, parser.ParseBytes(src)); err != nil {
				return fmt.Errorf("write tree: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tokens, "tokens", false, "print the token stream instead of the tree")

	return cmd
}
