package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmir/internal/logging"
	"github.com/yaklabco/mdmir/pkg/mdast"
	"github.com/yaklabco/mdmir/pkg/parser"
	"github.com/yaklabco/mdmir/pkg/wire"
)

func newParseCommand() *cobra.Command {
	var indent int
	var markdown bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Build a document tree from a token stream",
		Long: `Read a token stream produced by "mdmir tokenize" and write the document
tree built from it.

With --markdown the input is Markdown source, which is tokenized first.
The input and output use the same wire format.`,
		Example: `  mdmir tokenize README.md | mdmir parse
  mdmir parse --markdown README.md
  mdmir parse --format yaml tokens.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flagOverride{"indent", "wire.indent", func() any { return indent }})
			if err != nil {
				return err
			}

			opts, err := wireOptions(cfg)
			if err != nil {
				return err
			}

			root, err := readTree(cmd, args, markdown, opts.Format, false)
			if err != nil {
				return err
			}

			if err := wire.EncodeTree(cmd.OutOrStdout(), root, opts); err != nil {
				return fmt.Errorf("write tree: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&indent, "indent", 0, "spaces per nesting level (0 = compact JSON)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "read Markdown source instead of a token stream")

	return cmd
}

// readTree produces a document tree from the command input. The input is
// Markdown source when markdown is set, a serialized tree when isTree is
// set, and a serialized token stream otherwise.
func readTree(cmd *cobra.Command, args []string, markdown bool, format wire.Format, isTree bool) (*mdast.Node, error) {
	data, name, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	var root *mdast.Node
	switch {
	case markdown:
		root = parser.ParseBytes(data)
	case isTree:
		root, err = wire.DecodeTree(bytes.NewReader(data), format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	default:
		tokens, err := wire.DecodeTokens(bytes.NewReader(data), format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		root = parser.Parse(tokens)
	}

	logging.FromContext(commandContext(cmd)).Debug("built document tree",
		logging.FieldInput, name,
		logging.FieldNodes, mdast.CountNodes(root),
	)

	return root, nil
}
