// Package cli provides the Cobra command structure for mdmir.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmir/internal/logging"
)

// Persistent flag names shared by every subcommand.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagColor  = "color"
	flagFormat = "format"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdmir command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var format string

	rootCmd := &cobra.Command{
		Use:   "mdmir",
		Short: "Tokenize, parse and render Markdown through an inspectable IR",
		Long: `mdmir turns Markdown into a classified token stream, builds a document
tree from the tokens, and renders the tree as HTML.

Every stage can be run on its own. Token streams and trees are exchanged as
JSON or YAML, so each step can be inspected, diffed, or fed from another tool.
Non-printing characters such as zero-width spaces, byte order marks and
no-break spaces are kept as their own tokens instead of disappearing into text.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			logger := logging.Default().With(logging.FieldCommand, cmd.Name())
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().String(flagColor, "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&format, flagFormat, "",
		"wire format for token streams and trees: json, yaml (default from config)")

	rootCmd.AddGroup(commandGroups()...)
	rootCmd.SetHelpCommandGroupID(groupTools)
	rootCmd.SetCompletionCommandGroupID(groupTools)

	addToGroup(rootCmd, groupStages,
		newTokenizeCommand(),
		newParseCommand(),
		newRenderCommand(),
	)
	addToGroup(rootCmd, groupTools,
		newConvertCommand(),
		newInspectCommand(),
		newCompareCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)

	applyHelp(rootCmd)

	return rootCmd
}

func addToGroup(parent *cobra.Command, groupID string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.GroupID = groupID
		parent.AddCommand(cmd)
	}
}
