package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmir/internal/configloader"
	"github.com/yaklabco/mdmir/internal/logging"
	"github.com/yaklabco/mdmir/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdmir configuration file",
		Long: `Create a new .mdmir.yml configuration file in the current directory.

The minimal template lists every setting commented out, so the defaults stay
in effect until a line is uncommented. The full template writes every
setting with its default value.`,
		Example: `  mdmir init                        # Create minimal .mdmir.yml
  mdmir init --full                 # Write every setting with its default
  mdmir init --output custom.yml    # Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: "+configloader.DefaultProjectFile+")")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.DefaultProjectFile
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := configloader.WriteTemplate(absPath, config.TemplateOptions{Full: flags.full}, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("settings can also be set through environment variables",
		"example", configloader.EnvVarName("wire.format"))

	return nil
}
