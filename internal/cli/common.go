package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdmir/internal/configloader"
	"github.com/yaklabco/mdmir/internal/logging"
	"github.com/yaklabco/mdmir/internal/ui/pretty"
	"github.com/yaklabco/mdmir/pkg/config"
	"github.com/yaklabco/mdmir/pkg/fsutil"
	"github.com/yaklabco/mdmir/pkg/wire"
)

// stdinArg names standard input explicitly on the command line.
const stdinArg = "-"

// stdinName identifies standard input in log output.
const stdinName = "<stdin>"

// ErrNoInput is returned when a command would read from an interactive
// terminal because no file argument was given.
var ErrNoInput = errors.New("no input: pass a file argument or pipe data on stdin")

// flagOverride maps a command-line flag to the configuration key it sets.
type flagOverride struct {
	flag  string
	key   string
	value func() any
}

// commandContext returns the command context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the layered configuration. Only flags the user
// actually set override configuration files and environment variables.
func loadConfig(cmd *cobra.Command, overrides ...flagOverride) (*config.Config, error) {
	logger := logging.FromContext(commandContext(cmd))

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	values := make(map[string]any)
	if cmd.Flags().Changed(flagFormat) {
		format, err := cmd.Flags().GetString(flagFormat)
		if err != nil {
			return nil, fmt.Errorf("get format flag: %w", err)
		}
		values["wire.format"] = format
	}
	for _, override := range overrides {
		if cmd.Flags().Changed(override.flag) {
			values[override.key] = override.value()
		}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Overrides:    values,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// wireOptions builds codec options from the resolved configuration.
func wireOptions(cfg *config.Config) (wire.Options, error) {
	format, err := wire.ParseFormat(cfg.Wire.Format)
	if err != nil {
		return wire.Options{}, err
	}
	return wire.Options{Format: format, Indent: cfg.Wire.Indent}, nil
}

// readInput reads the file named by the first argument, or standard input
// when there is none. An interactive terminal on standard input is
// rejected with ErrNoInput rather than waiting for typed input.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) > 0 && args[0] != stdinArg {
		data, _, err := fsutil.ReadFile(commandContext(cmd), args[0])
		if err != nil {
			return nil, "", err
		}
		return data, args[0], nil
	}

	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return nil, "", ErrNoInput
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	return data, stdinName, nil
}

// outputStyles returns pretty styles for the command's output writer,
// honoring the --color flag.
func outputStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}
