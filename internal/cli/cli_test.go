package cli_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmir/internal/cli"
	"github.com/yaklabco/mdmir/internal/configloader"
	"github.com/yaklabco/mdmir/pkg/fsutil"
	"github.com/yaklabco/mdmir/pkg/wire"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "mdmir", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expected := []string{"tokenize", "parse", "render", "convert", "inspect", "compare", "init", "version"}
	for _, name := range expected {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, "subcommand %q", name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color", "format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{"tokenize", []string{"indent"}},
		{"parse", []string{"indent", "markdown"}},
		{"render", []string{"markdown", "page", "template", "title", "max-heading", "detect-language"}},
		{"convert", []string{
			"out-dir", "jobs", "exclude", "dry-run", "fragment", "follow-symlinks",
			"quiet", "report", "template", "title", "max-heading", "detect-language",
		}},
		{"inspect", []string{"tokens"}},
		{"compare", []string{"flavor"}},
		{"init", []string{"force", "full", "output"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			subCmd, _, err := cmd.Find([]string{testCase.command})
			require.NoError(t, err)

			for _, name := range testCase.flags {
				assert.NotNil(t, subCmd.Flags().Lookup(name), "flag %q on %s", name, testCase.command)
			}
		})
	}
}

func TestConvertCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	convertCmd, _, err := cmd.Find([]string{"convert"})
	require.NoError(t, err)

	assert.NoError(t, convertCmd.Args(convertCmd, []string{"a.md", "b.md", "docs/"}))
}

func TestSingleInputCommandsRejectExtraArgs(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"tokenize", "parse", "render", "inspect", "compare"} {
		cmd := cli.NewRootCommand(testInfo())
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err)

		assert.Error(t, subCmd.Args(subCmd, []string{"a.md", "b.md"}), name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, out, "mdmir")
	assert.Contains(t, out, "test")
}

func TestHelpShowsExamples(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "tokenize", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Examples:")
	assert.Contains(t, out, "mdmir tokenize README.md")
	assert.Contains(t, out, "# JSON token stream")
	assert.Contains(t, out, "Global Flags:")
	assert.Regexp(t, `--indent int\s+spaces per nesting level`, out)
	assert.Regexp(t, `--color string\s+colorize output: auto, always, never \(default "auto"\)`, out)
}

func TestRootHelpGroupsCommands(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "--help")
	require.NoError(t, err)

	stages := strings.Index(out, "Pipeline Stages:")
	tools := strings.Index(out, "Tools:")
	require.NotEqual(t, -1, stages)
	require.Greater(t, tools, stages)

	for _, name := range []string{"tokenize", "parse", "render"} {
		pos := strings.Index(out, "\n  "+name+" ")
		assert.True(t, pos > stages && pos < tools, "%s listed under pipeline stages", name)
	}
	for _, name := range []string{"convert", "inspect", "compare", "init", "version", "help"} {
		assert.Greater(t, strings.Index(out, "\n  "+name+" "), tools, "%s listed under tools", name)
	}
	assert.NotContains(t, out, "Additional Commands:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"outlines differ", cli.ErrOutlinesDiffer, cli.ExitFailure},
		{"conversion failed", errors.Join(cli.ErrConversionFailed, errors.New("a.md: boom")), cli.ExitFailure},
		{"no input", cli.ErrNoInput, cli.ExitInvalidUsage},
		{"invalid config", errors.Join(&configloader.ValidationError{Field: "wire.format"}), cli.ExitConfigError},
		{"malformed tokens", fmt.Errorf("stdin: %w", wire.ErrMalformedTokens), cli.ExitDataError},
		{"unknown kind", wire.ErrUnknownKind, cli.ExitDataError},
		{"missing file", fmt.Errorf("read: %w", fsutil.ErrNotFound), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, cli.ExitCode(testCase.err))
		})
	}
}

func TestIsReported(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsReported(cli.ErrOutlinesDiffer))
	assert.True(t, cli.IsReported(errors.Join(cli.ErrConversionFailed, errors.New("x"))))
	assert.False(t, cli.IsReported(cli.ErrNoInput))
	assert.False(t, cli.IsReported(nil))
}
