package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdmir/internal/ui/pretty"
)

// Command groups listed in help output.
const (
	groupStages = "stages"
	groupTools  = "tools"
)

// flagGap separates the flag column from its description.
const flagGap = 3

func commandGroups() []*cobra.Group {
	return []*cobra.Group{
		{ID: groupStages, Title: "Pipeline Stages:"},
		{ID: groupTools, Title: "Tools:"},
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ examples .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}
{{- $cmds := .Commands}}
{{- range $group := .Groups}}

{{ heading $group.Title }}
{{- range $cmds}}{{if and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ trim . }}

{{ end }}` + usageTemplate

// helpTheme maps help elements onto the shared output styles.
type helpTheme struct {
	heading lipgloss.Style
	command lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpTheme(styles *pretty.Styles) helpTheme {
	return helpTheme{
		heading: styles.SummaryTitle,
		command: styles.NodeKind,
		name:    styles.TokenKind,
		flag:    styles.Attribute,
		dim:     styles.Dim,
	}
}

func (t helpTheme) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":  t.heading.Render,
		"command":  t.command.Render,
		"name":     t.name.Render,
		"examples": t.examples,
		"flags":    t.flags,
		"rpad":     rpad,
		"trim":     strings.TrimSpace,
	}
}

// examples dims the "# comment" part of each example line.
func (t helpTheme) examples(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if command, comment, found := strings.Cut(line, " # "); found {
			lines[i] = command + " " + t.dim.Render("# "+comment)
		}
	}
	return strings.Join(lines, "\n")
}

type flagRow struct {
	names string
	usage string
}

// flags lays out a flag set as two aligned columns: names with the value
// placeholder, then the usage with its default.
func (t helpTheme) flags(set *pflag.FlagSet) string {
	var rows []flagRow
	width := 0

	set.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}

		placeholder, usage := pflag.UnquoteUsage(f)
		if placeholder != "" {
			names += " " + placeholder
		}
		if def := defaultText(f); def != "" {
			usage += " " + t.dim.Render("(default "+def+")")
		}

		rows = append(rows, flagRow{names: names, usage: usage})
		width = max(width, len(names))
	})

	lines := make([]string, len(rows))
	for i, row := range rows {
		pad := strings.Repeat(" ", width-len(row.names)+flagGap)
		lines[i] = "  " + t.flag.Render(row.names) + pad + row.usage
	}
	return strings.Join(lines, "\n")
}

// defaultText returns the default worth showing for f, or "" for zero
// values.
func defaultText(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// applyHelp installs the styled help and usage output on cmd and its
// subcommands. Colors are resolved when help is printed, so --color and
// the command's output writer are honored.
func applyHelp(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return executeHelp(command, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := executeHelp(command, "help", helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

func executeHelp(cmd *cobra.Command, name, text string) error {
	theme := newHelpTheme(outputStyles(cmd))

	tmpl, err := template.New(name).Funcs(theme.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// rpad pads str with spaces to padding bytes.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
