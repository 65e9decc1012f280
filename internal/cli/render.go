package cli

import (
	"github.com/spf13/cobra"
)

// renderFlags holds the flags shared by render and convert.
type renderFlags struct {
	template       string
	title          string
	maxHeading     int
	detectLanguage bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.template, "template", "", "page template file wrapping the HTML")
	cmd.Flags().StringVar(&f.title, "title", "", "page title (default: text of the first heading)")
	cmd.Flags().IntVar(&f.maxHeading, "max-heading", 0, "deepest heading element to emit, 1-6")
	cmd.Flags().BoolVar(&f.detectLanguage, "detect-language", false,
		"guess a language class for code blocks without an info string")
}

func (f *renderFlags) overrides() []flagOverride {
	return []flagOverride{
		{"template", "render.template", func() any { return f.template }},
		{"title", "render.title", func() any { return f.title }},
		{"max-heading", "render.max_heading", func() any { return f.maxHeading }},
		{"detect-language", "render.detect_language", func() any { return f.detectLanguage }},
	}
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}
	var markdown bool
	var page bool

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document tree as HTML",
		Long: `Read a document tree produced by "mdmir parse" and write its HTML.

The output is a bare HTML fragment unless --page is set or a page template is
configured, in which case the fragment is wrapped in a complete page. With
--markdown the input is Markdown source instead of a serialized tree.`,
		Example: `  mdmir parse --markdown README.md | mdmir render
  mdmir render --markdown --page --title Notes notes.md
  mdmir render --template page.tmpl tree.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags.overrides()...)
			if err != nil {
				return err
			}

			opts, err := wireOptions(cfg)
			if err != nil {
				return err
			}

			conv, err := newHTMLConverter(cfg, !page && cfg.Render.Template == "")
			if err != nil {
				return err
			}

			root, err := readTree(cmd, args, markdown, opts.Format, true)
			if err != nil {
				return err
			}

			return conv.write(cmd.OutOrStdout(), root)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&markdown, "markdown", false, "read Markdown source instead of a tree")
	cmd.Flags().BoolVar(&page, "page", false, "wrap the fragment in a complete HTML page")

	return cmd
}
