package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Setting documents one configuration key.
type Setting struct {
	// Section is the top-level table, e.g. "render".
	Section string

	// Name is the key within the section, e.g. "max_heading".
	Name string

	// Description is a one-line explanation for templates and help text.
	Description string
}

// Key returns the dotted key, e.g. "render.max_heading".
func (s Setting) Key() string {
	return s.Section + "." + s.Name
}

// settings lists every key in the order it appears in templates.
//
//nolint:gochecknoglobals // Read-only lookup table.
var settings = []Setting{
	{"wire", "format", "Serialization format for tokenize and parse output: json or yaml"},
	{"wire", "indent", "Spaces per nesting level. 0 writes compact JSON; YAML always indents"},
	{"render", "max_heading", "Deepest heading tag emitted. Deeper headings are clamped to it (1-6)"},
	{"render", "detect_language", "Guess a language class for code blocks that have no info string"},
	{"render", "template", "Path to a page template using {{.Title}} and {{.Content}}"},
	{"render", "title", "Page title. Defaults to the text of the first heading"},
	{"convert", "extensions", "File extensions treated as Markdown when walking directories"},
	{"convert", "exclude", "Glob patterns for files and directories to skip"},
	{"convert", "jobs", "Number of parallel workers (0 = one per CPU)"},
	{"convert", "out_dir", "Directory for generated HTML. Empty writes next to each source file"},
	{"compare", "flavor", "Reference grammar for the compare command: commonmark or gfm"},
}

// Settings returns every configuration key in template order.
func Settings() []Setting {
	return append([]Setting(nil), settings...)
}

// Defaults returns the NewConfig values keyed by dotted setting key.
func Defaults() (map[string]any, error) {
	data, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var sections map[string]map[string]any
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}

	values := make(map[string]any, len(settings))
	for _, setting := range settings {
		values[setting.Key()] = sections[setting.Section][setting.Name]
	}

	return values, nil
}
