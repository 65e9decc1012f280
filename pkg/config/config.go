// Package config defines the configuration types for mdmir.
// These types are pure data structures with no dependency on the loader.
package config

// Default values.
const (
	DefaultWireFormat = "json"
	DefaultMaxHeading = 6
	DefaultFlavor     = "commonmark"
	DefaultYAMLIndent = 2
)

// WireConfig controls the token and tree serialization used by the
// tokenize and parse commands.
type WireConfig struct {
	// Format is "json" or "yaml".
	Format string `mapstructure:"format" yaml:"format"`

	// Indent is the number of spaces per level; 0 means compact JSON.
	Indent int `mapstructure:"indent" yaml:"indent"`
}

// RenderConfig controls HTML output.
type RenderConfig struct {
	// MaxHeading clamps heading depth to h1..hN.
	MaxHeading int `mapstructure:"max_heading" yaml:"max_heading"`

	// DetectLanguage guesses a language class for code blocks without an
	// info string.
	DetectLanguage bool `mapstructure:"detect_language" yaml:"detect_language"`

	// Template is a path to a page template. Empty renders bare fragments
	// for render and the built-in page for convert.
	Template string `mapstructure:"template" yaml:"template"`

	// Title overrides the page title, which otherwise comes from the first
	// heading.
	Title string `mapstructure:"title" yaml:"title"`
}

// ConvertConfig controls batch conversion.
type ConvertConfig struct {
	// Extensions lists the file extensions treated as Markdown.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Exclude contains glob patterns for files and directories to skip.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// Jobs is the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// OutDir receives the generated HTML; empty writes next to the source.
	OutDir string `mapstructure:"out_dir" yaml:"out_dir"`
}

// CompareConfig controls the reference comparison.
type CompareConfig struct {
	// Flavor is the reference grammar: "commonmark" or "gfm".
	Flavor string `mapstructure:"flavor" yaml:"flavor"`
}

// Config is the root configuration structure.
type Config struct {
	Wire    WireConfig    `mapstructure:"wire"    yaml:"wire"`
	Render  RenderConfig  `mapstructure:"render"  yaml:"render"`
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`
	Compare CompareConfig `mapstructure:"compare" yaml:"compare"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Wire: WireConfig{
			Format: DefaultWireFormat,
		},
		Render: RenderConfig{
			MaxHeading: DefaultMaxHeading,
		},
		Convert: ConvertConfig{
			Extensions: []string{".md", ".markdown"},
			Exclude:    []string{"node_modules/**", "vendor/**"},
			Jobs:       0,
		},
		Compare: CompareConfig{
			Flavor: DefaultFlavor,
		},
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.Convert.Extensions != nil {
		clone.Convert.Extensions = append([]string(nil), c.Convert.Extensions...)
	}
	if c.Convert.Exclude != nil {
		clone.Convert.Exclude = append([]string(nil), c.Convert.Exclude...)
	}

	return &clone
}
