package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its default value.
	// If false, everything is commented out so the file changes nothing
	// until edited.
	Full bool
}

// GenerateTemplate creates a commented configuration file template populated
// with the default values.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	section := ""
	for _, doc := range settings {
		if doc.Section != section {
			section = doc.Section
			if opts.Full {
				fmt.Fprintf(&buf, "\n%s:\n", section)
			} else {
				fmt.Fprintf(&buf, "\n# %s:\n", section)
			}
		}

		value, err := renderValue(defaults[doc.Key()])
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", doc.Key(), err)
		}

		fmt.Fprintf(&buf, "  # %s\n", wrapComment(doc.Description, commentWrapWidth))
		writeSetting(&buf, doc.Name, value, !opts.Full)
	}

	return buf.Bytes(), nil
}

// renderValue formats a default value as the YAML that follows its key.
// Scalars stay on the key's line; lists become an indented block.
func renderValue(value any) (string, error) {
	if items, ok := value.([]any); ok && len(items) > 0 {
		var sb strings.Builder
		for _, item := range items {
			fmt.Fprintf(&sb, "\n    - %q", fmt.Sprint(item))
		}
		return sb.String(), nil
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshal value: %w", err)
	}

	return " " + strings.TrimSpace(string(data)), nil
}

// writeSetting writes "key: value", commenting out every line when
// commented is set.
func writeSetting(buf *bytes.Buffer, key, value string, commented bool) {
	prefix := "  "
	if commented {
		prefix = "  # "
	}

	for i, line := range strings.Split(key+":"+value, "\n") {
		if i > 0 && commented {
			line = strings.TrimPrefix(line, "  ")
		}
		buf.WriteString(prefix)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdmir configuration
# See: https://github.com/yaklabco/mdmir`
}
