package langdetect

import (
	"bytes"
	"strings"
)

// minYAMLPairs is how many key/value or list lines make a block YAML.
const minYAMLPairs = 2

// sample holds the views of a code block the pattern rules inspect.
type sample struct {
	raw     []byte
	trimmed []byte
	text    string
	upper   string
}

func newSample(content []byte) sample {
	trimmed := bytes.TrimSpace(content)
	return sample{
		raw:     content,
		trimmed: trimmed,
		text:    string(content),
		upper:   strings.ToUpper(string(trimmed)),
	}
}

// patternRule reports a language when a cheap textual check is conclusive.
type patternRule struct {
	lang  string
	match func(s sample) bool
}

// patternRules are tried in order; the most specific checks come first.
//
//nolint:gochecknoglobals // Read-only rule table.
var patternRules = []patternRule{
	{"go", looksLikeGo},
	{"python", looksLikePython},
	{"html", looksLikeHTML},
	{"json", looksLikeJSON},
	{"dockerfile", looksLikeDockerfile},
	{"sql", looksLikeSQL},
	{"rust", looksLikeRust},
	{"javascript", looksLikeJavaScript},
	{"yaml", looksLikeYAML},
}

func looksLikeGo(s sample) bool {
	return bytes.HasPrefix(s.trimmed, []byte("package ")) ||
		strings.Contains(s.text, "func main() {") ||
		strings.Contains(s.text, ":= ")
}

func looksLikePython(s sample) bool {
	switch {
	case strings.Contains(s.text, "def ") && strings.Contains(s.text, "):"):
		return true
	case strings.Contains(s.text, "__name__"), strings.Contains(s.text, "__main__"):
		return true
	case strings.Contains(s.text, "import (") || !strings.Contains(s.text, "import "):
		return false
	default:
		return strings.Contains(s.text, "from ") ||
			strings.HasPrefix(string(s.trimmed), "import ")
	}
}

func looksLikeHTML(s sample) bool {
	lower := bytes.ToLower(s.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func looksLikeJSON(s sample) bool {
	return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
		bytes.Contains(s.trimmed, []byte(`"`))
}

func looksLikeDockerfile(s sample) bool {
	return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
		(bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN "))) ||
		(bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY ")))
}

func looksLikeSQL(s sample) bool {
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(s.upper, verb) {
			return true
		}
	}
	return false
}

func looksLikeRust(s sample) bool {
	return strings.Contains(s.text, "fn main()") ||
		strings.Contains(s.text, "println!") ||
		strings.Contains(s.text, "let mut ")
}

func looksLikeJavaScript(s sample) bool {
	return strings.Contains(s.text, "=>") ||
		strings.Contains(s.text, "const ") ||
		strings.Contains(s.text, "let ") ||
		strings.Contains(s.text, "console.log")
}

// looksLikeYAML counts "key: value" lines and top-level list items,
// ignoring lines that read like code.
func looksLikeYAML(s sample) bool {
	pairs := 0

	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			pairs++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			pairs++
		}
	}

	return pairs >= minYAMLPairs
}
