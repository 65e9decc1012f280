// Package langdetect guesses the language of a fenced code block that has
// no info string, so the renderer can still attach a language class.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined with confidence.
const Unknown = "text"

// Source records which stage of detection produced a language.
type Source string

// Detection stages, in the order they are tried.
const (
	SourceNone       Source = ""
	SourceShebang    Source = "shebang"
	SourcePattern    Source = "pattern"
	SourceClassifier Source = "classifier"
)

// classifierCandidates restricts the enry classifier to languages that show
// up in documentation.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns a lowercase language name for content, or Unknown.
func Detect(content []byte) string {
	lang, _ := DetectWithSource(content)
	return lang
}

// DetectString is Detect for string content.
func DetectString(content string) string {
	return Detect([]byte(content))
}

// DetectWithSource is Detect that also reports which stage matched.
func DetectWithSource(content []byte) (string, Source) {
	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown, SourceNone
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Normalize(lang), SourceShebang
	}

	s := newSample(content)
	for _, r := range patternRules {
		if r.match(s) {
			return r.lang, SourcePattern
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Normalize(lang), SourceClassifier
	}

	return Unknown, SourceNone
}

// Normalize maps an enry language name to the lowercase name used in
// language-* class attributes.
func Normalize(lang string) string {
	switch lang {
	case "":
		return Unknown
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
	}
}
