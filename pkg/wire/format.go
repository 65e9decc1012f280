package wire

import (
	"errors"
	"fmt"
)

// Format is a serialization format for token streams and trees.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Sentinel errors returned by the codecs.
var (
	// ErrUnsupportedFormat is returned for a format other than json or yaml.
	ErrUnsupportedFormat = errors.New("unsupported wire format")

	// ErrUnknownKind is returned when a decoded kind name is not defined.
	ErrUnknownKind = errors.New("unknown kind")

	// ErrBadRoot is returned when a decoded tree is not rooted at a document.
	ErrBadRoot = errors.New("tree root must be a document")

	// ErrSyntax is returned when the input is not well-formed JSON or YAML.
	ErrSyntax = errors.New("syntax error")

	// ErrMalformedTokens is returned when a decoded token stream violates
	// the stream invariants, such as a non-eof token with an empty value.
	ErrMalformedTokens = errors.New("malformed token stream")
)

// ParseFormat parses a format name. The empty string selects JSON.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q; valid formats: json, yaml", ErrUnsupportedFormat, name)
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatYAML
}
