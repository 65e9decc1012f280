package wire

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

const (
	bufWriterSize     = 32 * 1024
	defaultYAMLIndent = 2
)

// Options configures encoding.
type Options struct {
	// Format selects the encoding. The zero value means JSON.
	Format Format

	// Indent is the number of spaces per nesting level. Zero produces
	// compact JSON and the default YAML indentation.
	Indent int
}

// EncodeTokens writes tokens to w.
func EncodeTokens(w io.Writer, tokens []mdast.Token, opts Options) error {
	return encode(w, FromTokens(tokens), opts)
}

// EncodeTree writes the tree rooted at root to w.
func EncodeTree(w io.Writer, root *mdast.Node, opts Options) error {
	if root == nil {
		return fmt.Errorf("%w: nil tree", ErrBadRoot)
	}
	return encode(w, FromTree(root), opts)
}

// DecodeTokens reads a token stream in the given format.
func DecodeTokens(r io.Reader, format Format) ([]mdast.Token, error) {
	var in []Token
	if err := decode(r, format, &in); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}

	return ToTokens(in)
}

// DecodeTree reads a tree in the given format.
func DecodeTree(r io.Reader, format Format) (*mdast.Node, error) {
	var in *Node
	if err := decode(r, format, &in); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}

	return ToTree(in)
}

func encode(w io.Writer, v any, opts Options) (err error) {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	switch opts.Format {
	case FormatJSON, "":
		encoder := json.NewEncoder(bw)
		encoder.SetEscapeHTML(false)
		if opts.Indent > 0 {
			encoder.SetIndent("", strings.Repeat(" ", opts.Indent))
		}
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}

	case FormatYAML:
		encoder := yaml.NewEncoder(bw)
		indent := opts.Indent
		if indent <= 0 {
			indent = defaultYAMLIndent
		}
		encoder.SetIndent(indent)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}

	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, opts.Format)
	}

	return nil
}

func decode(r io.Reader, format Format, v any) error {
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("%w: JSON: %w", ErrSyntax, err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: YAML: %w", ErrSyntax, err)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}

	return nil
}
