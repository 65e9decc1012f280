package wire

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

// Token is the serialized form of mdast.Token.
//
// JSON strings cannot hold invalid UTF-8, so a value that is not valid
// UTF-8 is also carried verbatim in ValueBytes (base64 in JSON), which
// takes precedence on decode. YAML stores such strings as !!binary and
// needs no second field.
type Token struct {
	Kind       string `json:"kind"                  yaml:"kind"`
	Value      string `json:"value"                 yaml:"value"`
	ValueBytes []byte `json:"value_bytes,omitempty" yaml:"-"`
	Line       int    `json:"line"                  yaml:"line"`
	Column     int    `json:"column"                yaml:"column"`
}

// Node is the serialized form of mdast.Node. Content and Level are null
// for kinds that do not carry them. ContentBytes mirrors Token.ValueBytes.
type Node struct {
	Kind         string  `json:"kind"                    yaml:"kind"`
	Content      *string `json:"content"                 yaml:"content"`
	ContentBytes []byte  `json:"content_bytes,omitempty" yaml:"-"`
	Level        *int    `json:"level"                   yaml:"level"`
	Info         string  `json:"info,omitempty"          yaml:"info,omitempty"`
	Children     []*Node `json:"children"                yaml:"children"`
}

// rawBytes returns s as bytes when it is not valid UTF-8, and nil otherwise.
func rawBytes(s string) []byte {
	if utf8.ValidString(s) {
		return nil
	}
	return []byte(s)
}

// preferBytes returns raw as a string when present, falling back to s.
func preferBytes(s string, raw []byte) string {
	if raw != nil {
		return string(raw)
	}
	return s
}

// FromTokens converts tokens to their serialized form.
func FromTokens(tokens []mdast.Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		out[i] = Token{
			Kind:       tok.Kind.String(),
			Value:      tok.Value,
			ValueBytes: rawBytes(tok.Value),
			Line:       tok.Line,
			Column:     tok.Column,
		}
	}
	return out
}

// ToTokens converts serialized tokens back, validating kinds. Tokens after
// the first eof are dropped and a missing eof is appended.
func ToTokens(in []Token) ([]mdast.Token, error) {
	out := make([]mdast.Token, 0, len(in)+1)

	for i, wt := range in {
		kind, ok := mdast.ParseTokenKind(wt.Kind)
		if !ok {
			return nil, fmt.Errorf("token %d: %w %q", i, ErrUnknownKind, wt.Kind)
		}

		tok := mdast.Token{Kind: kind, Value: preferBytes(wt.Value, wt.ValueBytes), Line: wt.Line, Column: wt.Column}
		out = append(out, tok)
		if kind == mdast.TokEOF {
			break
		}
	}

	if len(out) == 0 || out[len(out)-1].Kind != mdast.TokEOF {
		out = append(out, eofAfter(out))
	}

	if !mdast.ValidateTokens(out) {
		return nil, ErrMalformedTokens
	}

	return out, nil
}

// eofAfter positions an eof token just past the last token of tokens.
func eofAfter(tokens []mdast.Token) mdast.Token {
	if len(tokens) == 0 {
		return mdast.Token{Kind: mdast.TokEOF, Line: 1, Column: 1}
	}

	last := tokens[len(tokens)-1]
	switch last.Kind {
	case mdast.TokNewline:
		return mdast.Token{Kind: mdast.TokEOF, Line: last.Line + 1, Column: 1}
	case mdast.TokZeroWidthSpace:
		return mdast.Token{Kind: mdast.TokEOF, Line: last.Line, Column: last.Column}
	case mdast.TokByteOrderMark, mdast.TokNonBreakingSpace, mdast.TokSoftHyphen:
		return mdast.Token{Kind: mdast.TokEOF, Line: last.Line, Column: last.Column + 1}
	default:
		return mdast.Token{Kind: mdast.TokEOF, Line: last.Line, Column: last.Column + last.Len()}
	}
}

// FromTree converts a tree to its serialized form. A nil root yields nil.
func FromTree(n *mdast.Node) *Node {
	if n == nil {
		return nil
	}

	out := &Node{
		Kind:     n.Kind.String(),
		Info:     n.Info,
		Children: make([]*Node, 0, len(n.Children)),
	}

	if n.Kind.HasContent() {
		content := n.Content
		out.Content = &content
		out.ContentBytes = rawBytes(content)
	}
	if n.Kind == mdast.NodeHeading {
		level := n.Level
		out.Level = &level
	}

	for _, child := range n.Children {
		if child != nil {
			out.Children = append(out.Children, FromTree(child))
		}
	}

	return out
}

// ToTree converts a serialized tree back, validating every kind and
// requiring a document root.
func ToTree(in *Node) (*mdast.Node, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: empty input", ErrBadRoot)
	}

	root, err := toNode(in, "$")
	if err != nil {
		return nil, err
	}

	if root.Kind != mdast.NodeDocument {
		return nil, fmt.Errorf("%w, got %s", ErrBadRoot, root.Kind)
	}

	return root, nil
}

func toNode(in *Node, path string) (*mdast.Node, error) {
	kind, ok := mdast.ParseNodeKind(in.Kind)
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownKind, in.Kind)
	}

	n := mdast.NewNode(kind)
	n.Info = in.Info
	if kind.HasContent() {
		switch {
		case in.ContentBytes != nil:
			n.Content = string(in.ContentBytes)
		case in.Content != nil:
			n.Content = *in.Content
		}
	}
	if in.Level != nil && kind == mdast.NodeHeading {
		n.Level = *in.Level
	}

	for i, child := range in.Children {
		if child == nil {
			continue
		}

		c, err := toNode(child, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		mdast.AppendChild(n, c)
	}

	return n, nil
}
