// Package parser builds a document tree from a scanned token stream.
//
// The parser is a recursive-descent builder over a fully materialized token
// slice. It is total: malformed input degrades to literal text nodes and
// every call terminates. Lookahead uses an explicit saved cursor that is
// restored when a construct does not match.
package parser

import (
	"github.com/yaklabco/mdmir/pkg/mdast"
	"github.com/yaklabco/mdmir/pkg/scanner"
)

// Parse builds a document from tokens. A slice that is empty, holds only
// eof, or lacks a trailing eof is accepted; reads past the end yield eof.
func Parse(tokens []mdast.Token) *mdast.Node {
	p := &parser{toks: tokens, limit: len(tokens)}
	return p.parseDocument()
}

// ParseString scans and parses src in one step.
func ParseString(src string) *mdast.Node {
	return Parse(scanner.TokenizeString(src))
}

// ParseBytes is ParseString for byte input.
func ParseBytes(src []byte) *mdast.Node {
	return Parse(scanner.Tokenize(src))
}

// parser is the cursor over a token slice.
type parser struct {
	toks []mdast.Token

	// pos is the index of the current token.
	pos int

	// limit bounds every read: indices at or past it read as eof. It is
	// narrowed while parsing emphasis content.
	limit int
}

// eofToken is returned for reads outside the current window.
//
//nolint:gochecknoglobals // Immutable sentinel value.
var eofToken = mdast.Token{Kind: mdast.TokEOF}

func (p *parser) at(i int) mdast.Token {
	if i < 0 || i >= p.limit || i >= len(p.toks) {
		return eofToken
	}
	return p.toks[i]
}

func (p *parser) peek() mdast.Token {
	return p.at(p.pos)
}

func (p *parser) kindAt(i int) mdast.TokenKind {
	return p.at(i).Kind
}

func (p *parser) kind() mdast.TokenKind {
	return p.kindAt(p.pos)
}

func (p *parser) atEOF() bool {
	return p.kind() == mdast.TokEOF
}

// advance consumes the current token and returns it. It never moves past
// the window.
func (p *parser) advance() mdast.Token {
	tok := p.peek()
	if tok.Kind != mdast.TokEOF {
		p.pos++
	}
	return tok
}

// runLength counts consecutive tokens of kind starting at i.
func (p *parser) runLength(i int, kind mdast.TokenKind) int {
	n := 0
	for p.kindAt(i+n) == kind {
		n++
	}
	return n
}

// skipHorizontalSpace consumes spaces and tabs.
func (p *parser) skipHorizontalSpace() {
	for p.kind().IsHorizontalSpace() {
		p.pos++
	}
}

// skipBlankSpace consumes spaces, tabs and newlines.
func (p *parser) skipBlankSpace() {
	for {
		switch p.kind() {
		case mdast.TokSpace, mdast.TokTab, mdast.TokNewline:
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseDocument() *mdast.Node {
	doc := mdast.NewDocument()

	for {
		p.skipBlankSpace()
		if p.atEOF() {
			return doc
		}

		start := p.pos
		mdast.AppendChild(doc, p.parseBlock())

		if p.pos == start {
			p.pos++
		}
	}
}
