// Package scanner splits Markdown source into classified tokens.
//
// The scanner is a pull-based state machine: each call to Next returns one
// token and advances the cursor. It keeps no lookahead beyond the fixed
// multi-byte sequences it recognizes, never allocates, and never fails.
package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

// Encoded forms of the non-printing characters recognized as whole sequences.
const (
	zeroWidthSpace   = "\u200b"
	byteOrderMark    = "\ufeff"
	nonBreakingSpace = "\u00a0"
	softHyphen       = "\u00ad"
)

// Single-byte non-printing values.
const (
	deleteByte          = 0x7f
	latin1NonBreakSpace = 0xa0
	firstPrintableASCII = 0x20
)

// Scanner holds the cursor over a source string.
type Scanner struct {
	src    string // input being scanned
	pos    int    // byte offset of the next unread byte
	line   int    // 1-based line of pos
	column int    // 1-based column of pos
}

// New creates a scanner positioned at the start of src.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1, column: 1}
}

// Position returns the line and column of the next unread byte.
func (s *Scanner) Position() mdast.Position {
	return mdast.Position{Line: s.line, Column: s.column}
}

// Next returns the next token. Once the input is exhausted it returns an
// eof token, and keeps returning one on every further call.
func (s *Scanner) Next() mdast.Token {
	s.skipCarriageReturns()

	if s.pos >= len(s.src) {
		return mdast.Token{Kind: mdast.TokEOF, Line: s.line, Column: s.column}
	}

	if kind, width, columns, ok := matchSequence(s.src[s.pos:]); ok {
		return s.emit(kind, width, columns)
	}

	if kind, ok := classifyByte(s.src[s.pos]); ok {
		return s.emit(kind, 1, 1)
	}

	return s.scanText()
}

// skipCarriageReturns drops '\r' bytes without moving line or column, so
// CRLF input yields the same positions as LF input.
func (s *Scanner) skipCarriageReturns() {
	for s.pos < len(s.src) && s.src[s.pos] == '\r' {
		s.pos++
	}
}

// emit returns a token of width bytes at the cursor and advances past it.
func (s *Scanner) emit(kind mdast.TokenKind, width, columns int) mdast.Token {
	tok := mdast.Token{
		Kind:   kind,
		Value:  s.src[s.pos : s.pos+width],
		Line:   s.line,
		Column: s.column,
	}

	s.pos += width
	if kind == mdast.TokNewline {
		s.line++
		s.column = 1
	} else {
		s.column += columns
	}

	return tok
}

// scanText consumes a maximal run of bytes that start no other token.
// It steps over whole UTF-8 sequences so a continuation byte is never
// classified on its own.
func (s *Scanner) scanText() mdast.Token {
	start := s.pos

	for s.pos < len(s.src) && !startsToken(s.src[s.pos:]) {
		_, size := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += size
	}

	tok := mdast.Token{
		Kind:   mdast.TokText,
		Value:  s.src[start:s.pos],
		Line:   s.line,
		Column: s.column,
	}
	s.column += s.pos - start

	return tok
}

// startsToken reports whether rest begins with anything other than text,
// including a carriage return, which ends a text run.
func startsToken(rest string) bool {
	if rest[0] == '\r' {
		return true
	}
	if _, _, _, ok := matchSequence(rest); ok {
		return true
	}
	_, ok := classifyByte(rest[0])
	return ok
}

// matchSequence recognizes the multi-byte non-printing characters. It
// returns the kind, the byte width and the number of columns the sequence
// occupies.
func matchSequence(rest string) (mdast.TokenKind, int, int, bool) {
	switch {
	case strings.HasPrefix(rest, zeroWidthSpace):
		return mdast.TokZeroWidthSpace, len(zeroWidthSpace), 0, true
	case strings.HasPrefix(rest, byteOrderMark):
		return mdast.TokByteOrderMark, len(byteOrderMark), 1, true
	case strings.HasPrefix(rest, nonBreakingSpace):
		return mdast.TokNonBreakingSpace, len(nonBreakingSpace), 1, true
	case strings.HasPrefix(rest, softHyphen):
		return mdast.TokSoftHyphen, len(softHyphen), 1, true
	default:
		return 0, 0, 0, false
	}
}

// classifyByte classifies single-byte tokens: control bytes, a stray
// Latin-1 no-break space, and the punctuation/whitespace/digit table.
func classifyByte(b byte) (mdast.TokenKind, bool) {
	switch {
	case b == '\t', b == '\n':
		return mdast.PunctuationKind(b)
	case b == '\r':
		return 0, false
	case b < firstPrintableASCII, b == deleteByte:
		return mdast.TokControlChar, true
	case b == latin1NonBreakSpace:
		return mdast.TokNonBreakingSpace, true
	default:
		return mdast.PunctuationKind(b)
	}
}
