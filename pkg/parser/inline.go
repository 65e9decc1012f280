package parser

import (
	"strings"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

// foldedNewline replaces a newline inside inline content.
const foldedNewline = " "

// parseInline consumes at least one token unless the cursor is at eof, in
// which case it returns nil. With allowEmphasis false a star is literal.
func (p *parser) parseInline(allowEmphasis bool) *mdast.Node {
	tok := p.peek()

	switch tok.Kind {
	case mdast.TokEOF:
		return nil
	case mdast.TokStar:
		if allowEmphasis {
			return p.parseEmphasis()
		}
	case mdast.TokBacktick:
		return p.parseCodeSpan()
	case mdast.TokNewline:
		p.pos++
		return mdast.NewText(foldedNewline)
	default:
	}

	// Text, whitespace, underscores and every other token are literal.
	p.pos++
	return mdast.NewText(tok.Value)
}

// parseEmphasis handles a run of n stars. The first later run of at least n
// stars on the same line closes it; its first n stars are consumed. Without
// a closer the opening run becomes one literal text node.
func (p *parser) parseEmphasis() *mdast.Node {
	open := p.pos
	n := p.runLength(open, mdast.TokStar)

	closeAt, ok := p.findClosingStars(open+n, n)
	if !ok {
		p.pos = open + n
		return mdast.NewText(strings.Repeat("*", n))
	}

	kind := mdast.NodeEmphasis
	if n >= 2 {
		kind = mdast.NodeStrong
	}
	node := mdast.NewNode(kind)

	outer := p.limit
	p.pos = open + n
	p.limit = closeAt
	for !p.atEOF() {
		mdast.AppendChild(node, p.parseInline(false))
	}
	p.limit = outer

	p.pos = closeAt + n
	return node
}

// findClosingStars scans from i for the first position holding n
// consecutive stars, stopping at a newline or the end of the window.
func (p *parser) findClosingStars(i, n int) (int, bool) {
	for {
		switch p.kindAt(i) {
		case mdast.TokNewline, mdast.TokEOF:
			return 0, false
		case mdast.TokStar:
			run := p.runLength(i, mdast.TokStar)
			if run >= n {
				return i, true
			}
			i += run
		default:
			i++
		}
	}
}

// parseCodeSpan consumes a backtick and everything up to the next backtick
// on the same line as one code node. An unmatched backtick is literal.
func (p *parser) parseCodeSpan() *mdast.Node {
	open := p.advance()

	end := p.pos
	for p.kindAt(end) != mdast.TokBacktick {
		switch p.kindAt(end) {
		case mdast.TokNewline, mdast.TokEOF:
			return mdast.NewText(open.Value)
		default:
			end++
		}
	}

	var sb strings.Builder
	for ; p.pos < end; p.pos++ {
		sb.WriteString(p.toks[p.pos].Value)
	}
	p.pos = end + 1

	return mdast.NewCode(sb.String())
}
