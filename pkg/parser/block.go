package parser

import (
	"strings"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

// minFenceLength is the shortest backtick run that opens a code block.
const minFenceLength = 3

// parseBlock dispatches on the current token. It may return nil.
func (p *parser) parseBlock() *mdast.Node {
	switch p.kind() {
	case mdast.TokEOF:
		return nil
	case mdast.TokHash:
		return p.parseHeading()
	case mdast.TokBacktick:
		if p.runLength(p.pos, mdast.TokBacktick) >= minFenceLength {
			return p.parseFencedCode()
		}
	case mdast.TokMinus, mdast.TokStar:
		if p.isListItemStart(p.pos) {
			return p.parseList(p.indentAt(p.pos))
		}
	default:
	}

	return p.parseParagraph()
}

// parseHeading consumes a run of hashes, one optional space and the inline
// content up to the end of the line. The level is the hash count.
func (p *parser) parseHeading() *mdast.Node {
	level := p.runLength(p.pos, mdast.TokHash)
	p.pos += level

	if p.kind() == mdast.TokSpace {
		p.pos++
	}

	heading := mdast.NewHeading(level)
	for !p.atLineEnd() {
		mdast.AppendChild(heading, p.parseInline(true))
	}

	return heading
}

// parseParagraph collects inline content across lines until a blank line,
// the end of input, or a line that starts a heading or a list item.
func (p *parser) parseParagraph() *mdast.Node {
	para := mdast.NewNode(mdast.NodeParagraph)

	for !p.atEOF() {
		if p.kind() == mdast.TokNewline && p.paragraphEndsAfterNewline() {
			break
		}
		mdast.AppendChild(para, p.parseInline(true))
	}

	return para
}

// paragraphEndsAfterNewline looks past the newline at the cursor and its
// trailing indentation. When the paragraph ends, the cursor stays past the
// consumed whitespace; otherwise it is restored onto the newline so the
// newline folds into the paragraph.
func (p *parser) paragraphEndsAfterNewline() bool {
	saved := p.pos

	p.pos++
	p.skipHorizontalSpace()

	switch p.kind() {
	case mdast.TokNewline, mdast.TokEOF, mdast.TokHash:
		return true
	}
	if p.isListItemStart(p.pos) {
		return true
	}

	p.pos = saved
	return false
}

// parseFencedCode consumes an opening backtick run, the info string on the
// rest of that line, and raw content up to a closing run at least as long
// as the opener. Without a closing run the block runs to the end of input.
func (p *parser) parseFencedCode() *mdast.Node {
	fence := p.runLength(p.pos, mdast.TokBacktick)
	p.pos += fence

	var info strings.Builder
	for !p.atLineEnd() {
		info.WriteString(p.advance().Value)
	}
	if p.kind() == mdast.TokNewline {
		p.pos++
	}

	var content strings.Builder
	for !p.atEOF() {
		if p.kind() == mdast.TokBacktick {
			run := p.runLength(p.pos, mdast.TokBacktick)
			if run >= fence {
				p.pos += run
				break
			}
			for range run {
				content.WriteString(p.advance().Value)
			}
			continue
		}
		content.WriteString(p.advance().Value)
	}

	return mdast.NewCodeBlock(strings.TrimSpace(info.String()), content.String())
}

// atLineEnd reports whether the cursor is on a newline or eof.
func (p *parser) atLineEnd() bool {
	k := p.kind()
	return k == mdast.TokNewline || k == mdast.TokEOF
}
