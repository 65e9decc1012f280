package parser

import "github.com/yaklabco/mdmir/pkg/mdast"

// tabIndentWidth is how many columns a tab contributes to list indentation.
const tabIndentWidth = 4

// isListItemStart reports whether a minus or star at i is followed by a
// space.
func (p *parser) isListItemStart(i int) bool {
	switch p.kindAt(i) {
	case mdast.TokMinus, mdast.TokStar:
		return p.kindAt(i+1) == mdast.TokSpace
	default:
		return false
	}
}

// indentAt sums the spaces and tabs between the start of the line and the
// token at i.
func (p *parser) indentAt(i int) int {
	indent := 0
	for j := i - 1; j >= 0 && j < len(p.toks); j-- {
		switch p.toks[j].Kind {
		case mdast.TokSpace:
			indent++
		case mdast.TokTab:
			indent += tabIndentWidth
		default:
			return indent
		}
	}
	return indent
}

// parseList collects sibling items whose markers sit at exactly base
// indentation. Blank lines between items do not end the list.
func (p *parser) parseList(base int) *mdast.Node {
	list := mdast.NewNode(mdast.NodeList)

	for {
		saved := p.pos
		p.skipBlankSpace()

		if !p.isListItemStart(p.pos) || p.indentAt(p.pos) != base {
			p.pos = saved
			return list
		}

		mdast.AppendChild(list, p.parseListItem(base))
	}
}

// parseListItem consumes a marker, its space and the rest of the line. A
// following item start indented deeper than base opens a nested list that
// becomes the item's last child.
func (p *parser) parseListItem(base int) *mdast.Node {
	item := mdast.NewNode(mdast.NodeListItem)

	p.pos += 2
	for !p.atLineEnd() {
		mdast.AppendChild(item, p.parseInline(true))
	}

	saved := p.pos
	p.skipBlankSpace()

	if p.isListItemStart(p.pos) {
		if indent := p.indentAt(p.pos); indent > base {
			mdast.AppendChild(item, p.parseList(indent))
			return item
		}
	}

	p.pos = saved
	return item
}
