package compare

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

// Reference flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// softBreak is what a soft line break maps to, matching newline folding in
// the tree builder.
const softBreak = " "

// Reference parses src with goldmark in CommonMark mode and maps the result
// onto mdast kinds.
func Reference(src []byte) *mdast.Node {
	return ReferenceWithFlavor(src, FlavorCommonMark)
}

// ReferenceWithFlavor is Reference for a given flavor. Unknown flavors fall
// back to CommonMark.
func ReferenceWithFlavor(src []byte, flavor string) *mdast.Node {
	md := newGoldmark(flavor)
	gmDoc := md.Parser().Parse(text.NewReader(src), gmparser.WithContext(gmparser.NewContext()))

	m := &mapper{src: src}
	doc := mdast.NewDocument()
	mdast.AppendChild(doc, m.mapChildren(gmDoc)...)
	return doc
}

// ValidFlavor reports whether flavor names a supported reference flavor.
func ValidFlavor(flavor string) bool {
	return flavor == FlavorCommonMark || flavor == FlavorGFM
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmark(flavor string) goldmark.Markdown {
	if flavor == FlavorGFM {
		return goldmark.New(goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New()
}

// mapper converts a goldmark AST into mdast nodes.
type mapper struct {
	src []byte
}

// mapChildren maps the children of parent. Nodes without an mdast
// counterpart are replaced by their own mapped children.
func (m *mapper) mapChildren(parent ast.Node) []*mdast.Node {
	var out []*mdast.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, m.mapNode(child)...)
	}
	return out
}

func (m *mapper) container(kind mdast.NodeKind, gmNode ast.Node) *mdast.Node {
	n := mdast.NewNode(kind)
	mdast.AppendChild(n, m.mapChildren(gmNode)...)
	return n
}

func (m *mapper) mapNode(gmNode ast.Node) []*mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		h := mdast.NewHeading(gmn.Level)
		mdast.AppendChild(h, m.mapChildren(gmn)...)
		return []*mdast.Node{h}

	case *ast.Paragraph:
		return []*mdast.Node{m.container(mdast.NodeParagraph, gmn)}

	case *ast.TextBlock:
		return m.mapChildren(gmn)

	case *ast.List:
		return []*mdast.Node{m.container(mdast.NodeList, gmn)}

	case *ast.ListItem:
		return []*mdast.Node{m.container(mdast.NodeListItem, gmn)}

	case *ast.Blockquote:
		return []*mdast.Node{m.container(mdast.NodeBlockquote, gmn)}

	case *ast.ThematicBreak:
		return []*mdast.Node{mdast.NewNode(mdast.NodeHorizontalRule)}

	case *ast.FencedCodeBlock:
		info := ""
		if gmn.Info != nil {
			info = strings.TrimSpace(string(gmn.Info.Segment.Value(m.src)))
		}
		return []*mdast.Node{mdast.NewCodeBlock(info, m.lines(gmn))}

	case *ast.CodeBlock:
		return []*mdast.Node{mdast.NewCodeBlock("", m.lines(gmn))}

	case *ast.HTMLBlock:
		para := mdast.NewNode(mdast.NodeParagraph)
		mdast.AppendChild(para, mdast.NewText(m.lines(gmn)))
		return []*mdast.Node{para}

	case *ast.Text:
		return m.mapText(gmn)

	case *ast.String:
		return []*mdast.Node{mdast.NewText(string(gmn.Value))}

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level >= 2 {
			kind = mdast.NodeStrong
		}
		return []*mdast.Node{m.container(kind, gmn)}

	case *ast.CodeSpan:
		return []*mdast.Node{mdast.NewCode(m.inlineText(gmn))}

	case *ast.Link:
		return []*mdast.Node{mdast.NewLink(string(gmn.Destination), m.mapChildren(gmn)...)}

	case *ast.Image:
		return []*mdast.Node{mdast.NewImage(string(gmn.Destination), m.mapChildren(gmn)...)}

	case *ast.AutoLink:
		label := mdast.NewText(string(gmn.Label(m.src)))
		return []*mdast.Node{mdast.NewLink(string(gmn.URL(m.src)), label)}

	case *ast.RawHTML:
		var sb strings.Builder
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			sb.Write(seg.Value(m.src))
		}
		return []*mdast.Node{mdast.NewText(sb.String())}

	default:
		// Extension nodes (tables, strikethrough, task boxes) keep only
		// their content.
		return m.mapChildren(gmNode)
	}
}

// mapText maps a text segment and the line break that may follow it.
func (m *mapper) mapText(t *ast.Text) []*mdast.Node {
	out := []*mdast.Node{mdast.NewText(string(t.Segment.Value(m.src)))}
	if t.SoftLineBreak() || t.HardLineBreak() {
		out = append(out, mdast.NewText(softBreak))
	}
	return out
}

// inlineText concatenates the text of an inline node's children.
func (m *mapper) inlineText(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(m.src))
		case *ast.String:
			sb.Write(c.Value)
		}
	}
	return sb.String()
}

// lines joins the raw lines of a block node.
func (m *mapper) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		sb.Write(seg.Value(m.src))
	}
	return sb.String()
}
