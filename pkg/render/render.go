// Package render turns a document tree into HTML.
//
// Each node kind maps to one fixed element. The tree is first converted to
// a golang.org/x/net/html node tree and then serialized with html.Render,
// which takes care of escaping.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/mdmir/pkg/langdetect"
	"github.com/yaklabco/mdmir/pkg/mdast"
)

const (
	// DefaultMaxHeading is the deepest heading element HTML defines.
	DefaultMaxHeading = 6

	bufWriterSize = 32 * 1024
)

// Options controls rendering.
type Options struct {
	// MaxHeading is the deepest heading element emitted; deeper headings
	// are clamped to it. Zero means DefaultMaxHeading.
	MaxHeading int

	// DetectLanguage guesses a language class for code blocks that have no
	// info string.
	DetectLanguage bool
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{MaxHeading: DefaultMaxHeading}
}

// Renderer converts trees to HTML. It holds no per-call state and may be
// shared between goroutines.
type Renderer struct {
	opts Options
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.MaxHeading <= 0 || opts.MaxHeading > DefaultMaxHeading {
		opts.MaxHeading = DefaultMaxHeading
	}
	return &Renderer{opts: opts}
}

// Render writes the HTML fragment for root to w.
func (r *Renderer) Render(w io.Writer, root *mdast.Node) (err error) {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := html.Render(bw, r.Build(root)); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}

	return nil
}

// RenderString returns the HTML fragment for root.
func (r *Renderer) RenderString(root *mdast.Node) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Build converts root into an html.DocumentNode whose children are the
// rendered blocks. A nil root yields an empty document.
func (r *Renderer) Build(root *mdast.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	if root != nil {
		r.appendChildren(doc, root)
	}
	return doc
}

// appendChildren renders the children of n into parent. Block children are
// each followed by a newline.
func (r *Renderer) appendChildren(parent *html.Node, n *mdast.Node) {
	for _, child := range n.Children {
		if child == nil {
			continue
		}

		r.appendNode(parent, child)
		if child.IsBlock() {
			parent.AppendChild(textNode("\n"))
		}
	}
}

// appendNode renders n into parent. A text node has no element of its own,
// so its content and any children land directly in parent.
func (r *Renderer) appendNode(parent *html.Node, n *mdast.Node) {
	if n.Kind == mdast.NodeText {
		parent.AppendChild(textNode(n.Content))
		r.appendChildren(parent, n)
		return
	}
	parent.AppendChild(r.convert(n))
}

func (r *Renderer) convert(n *mdast.Node) *html.Node {
	switch n.Kind {
	case mdast.NodeDocument:
		return r.container(atom.Div, n)
	case mdast.NodeHeading:
		return r.container(r.headingAtom(n.Level), n)
	case mdast.NodeParagraph:
		return r.container(atom.P, n)
	case mdast.NodeCodeBlock:
		return r.codeBlock(n)
	case mdast.NodeList:
		ul := r.container(atom.Ul, n)
		ul.InsertBefore(textNode("\n"), ul.FirstChild)
		return ul
	case mdast.NodeListItem:
		return r.container(atom.Li, n)
	case mdast.NodeBlockquote:
		bq := r.container(atom.Blockquote, n)
		bq.InsertBefore(textNode("\n"), bq.FirstChild)
		return bq
	case mdast.NodeHorizontalRule:
		return element(atom.Hr)
	case mdast.NodeEmphasis:
		return r.container(atom.Em, n)
	case mdast.NodeStrong:
		return r.container(atom.Strong, n)
	case mdast.NodeCode:
		code := element(atom.Code)
		code.AppendChild(textNode(n.Content))
		r.appendChildren(code, n)
		return code
	case mdast.NodeLink:
		link := r.container(atom.A, n)
		link.Attr = []html.Attribute{{Key: "href", Val: n.Content}}
		return link
	case mdast.NodeImage:
		img := element(atom.Img)
		img.Attr = []html.Attribute{
			{Key: "src", Val: n.Content},
			{Key: "alt", Val: mdast.TextContent(n)},
		}
		return img
	default:
		return textNode(mdast.TextContent(n))
	}
}

// container creates an element of tag holding the rendered children of n.
func (r *Renderer) container(tag atom.Atom, n *mdast.Node) *html.Node {
	el := element(tag)
	r.appendChildren(el, n)
	return el
}

func (r *Renderer) codeBlock(n *mdast.Node) *html.Node {
	code := element(atom.Code)
	if lang := r.codeLanguage(n); lang != "" {
		code.Attr = []html.Attribute{{Key: "class", Val: "language-" + lang}}
	}
	code.AppendChild(textNode(n.Content))
	r.appendChildren(code, n)

	pre := element(atom.Pre)
	pre.AppendChild(code)
	return pre
}

// codeLanguage returns the first word of the info string, or a detected
// language when detection is enabled.
func (r *Renderer) codeLanguage(n *mdast.Node) string {
	if fields := strings.Fields(n.Info); len(fields) > 0 {
		return fields[0]
	}

	if !r.opts.DetectLanguage {
		return ""
	}
	if lang := langdetect.DetectString(n.Content); lang != langdetect.Unknown {
		return lang
	}
	return ""
}

// HeadingTag returns the element name used for a heading of level under
// the renderer's clamping policy.
func (r *Renderer) HeadingTag(level int) string {
	return r.headingAtom(level).String()
}

func (r *Renderer) headingAtom(level int) atom.Atom {
	level = max(1, min(level, r.opts.MaxHeading))
	return atom.Lookup([]byte("h" + strconv.Itoa(level)))
}

func element(tag atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
