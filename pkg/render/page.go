package render

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

// DefaultTitle is used when a document has no heading and no title is set.
const DefaultTitle = "Untitled"

// DefaultPageTemplate wraps a fragment in a minimal HTML5 page.
const DefaultPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Content}}</body>
</html>
`

// PageData is substituted into a page template. Title is HTML-escaped
// before substitution; Content is the rendered fragment.
type PageData struct {
	Title   string
	Content string
}

// Page is a parsed page template.
type Page struct {
	tmpl *template.Template
}

// NewPage parses a page template. An empty text selects
// DefaultPageTemplate.
func NewPage(text string) (*Page, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultPageTemplate
	}

	tmpl, err := template.New("page").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	return &Page{tmpl: tmpl}, nil
}

// LoadPage reads and parses a page template file. An empty path selects
// DefaultPageTemplate.
func LoadPage(path string) (*Page, error) {
	if path == "" {
		return NewPage("")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page template: %w", err)
	}

	return NewPage(string(data))
}

// Execute writes the page for data to w.
func (p *Page) Execute(w io.Writer, data PageData) error {
	data.Title = html.EscapeString(data.Title)
	if err := p.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

// RenderPage renders root and wraps it in page. An empty title falls back
// to the document title.
func (r *Renderer) RenderPage(w io.Writer, page *Page, root *mdast.Node, title string) error {
	content, err := r.RenderString(root)
	if err != nil {
		return err
	}

	if title == "" {
		title = Title(root)
	}

	return page.Execute(w, PageData{Title: title, Content: content})
}

// Title returns the text of the first heading in root, or DefaultTitle.
func Title(root *mdast.Node) string {
	heading := mdast.FindFirst(root, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeHeading
	})
	if heading == nil {
		return DefaultTitle
	}

	if title := strings.TrimSpace(mdast.TextContent(heading)); title != "" {
		return title
	}
	return DefaultTitle
}
