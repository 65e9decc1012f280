package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmir/pkg/mdast"
	"github.com/yaklabco/mdmir/pkg/parser"
	"github.com/yaklabco/mdmir/pkg/render"
)

func TestRender_Markdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"heading", "# Hello", "<h1>Hello</h1>\n"},
		{"strong", "**bold**", "<p><strong>bold</strong></p>\n"},
		{"inline mix", "a *b* `c`", "<p>a <em>b</em> <code>c</code></p>\n"},
		{"escaping", `a & "b" <c>`, "<p>a &amp; &#34;b&#34; &lt;c&gt;</p>\n"},
		{"paragraphs", "a\nb\n\nc", "<p>a b</p>\n<p>c</p>\n"},
		{
			name:  "nested list",
			input: "- a\n  - b",
			want:  "<ul>\n<li>a<ul>\n<li>b</li>\n</ul>\n</li>\n</ul>\n",
		},
		{
			name:  "fenced code with info",
			input: "```go title\nx < y\n```",
			want:  "<pre><code class=\"language-go\">x &lt; y\n</code></pre>\n",
		},
		{
			name:  "fenced code without info",
			input: "```\npackage main\n```",
			want:  "<pre><code>package main\n</code></pre>\n",
		},
		{"deep heading is clamped", "######### deep", "<h6>deep</h6>\n"},
	}

	r := render.New(render.DefaultOptions())

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.RenderString(parser.ParseString(testCase.input))
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestRender_TreeOnlyKinds(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument()

	quote := mdast.NewNode(mdast.NodeBlockquote)
	para := mdast.NewNode(mdast.NodeParagraph)
	mdast.AppendChild(para, mdast.NewLink("https://x.test/?a=1&b=2", mdast.NewText("x")))
	mdast.AppendChild(quote, para)

	imagePara := mdast.NewNode(mdast.NodeParagraph)
	mdast.AppendChild(imagePara, mdast.NewImage("cat.png", mdast.NewText("a cat")))

	mdast.AppendChild(doc, quote, mdast.NewNode(mdast.NodeHorizontalRule), imagePara)

	got, err := render.New(render.Options{}).RenderString(doc)
	require.NoError(t, err)

	want := "<blockquote>\n<p><a href=\"https://x.test/?a=1&amp;b=2\">x</a></p>\n</blockquote>\n" +
		"<hr/>\n" +
		"<p><img src=\"cat.png\" alt=\"a cat\"/></p>\n"
	assert.Equal(t, want, got)
}

func TestRender_ContentBeforeChildren(t *testing.T) {
	t.Parallel()

	withChild := func(n *mdast.Node, child string) *mdast.Node {
		mdast.AppendChild(n, mdast.NewText(child))
		return n
	}
	paragraph := func(children ...*mdast.Node) *mdast.Node {
		p := mdast.NewNode(mdast.NodeParagraph)
		mdast.AppendChild(p, children...)
		return p
	}

	tests := []struct {
		name string
		node *mdast.Node
		want string
	}{
		{
			name: "text",
			node: paragraph(withChild(mdast.NewText("a"), "b")),
			want: "<p>ab</p>\n",
		},
		{
			name: "nested text keeps order",
			node: paragraph(withChild(withChild(mdast.NewText("a"), "b"), "c"), mdast.NewText("d")),
			want: "<p>abcd</p>\n",
		},
		{
			name: "code span",
			node: paragraph(withChild(mdast.NewCode("x"), "<y>")),
			want: "<p><code>x&lt;y&gt;</code></p>\n",
		},
		{
			name: "code block",
			node: withChild(mdast.NewCodeBlock("", "x\n"), "y"),
			want: "<pre><code>x\ny</code></pre>\n",
		},
	}

	r := render.New(render.DefaultOptions())

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := mdast.NewDocument()
			mdast.AppendChild(doc, testCase.node)

			got, err := r.RenderString(doc)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestRender_HeadingPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		maxHeading int
		level      int
		want       string
	}{
		{0, 1, "h1"},
		{0, 6, "h6"},
		{0, 9, "h6"},
		{3, 2, "h2"},
		{3, 5, "h3"},
		{10, 8, "h6"},
		{6, 0, "h1"},
		{6, -2, "h1"},
	}

	for _, testCase := range tests {
		r := render.New(render.Options{MaxHeading: testCase.maxHeading})
		assert.Equal(t, testCase.want, r.HeadingTag(testCase.level),
			"max=%d level=%d", testCase.maxHeading, testCase.level)
	}
}

func TestRender_DetectLanguage(t *testing.T) {
	t.Parallel()

	root := parser.ParseString("```\npackage main\n```")

	got, err := render.New(render.Options{DetectLanguage: true}).RenderString(root)
	require.NoError(t, err)
	assert.Equal(t, "<pre><code class=\"language-go\">package main\n</code></pre>\n", got)

	plain := parser.ParseString("```\njust words here\n```")
	got, err = render.New(render.Options{DetectLanguage: true}).RenderString(plain)
	require.NoError(t, err)
	assert.Equal(t, "<pre><code>just words here\n</code></pre>\n", got)
}

func TestRender_NilRoot(t *testing.T) {
	t.Parallel()

	got, err := render.New(render.DefaultOptions()).RenderString(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Intro", render.Title(parser.ParseString("text\n\n## Intro\n\n# Later")))
	assert.Equal(t, render.DefaultTitle, render.Title(parser.ParseString("no headings")))
	assert.Equal(t, render.DefaultTitle, render.Title(parser.ParseString("#")))
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	page, err := render.NewPage("")
	require.NoError(t, err)

	var buf bytes.Buffer
	r := render.New(render.DefaultOptions())
	require.NoError(t, r.RenderPage(&buf, page, parser.ParseString("# A & B\n\nbody"), ""))

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>A &amp; B</title>")
	assert.Contains(t, out, "<body>\n<h1>A &amp; B</h1>\n<p>body</p>\n</body>")
}

func TestRenderPage_CustomTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Title}}|{{.Content}}"), 0o600))

	page, err := render.LoadPage(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	r := render.New(render.DefaultOptions())
	require.NoError(t, r.RenderPage(&buf, page, parser.ParseString("x"), "<T>"))
	assert.Equal(t, "&lt;T&gt;|<p>x</p>\n", buf.String())
}

func TestLoadPage_Errors(t *testing.T) {
	t.Parallel()

	_, err := render.NewPage("{{.Title")
	require.Error(t, err)

	_, err = render.LoadPage(filepath.Join(t.TempDir(), "missing.tmpl"))
	require.Error(t, err)
}
