package pretty

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

// Tree guide segments.
const (
	guideBranch = "├── "
	guideLast   = "└── "
	guidePipe   = "│   "
	guideSpace  = "    "
)

// FormatTree renders a node tree with box-drawing guides, one node per line:
//
//	document
//	└── heading level=1
//	    └── text "Hello"
func (s *Styles) FormatTree(root *mdast.Node) string {
	if root == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(s.nodeLabel(root))
	sb.WriteByte('\n')
	s.writeChildren(&sb, root, "")
	return sb.String()
}

// WriteTree writes FormatTree(root) to w.
func (s *Styles) WriteTree(w io.Writer, root *mdast.Node) error {
	if _, err := io.WriteString(w, s.FormatTree(root)); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

func (s *Styles) writeChildren(sb *strings.Builder, n *mdast.Node, prefix string) {
	for i, child := range n.Children {
		last := i == len(n.Children)-1

		guide, next := guideBranch, guidePipe
		if last {
			guide, next = guideLast, guideSpace
		}

		sb.WriteString(s.Guide.Render(prefix + guide))
		sb.WriteString(s.nodeLabel(child))
		sb.WriteByte('\n')

		s.writeChildren(sb, child, prefix+next)
	}
}

// nodeLabel is the kind followed by whichever attributes the node carries.
func (s *Styles) nodeLabel(n *mdast.Node) string {
	parts := []string{s.NodeKind.Render(n.Kind.String())}

	if n.Kind == mdast.NodeHeading {
		parts = append(parts, s.Attribute.Render("level="+strconv.Itoa(n.Level)))
	}
	if n.Info != "" {
		parts = append(parts, s.Attribute.Render("info="+strconv.Quote(n.Info)))
	}
	if n.Kind.HasContent() {
		parts = append(parts, s.Content.Render(strconv.Quote(n.Content)))
	}

	return strings.Join(parts, " ")
}
