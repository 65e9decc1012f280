package compare

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

const outlineIndent = "  "

// Outline flattens the block structure of root into one entry per block
// node in document order, indented two spaces per nesting level. Headings
// carry their level ("heading:2") and code blocks their language
// ("code_block:go").
func Outline(root *mdast.Node) []string {
	if root == nil {
		return nil
	}

	var out []string
	var visit func(n *mdast.Node, depth int)
	visit = func(n *mdast.Node, depth int) {
		for _, child := range n.Children {
			if child == nil || !child.IsBlock() {
				continue
			}
			out = append(out, strings.Repeat(outlineIndent, depth)+outlineEntry(child))
			visit(child, depth+1)
		}
	}
	visit(root, 0)

	return out
}

func outlineEntry(n *mdast.Node) string {
	switch n.Kind {
	case mdast.NodeHeading:
		return n.Kind.String() + ":" + strconv.Itoa(n.Level)
	case mdast.NodeCodeBlock:
		if fields := strings.Fields(n.Info); len(fields) > 0 {
			return n.Kind.String() + ":" + fields[0]
		}
		return n.Kind.String()
	default:
		return n.Kind.String()
	}
}
