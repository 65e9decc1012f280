package mdast

import "fmt"

// NodeKind classifies the type of a document tree node.
type NodeKind uint8

// Node kinds for block-level and inline-level elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeHeading
	NodeParagraph
	NodeCodeBlock
	NodeList
	NodeListItem
	NodeBlockquote
	NodeHorizontalRule

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCode
	NodeLink
	NodeImage

	nodeKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [nodeKindCount]string{
	NodeDocument:       "document",
	NodeHeading:        "heading",
	NodeParagraph:      "paragraph",
	NodeCodeBlock:      "code_block",
	NodeList:           "list",
	NodeListItem:       "list_item",
	NodeBlockquote:     "blockquote",
	NodeHorizontalRule: "horizontal_rule",
	NodeText:           "text",
	NodeEmphasis:       "emphasis",
	NodeStrong:         "strong",
	NodeCode:           "code",
	NodeLink:           "link",
	NodeImage:          "image",
}

// String returns the wire name of the kind, e.g. "code_block".
func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// IsValid reports whether k is one of the defined kinds.
func (k NodeKind) IsValid() bool {
	return k < nodeKindCount
}

// HasContent reports whether nodes of this kind carry a Content string.
// Link and image nodes keep their destination in Content.
func (k NodeKind) HasContent() bool {
	switch k {
	case NodeText, NodeCode, NodeCodeBlock, NodeLink, NodeImage:
		return true
	default:
		return false
	}
}

// ParseNodeKind returns the kind with the given wire name.
func ParseNodeKind(name string) (NodeKind, bool) {
	for i, n := range nodeKindNames {
		if n == name {
			return NodeKind(i), true
		}
	}
	return 0, false
}

// Node is a single node in the document tree. A parent exclusively owns its
// children; nodes hold no references back up the tree.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Content is the textual payload for kinds where Kind.HasContent is true.
	Content string

	// Level is the heading depth for NodeHeading, zero otherwise.
	Level int

	// Info is the info string of a fenced code block (usually a language name).
	Info string

	// Children in source order.
	Children []*Node
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeHeading, NodeParagraph, NodeCodeBlock, NodeList,
		NodeListItem, NodeBlockquote, NodeHorizontalRule:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCode, NodeLink, NodeImage:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// LastChild returns the last direct child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}
