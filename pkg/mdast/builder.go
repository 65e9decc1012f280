package mdast

// NewNode creates a new node of the specified kind with no children.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewText creates a text node holding content.
func NewText(content string) *Node {
	return &Node{Kind: NodeText, Content: content}
}

// NewHeading creates a heading node of the given depth. Depth is not
// clamped; renderers decide how to map deep headings.
func NewHeading(level int) *Node {
	return &Node{Kind: NodeHeading, Level: level}
}

// NewCode creates an inline code span node.
func NewCode(content string) *Node {
	return &Node{Kind: NodeCode, Content: content}
}

// NewCodeBlock creates a fenced code block node.
func NewCodeBlock(info, content string) *Node {
	return &Node{Kind: NodeCodeBlock, Info: info, Content: content}
}

// NewLink creates a link to destination whose label is given as children.
func NewLink(destination string, label ...*Node) *Node {
	n := &Node{Kind: NodeLink, Content: destination}
	AppendChild(n, label...)
	return n
}

// NewImage creates an image node; alt is given as children.
func NewImage(source string, alt ...*Node) *Node {
	n := &Node{Kind: NodeImage, Content: source}
	AppendChild(n, alt...)
	return n
}

// AppendChild appends children to parent, skipping nil nodes.
func AppendChild(parent *Node, children ...*Node) {
	if parent == nil {
		return
	}

	for _, child := range children {
		if child != nil {
			parent.Children = append(parent.Children, child)
		}
	}
}

// Clone returns a deep copy of the subtree rooted at n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		Kind:    n.Kind,
		Content: n.Content,
		Level:   n.Level,
		Info:    n.Info,
	}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = Clone(child)
		}
	}

	return clone
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Kind != b.Kind || a.Content != b.Content || a.Level != b.Level || a.Info != b.Info {
		return false
	}

	if len(a.Children) != len(b.Children) {
		return false
	}

	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}

	return true
}
