package mdast_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

func buildTestTree() *mdast.Node {
	// Document
	//   Heading
	//     Text "Title"
	//   Paragraph
	//     Text "plain "
	//     Emphasis
	//       Text "loud"
	//     Code "x"
	doc := mdast.NewDocument()

	heading := mdast.NewHeading(1)
	mdast.AppendChild(heading, mdast.NewText("Title"))
	mdast.AppendChild(doc, heading)

	para := mdast.NewNode(mdast.NodeParagraph)
	emphasis := mdast.NewNode(mdast.NodeEmphasis)
	mdast.AppendChild(emphasis, mdast.NewText("loud"))
	mdast.AppendChild(para, mdast.NewText("plain "), emphasis, mdast.NewCode("x"))
	mdast.AppendChild(doc, para)

	return doc
}

func TestWalk(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	var visited []mdast.NodeKind
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	expected := []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeText,
		mdast.NodeParagraph,
		mdast.NodeText,
		mdast.NodeEmphasis,
		mdast.NodeText,
		mdast.NodeCode,
	}

	if len(visited) != len(expected) {
		t.Fatalf("expected %d nodes visited, got %d", len(expected), len(visited))
	}

	for i, kind := range expected {
		if visited[i] != kind {
			t.Errorf("node %d: expected %s, got %s", i, kind, visited[i])
		}
	}
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	called := false
	err := mdast.Walk(nil, func(*mdast.Node) error {
		called = true
		return nil
	})

	if err != nil || called {
		t.Errorf("expected no-op walk on nil root, got err=%v called=%v", err, called)
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()
	stop := errors.New("stop")

	count := 0
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		count++
		if n.Kind == mdast.NodeParagraph {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Errorf("expected stop error, got %v", err)
	}
	if count != 4 {
		t.Errorf("expected walk to stop after 4 nodes, visited %d", count)
	}
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	var events []string
	err := mdast.WalkWithContext(doc,
		func(n *mdast.Node) error {
			events = append(events, "enter:"+n.Kind.String())
			return nil
		},
		func(n *mdast.Node) error {
			events = append(events, "leave:"+n.Kind.String())
			return nil
		},
	)
	if err != nil {
		t.Fatalf("WalkWithContext returned error: %v", err)
	}

	if events[0] != "enter:document" || events[len(events)-1] != "leave:document" {
		t.Errorf("unexpected event order: %v", events)
	}
	if events[1] != "enter:heading" || events[4] != "leave:heading" {
		t.Errorf("heading events misplaced: %v", events)
	}
}

func TestWalkWithContext_NilCallbacks(t *testing.T) {
	t.Parallel()

	if err := mdast.WalkWithContext(buildTestTree(), nil, nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	texts := mdast.FindAll(buildTestTree(), func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeText
	})

	if len(texts) != 3 {
		t.Errorf("expected 3 text nodes, got %d", len(texts))
	}
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	found := mdast.FindFirst(doc, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeText
	})
	if found == nil || found.Content != "Title" {
		t.Errorf("expected first text node to be the heading text, got %+v", found)
	}

	missing := mdast.FindFirst(doc, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeImage
	})
	if missing != nil {
		t.Error("expected nil for missing kind")
	}
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	if got := len(mdast.FindByKind(doc, mdast.NodeEmphasis)); got != 1 {
		t.Errorf("expected 1 emphasis node, got %d", got)
	}
	if got := len(mdast.FindByKind(doc, mdast.NodeList)); got != 0 {
		t.Errorf("expected 0 list nodes, got %d", got)
	}
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	if got := mdast.TextContent(doc); got != "Titleplain loudx" {
		t.Errorf("TextContent = %q", got)
	}
	if got := mdast.TextContent(doc.Children[0]); got != "Title" {
		t.Errorf("heading TextContent = %q", got)
	}
	if got := mdast.CountNodes(doc); got != 8 {
		t.Errorf("CountNodes = %d, want 8", got)
	}
}
