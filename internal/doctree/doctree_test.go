package doctree

import "testing"

func TestExtractText_Segments(t *testing.T) {
	n := &Node{Kind: Paragraph, Segments: []TextSegment{Text("Lorem"), Text("ipsum"), Text("dolor")}}
	if got := ExtractText(n); got != "Lorem ipsum dolor" {
		t.Errorf("expected %q, got %q", "Lorem ipsum dolor", got)
	}
}

func TestExtractText_TrimsSegments(t *testing.T) {
	n := &Node{Kind: Paragraph, Segments: []TextSegment{Text("  Gallia "), Text("\test\n"), Text("   "), Text("omnis")}}
	if got := ExtractText(n); got != "Gallia est omnis" {
		t.Errorf("expected %q, got %q", "Gallia est omnis", got)
	}
}

func TestExtractText_Children(t *testing.T) {
	item := &Node{Kind: ListItem}
	item.Append(
		&Node{Kind: InlineStrong, Segments: []TextSegment{Text("amo")}},
		&Node{Kind: InlineEmphasis},
		&Node{Kind: InlineEmphasis, Segments: []TextSegment{Text("I love")}},
	)
	if got := ExtractText(item); got != "amo I love" {
		t.Errorf("expected %q, got %q", "amo I love", got)
	}
}

func TestExtractText_SegmentsWinOverChildren(t *testing.T) {
	n := &Node{Kind: Paragraph, Segments: []TextSegment{Text("own")}}
	n.Append(&Node{Kind: InlineStrong, Segments: []TextSegment{Text("child")}})
	if got := ExtractText(n); got != "own" {
		t.Errorf("expected %q, got %q", "own", got)
	}
}

func TestExtractText_Empty(t *testing.T) {
	if got := ExtractText(&Node{Kind: GenericContainer}); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
	if got := ExtractText(nil); got != "" {
		t.Errorf("expected empty text for nil, got %q", got)
	}
}

func TestNode_Attributes(t *testing.T) {
	n := &Node{Kind: Paragraph}
	if n.Attr("class") != "" {
		t.Error("expected empty attribute on nil map")
	}
	n.SetAttr("class", "foreign latin")
	if !n.ClassContains("foreign") {
		t.Error("expected class to contain foreign")
	}
	if n.ClassContains("gloss") {
		t.Error("did not expect class to contain gloss")
	}
}

func TestTree_Count(t *testing.T) {
	table := &Node{Kind: Table}
	row := &Node{Kind: TableRow}
	row.Append(&Node{Kind: TableCell}, &Node{Kind: TableCell})
	table.Append(row)
	tree := &Tree{Nodes: []*Node{{Kind: Heading, Level: 1}, table}}
	if got := tree.Count(); got != 5 {
		t.Errorf("expected 5 nodes, got %d", got)
	}
}

func TestKindStrings(t *testing.T) {
	if Heading.String() != "heading" || InlineLink.String() != "link" {
		t.Errorf("unexpected kind names %q %q", Heading, InlineLink)
	}
	if !InlineEmphasis.Inline() || Paragraph.Inline() {
		t.Error("unexpected Inline classification")
	}
	if Verbatim.String() != "verbatim" {
		t.Errorf("unexpected segment role name %q", Verbatim)
	}
}
