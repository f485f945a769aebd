package source

import (
	"strings"
	"testing"

	"github.com/dgallion1/docrender/internal/doctree"
)

func parseHTML(t *testing.T, input string) *doctree.Tree {
	t.Helper()
	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "grammar.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

func TestHTMLParser_TitleAndHeadings(t *testing.T) {
	input := `<html><head><title>Latin Grammar</title></head><body>
<h1>Nouns</h1>
<h5>Deep heading</h5>
<p>Body text.</p>
</body></html>`
	tree := parseHTML(t, input)
	if tree.Title != "Latin Grammar" {
		t.Errorf("expected title from <title>, got %q", tree.Title)
	}
	if len(tree.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(tree.Nodes))
	}
	if n := tree.Nodes[0]; n.Kind != doctree.Heading || n.Level != 1 {
		t.Errorf("expected h1, got %s/%d", n.Kind, n.Level)
	}
	if n := tree.Nodes[1]; n.Level != 4 {
		t.Errorf("expected h5 clamped to level 4, got %d", n.Level)
	}
	if doctree.ExtractText(tree.Nodes[2]) != "Body text." {
		t.Errorf("unexpected paragraph text %q", doctree.ExtractText(tree.Nodes[2]))
	}
}

func TestHTMLParser_NoTitleUsesFilename(t *testing.T) {
	tree := parseHTML(t, `<p>x</p>`)
	if tree.Title != "grammar" {
		t.Errorf("expected filename title, got %q", tree.Title)
	}
}

func TestHTMLParser_SectionNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		text  string
	}{
		{"plain", `<p><strong>153</strong> The ablative.</p>`, "153", "The ablative."},
		{"letter suffix with dot", `<p><strong>154a.</strong> Sub rule.</p>`, "154a", "Sub rule."},
		{"not a number", `<p><strong>Note</strong> bold lead.</p>`, "", "Note bold lead."},
		{"not leading", `<p>Text <strong>12</strong></p>`, "", "Text 12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseHTML(t, tt.input)
			n := tree.Nodes[0]
			if n.SectionNumber != tt.want {
				t.Errorf("expected section number %q, got %q", tt.want, n.SectionNumber)
			}
			if got := doctree.ExtractText(n); got != tt.text {
				t.Errorf("expected text %q, got %q", tt.text, got)
			}
		})
	}
}

func TestHTMLParser_SegmentRoles(t *testing.T) {
	input := `<p>The word <span class="foreign">amicus</span> means <span class="gloss">friend</span>; see <a class="bibl">§ 12</a>.</p>`
	tree := parseHTML(t, input)
	segs := tree.Nodes[0].Segments
	roles := map[string]doctree.SegmentRole{}
	for _, s := range segs {
		roles[s.Text] = s.Role
	}
	if roles["amicus"] != doctree.Verbatim {
		t.Errorf("expected foreign span verbatim, got %s", roles["amicus"])
	}
	if roles["friend"] != doctree.Gloss {
		t.Errorf("expected gloss span, got %s", roles["friend"])
	}
	if roles["§ 12"] != doctree.CrossReference {
		t.Errorf("expected bibl cross reference, got %s", roles["§ 12"])
	}
	if roles["The word"] != doctree.Prose {
		t.Errorf("expected prose text, got %s", roles["The word"])
	}
}

func TestHTMLParser_Footnote(t *testing.T) {
	tree := parseHTML(t, `<p><a id="fn3"></a>A footnote.</p><p><a id="top"></a>Body.</p>`)
	if !tree.Nodes[0].IsFootnote || tree.Nodes[0].FootnoteID != "fn3" {
		t.Errorf("expected footnote fn3, got %v %q", tree.Nodes[0].IsFootnote, tree.Nodes[0].FootnoteID)
	}
	if tree.Nodes[1].IsFootnote {
		t.Error("expected ordinary anchor not to mark a footnote")
	}
}

func TestHTMLParser_Formatting(t *testing.T) {
	tree := parseHTML(t, `<p style="padding-left: 40px; text-align: Center">Indented <em>soft</em> <b>hard</b></p>`)
	segs := tree.Nodes[0].Segments
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].Formatting.PaddingLeft != 30 || segs[0].Formatting.Alignment != "center" {
		t.Errorf("unexpected paragraph formatting %+v", segs[0].Formatting)
	}
	if !segs[1].Formatting.Italic || !segs[2].Formatting.Bold {
		t.Errorf("expected italic then bold segments, got %+v", segs)
	}
}

func TestHTMLParser_ListsContainersAndQuotes(t *testing.T) {
	input := `<div class="chapter"><ol><li>one</li><li>two</li></ol><blockquote><p>Quoted.</p></blockquote></div><ul><li>x</li></ul>`
	tree := parseHTML(t, input)
	if len(tree.Nodes) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(tree.Nodes))
	}
	div := tree.Nodes[0]
	if div.Kind != doctree.GenericContainer || !div.ClassContains("chapter") {
		t.Errorf("expected container with class, got %s %q", div.Kind, div.Attr("class"))
	}
	if len(div.Children) != 2 || div.Children[0].Kind != doctree.OrderedList || len(div.Children[0].Children) != 2 {
		t.Fatalf("expected ordered list of 2 inside container")
	}
	q := div.Children[1]
	if q.Kind != doctree.Blockquote || len(q.Children) != 1 || q.Children[0].Kind != doctree.Paragraph {
		t.Errorf("expected blockquote with paragraph child, got %s", q.Kind)
	}
	if tree.Nodes[1].Kind != doctree.UnorderedList {
		t.Errorf("expected unordered list, got %s", tree.Nodes[1].Kind)
	}
}

func TestHTMLParser_Table(t *testing.T) {
	input := `<table><thead><tr><th>Case</th><th>Form</th></tr></thead>
<tbody><tr><td>Nom.</td><td>puella</td></tr><tr><td>Gen.</td><td>puellae</td></tr></tbody></table>`
	tree := parseHTML(t, input)
	table := tree.Nodes[0]
	if table.Kind != doctree.Table || len(table.Children) != 3 {
		t.Fatalf("expected table of 3 rows, got %s with %d", table.Kind, len(table.Children))
	}
	if table.Children[0].Children[1].Kind != doctree.TableHeaderCell {
		t.Error("expected th as header cell")
	}
	if got := doctree.ExtractText(table.Children[2].Children[1]); got != "puellae" {
		t.Errorf("unexpected cell text %q", got)
	}
}

func TestHTMLParser_TableSkipsEmptyRows(t *testing.T) {
	tree := parseHTML(t, `<table><tr></tr><tr><td>amo</td></tr><tr> </tr></table>`)
	table := tree.Nodes[0]
	if len(table.Children) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Children))
	}
}
