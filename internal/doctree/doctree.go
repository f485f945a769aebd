// Package doctree is the generic document tree handed to the renderer. Source
// adapters build it; the renderer only reads it.
package doctree

import "strings"

// Tree is the root of a parsed document.
type Tree struct {
	Title      string  // Document title (from metadata or filename)
	SourceName string  // Original file name, if any
	Nodes      []*Node // Top-level blocks in document order
}

// Kind tags the variant a Node represents.
type Kind int

const (
	Heading Kind = iota
	Paragraph
	OrderedList
	UnorderedList
	ListItem
	Table
	TableRow
	TableCell
	TableHeaderCell
	Blockquote
	GenericContainer
	InlineStrong
	InlineEmphasis
	InlineLink
)

var kindNames = [...]string{
	"heading",
	"paragraph",
	"ordered_list",
	"unordered_list",
	"list_item",
	"table",
	"table_row",
	"table_cell",
	"table_header_cell",
	"blockquote",
	"container",
	"strong",
	"emphasis",
	"link",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Inline reports whether nodes of this kind live inside a block's text.
func (k Kind) Inline() bool {
	return k == InlineStrong || k == InlineEmphasis || k == InlineLink
}

// SegmentRole is the semantic role of a run of text. Only the translation
// stage cares about most roles; the renderer styles Verbatim and Gloss.
type SegmentRole int

const (
	Prose SegmentRole = iota
	Verbatim
	Gloss
	CrossReference
	Mixed
)

var segmentRoleNames = [...]string{"prose", "verbatim", "gloss", "cross_reference", "mixed"}

func (r SegmentRole) String() string {
	if r < 0 || int(r) >= len(segmentRoleNames) {
		return "unknown"
	}
	return segmentRoleNames[r]
}

// Formatting is an explicit per-segment override. Zero values mean unset.
type Formatting struct {
	Bold        bool
	Italic      bool
	Underline   bool
	FontFamily  string
	FontSize    float64 // points
	Color       string  // six hex digits
	Alignment   string  // left, center, right, justify
	PaddingLeft float64 // points
}

// TextSegment is a run of text with its role and formatting override.
type TextSegment struct {
	Text       string
	Role       SegmentRole
	Formatting Formatting
}

// Text returns a prose segment with no formatting override.
func Text(s string) TextSegment {
	return TextSegment{Text: s}
}

// Node is one element of the tree. Leaf text lives only in Segments.
type Node struct {
	Kind          Kind
	Level         int // Heading level, 1-4
	Segments      []TextSegment
	Children      []*Node
	Attributes    map[string]string
	SectionNumber string
	IsFootnote    bool
	FootnoteID    string
}

// Attr returns an attribute value or "".
func (n *Node) Attr(key string) string {
	if n.Attributes == nil {
		return ""
	}
	return n.Attributes[key]
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(key, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[key] = value
}

// ClassContains reports whether the class attribute contains s.
func (n *Node) ClassContains(s string) bool {
	return strings.Contains(n.Attr("class"), s)
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// ExtractText returns the node's text: its segments joined by single spaces
// when it has any, else its children's extracted text joined the same way.
// Each piece is trimmed and empty pieces are dropped.
func ExtractText(n *Node) string {
	if n == nil {
		return ""
	}
	if len(n.Segments) > 0 {
		return JoinSegments(n.Segments)
	}
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if t := ExtractText(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// JoinSegments trims each segment and joins the non-empty ones with a space.
func JoinSegments(segs []TextSegment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func Walk(nodes []*Node, fn func(*Node) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if fn(n) {
			Walk(n.Children, fn)
		}
	}
}

// Count returns the number of nodes in the tree.
func (t *Tree) Count() int {
	count := 0
	Walk(t.Nodes, func(*Node) bool {
		count++
		return true
	})
	return count
}
