package source

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docrender/internal/doctree"
)

// MarkdownParser handles Markdown files using goldmark, with GFM tables.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	tree := newTree(filename)
	tree.Nodes = blocks(doc, src)
	return tree, nil
}

// blocks converts the block children of parent.
func blocks(parent ast.Node, src []byte) []*doctree.Node {
	var out []*doctree.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, block(n, src)...)
	}
	return out
}

func block(n ast.Node, src []byte) []*doctree.Node {
	switch node := n.(type) {
	case *ast.Heading:
		return []*doctree.Node{{
			Kind:     doctree.Heading,
			Level:    min(max(node.Level, 1), 4),
			Segments: inlines(node, src, doctree.Formatting{}),
		}}

	case *ast.Paragraph, *ast.TextBlock:
		return []*doctree.Node{{Kind: doctree.Paragraph, Segments: inlines(node, src, doctree.Formatting{})}}

	case *ast.List:
		list := &doctree.Node{Kind: doctree.UnorderedList}
		if node.IsOrdered() {
			list.Kind = doctree.OrderedList
		}
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			li := &doctree.Node{Kind: doctree.ListItem}
			li.Append(blocks(item, src)...)
			list.Append(li)
		}
		return []*doctree.Node{list}

	case *ast.Blockquote:
		q := &doctree.Node{Kind: doctree.Blockquote}
		q.Append(blocks(node, src)...)
		return []*doctree.Node{q}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return codeLines(n, src)

	case *extast.Table:
		return []*doctree.Node{table(node, src)}
	}
	// Thematic breaks and raw HTML blocks have no text to render.
	return nil
}

// codeLines renders each non-blank line of a code block as a verbatim
// paragraph, so line structure survives.
func codeLines(n ast.Node, src []byte) []*doctree.Node {
	var out []*doctree.Node
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(src)), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		p := &doctree.Node{
			Kind:     doctree.Paragraph,
			Segments: []doctree.TextSegment{{Text: line, Role: doctree.Verbatim}},
		}
		p.SetAttr("class", "code")
		out = append(out, p)
	}
	return out
}

func table(t *extast.Table, src []byte) *doctree.Node {
	tbl := &doctree.Node{Kind: doctree.Table}
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		kind := doctree.TableCell
		if _, ok := r.(*extast.TableHeader); ok {
			kind = doctree.TableHeaderCell
		}
		row := &doctree.Node{Kind: doctree.TableRow}
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			row.Append(&doctree.Node{Kind: kind, Segments: inlines(c, src, doctree.Formatting{})})
		}
		tbl.Append(row)
	}
	return tbl
}

// inlines flattens the inline children of n into segments. Emphasis and
// links set formatting on the segments beneath them; code spans are verbatim.
func inlines(n ast.Node, src []byte, f doctree.Formatting) []doctree.TextSegment {
	var out []doctree.TextSegment
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			out = appendText(out, string(node.Value(src)), doctree.Prose, f)
		case *ast.String:
			out = appendText(out, string(node.Value), doctree.Prose, f)
		case *ast.CodeSpan:
			out = appendText(out, plainText(node, src), doctree.Verbatim, f)
		case *ast.Emphasis:
			inner := f
			if node.Level >= 2 {
				inner.Bold = true
			} else {
				inner.Italic = true
			}
			out = append(out, inlines(node, src, inner)...)
		case *ast.Link:
			inner := f
			inner.Underline = true
			out = append(out, inlines(node, src, inner)...)
		case *ast.AutoLink:
			inner := f
			inner.Underline = true
			out = appendText(out, string(node.Label(src)), doctree.CrossReference, inner)
		case *ast.Image, *ast.RawHTML:
			continue
		default:
			out = append(out, inlines(node, src, f)...)
		}
	}
	return out
}

func appendText(out []doctree.TextSegment, s string, role doctree.SegmentRole, f doctree.Formatting) []doctree.TextSegment {
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	return append(out, doctree.TextSegment{Text: s, Role: role, Formatting: f})
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Value(src))
		}
	}
	return b.String()
}
