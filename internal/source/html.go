package source

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/docrender/internal/doctree"
)

// HTMLParser handles HTML files. Block tags become tree nodes and inline tags
// become text segments whose role comes from their class.
type HTMLParser struct{}

var (
	sectionNumberRe = regexp.MustCompile(`^(\d+[a-z]?)\.?$`)
	paddingLeftRe   = regexp.MustCompile(`padding-left:\s*(\d+(?:\.\d+)?)px`)
	textAlignRe     = regexp.MustCompile(`text-align:\s*(\w+)`)
)

var inlineTags = map[string]bool{
	"span": true, "strong": true, "em": true, "b": true, "i": true, "u": true,
	"a": true, "sup": true, "sub": true, "cite": true, "code": true, "small": true,
}

var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"div": true, "section": true, "article": true, "main": true,
	"blockquote": true, "li": true, "ol": true, "ul": true, "table": true,
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := newTree(filename)

	// Extract title from <title> tag if present.
	if title := findTitle(doc); title != "" {
		tree.Title = title
	}

	body := findBody(doc)
	if body == nil {
		body = doc
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if n := parseElement(c); n != nil {
			tree.Nodes = append(tree.Nodes, n)
		}
	}
	return tree, nil
}

func nodeKind(tag string) (doctree.Kind, int, bool) {
	if level := headingLevel(tag); level > 0 {
		return doctree.Heading, min(level, 4), true
	}
	switch tag {
	case "p":
		return doctree.Paragraph, 0, true
	case "ol":
		return doctree.OrderedList, 0, true
	case "ul":
		return doctree.UnorderedList, 0, true
	case "li":
		return doctree.ListItem, 0, true
	case "table":
		return doctree.Table, 0, true
	case "blockquote":
		return doctree.Blockquote, 0, true
	case "div", "section", "article", "main":
		return doctree.GenericContainer, 0, true
	}
	return 0, 0, false
}

func parseElement(n *html.Node) *doctree.Node {
	kind, level, ok := nodeKind(n.Data)
	if !ok {
		return nil
	}

	node := &doctree.Node{Kind: kind, Level: level}
	for _, a := range n.Attr {
		node.SetAttr(a.Key, a.Val)
	}
	node.IsFootnote, node.FootnoteID = footnote(n)

	switch kind {
	case doctree.Table:
		parseTable(n, node)
	case doctree.OrderedList, doctree.UnorderedList:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "li" {
				if item := parseElement(c); item != nil {
					node.Append(item)
				}
			}
		}
	default:
		var consumed *html.Node
		if kind == doctree.Paragraph || kind == doctree.Heading {
			node.SectionNumber, consumed = sectionNumber(n)
		}
		parseContent(n, node, consumed)
	}
	return node
}

// parseContent fills node from el's children. skip is a child already
// consumed, such as the strong holding a section number.
func parseContent(el *html.Node, node *doctree.Node, skip *html.Node) {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c == skip {
			continue
		}
		switch c.Type {
		case html.TextNode:
			if text := strings.TrimSpace(c.Data); text != "" {
				node.Segments = append(node.Segments, doctree.TextSegment{
					Text:       text,
					Formatting: formatting(el),
				})
			}
		case html.ElementNode:
			switch {
			case inlineTags[c.Data]:
				if text := strings.TrimSpace(textContent(c)); text != "" {
					node.Segments = append(node.Segments, doctree.TextSegment{
						Text:       text,
						Role:       segmentRole(c),
						Formatting: formatting(c),
					})
				}
			case blockTags[c.Data]:
				if child := parseElement(c); child != nil {
					node.Append(child)
				}
			}
		}
	}
}

func parseTable(table *html.Node, node *doctree.Node) {
	var rows func(*html.Node)
	rows = func(parent *html.Node) {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				rows(c)
			case "tr":
				// Rows without cells carry nothing to render.
				if row := parseRow(c); len(row.Children) > 0 {
					node.Append(row)
				}
			}
		}
	}
	rows(table)
}

func parseRow(tr *html.Node) *doctree.Node {
	row := &doctree.Node{Kind: doctree.TableRow}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cell := &doctree.Node{Kind: doctree.TableCell}
		if c.Data == "th" {
			cell.Kind = doctree.TableHeaderCell
		}
		for _, a := range c.Attr {
			cell.SetAttr(a.Key, a.Val)
		}
		parseContent(c, cell, nil)
		row.Append(cell)
	}
	return row
}

// sectionNumber returns the label of a leading <strong> such as "153" or
// "154a." along with the element to skip.
func sectionNumber(n *html.Node) (string, *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		if c.Type != html.ElementNode || c.Data != "strong" {
			return "", nil
		}
		m := sectionNumberRe.FindStringSubmatch(strings.TrimSpace(textContent(c)))
		if m == nil {
			return "", nil
		}
		return m[1], c
	}
	return "", nil
}

// footnote looks for the first anchor and reports it when its id marks a
// footnote (fn1, rfn1, ...).
func footnote(n *html.Node) (bool, string) {
	a := findElement(n, "a")
	if a == nil {
		return false, ""
	}
	id := attr(a, "id")
	if strings.HasPrefix(id, "fn") || strings.HasPrefix(id, "rfn") {
		return true, id
	}
	return false, ""
}

func segmentRole(n *html.Node) doctree.SegmentRole {
	classes := strings.Fields(attr(n, "class"))
	for _, c := range classes {
		if c == "foreign" {
			return doctree.Verbatim
		}
	}
	for _, c := range classes {
		if c == "gloss" {
			return doctree.Gloss
		}
	}
	for _, c := range classes {
		if c == "bibl" {
			return doctree.CrossReference
		}
	}
	return doctree.Prose
}

func formatting(n *html.Node) doctree.Formatting {
	var f doctree.Formatting
	switch n.Data {
	case "strong", "b":
		f.Bold = true
	case "em", "i":
		f.Italic = true
	case "u":
		f.Underline = true
	}

	style := attr(n, "style")
	if strings.Contains(style, "font-weight: bold") || strings.Contains(style, "font-weight:bold") {
		f.Bold = true
	}
	if strings.Contains(style, "font-style: italic") || strings.Contains(style, "font-style:italic") {
		f.Italic = true
	}
	if strings.Contains(style, "text-decoration: underline") {
		f.Underline = true
	}
	if m := paddingLeftRe.FindStringSubmatch(style); m != nil {
		if px, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.PaddingLeft = px * 0.75 // CSS px to pt
		}
	}
	if m := textAlignRe.FindStringSubmatch(style); m != nil {
		f.Alignment = strings.ToLower(m[1])
	}
	return f
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
