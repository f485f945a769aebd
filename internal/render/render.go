// Package render walks a document tree and turns each node into paragraphs and
// tables handed to a Sink.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/docrender/internal/doctree"
	"github.com/dgallion1/docrender/internal/styles"
	"github.com/dgallion1/docrender/internal/theme"
	"github.com/dgallion1/docrender/internal/units"
	"github.com/dgallion1/docrender/internal/wml"
)

// ErrHeadingLevel is returned for a heading outside levels 1-4.
var ErrHeadingLevel = errors.New("heading level out of range")

// List glyphs. Ordered lists keep a fixed bullet rather than numbering.
const (
	OrderedGlyph   = "•"
	UnorderedGlyph = "◦"
)

// Sink receives rendered blocks in document order.
type Sink interface {
	Append(wml.Block) error
}

// Options tune table output.
type Options struct {
	ContentWidth int             // twips; sizes table grid columns
	Borders      *wml.BorderSpec // applied to every table when set
}

// Dispatcher maps tree nodes to blocks. It is single use per document and
// never mutates the tree.
type Dispatcher struct {
	catalog *styles.Catalog
	sink    Sink
	opts    Options

	quoteDepth int
	blocks     int
	nodes      int
}

// New returns a dispatcher that resolves style ids against catalog.
func New(catalog *styles.Catalog, sink Sink, opts Options) *Dispatcher {
	return &Dispatcher{catalog: catalog, sink: sink, opts: opts}
}

// Blocks returns the number of blocks appended so far.
func (d *Dispatcher) Blocks() int { return d.blocks }

// Nodes returns the number of nodes dispatched so far.
func (d *Dispatcher) Nodes() int { return d.nodes }

// Render dispatches every top-level node of tree.
func (d *Dispatcher) Render(tree *doctree.Tree) error {
	if tree == nil {
		return nil
	}
	return d.dispatchAll(tree.Nodes)
}

// Dispatch renders a single node and its block descendants.
func (d *Dispatcher) Dispatch(n *doctree.Node) error {
	if n == nil {
		return nil
	}
	d.nodes++

	switch n.Kind {
	case doctree.Heading:
		return d.heading(n)
	case doctree.Paragraph:
		return d.paragraph(n)
	case doctree.OrderedList:
		return d.list(n, OrderedGlyph)
	case doctree.UnorderedList:
		return d.list(n, UnorderedGlyph)
	case doctree.Table:
		return d.table(n)
	case doctree.Blockquote:
		return d.blockquote(n)
	case doctree.GenericContainer:
		return d.dispatchAll(n.Children)
	}
	// List items, rows, cells and inline nodes are consumed by their parents.
	return nil
}

func (d *Dispatcher) dispatchAll(nodes []*doctree.Node) error {
	for _, n := range nodes {
		if err := d.Dispatch(n); err != nil {
			return err
		}
	}
	return nil
}

// blockChildren dispatches the children not already rendered as inline runs.
func (d *Dispatcher) blockChildren(n *doctree.Node) error {
	for _, c := range n.Children {
		if c == nil || c.Kind.Inline() {
			continue
		}
		if err := d.Dispatch(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) emit(b wml.Block) error {
	if err := d.sink.Append(b); err != nil {
		return err
	}
	d.blocks++
	return nil
}

func (d *Dispatcher) styleID(r theme.Role) string {
	if d.catalog == nil || !d.catalog.Has(r.ID()) {
		return ""
	}
	return r.ID()
}

// SectionLabel renders a section number with exactly one trailing period.
func SectionLabel(number string) string {
	return strings.TrimSuffix(strings.TrimSpace(number), ".") + "."
}

func (d *Dispatcher) heading(n *doctree.Node) error {
	role, ok := theme.HeadingRole(n.Level)
	if !ok {
		return fmt.Errorf("%w: %d", ErrHeadingLevel, n.Level)
	}
	if runs := d.inlineRuns(n); len(runs) > 0 {
		pb := wml.NewParagraph().Style(d.styleID(role))
		if n.SectionNumber != "" {
			pb = pb.Runs(wml.NewRun(SectionLabel(n.SectionNumber) + " ").Build())
		}
		if err := d.emit(d.segmentLayout(pb, n.Segments).Runs(runs...).Build()); err != nil {
			return err
		}
	}
	return d.blockChildren(n)
}

func (d *Dispatcher) paragraph(n *doctree.Node) error {
	fallback := theme.RoleNormal
	if d.quoteDepth > 0 {
		fallback = theme.RoleBlockquote
	}
	role := ResolveRole(n, fallback)

	if runs := d.inlineRuns(n); len(runs) > 0 {
		pb := d.segmentLayout(wml.NewParagraph().Style(d.styleID(role)), n.Segments)
		if role == theme.RoleSectionNumber {
			pb = pb.SectionLabel(SectionLabel(n.SectionNumber))
		}
		if err := d.emit(pb.Runs(runs...).Build()); err != nil {
			return err
		}
	}
	return d.blockChildren(n)
}

func (d *Dispatcher) blockquote(n *doctree.Node) error {
	if runs := d.inlineRuns(n); len(runs) > 0 {
		pb := wml.NewParagraph().Style(d.styleID(theme.RoleBlockquote))
		if err := d.emit(d.segmentLayout(pb, n.Segments).Runs(runs...).Build()); err != nil {
			return err
		}
	}
	d.quoteDepth++
	defer func() { d.quoteDepth-- }()
	return d.blockChildren(n)
}

func (d *Dispatcher) list(n *doctree.Node, glyph string) error {
	style := d.styleID(theme.RoleNormal)
	for _, item := range n.Children {
		if item == nil || item.Kind != doctree.ListItem {
			continue
		}
		text := doctree.ExtractText(item)
		if text == "" {
			continue
		}
		if err := d.emit(wml.RoleParagraph(style, glyph+" "+text)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) table(n *doctree.Node) error {
	tb := wml.NewTable().
		SetContentWidth(d.opts.ContentWidth).
		SetCellStyles(d.styleID(theme.RoleTableHeader), d.styleID(theme.RoleTableCell))
	if d.opts.Borders != nil {
		tb.SetBorders(*d.opts.Borders)
	}

	for _, row := range n.Children {
		if row == nil || row.Kind != doctree.TableRow {
			continue
		}
		var cells []string
		header := false
		for _, c := range row.Children {
			if c == nil {
				continue
			}
			switch c.Kind {
			case doctree.TableHeaderCell:
				header = true
			case doctree.TableCell:
			default:
				continue
			}
			cells = append(cells, doctree.ExtractText(c))
		}
		if len(cells) == 0 {
			return fmt.Errorf("table row %d: %w", tb.Len()+1, wml.ErrEmptyRow)
		}

		var err error
		if header && tb.Len() == 0 {
			err = tb.AddHeaderRow(cells...)
		} else {
			err = tb.AddRow(cells...)
		}
		if err != nil {
			return err
		}
	}

	if tb.Len() == 0 {
		return nil
	}
	tbl, err := tb.Build()
	if err != nil {
		return err
	}
	return d.emit(tbl)
}

// inlineRuns renders a node's own text: its segments, then its inline
// children. Pieces are trimmed and separated by single spaces so the
// paragraph text equals ExtractText of the same content.
func (d *Dispatcher) inlineRuns(n *doctree.Node) []*wml.Run {
	var runs []*wml.Run
	add := func(text string, b func(string) wml.RunBuilder) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if len(runs) > 0 {
			text = " " + text
		}
		runs = append(runs, b(text).Build())
	}

	for _, seg := range n.Segments {
		add(seg.Text, func(s string) wml.RunBuilder { return d.segmentRun(s, seg) })
	}
	for _, c := range n.Children {
		if c == nil || !c.Kind.Inline() {
			continue
		}
		decorate := inlineDecoration(c.Kind)
		if len(c.Segments) == 0 {
			add(doctree.ExtractText(c), func(s string) wml.RunBuilder { return decorate(wml.NewRun(s)) })
			continue
		}
		for _, seg := range c.Segments {
			add(seg.Text, func(s string) wml.RunBuilder { return decorate(d.segmentRun(s, seg)) })
		}
	}
	return runs
}

func inlineDecoration(k doctree.Kind) func(wml.RunBuilder) wml.RunBuilder {
	return func(b wml.RunBuilder) wml.RunBuilder {
		switch k {
		case doctree.InlineStrong:
			return b.Bold()
		case doctree.InlineEmphasis:
			return b.Italic()
		case doctree.InlineLink:
			return b.Underline()
		}
		return b
	}
}

func (d *Dispatcher) segmentRun(text string, seg doctree.TextSegment) wml.RunBuilder {
	f := seg.Formatting
	b := wml.NewRun(text).Font(f.FontFamily)
	if f.FontSize >= theme.MinFontSize && f.FontSize <= theme.MaxFontSize {
		b = b.Size(f.FontSize)
	}
	if theme.ValidColor(f.Color) {
		b = b.Color(f.Color)
	}
	if f.Bold {
		b = b.Bold()
	}
	if f.Italic || seg.Role == doctree.Verbatim {
		b = b.Italic()
	}
	if f.Underline {
		b = b.Underline()
	}
	if seg.Role == doctree.Gloss {
		b = b.Style(d.styleID(theme.RoleGloss))
	}
	return b
}

// segmentLayout applies the alignment and left padding of the first segment
// that sets each.
func (d *Dispatcher) segmentLayout(pb wml.ParagraphBuilder, segs []doctree.TextSegment) wml.ParagraphBuilder {
	alignSet, padSet := false, false
	for _, s := range segs {
		if !alignSet && s.Formatting.Alignment != "" {
			if a, ok := theme.NormalizeAlignment(s.Formatting.Alignment); ok {
				pb = pb.Align(a)
				alignSet = true
			}
		}
		if !padSet && s.Formatting.PaddingLeft > 0 {
			pb = pb.IndentLeft(units.PointsToTwips(s.Formatting.PaddingLeft))
			padSet = true
		}
	}
	return pb
}
