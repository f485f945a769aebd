// Package wml holds the WordprocessingML elements the renderer emits and the
// builders that assemble them. Struct field order is element order; encoding/xml
// writes fields in declaration order, so each struct follows the schema
// sequence for its parent element.
package wml

import (
	"encoding/xml"

	docx "github.com/fumiama/go-docx"
)

// Block is a body-level element: a paragraph or a table.
type Block interface {
	block()
}

// OnOff is an empty toggle element such as w:keepNext or w:tblHeader.
type OnOff struct{}

// IntVal is an element carrying a single integer w:val.
type IntVal struct {
	Val int `xml:"w:val,attr"`
}

// StrVal is an element carrying a single string w:val.
type StrVal struct {
	Val string `xml:"w:val,attr"`
}

// Run is w:r. Properties precede content.
type Run struct {
	XMLName xml.Name `xml:"w:r"`
	Props   *RunProps
	Break   *docx.BarterRabbet
	Text    *docx.Text
}

// Plain returns the run's text, or "" for a break run.
func (r *Run) Plain() string {
	if r == nil || r.Text == nil {
		return ""
	}
	return r.Text.Text
}

// RunProps is w:rPr in CT_RPr order.
type RunProps struct {
	XMLName   xml.Name `xml:"w:rPr"`
	Style     *docx.RunStyle
	Fonts     *docx.RunFonts
	Bold      *docx.Bold
	Italic    *docx.Italic
	Color     *docx.Color
	Size      *docx.Size
	SizeCs    *docx.SizeCs
	Highlight *docx.Highlight
	Underline *docx.Underline
	Shade     *docx.Shade
}

func (p *RunProps) empty() bool {
	return p == nil || *p == RunProps{}
}

// Paragraph is w:p.
type Paragraph struct {
	XMLName xml.Name `xml:"w:p"`
	Props   *ParaProps
	Runs    []*Run
}

func (*Paragraph) block() {}

// Plain concatenates the text of every run.
func (p *Paragraph) Plain() string {
	var s string
	for _, r := range p.Runs {
		s += r.Plain()
	}
	return s
}

// StyleID returns the referenced paragraph style or "".
func (p *Paragraph) StyleID() string {
	if p.Props == nil || p.Props.Style == nil {
		return ""
	}
	return p.Props.Style.Val
}

// ParaProps is w:pPr in CT_PPr order.
type ParaProps struct {
	XMLName         xml.Name `xml:"w:pPr"`
	Style           *docx.Style
	KeepNext        *OnOff `xml:"w:keepNext"`
	PageBreakBefore *OnOff `xml:"w:pageBreakBefore"`
	Spacing         *Spacing
	Indent          *Indent
	Justification   *docx.Justification
	OutlineLevel    *IntVal `xml:"w:outlineLvl"`
	RunProps        *RunProps
}

// Spacing is w:spacing. Values are twips; nil attributes are omitted.
type Spacing struct {
	XMLName  xml.Name `xml:"w:spacing"`
	Before   *int     `xml:"w:before,attr,omitempty"`
	After    *int     `xml:"w:after,attr,omitempty"`
	Line     *int     `xml:"w:line,attr,omitempty"`
	LineRule string   `xml:"w:lineRule,attr,omitempty"`
}

// Indent is w:ind. Values are twips; nil attributes are omitted.
type Indent struct {
	XMLName   xml.Name `xml:"w:ind"`
	Left      *int     `xml:"w:left,attr,omitempty"`
	Right     *int     `xml:"w:right,attr,omitempty"`
	FirstLine *int     `xml:"w:firstLine,attr,omitempty"`
	Hanging   *int     `xml:"w:hanging,attr,omitempty"`
}

// Width is a w:tblW or w:tcW measurement.
type Width struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

// Border is one edge of w:tblBorders.
type Border struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

// Borders is w:tblBorders.
type Borders struct {
	XMLName xml.Name `xml:"w:tblBorders"`
	Top     *Border  `xml:"w:top"`
	Left    *Border  `xml:"w:left"`
	Bottom  *Border  `xml:"w:bottom"`
	Right   *Border  `xml:"w:right"`
	InsideH *Border  `xml:"w:insideH"`
	InsideV *Border  `xml:"w:insideV"`
}

// Table is w:tbl.
type Table struct {
	XMLName xml.Name `xml:"w:tbl"`
	Props   TableProps
	Grid    Grid
	Rows    []*Row
}

func (*Table) block() {}

// TableProps is w:tblPr.
type TableProps struct {
	XMLName xml.Name `xml:"w:tblPr"`
	Width   Width    `xml:"w:tblW"`
	Borders *Borders
}

// Grid is w:tblGrid.
type Grid struct {
	XMLName xml.Name `xml:"w:tblGrid"`
	Cols    []GridCol
}

// GridCol is w:gridCol.
type GridCol struct {
	XMLName xml.Name `xml:"w:gridCol"`
	W       int      `xml:"w:w,attr"`
}

// Row is w:tr.
type Row struct {
	XMLName xml.Name `xml:"w:tr"`
	Props   *RowProps
	Cells   []*Cell
}

// Header reports whether the row repeats as a table header.
func (r *Row) Header() bool {
	return r.Props != nil && r.Props.Header != nil
}

// RowProps is w:trPr.
type RowProps struct {
	XMLName xml.Name `xml:"w:trPr"`
	Header  *OnOff   `xml:"w:tblHeader"`
}

// Cell is w:tc. A cell always holds at least one paragraph.
type Cell struct {
	XMLName    xml.Name `xml:"w:tc"`
	Props      CellProps
	Paragraphs []*Paragraph
}

// CellProps is w:tcPr.
type CellProps struct {
	XMLName xml.Name `xml:"w:tcPr"`
	Width   Width    `xml:"w:tcW"`
	Shade   *docx.Shade
	VAlign  *StrVal `xml:"w:vAlign"`
}

// SectPr is the body's final w:sectPr.
type SectPr struct {
	XMLName  xml.Name    `xml:"w:sectPr"`
	PageSize PageSize    `xml:"w:pgSz"`
	Margins  *docx.PgMar `xml:"w:pgMar"`
}

// PageSize is w:pgSz.
type PageSize struct {
	W      int    `xml:"w:w,attr"`
	H      int    `xml:"w:h,attr"`
	Orient string `xml:"w:orient,attr,omitempty"`
}

// Style is one w:style record in word/styles.xml, in CT_Style order.
type Style struct {
	XMLName   xml.Name `xml:"w:style"`
	Type      string   `xml:"w:type,attr"`
	Default   string   `xml:"w:default,attr,omitempty"`
	ID        string   `xml:"w:styleId,attr"`
	Name      StrVal   `xml:"w:name"`
	BasedOn   *StrVal  `xml:"w:basedOn"`
	Next      *StrVal  `xml:"w:next"`
	QFormat   *OnOff   `xml:"w:qFormat"`
	ParaProps *ParaProps
	RunProps  *RunProps
}

// DocDefaults is w:docDefaults.
type DocDefaults struct {
	XMLName   xml.Name `xml:"w:docDefaults"`
	RunProps  RunDefault
	ParaProps ParaDefault
}

// RunDefault is w:rPrDefault.
type RunDefault struct {
	XMLName xml.Name `xml:"w:rPrDefault"`
	Props   *RunProps
}

// ParaDefault is w:pPrDefault.
type ParaDefault struct {
	XMLName xml.Name `xml:"w:pPrDefault"`
	Props   *ParaProps
}

// Styles is the root of word/styles.xml.
type Styles struct {
	XMLName  xml.Name `xml:"w:styles"`
	XMLW     string   `xml:"xmlns:w,attr"`
	Defaults *DocDefaults
	Styles   []*Style
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
