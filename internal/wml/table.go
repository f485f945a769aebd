package wml

import (
	"errors"
	"strings"

	docx "github.com/fumiama/go-docx"
)

var (
	// ErrEmptyRow is returned when a row has no cells.
	ErrEmptyRow = errors.New("table row has no cells")
	// ErrEmptyTable is returned when Build is called before any row was added.
	ErrEmptyTable = errors.New("table has no rows")
	// ErrLateHeader is returned when a header row follows a data row.
	ErrLateHeader = errors.New("header row after data rows")
)

const (
	// HeaderFill is the background of header cells.
	HeaderFill = "D9D9D9"
	// DefaultContentWidth is the text width of an A4 page with 2.5 cm margins.
	DefaultContentWidth = 9072
	fullWidthPct        = 5000
)

// BorderSpec is a uniform table border. Size is in eighths of a point and
// applies to the outer edges; inner lines use half of it.
type BorderSpec struct {
	Color string
	Size  int
}

type tableRow struct {
	cells  []string
	header bool
}

// TableBuilder accumulates rows and builds a w:tbl. Unlike the run and
// paragraph builders it mutates in place.
type TableBuilder struct {
	rows         []tableRow
	borders      *BorderSpec
	contentWidth int
	headerStyle  string
	cellStyle    string
}

// NewTable returns an empty builder.
func NewTable() *TableBuilder {
	return &TableBuilder{contentWidth: DefaultContentWidth}
}

// AddHeaderRow appends a header row. Header rows must come first.
func (t *TableBuilder) AddHeaderRow(cells ...string) error {
	if len(cells) == 0 {
		return ErrEmptyRow
	}
	for _, r := range t.rows {
		if !r.header {
			return ErrLateHeader
		}
	}
	t.rows = append(t.rows, tableRow{cells: cells, header: true})
	return nil
}

// AddRow appends a data row.
func (t *TableBuilder) AddRow(cells ...string) error {
	if len(cells) == 0 {
		return ErrEmptyRow
	}
	t.rows = append(t.rows, tableRow{cells: cells})
	return nil
}

// SetBorders attaches a uniform border spec.
func (t *TableBuilder) SetBorders(spec BorderSpec) *TableBuilder {
	t.borders = &spec
	return t
}

// SetContentWidth sets the text width, in twips, used to size grid columns.
func (t *TableBuilder) SetContentWidth(twips int) *TableBuilder {
	if twips > 0 {
		t.contentWidth = twips
	}
	return t
}

// SetCellStyles sets the paragraph styles of header and data cells.
func (t *TableBuilder) SetCellStyles(header, cell string) *TableBuilder {
	t.headerStyle = header
	t.cellStyle = cell
	return t
}

// Len returns the number of accumulated rows.
func (t *TableBuilder) Len() int {
	return len(t.rows)
}

// Build returns the table. Rows shorter than the widest row are padded with
// empty cells.
func (t *TableBuilder) Build() (*Table, error) {
	if len(t.rows) == 0 {
		return nil, ErrEmptyTable
	}

	cols := 0
	for _, r := range t.rows {
		cols = max(cols, len(r.cells))
	}
	colWidth := t.contentWidth / cols

	tbl := &Table{
		Props: TableProps{Width: Width{W: fullWidthPct, Type: "pct"}},
	}
	if t.borders != nil {
		tbl.Props.Borders = t.borders.element()
	}
	for range cols {
		tbl.Grid.Cols = append(tbl.Grid.Cols, GridCol{W: colWidth})
	}

	for _, r := range t.rows {
		row := &Row{}
		if r.header {
			row.Props = &RowProps{Header: &OnOff{}}
		}
		for i := range cols {
			var text string
			if i < len(r.cells) {
				text = r.cells[i]
			}
			row.Cells = append(row.Cells, t.cell(text, colWidth, r.header))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

func (t *TableBuilder) cell(text string, width int, header bool) *Cell {
	c := &Cell{Props: CellProps{Width: Width{W: width, Type: "dxa"}}}
	p := NewParagraph()
	if header {
		c.Props.Shade = &docx.Shade{Val: "clear", Color: "auto", Fill: HeaderFill}
		p = p.Style(t.headerStyle).Align("center")
		if text != "" {
			p = p.Runs(NewRun(text).Bold().Build())
		}
	} else {
		c.Props.VAlign = &StrVal{Val: "top"}
		p = p.Style(t.cellStyle)
		if text != "" {
			p = p.Text(text)
		}
	}
	c.Paragraphs = []*Paragraph{p.Build()}
	return c
}

func (s BorderSpec) element() *Borders {
	color := strings.ToUpper(s.Color)
	if color == "" {
		color = "auto"
	}
	outer := func() *Border { return &Border{Val: "single", Size: s.Size, Color: color} }
	// w:sz has a floor of 2 eighths of a point.
	inner := func() *Border { return &Border{Val: "single", Size: max(s.Size/2, 2), Color: color} }
	return &Borders{
		Top:     outer(),
		Left:    outer(),
		Bottom:  outer(),
		Right:   outer(),
		InsideH: inner(),
		InsideV: inner(),
	}
}
