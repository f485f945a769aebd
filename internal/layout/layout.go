// Package layout compiles theme page geometry into section properties.
package layout

import (
	docx "github.com/fumiama/go-docx"

	"github.com/dgallion1/docrender/internal/theme"
	"github.com/dgallion1/docrender/internal/units"
	"github.com/dgallion1/docrender/internal/wml"
)

// SectionLayout is compiled page geometry. All distances are twips.
type SectionLayout struct {
	PageWidth  int
	PageHeight int
	Landscape  bool
	Mirrored   bool
	Left       int
	Right      int
	Top        int
	Bottom     int
	Header     int
	Footer     int
	Gutter     int
}

type pageSize struct {
	width, height int // portrait, twips
}

var pageSizes = map[string]pageSize{
	theme.PageA4:     {units.CmToTwips(21.0), units.CmToTwips(29.7)},
	theme.PageA5:     {units.CmToTwips(14.8), units.CmToTwips(21.0)},
	theme.PageLetter: {units.InchesToTwips(8.5), units.InchesToTwips(11)},
	theme.PageLegal:  {units.InchesToTwips(8.5), units.InchesToTwips(14)},
}

// Compile converts page geometry to twips. Unknown page sizes fall back to A4.
//
// Inner and outer margins map to left and right in both modes. Facing pages
// are not alternated; mirroring is only recorded.
func Compile(p theme.PageLayout) SectionLayout {
	token, ok := theme.NormalizePageSize(p.PageSize)
	if !ok {
		token = theme.PageA4
	}
	size := pageSizes[token]

	l := SectionLayout{
		PageWidth:  size.width,
		PageHeight: size.height,
		Mirrored:   p.MirroredMargins,
		Left:       units.CmToTwips(p.MarginInner),
		Right:      units.CmToTwips(p.MarginOuter),
		Top:        units.CmToTwips(p.MarginTop),
		Bottom:     units.CmToTwips(p.MarginBottom),
		Header:     units.CmToTwips(p.MarginHeader),
		Footer:     units.CmToTwips(p.MarginFooter),
	}
	if o, _ := theme.NormalizeOrientation(p.Orientation); o == theme.Landscape {
		l.Landscape = true
		l.PageWidth, l.PageHeight = l.PageHeight, l.PageWidth
	}
	return l
}

// ContentWidth is the text width between the side margins.
func (l SectionLayout) ContentWidth() int {
	return l.PageWidth - l.Left - l.Right - l.Gutter
}

// SectPr returns the body's section properties.
func (l SectionLayout) SectPr() *wml.SectPr {
	s := &wml.SectPr{
		PageSize: wml.PageSize{W: l.PageWidth, H: l.PageHeight},
		Margins: &docx.PgMar{
			Top:    l.Top,
			Left:   l.Left,
			Bottom: l.Bottom,
			Right:  l.Right,
			Header: l.Header,
			Footer: l.Footer,
			Gutter: l.Gutter,
		},
	}
	if l.Landscape {
		s.PageSize.Orient = theme.Landscape
	}
	return s
}
