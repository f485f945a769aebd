package wml

import (
	"strconv"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/dgallion1/docrender/internal/units"
)

// RunBuilder builds a w:r. It is a value type: every method returns a new
// builder and leaves the receiver unchanged.
type RunBuilder struct {
	props RunProps
	text  string
}

// NewRun starts a run holding text.
func NewRun(text string) RunBuilder {
	return RunBuilder{text: text}
}

// Style references a character style.
func (b RunBuilder) Style(id string) RunBuilder {
	if id != "" {
		b.props.Style = &docx.RunStyle{Val: id}
	}
	return b
}

func (b RunBuilder) Bold() RunBuilder {
	b.props.Bold = &docx.Bold{}
	return b
}

func (b RunBuilder) Italic() RunBuilder {
	b.props.Italic = &docx.Italic{}
	return b
}

func (b RunBuilder) Underline() RunBuilder {
	b.props.Underline = &docx.Underline{Val: "single"}
	return b
}

// Font sets the font for every script slot.
func (b RunBuilder) Font(name string) RunBuilder {
	if name != "" {
		b.props.Fonts = &docx.RunFonts{ASCII: name, EastAsia: name, HAnsi: name}
	}
	return b
}

// Size sets the font size in points.
func (b RunBuilder) Size(pt float64) RunBuilder {
	if pt > 0 {
		hp := strconv.Itoa(units.PointsToHalfPoints(pt))
		b.props.Size = &docx.Size{Val: hp}
		b.props.SizeCs = &docx.SizeCs{Val: hp}
	}
	return b
}

// Color sets a six-digit hex foreground color.
func (b RunBuilder) Color(hex string) RunBuilder {
	if hex != "" {
		b.props.Color = &docx.Color{Val: strings.ToUpper(hex)}
	}
	return b
}

// Highlight sets a named highlight color such as "yellow".
func (b RunBuilder) Highlight(name string) RunBuilder {
	if name != "" {
		b.props.Highlight = &docx.Highlight{Val: name}
	}
	return b
}

// Shade sets a solid background fill.
func (b RunBuilder) Shade(hex string) RunBuilder {
	if hex != "" {
		b.props.Shade = ClearShade(hex)
	}
	return b
}

// Build returns the finished run.
func (b RunBuilder) Build() *Run {
	r := &Run{Text: &docx.Text{XMLSpace: "preserve", Text: b.text}}
	if !b.props.empty() {
		props := b.props
		r.Props = &props
	}
	return r
}

// Props returns the accumulated run properties, or nil when none are set.
func (b RunBuilder) Props() *RunProps {
	return b.Build().Props
}

// BreakRun returns a run holding a page break.
func BreakRun() *Run {
	return &Run{Break: &docx.BarterRabbet{Type: "page"}}
}

// ClearShade returns a w:shd with a clear pattern and the given fill.
func ClearShade(hex string) *docx.Shade {
	return &docx.Shade{Val: "clear", Color: "auto", Fill: strings.ToUpper(hex)}
}
