package wml

import (
	"slices"

	docx "github.com/fumiama/go-docx"
)

// Justification returns the w:jc value for an alignment token, or "" when the
// token is unknown.
func Justification(align string) string {
	switch align {
	case "left":
		return "left"
	case "center":
		return "center"
	case "right":
		return "right"
	case "justify":
		return "both"
	}
	return ""
}

// ParagraphBuilder builds a w:p. Like RunBuilder it is a value type; appended
// runs never alias the receiver's backing array.
type ParagraphBuilder struct {
	props ParaProps
	runs  []*Run
}

// NewParagraph starts an empty paragraph.
func NewParagraph() ParagraphBuilder {
	return ParagraphBuilder{}
}

// Style references a paragraph style.
func (b ParagraphBuilder) Style(id string) ParagraphBuilder {
	if id != "" {
		b.props.Style = &docx.Style{Val: id}
	}
	return b
}

// Align sets the alignment from a theme token. Unknown tokens are ignored.
func (b ParagraphBuilder) Align(align string) ParagraphBuilder {
	if jc := Justification(align); jc != "" {
		b.props.Justification = &docx.Justification{Val: jc}
	}
	return b
}

// IndentLeft sets the left indent in twips.
func (b ParagraphBuilder) IndentLeft(twips int) ParagraphBuilder {
	ind := b.indent()
	ind.Left = &twips
	b.props.Indent = &ind
	return b
}

// IndentRight sets the right indent in twips.
func (b ParagraphBuilder) IndentRight(twips int) ParagraphBuilder {
	ind := b.indent()
	ind.Right = &twips
	b.props.Indent = &ind
	return b
}

// FirstLine sets the first-line indent in twips. Negative values become a
// hanging indent.
func (b ParagraphBuilder) FirstLine(twips int) ParagraphBuilder {
	ind := b.indent()
	ind.FirstLine, ind.Hanging = nil, nil
	if twips < 0 {
		h := -twips
		ind.Hanging = &h
	} else {
		ind.FirstLine = &twips
	}
	b.props.Indent = &ind
	return b
}

func (b ParagraphBuilder) indent() Indent {
	if b.props.Indent == nil {
		return Indent{}
	}
	return *b.props.Indent
}

// SpaceBefore sets the space above in twips.
func (b ParagraphBuilder) SpaceBefore(twips int) ParagraphBuilder {
	sp := b.spacing()
	sp.Before = &twips
	b.props.Spacing = &sp
	return b
}

// SpaceAfter sets the space below in twips.
func (b ParagraphBuilder) SpaceAfter(twips int) ParagraphBuilder {
	sp := b.spacing()
	sp.After = &twips
	b.props.Spacing = &sp
	return b
}

// LineSpacing sets proportional line spacing in 240ths of a line.
func (b ParagraphBuilder) LineSpacing(twips int) ParagraphBuilder {
	sp := b.spacing()
	sp.Line = &twips
	sp.LineRule = "auto"
	b.props.Spacing = &sp
	return b
}

func (b ParagraphBuilder) spacing() Spacing {
	if b.props.Spacing == nil {
		return Spacing{}
	}
	return *b.props.Spacing
}

func (b ParagraphBuilder) KeepNext() ParagraphBuilder {
	b.props.KeepNext = &OnOff{}
	return b
}

// OutlineLevel sets the zero-based outline level used for navigation.
func (b ParagraphBuilder) OutlineLevel(level int) ParagraphBuilder {
	b.props.OutlineLevel = &IntVal{Val: level}
	return b
}

// Props returns the accumulated paragraph properties, or nil when none are set.
func (b ParagraphBuilder) Props() *ParaProps {
	return b.Build().Props
}

// Runs appends finished runs.
func (b ParagraphBuilder) Runs(runs ...*Run) ParagraphBuilder {
	b.runs = append(slices.Clip(b.runs), runs...)
	return b
}

// Text appends a plain run.
func (b ParagraphBuilder) Text(s string) ParagraphBuilder {
	return b.Runs(NewRun(s).Build())
}

// Build returns the finished paragraph. Properties always precede runs.
func (b ParagraphBuilder) Build() *Paragraph {
	p := &Paragraph{Runs: slices.Clone(b.runs)}
	if b.props != (ParaProps{}) {
		props := b.props
		p.Props = &props
	}
	return p
}

// RoleParagraph is a paragraph bound to a style holding a single text run.
func RoleParagraph(styleID, text string) *Paragraph {
	return NewParagraph().Style(styleID).Text(text).Build()
}

// SectionLabel appends a bold label run followed by exactly one single-space
// run. Content runs go after it.
func (b ParagraphBuilder) SectionLabel(label string) ParagraphBuilder {
	return b.Runs(NewRun(label).Bold().Build(), NewRun(" ").Build())
}

// SectionParagraph renders a numbered paragraph: the section label, then the
// content runs.
func SectionParagraph(styleID, label string, content ...*Run) *Paragraph {
	return NewParagraph().Style(styleID).SectionLabel(label).Runs(content...).Build()
}

// PageBreak is a paragraph holding only a page break.
func PageBreak() *Paragraph {
	return NewParagraph().Runs(BreakRun()).Build()
}

// Blank is an empty paragraph.
func Blank() *Paragraph {
	return &Paragraph{}
}
