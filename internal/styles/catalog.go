// Package styles compiles a theme's role specs into the style records written
// to word/styles.xml.
package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/dgallion1/docrender/internal/theme"
	"github.com/dgallion1/docrender/internal/units"
	"github.com/dgallion1/docrender/internal/wml"
)

// Catalog maps style ids to compiled records. Registering an id that is
// already present replaces the prior record outright; nothing is merged.
type Catalog struct {
	records map[string]*wml.Style
	order   []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{records: make(map[string]*wml.Style)}
}

// Compile registers every role of src, configured or not.
func Compile(src theme.StyleCatalogSource) *Catalog {
	c := New()
	for _, r := range theme.Roles() {
		c.Register(CompileRole(r, src.Spec(r)))
	}
	return c
}

// Register adds s, replacing any record with the same id.
func (c *Catalog) Register(s *wml.Style) {
	if _, ok := c.records[s.ID]; !ok {
		c.order = append(c.order, s.ID)
	}
	c.records[s.ID] = s
}

// Lookup returns the record registered under id.
func (c *Catalog) Lookup(id string) (*wml.Style, bool) {
	s, ok := c.records[id]
	return s, ok
}

// Has reports whether id is registered.
func (c *Catalog) Has(id string) bool {
	_, ok := c.records[id]
	return ok
}

// IDs lists registered style ids in first-registration order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of registered styles.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Part returns the styles part root.
func (c *Catalog) Part() *wml.Styles {
	part := &wml.Styles{
		XMLW:     docx.XMLNS_W,
		Defaults: c.docDefaults(),
	}
	for _, id := range c.order {
		part.Styles = append(part.Styles, c.records[id])
	}
	return part
}

// XML encodes the catalog as a complete word/styles.xml part.
func (c *Catalog) XML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(c.Part()); err != nil {
		return nil, fmt.Errorf("encode styles: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Catalog) docDefaults() *wml.DocDefaults {
	// Font and size follow whichever Normal record is currently registered.
	d := &wml.DocDefaults{}
	if n, ok := c.records[theme.RoleNormal.ID()]; ok && n.RunProps != nil &&
		(n.RunProps.Fonts != nil || n.RunProps.Size != nil) {
		d.RunProps.Props = &wml.RunProps{
			Fonts:  n.RunProps.Fonts,
			Size:   n.RunProps.Size,
			SizeCs: n.RunProps.SizeCs,
		}
	}
	return d
}

var displayNames = map[theme.Role]string{
	theme.RoleNormal:        "Normal",
	theme.RoleHeading1:      "heading 1",
	theme.RoleHeading2:      "heading 2",
	theme.RoleHeading3:      "heading 3",
	theme.RoleHeading4:      "heading 4",
	theme.RoleLatinText:     "Latin Text",
	theme.RoleGloss:         "Gloss",
	theme.RoleNote:          "Note",
	theme.RoleSectionNumber: "Section Number",
	theme.RoleTableHeader:   "Table Header",
	theme.RoleTableCell:     "Table Cell",
	theme.RoleBlockquote:    "Block Quote",
}

// DisplayName is the name Word shows for the role's style.
func DisplayName(r theme.Role) string {
	return displayNames[r]
}

// CompileRole turns one role spec into a style record. Gloss becomes a
// character style; every other role is a paragraph style based on Normal.
// An unconfigured role still yields a record carrying only its identity.
func CompileRole(r theme.Role, spec theme.StyleSpec) *wml.Style {
	s := &wml.Style{
		Type: "paragraph",
		ID:   r.ID(),
		Name: wml.StrVal{Val: DisplayName(r)},
	}
	switch {
	case r == theme.RoleNormal:
		s.Default = "1"
		s.QFormat = &wml.OnOff{}
	case r.Paragraph():
		s.BasedOn = &wml.StrVal{Val: theme.RoleNormal.ID()}
		s.Next = &wml.StrVal{Val: theme.RoleNormal.ID()}
		s.QFormat = &wml.OnOff{}
	default:
		s.Type = "character"
	}

	s.RunProps = runProps(spec)
	if r.Paragraph() {
		s.ParaProps = paraProps(spec, r.HeadingLevel())
	}
	return s
}

func runProps(spec theme.StyleSpec) *wml.RunProps {
	b := wml.NewRun("").
		Font(canonicalFont(spec.FontFamily)).
		Size(value(spec.FontSize)).
		Color(str(spec.Color)).
		Shade(str(spec.BackgroundColor))
	if flag(spec.Bold) {
		b = b.Bold()
	}
	if flag(spec.Italic) {
		b = b.Italic()
	}
	if flag(spec.Underline) {
		b = b.Underline()
	}
	return b.Props()
}

func paraProps(spec theme.StyleSpec, headingLevel int) *wml.ParaProps {
	b := wml.NewParagraph()
	if headingLevel > 0 {
		b = b.KeepNext().OutlineLevel(headingLevel - 1)
	}
	if spec.Alignment != nil {
		if a, ok := theme.NormalizeAlignment(*spec.Alignment); ok {
			b = b.Align(a)
		}
	}
	if spec.SpaceBefore != nil {
		b = b.SpaceBefore(units.PointsToTwips(*spec.SpaceBefore))
	}
	if spec.SpaceAfter != nil {
		b = b.SpaceAfter(units.PointsToTwips(*spec.SpaceAfter))
	}
	if spec.LineSpacing != nil {
		b = b.LineSpacing(units.LineSpacingToTwips(*spec.LineSpacing))
	}
	if spec.IndentLeft != nil {
		b = b.IndentLeft(units.CmToTwips(*spec.IndentLeft))
	}
	if spec.IndentRight != nil {
		b = b.IndentRight(units.CmToTwips(*spec.IndentRight))
	}
	if spec.IndentFirstLine != nil {
		b = b.FirstLine(units.CmToTwips(*spec.IndentFirstLine))
	}
	return b.Props()
}

func canonicalFont(name *string) string {
	if name == nil {
		return ""
	}
	if f, ok := theme.CanonicalFont(*name); ok {
		return f
	}
	return strings.TrimSpace(*name)
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func flag(b *bool) bool {
	return b != nil && *b
}
