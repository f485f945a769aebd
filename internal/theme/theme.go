// Package theme holds the in-memory theme record consumed by the renderer: page
// geometry, the twelve fixed style roles and an optional table border spec.
package theme

import (
	"fmt"
	"strings"
)

// Theme is a complete rendering configuration. It must pass Validate before use.
type Theme struct {
	Name   string             `json:"name" yaml:"name"`
	Page   PageLayout         `json:"page_layout" yaml:"page_layout"`
	Styles StyleCatalogSource `json:"styles" yaml:"styles"`
	Table  *TableStyle        `json:"table,omitempty" yaml:"table,omitempty"`
}

// Page size tokens.
const (
	PageA4     = "A4"
	PageA5     = "A5"
	PageLetter = "Letter"
	PageLegal  = "Legal"
)

// Orientation tokens.
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// Alignment tokens.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

var pageSizes = []string{PageA4, PageA5, PageLetter, PageLegal}

// PageSizes lists the accepted page size tokens.
func PageSizes() []string {
	return append([]string(nil), pageSizes...)
}

// NormalizePageSize maps a page size token to its canonical spelling.
func NormalizePageSize(token string) (string, bool) {
	for _, s := range pageSizes {
		if strings.EqualFold(s, strings.TrimSpace(token)) {
			return s, true
		}
	}
	return "", false
}

// NormalizeOrientation maps an orientation token to its canonical spelling.
func NormalizeOrientation(token string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case Portrait:
		return Portrait, true
	case Landscape:
		return Landscape, true
	}
	return "", false
}

// NormalizeAlignment maps an alignment token to its canonical spelling.
func NormalizeAlignment(token string) (string, bool) {
	switch a := strings.ToLower(strings.TrimSpace(token)); a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return a, true
	}
	return "", false
}

// PageLayout is the page geometry. Distances are in centimeters.
type PageLayout struct {
	PageSize        string  `json:"page_size" yaml:"page_size"`
	Orientation     string  `json:"orientation" yaml:"orientation"`
	MirroredMargins bool    `json:"mirrored_margins" yaml:"mirrored_margins"`
	MarginInner     float64 `json:"margin_inner" yaml:"margin_inner"`
	MarginOuter     float64 `json:"margin_outer" yaml:"margin_outer"`
	MarginTop       float64 `json:"margin_top" yaml:"margin_top"`
	MarginBottom    float64 `json:"margin_bottom" yaml:"margin_bottom"`
	MarginHeader    float64 `json:"margin_header" yaml:"margin_header"`
	MarginFooter    float64 `json:"margin_footer" yaml:"margin_footer"`
}

// TableStyle is a uniform border applied to every rendered table.
type TableStyle struct {
	BorderColor string  `json:"border_color" yaml:"border_color"`
	BorderSize  float64 `json:"border_size" yaml:"border_size"` // points
}

// StyleSpec is the configurable part of one role. Nil fields are unset.
// Sizes and spacing are in points, indents in centimeters.
type StyleSpec struct {
	FontFamily      *string  `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontSize        *float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	Bold            *bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic          *bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline       *bool    `json:"underline,omitempty" yaml:"underline,omitempty"`
	Color           *string  `json:"color,omitempty" yaml:"color,omitempty"`
	BackgroundColor *string  `json:"background_color,omitempty" yaml:"background_color,omitempty"`
	Alignment       *string  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	LineSpacing     *float64 `json:"line_spacing,omitempty" yaml:"line_spacing,omitempty"`
	SpaceBefore     *float64 `json:"space_before,omitempty" yaml:"space_before,omitempty"`
	SpaceAfter      *float64 `json:"space_after,omitempty" yaml:"space_after,omitempty"`
	IndentLeft      *float64 `json:"indent_left,omitempty" yaml:"indent_left,omitempty"`
	IndentRight     *float64 `json:"indent_right,omitempty" yaml:"indent_right,omitempty"`
	IndentFirstLine *float64 `json:"indent_first_line,omitempty" yaml:"indent_first_line,omitempty"`
}

// IsZero reports whether no field is configured.
func (s StyleSpec) IsZero() bool {
	return s == StyleSpec{}
}

// StyleCatalogSource has exactly one spec per role.
type StyleCatalogSource struct {
	Normal        StyleSpec `json:"normal" yaml:"normal"`
	Heading1      StyleSpec `json:"heading1" yaml:"heading1"`
	Heading2      StyleSpec `json:"heading2" yaml:"heading2"`
	Heading3      StyleSpec `json:"heading3" yaml:"heading3"`
	Heading4      StyleSpec `json:"heading4" yaml:"heading4"`
	LatinText     StyleSpec `json:"latin_text" yaml:"latin_text"`
	Gloss         StyleSpec `json:"gloss" yaml:"gloss"`
	Note          StyleSpec `json:"note" yaml:"note"`
	SectionNumber StyleSpec `json:"section_number" yaml:"section_number"`
	TableHeader   StyleSpec `json:"table_header" yaml:"table_header"`
	TableCell     StyleSpec `json:"table_cell" yaml:"table_cell"`
	Blockquote    StyleSpec `json:"blockquote" yaml:"blockquote"`
}

// Spec returns the spec configured for role r.
func (c *StyleCatalogSource) Spec(r Role) StyleSpec {
	if p := c.field(r); p != nil {
		return *p
	}
	return StyleSpec{}
}

// Set replaces the spec for role r.
func (c *StyleCatalogSource) Set(r Role, spec StyleSpec) {
	if p := c.field(r); p != nil {
		*p = spec
	}
}

func (c *StyleCatalogSource) field(r Role) *StyleSpec {
	switch r {
	case RoleNormal:
		return &c.Normal
	case RoleHeading1:
		return &c.Heading1
	case RoleHeading2:
		return &c.Heading2
	case RoleHeading3:
		return &c.Heading3
	case RoleHeading4:
		return &c.Heading4
	case RoleLatinText:
		return &c.LatinText
	case RoleGloss:
		return &c.Gloss
	case RoleNote:
		return &c.Note
	case RoleSectionNumber:
		return &c.SectionNumber
	case RoleTableHeader:
		return &c.TableHeader
	case RoleTableCell:
		return &c.TableCell
	case RoleBlockquote:
		return &c.Blockquote
	}
	return nil
}

// Role is one of the twelve fixed style identities.
type Role int

const (
	RoleNormal Role = iota
	RoleHeading1
	RoleHeading2
	RoleHeading3
	RoleHeading4
	RoleLatinText
	RoleGloss
	RoleNote
	RoleSectionNumber
	RoleTableHeader
	RoleTableCell
	RoleBlockquote

	roleCount
)

var roleIDs = [roleCount]string{
	"Normal",
	"Heading1",
	"Heading2",
	"Heading3",
	"Heading4",
	"LatinText",
	"Gloss",
	"Note",
	"SectionNumber",
	"TableHeader",
	"TableCell",
	"Blockquote",
}

// Roles returns the fixed role catalog in declaration order.
func Roles() []Role {
	out := make([]Role, roleCount)
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

// RoleIDs returns the style ids of Roles().
func RoleIDs() []string {
	return append([]string(nil), roleIDs[:]...)
}

// ID is the style id the role is registered under.
func (r Role) ID() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleIDs[r]
}

func (r Role) String() string { return r.ID() }

// Valid reports whether r is one of the twelve roles.
func (r Role) Valid() bool {
	return r >= 0 && r < roleCount
}

// Paragraph reports whether the role carries paragraph properties.
// Gloss only ever styles runs.
func (r Role) Paragraph() bool {
	return r.Valid() && r != RoleGloss
}

// HeadingLevel returns 1-4 for heading roles and 0 otherwise.
func (r Role) HeadingLevel() int {
	if r >= RoleHeading1 && r <= RoleHeading4 {
		return int(r-RoleHeading1) + 1
	}
	return 0
}

// HeadingRole maps a heading level to its role.
func HeadingRole(level int) (Role, bool) {
	if level < 1 || level > 4 {
		return 0, false
	}
	return RoleHeading1 + Role(level-1), true
}

// ParseRole looks a role up by its style id.
func ParseRole(id string) (Role, error) {
	for i, s := range roleIDs {
		if s == id {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown style role %q", id)
}
