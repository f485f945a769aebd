package theme

import (
	"fmt"
	"regexp"
	"strings"
)

// Accepted ranges. Margins and indents are centimeters, sizes and spacing points.
const (
	MinMargin         = 0.5
	MaxMargin         = 10.0
	MaxHeaderFooter   = 5.0
	MaxVerticalSum    = 20.0
	MaxHorizontalSum  = 15.0
	MinFontSize       = 6.0
	MaxFontSize       = 72.0
	MinLineSpacing    = 0.5
	MaxLineSpacing    = 3.0
	MinParaSpace      = 0.0
	MaxParaSpace      = 144.0
	MinIndent         = -5.0
	MaxIndent         = 10.0
	MinBorderSize     = 0.25
	MaxBorderSize     = 6.0
	pageLayoutSection = "page_layout"
	tableSection      = "table"
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

var fontWhitelist = []string{
	"Arial",
	"Baskerville Old Face",
	"Book Antiqua",
	"Calibri",
	"Cambria",
	"Cardo",
	"Century Schoolbook",
	"Constantia",
	"Courier New",
	"EB Garamond",
	"Garamond",
	"Gentium",
	"Gentium Plus",
	"Georgia",
	"Helvetica",
	"Liberation Sans",
	"Liberation Serif",
	"Noto Sans",
	"Noto Serif",
	"Palatino Linotype",
	"Segoe UI",
	"Tahoma",
	"Times New Roman",
	"Verdana",
}

// Fonts returns the accepted font families.
func Fonts() []string {
	return append([]string(nil), fontWhitelist...)
}

// CanonicalFont matches name against the whitelist ignoring case and returns
// the whitelisted spelling.
func CanonicalFont(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, f := range fontWhitelist {
		if strings.EqualFold(f, name) {
			return f, true
		}
	}
	return "", false
}

// ValidColor reports whether s is a six digit hexadecimal color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

// Violation is one rejected setting.
type Violation struct {
	Role  string `json:"role"`
	Field string `json:"field"`
	Value any    `json:"value"`
	Rule  string `json:"rule"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s.%s=%v: %s", v.Role, v.Field, v.Value, v.Rule)
}

// ConfigurationError reports every violation found in a theme. A theme with
// any violation is rejected as a whole.
type ConfigurationError struct {
	Theme      string
	Violations []Violation
}

func (e *ConfigurationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("invalid theme %q: %s", e.Theme, strings.Join(parts, "; "))
}

// Has reports whether a violation was recorded for role and field.
func (e *ConfigurationError) Has(role, field string) bool {
	for _, v := range e.Violations {
		if v.Role == role && v.Field == field {
			return true
		}
	}
	return false
}

// Validate checks every field of t and returns a *ConfigurationError listing
// all violations, or nil.
func Validate(t Theme) error {
	v := &validator{}
	v.page(t.Page)
	for _, r := range Roles() {
		v.style(r, t.Styles.Spec(r))
	}
	if t.Table != nil {
		v.table(*t.Table)
	}
	if len(v.violations) == 0 {
		return nil
	}
	return &ConfigurationError{Theme: t.Name, Violations: v.violations}
}

type validator struct {
	violations []Violation
}

func (v *validator) add(role, field string, value any, rule string) {
	v.violations = append(v.violations, Violation{Role: role, Field: field, Value: value, Rule: rule})
}

func (v *validator) rangeCheck(role, field string, value, lo, hi float64) bool {
	if value >= lo && value <= hi {
		return true
	}
	v.add(role, field, value, fmt.Sprintf("must be within [%g, %g]", lo, hi))
	return false
}

func (v *validator) page(p PageLayout) {
	if _, ok := NormalizePageSize(p.PageSize); !ok {
		v.add(pageLayoutSection, "page_size", p.PageSize, "must be one of "+strings.Join(pageSizes, ", "))
	}
	if _, ok := NormalizeOrientation(p.Orientation); !ok {
		v.add(pageLayoutSection, "orientation", p.Orientation, "must be portrait or landscape")
	}

	v.rangeCheck(pageLayoutSection, "margin_inner", p.MarginInner, MinMargin, MaxMargin)
	v.rangeCheck(pageLayoutSection, "margin_outer", p.MarginOuter, MinMargin, MaxMargin)
	v.rangeCheck(pageLayoutSection, "margin_top", p.MarginTop, MinMargin, MaxMargin)
	v.rangeCheck(pageLayoutSection, "margin_bottom", p.MarginBottom, MinMargin, MaxMargin)
	v.rangeCheck(pageLayoutSection, "margin_header", p.MarginHeader, MinMargin, MaxHeaderFooter)
	v.rangeCheck(pageLayoutSection, "margin_footer", p.MarginFooter, MinMargin, MaxHeaderFooter)

	if sum := p.MarginTop + p.MarginBottom; sum > MaxVerticalSum {
		v.add(pageLayoutSection, "margin_top+margin_bottom", sum, fmt.Sprintf("must not exceed %g", MaxVerticalSum))
	}
	if sum := p.MarginInner + p.MarginOuter; sum > MaxHorizontalSum {
		v.add(pageLayoutSection, "margin_inner+margin_outer", sum, fmt.Sprintf("must not exceed %g", MaxHorizontalSum))
	}
}

func (v *validator) style(r Role, s StyleSpec) {
	role := r.ID()
	if s.FontFamily != nil {
		if _, ok := CanonicalFont(*s.FontFamily); !ok {
			v.add(role, "font_family", *s.FontFamily, "not an accepted font")
		}
	}
	if s.FontSize != nil {
		v.rangeCheck(role, "font_size", *s.FontSize, MinFontSize, MaxFontSize)
	}
	if s.Color != nil && !ValidColor(*s.Color) {
		v.add(role, "color", *s.Color, "must be six hexadecimal digits")
	}
	if s.BackgroundColor != nil && !ValidColor(*s.BackgroundColor) {
		v.add(role, "background_color", *s.BackgroundColor, "must be six hexadecimal digits")
	}
	if s.Alignment != nil {
		if _, ok := NormalizeAlignment(*s.Alignment); !ok {
			v.add(role, "alignment", *s.Alignment, "must be left, center, right or justify")
		}
	}
	if s.LineSpacing != nil {
		v.rangeCheck(role, "line_spacing", *s.LineSpacing, MinLineSpacing, MaxLineSpacing)
	}
	if s.SpaceBefore != nil {
		v.rangeCheck(role, "space_before", *s.SpaceBefore, MinParaSpace, MaxParaSpace)
	}
	if s.SpaceAfter != nil {
		v.rangeCheck(role, "space_after", *s.SpaceAfter, MinParaSpace, MaxParaSpace)
	}
	if s.IndentLeft != nil {
		v.rangeCheck(role, "indent_left", *s.IndentLeft, MinIndent, MaxIndent)
	}
	if s.IndentRight != nil {
		v.rangeCheck(role, "indent_right", *s.IndentRight, MinIndent, MaxIndent)
	}
	if s.IndentFirstLine != nil {
		v.rangeCheck(role, "indent_first_line", *s.IndentFirstLine, MinIndent, MaxIndent)
	}
}

func (v *validator) table(t TableStyle) {
	if !ValidColor(t.BorderColor) {
		v.add(tableSection, "border_color", t.BorderColor, "must be six hexadecimal digits")
	}
	v.rangeCheck(tableSection, "border_size", t.BorderSize, MinBorderSize, MaxBorderSize)
}
