package render

import (
	"github.com/dgallion1/docrender/internal/doctree"
	"github.com/dgallion1/docrender/internal/theme"
)

// roleRule maps a paragraph node to a style role when match succeeds. Rules
// are tried in order; the first match wins.
type roleRule struct {
	name  string
	match func(*doctree.Node) bool
	role  theme.Role
}

var paragraphRules = []roleRule{
	{"section_number", func(n *doctree.Node) bool { return n.SectionNumber != "" }, theme.RoleSectionNumber},
	{"footnote", func(n *doctree.Node) bool { return n.IsFootnote }, theme.RoleNote},
	{"foreign", func(n *doctree.Node) bool { return n.ClassContains("foreign") }, theme.RoleLatinText},
}

// ResolveRole picks the role for a paragraph node, falling back to fallback
// when no rule matches.
func ResolveRole(n *doctree.Node, fallback theme.Role) theme.Role {
	for _, r := range paragraphRules {
		if r.match(n) {
			return r.role
		}
	}
	return fallback
}
