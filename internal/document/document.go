// Package document assembles rendered blocks into a single .docx package. An
// Assembler is single use: load a theme, add content, then Finalize or
// Abandon exactly once.
package document

import (
	"errors"
	"log/slog"
	"time"

	"github.com/dgallion1/docrender/internal/doctree"
	"github.com/dgallion1/docrender/internal/layout"
	"github.com/dgallion1/docrender/internal/render"
	"github.com/dgallion1/docrender/internal/styles"
	"github.com/dgallion1/docrender/internal/theme"
	"github.com/dgallion1/docrender/internal/units"
	"github.com/dgallion1/docrender/internal/wml"
)

type state int

const (
	stateOpen state = iota
	stateFinalized
	stateAbandoned
)

// Assembler owns one package for the length of a render session.
type Assembler struct {
	dst Destination
	log *slog.Logger
	now func() time.Time

	themeName  string
	catalog    *styles.Catalog
	layout     layout.SectionLayout
	borders    *wml.BorderSpec
	dispatcher *render.Dispatcher

	props  Properties
	blocks []wml.Block
	state  state
}

// New records the destination; nothing is opened until Finalize.
func New(dst Destination, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Assembler{dst: dst, log: log, now: time.Now}
}

// LoadTheme validates t and compiles its style catalog and page layout. It
// must precede all content. A theme that fails validation leaves the
// assembler untouched and returns *theme.ConfigurationError.
func (a *Assembler) LoadTheme(t theme.Theme) error {
	if err := a.checkState("load theme"); err != nil {
		return err
	}
	if len(a.blocks) > 0 {
		return &UsageError{Op: "load theme", Msg: "content already added"}
	}
	if err := theme.Validate(t); err != nil {
		return err
	}

	a.themeName = t.Name
	a.catalog = styles.Compile(t.Styles)
	a.layout = layout.Compile(t.Page)

	opts := render.Options{ContentWidth: a.layout.ContentWidth()}
	if t.Table != nil {
		opts.Borders = &wml.BorderSpec{
			Color: t.Table.BorderColor,
			Size:  units.PointsToEighths(t.Table.BorderSize),
		}
	}
	a.borders = opts.Borders
	a.dispatcher = render.New(a.catalog, a, opts)

	a.log.Debug("theme loaded", "theme", t.Name, "styles", a.catalog.Len(),
		"page_width", a.layout.PageWidth, "page_height", a.layout.PageHeight)
	return nil
}

// SetProperties sets the core metadata written at Finalize.
func (a *Assembler) SetProperties(p Properties) {
	a.props = p
}

// RegisteredStyleIDs lists the compiled style ids, or nil before LoadTheme.
func (a *Assembler) RegisteredStyleIDs() []string {
	if a.catalog == nil {
		return nil
	}
	return a.catalog.IDs()
}

// Roles lists the style roles a theme can configure.
func (a *Assembler) Roles() []theme.Role {
	return theme.Roles()
}

// Layout returns the compiled page geometry.
func (a *Assembler) Layout() layout.SectionLayout {
	return a.layout
}

// Blocks returns the number of body blocks added so far.
func (a *Assembler) Blocks() int {
	return len(a.blocks)
}

func (a *Assembler) checkState(op string) error {
	switch a.state {
	case stateFinalized:
		return &UsageError{Op: op, Msg: "document already finalized"}
	case stateAbandoned:
		return &UsageError{Op: op, Msg: "document abandoned"}
	}
	return nil
}

func (a *Assembler) ready(op string) error {
	if err := a.checkState(op); err != nil {
		return err
	}
	if a.catalog == nil {
		return &UsageError{Op: op, Msg: "no theme loaded"}
	}
	return nil
}

// Append adds a finished block. The dispatcher writes through it.
func (a *Assembler) Append(b wml.Block) error {
	if err := a.ready("append"); err != nil {
		return err
	}
	if b == nil {
		return &UsageError{Op: "append", Msg: "nil block"}
	}
	a.blocks = append(a.blocks, b)
	return nil
}

func (a *Assembler) styleID(r theme.Role) string {
	if !a.catalog.Has(r.ID()) {
		return ""
	}
	return r.ID()
}

// AddHeading adds a heading paragraph at level 1-4.
func (a *Assembler) AddHeading(level int, text string) error {
	if err := a.ready("add heading"); err != nil {
		return err
	}
	role, ok := theme.HeadingRole(level)
	if !ok {
		return &UsageError{Op: "add heading", Msg: "heading level must be 1-4", Err: render.ErrHeadingLevel}
	}
	return a.Append(wml.RoleParagraph(a.styleID(role), text))
}

// AddParagraph adds text in the given role. Gloss, a run-only role, is
// applied to the run of an otherwise unstyled paragraph.
func (a *Assembler) AddParagraph(role theme.Role, text string) error {
	if err := a.ready("add paragraph"); err != nil {
		return err
	}
	if !role.Valid() {
		return &UsageError{Op: "add paragraph", Msg: "unknown role " + role.ID()}
	}
	if !role.Paragraph() {
		run := wml.NewRun(text).Style(a.styleID(role)).Build()
		return a.Append(wml.NewParagraph().Runs(run).Build())
	}
	return a.Append(wml.RoleParagraph(a.styleID(role), text))
}

// AddSectionParagraph adds a numbered paragraph in the SectionNumber role.
func (a *Assembler) AddSectionParagraph(number, text string) error {
	if err := a.ready("add section paragraph"); err != nil {
		return err
	}
	return a.Append(wml.SectionParagraph(a.styleID(theme.RoleSectionNumber), render.SectionLabel(number), wml.NewRun(text).Build()))
}

// AddTable adds a table. header may be nil; every row needs at least one cell.
func (a *Assembler) AddTable(header []string, rows [][]string) error {
	if err := a.ready("add table"); err != nil {
		return err
	}
	tb := wml.NewTable().
		SetContentWidth(a.layout.ContentWidth()).
		SetCellStyles(a.styleID(theme.RoleTableHeader), a.styleID(theme.RoleTableCell))
	if a.borders != nil {
		tb.SetBorders(*a.borders)
	}
	if header != nil {
		if err := tb.AddHeaderRow(header...); err != nil {
			return &UsageError{Op: "add table", Msg: "invalid header row", Err: err}
		}
	}
	for _, r := range rows {
		if err := tb.AddRow(r...); err != nil {
			return &UsageError{Op: "add table", Msg: "invalid row", Err: err}
		}
	}
	tbl, err := tb.Build()
	if err != nil {
		return &UsageError{Op: "add table", Msg: "invalid table", Err: err}
	}
	return a.Append(tbl)
}

// AddPageBreak adds a paragraph holding a page break.
func (a *Assembler) AddPageBreak() error {
	if err := a.ready("add page break"); err != nil {
		return err
	}
	return a.Append(wml.PageBreak())
}

// AddBlankLines adds n empty paragraphs.
func (a *Assembler) AddBlankLines(n int) error {
	if err := a.ready("add blank lines"); err != nil {
		return err
	}
	if n < 0 {
		return &UsageError{Op: "add blank lines", Msg: "negative count"}
	}
	for range n {
		if err := a.Append(wml.Blank()); err != nil {
			return err
		}
	}
	return nil
}

// AddTitlePage adds a centered title, centered italic info lines, a blank
// paragraph and a page break. The title also becomes the document title
// unless one was set.
func (a *Assembler) AddTitlePage(title string, lines ...string) error {
	if err := a.ready("add title page"); err != nil {
		return err
	}
	if a.props.Title == "" {
		a.props.Title = title
	}

	heading := wml.NewParagraph().Style(a.styleID(theme.RoleHeading1)).Align(theme.AlignCenter).Text(title).Build()
	if err := a.Append(heading); err != nil {
		return err
	}
	for _, line := range lines {
		p := wml.NewParagraph().
			Style(a.styleID(theme.RoleNormal)).
			Align(theme.AlignCenter).
			Runs(wml.NewRun(line).Italic().Build()).
			Build()
		if err := a.Append(p); err != nil {
			return err
		}
	}
	if err := a.Append(wml.Blank()); err != nil {
		return err
	}
	return a.Append(wml.PageBreak())
}

// StartChapter starts a new page, unless the document is still empty, and
// adds a level 1 heading.
func (a *Assembler) StartChapter(title string) error {
	if err := a.ready("start chapter"); err != nil {
		return err
	}
	if len(a.blocks) > 0 {
		if err := a.Append(wml.PageBreak()); err != nil {
			return err
		}
	}
	return a.AddHeading(1, title)
}

// StartSection adds a level 2 heading.
func (a *Assembler) StartSection(title string) error {
	return a.AddHeading(2, title)
}

// Render dispatches every node of tree. Structural problems in the tree, such
// as a heading level outside 1-4, surface as *UsageError.
func (a *Assembler) Render(tree *doctree.Tree) error {
	if err := a.ready("render"); err != nil {
		return err
	}
	if tree == nil {
		return nil
	}
	if a.props.Title == "" {
		a.props.Title = tree.Title
	}

	err := a.dispatcher.Render(tree)
	if err == nil {
		return nil
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return err
	}
	return &UsageError{Op: "render", Msg: "cannot render tree", Err: err}
}

// Progress returns the nodes dispatched and blocks added so far.
func (a *Assembler) Progress() (nodes, blocks int) {
	if a.dispatcher != nil {
		nodes = a.dispatcher.Nodes()
	}
	return nodes, len(a.blocks)
}

// Finalize writes the package to the destination. It may succeed at most
// once; the assembler accepts no further calls afterwards, whatever the
// outcome.
func (a *Assembler) Finalize() error {
	if err := a.ready("finalize"); err != nil {
		return err
	}
	a.state = stateFinalized
	defer func() { a.blocks = nil }()

	data, err := pack(a.catalog, a.blocks, a.layout.SectPr(), a.props, a.now())
	if err != nil {
		return &ResourceError{Op: "package", Path: a.dst.String(), Err: err}
	}
	if err := a.dst.write(data); err != nil {
		a.log.Error("document write failed", "destination", a.dst.String(), "error", err)
		return &ResourceError{Op: "write", Path: a.dst.String(), Err: err}
	}

	a.log.Info("document finalized",
		"destination", a.dst.String(),
		"theme", a.themeName,
		"blocks", len(a.blocks),
		"bytes", len(data),
	)
	return nil
}

// Abandon discards the session without touching the destination. It is safe
// to call on any path, including after Finalize, where it does nothing.
func (a *Assembler) Abandon() {
	if a.state != stateOpen {
		return
	}
	a.state = stateAbandoned
	a.log.Debug("document abandoned", "destination", a.dst.String(), "blocks", len(a.blocks))
	a.blocks = nil
}
