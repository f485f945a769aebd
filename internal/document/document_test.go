package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	docx "github.com/fumiama/go-docx"

	"github.com/dgallion1/docrender/internal/doctree"
	"github.com/dgallion1/docrender/internal/render"
	"github.com/dgallion1/docrender/internal/theme"
	"github.com/dgallion1/docrender/internal/wml"
)

func newAssembler(t *testing.T, buf *bytes.Buffer) *Assembler {
	t.Helper()
	a := New(ToWriter(buf), nil)
	a.now = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }
	if err := a.LoadTheme(theme.Default()); err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	return a
}

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(b)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func parse(t *testing.T, data []byte) *docx.Docx {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parse package: %v", err)
	}
	return doc
}

func paragraphs(doc *docx.Docx) []*docx.Paragraph {
	var out []*docx.Paragraph
	for _, it := range doc.Document.Body.Items {
		if p, ok := it.(*docx.Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

func styleOf(p *docx.Paragraph) string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

func TestEndToEnd_HeadingAndLatinParagraph(t *testing.T) {
	var buf bytes.Buffer
	a := newAssembler(t, &buf)

	latin := &doctree.Node{Kind: doctree.Paragraph, Segments: []doctree.TextSegment{doctree.Text("Hello")}}
	latin.SetAttr("class", "foreign")
	tree := &doctree.Tree{
		Title: "Commentarii",
		Nodes: []*doctree.Node{
			{Kind: doctree.Heading, Level: 1, SectionNumber: "1", Segments: []doctree.TextSegment{doctree.Text("Intro")}},
			latin,
		},
	}
	if err := a.Render(tree); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := a.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	doc := parse(t, buf.Bytes())
	ps := paragraphs(doc)
	if len(ps) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(ps))
	}
	if ps[0].String() != "1. Intro" || styleOf(ps[0]) != "Heading1" {
		t.Errorf("unexpected heading %q style %q", ps[0].String(), styleOf(ps[0]))
	}
	if ps[1].String() != "Hello" || styleOf(ps[1]) != "LatinText" {
		t.Errorf("unexpected paragraph %q style %q", ps[1].String(), styleOf(ps[1]))
	}
	items := doc.Document.Body.Items
	if _, ok := items[len(items)-1].(*docx.SectPr); !ok {
		t.Errorf("expected section properties last, got %T", items[len(items)-1])
	}

	stylesXML := readPart(t, buf.Bytes(), "word/styles.xml")
	if n := strings.Count(stylesXML, "<w:style "); n != 12 {
		t.Errorf("expected 12 styles, got %d", n)
	}
	if !strings.Contains(stylesXML, `w:styleId="LatinText"`) {
		t.Error("expected LatinText in styles part")
	}
	core := readPart(t, buf.Bytes(), "docProps/core.xml")
	if !strings.Contains(core, "<dc:title>Commentarii</dc:title>") || !strings.Contains(core, "2024-03-15T09:30:00Z") {
		t.Errorf("unexpected core properties: %s", core)
	}
	main := readPart(t, buf.Bytes(), "word/document.xml")
	if strings.Count(main, "<w:body>") != 1 {
		t.Error("expected exactly one body")
	}
}

func TestUsageBeforeLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	a := New(ToFile(path), nil)

	calls := map[string]func() error{
		"paragraph": func() error { return a.AddParagraph(theme.RoleNormal, "x") },
		"heading":   func() error { return a.AddHeading(1, "x") },
		"render":    func() error { return a.Render(&doctree.Tree{}) },
		"finalize":  a.Finalize,
	}
	for name, call := range calls {
		var ue *UsageError
		if err := call(); !errors.As(err, &ue) {
			t.Errorf("%s: expected UsageError, got %v", name, err)
		}
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected destination untouched, stat err=%v", err)
	}
}

func TestInvalidThemeRejected(t *testing.T) {
	a := New(ToWriter(io.Discard), nil)
	th := theme.Default()
	th.Page.MarginTop = 0.1
	err := a.LoadTheme(th)
	var ce *theme.ConfigurationError
	if !errors.As(err, &ce) || !ce.Has("page_layout", "margin_top") {
		t.Fatalf("expected ConfigurationError on margin_top, got %v", err)
	}
	if a.RegisteredStyleIDs() != nil {
		t.Error("expected no catalog after a rejected theme")
	}
	var ue *UsageError
	if err := a.AddPageBreak(); !errors.As(err, &ue) {
		t.Errorf("expected UsageError after rejected theme, got %v", err)
	}
}

func TestFinalizeTwice(t *testing.T) {
	var buf bytes.Buffer
	a := newAssembler(t, &buf)
	if err := a.AddParagraph(theme.RoleNormal, "once"); err != nil {
		t.Fatal(err)
	}
	if err := a.Finalize(); err != nil {
		t.Fatal(err)
	}
	size := buf.Len()

	var ue *UsageError
	if err := a.Finalize(); !errors.As(err, &ue) {
		t.Errorf("expected UsageError on second finalize, got %v", err)
	}
	if err := a.AddParagraph(theme.RoleNormal, "late"); !errors.As(err, &ue) {
		t.Errorf("expected UsageError after finalize, got %v", err)
	}
	if buf.Len() != size {
		t.Error("expected no further writes after finalize")
	}
	a.Abandon()
}

func TestAbandon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	a := New(ToFile(path), nil)
	if err := a.LoadTheme(theme.Default()); err != nil {
		t.Fatal(err)
	}
	if err := a.AddHeading(2, "Draft"); err != nil {
		t.Fatal(err)
	}
	a.Abandon()
	a.Abandon()

	var ue *UsageError
	if err := a.Finalize(); !errors.As(err, &ue) {
		t.Errorf("expected UsageError after abandon, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected no file after abandon, stat err=%v", err)
	}
}

func TestResourceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.docx")
	a := New(ToFile(path), nil)
	if err := a.LoadTheme(theme.Default()); err != nil {
		t.Fatal(err)
	}
	err := a.Finalize()
	var re *ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("expected ResourceError, got %v", err)
	}
	if re.Path != path || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error for %s, got %v", path, err)
	}
}

func TestFinalizeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	a := New(ToFile(path), nil)
	if err := a.LoadTheme(theme.Default()); err != nil {
		t.Fatal(err)
	}
	if err := a.AddSectionParagraph("153", "Arma virumque cano"); err != nil {
		t.Fatal(err)
	}
	if err := a.Finalize(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	ps := paragraphs(parse(t, data))
	if len(ps) != 1 || ps[0].String() != "153. Arma virumque cano" || styleOf(ps[0]) != "SectionNumber" {
		t.Errorf("unexpected section paragraph %+v", ps)
	}
}

func TestRenderErrorsAreUsageErrors(t *testing.T) {
	var buf bytes.Buffer
	a := newAssembler(t, &buf)
	err := a.Render(&doctree.Tree{Nodes: []*doctree.Node{
		{Kind: doctree.Heading, Level: 6, Segments: []doctree.TextSegment{doctree.Text("too deep")}},
	}})
	var ue *UsageError
	if !errors.As(err, &ue) || !errors.Is(err, render.ErrHeadingLevel) {
		t.Errorf("expected UsageError wrapping ErrHeadingLevel, got %v", err)
	}
	if err := a.AddHeading(5, "x"); !errors.As(err, &ue) {
		t.Errorf("expected UsageError for AddHeading(5), got %v", err)
	}
}

func TestAddTable(t *testing.T) {
	var buf bytes.Buffer
	a := newAssembler(t, &buf)

	var ue *UsageError
	err := a.AddTable([]string{"Latin", "English"}, [][]string{{"amo", "I love"}, {}})
	if !errors.As(err, &ue) || !errors.Is(err, wml.ErrEmptyRow) {
		t.Fatalf("expected UsageError wrapping ErrEmptyRow, got %v", err)
	}
	if err := a.AddTable(nil, nil); !errors.Is(err, wml.ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
	if err := a.AddTable([]string{"Latin", "English"}, [][]string{{"amo", "I love"}}); err != nil {
		t.Fatal(err)
	}
	if err := a.Finalize(); err != nil {
		t.Fatal(err)
	}

	var tables []*docx.Table
	for _, it := range parse(t, buf.Bytes()).Document.Body.Items {
		if tbl, ok := it.(*docx.Table); ok {
			tables = append(tables, tbl)
		}
	}
	if len(tables) != 1 || len(tables[0].TableRows) != 2 {
		t.Fatalf("expected one table with 2 rows, got %d tables", len(tables))
	}
	main := readPart(t, buf.Bytes(), "word/document.xml")
	if strings.Count(main, "<w:tblHeader>") != 1 {
		t.Error("expected exactly one header row")
	}
}

func TestTitlePageAndChapters(t *testing.T) {
	var buf bytes.Buffer
	a := newAssembler(t, &buf)
	if err := a.StartChapter("Liber Primus"); err != nil {
		t.Fatal(err)
	}
	if a.Blocks() != 1 {
		t.Fatalf("expected no page break before the first chapter, got %d blocks", a.Blocks())
	}
	if err := a.StartSection("Caput I"); err != nil {
		t.Fatal(err)
	}
	if err := a.StartChapter("Liber Secundus"); err != nil {
		t.Fatal(err)
	}
	if a.Blocks() != 4 {
		t.Fatalf("expected page break before the second chapter, got %d blocks", a.Blocks())
	}
	if err := a.AddBlankLines(2); err != nil {
		t.Fatal(err)
	}
	if err := a.Finalize(); err != nil {
		t.Fatal(err)
	}
	ps := paragraphs(parse(t, buf.Bytes()))
	want := []string{"Heading1", "Heading2", "", "Heading1", "", ""}
	for i, w := range want {
		if got := styleOf(ps[i]); got != w {
			t.Errorf("paragraph %d: expected style %q, got %q", i, w, got)
		}
	}
}

func TestAddTitlePage(t *testing.T) {
	var buf bytes.Buffer
	a := newAssembler(t, &buf)
	if err := a.AddTitlePage("De Bello Gallico", "C. Iulius Caesar", "58 BC"); err != nil {
		t.Fatal(err)
	}
	if a.Blocks() != 5 {
		t.Fatalf("expected title, 2 lines, blank and break, got %d", a.Blocks())
	}
	if err := a.Finalize(); err != nil {
		t.Fatal(err)
	}
	ps := paragraphs(parse(t, buf.Bytes()))
	if styleOf(ps[0]) != "Heading1" || ps[0].Properties.Justification == nil || ps[0].Properties.Justification.Val != "center" {
		t.Error("expected centered Heading1 title")
	}
	if ps[1].String() != "C. Iulius Caesar" {
		t.Errorf("unexpected info line %q", ps[1].String())
	}
	if !strings.Contains(readPart(t, buf.Bytes(), "docProps/core.xml"), "<dc:title>De Bello Gallico</dc:title>") {
		t.Error("expected title page to set the document title")
	}
	if !strings.Contains(readPart(t, buf.Bytes(), "word/document.xml"), `<w:br w:type="page">`) {
		t.Error("expected page break after title page")
	}
}

func TestGlossParagraph(t *testing.T) {
	var buf bytes.Buffer
	a := newAssembler(t, &buf)
	if err := a.AddParagraph(theme.RoleGloss, "friend"); err != nil {
		t.Fatal(err)
	}
	if err := a.Finalize(); err != nil {
		t.Fatal(err)
	}
	main := readPart(t, buf.Bytes(), "word/document.xml")
	if !strings.Contains(main, `<w:rStyle w:val="Gloss">`) || strings.Contains(main, `<w:pStyle w:val="Gloss">`) {
		t.Error("expected Gloss applied as a character style")
	}
}

func TestLandscapeSection(t *testing.T) {
	var buf bytes.Buffer
	a := New(ToWriter(&buf), nil)
	th := theme.Default()
	th.Page.Orientation = theme.Landscape
	if err := a.LoadTheme(th); err != nil {
		t.Fatal(err)
	}
	if err := a.Finalize(); err != nil {
		t.Fatal(err)
	}
	main := readPart(t, buf.Bytes(), "word/document.xml")
	if !strings.Contains(main, `<w:pgSz w:w="16839" w:h="11907" w:orient="landscape">`) {
		t.Errorf("expected landscape page size in %s", main)
	}
}

func TestRegisteredStyleIDs(t *testing.T) {
	var buf bytes.Buffer
	a := newAssembler(t, &buf)
	ids := a.RegisteredStyleIDs()
	if len(ids) != len(a.Roles()) {
		t.Fatalf("expected %d ids, got %d", len(a.Roles()), len(ids))
	}
	if ids[0] != "Normal" || ids[len(ids)-1] != "Blockquote" {
		t.Errorf("unexpected ids %v", ids)
	}
}
