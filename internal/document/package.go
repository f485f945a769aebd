package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io/fs"
	"path"
	"time"

	docx "github.com/fumiama/go-docx"

	"github.com/dgallion1/docrender/internal/styles"
	"github.com/dgallion1/docrender/internal/wml"
)

const (
	stylesPart = "word/styles.xml"
	corePart   = "docProps/core.xml"
)

// Properties are the package's core metadata.
type Properties struct {
	Title   string
	Creator string
}

// pack assembles the container. Body blocks are written in order followed by
// the section properties; styles and core properties are generated, and the
// remaining fixed parts come from the library's default template.
func pack(catalog *styles.Catalog, blocks []wml.Block, sect *wml.SectPr, props Properties, now time.Time) ([]byte, error) {
	stylesXML, err := catalog.XML()
	if err != nil {
		return nil, err
	}
	coreXML, err := coreProperties(props, now)
	if err != nil {
		return nil, err
	}
	base, err := fs.Sub(docx.TemplateXMLFS, "xml/default")
	if err != nil {
		return nil, fmt.Errorf("template parts: %w", err)
	}
	parts := overlayFS{
		files: map[string][]byte{stylesPart: stylesXML, corePart: coreXML},
		base:  base,
	}

	doc := docx.New().UseTemplate("", docx.DefaultTemplateFilesList, parts)
	items := make([]interface{}, 0, len(blocks)+1)
	for _, b := range blocks {
		items = append(items, b)
	}
	doc.Document.Body.Items = append(items, sect)

	// WriteTo drops the zip writer's Close error, so write to memory first.
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write package: %w", err)
	}
	return buf.Bytes(), nil
}

type w3cdtf struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

type coreProps struct {
	XMLName  xml.Name `xml:"cp:coreProperties"`
	CP       string   `xml:"xmlns:cp,attr"`
	DC       string   `xml:"xmlns:dc,attr"`
	DCTerms  string   `xml:"xmlns:dcterms,attr"`
	DCMIType string   `xml:"xmlns:dcmitype,attr"`
	XSI      string   `xml:"xmlns:xsi,attr"`
	Title    string   `xml:"dc:title,omitempty"`
	Creator  string   `xml:"dc:creator,omitempty"`
	Created  w3cdtf   `xml:"dcterms:created"`
	Modified w3cdtf   `xml:"dcterms:modified"`
}

func coreProperties(p Properties, now time.Time) ([]byte, error) {
	stamp := w3cdtf{Type: "dcterms:W3CDTF", Value: now.UTC().Format(time.RFC3339)}
	cp := coreProps{
		CP:       "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		DC:       "http://purl.org/dc/elements/1.1/",
		DCTerms:  "http://purl.org/dc/terms/",
		DCMIType: "http://purl.org/dc/dcmitype/",
		XSI:      "http://www.w3.org/2001/XMLSchema-instance",
		Title:    p.Title,
		Creator:  p.Creator,
		Created:  stamp,
		Modified: stamp,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(cp); err != nil {
		return nil, fmt.Errorf("encode core properties: %w", err)
	}
	return buf.Bytes(), nil
}

// overlayFS serves generated parts by name and defers everything else to base.
type overlayFS struct {
	files map[string][]byte
	base  fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if data, ok := o.files[name]; ok {
		return &memFile{Reader: bytes.NewReader(data), name: name}, nil
	}
	return o.base.Open(name)
}

type memFile struct {
	*bytes.Reader
	name string
}

func (f *memFile) Stat() (fs.FileInfo, error) {
	return memInfo{name: path.Base(f.name), size: f.Size()}, nil
}

func (f *memFile) Close() error { return nil }

type memInfo struct {
	name string
	size int64
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return 0o444 }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() any           { return nil }
