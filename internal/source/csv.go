package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/docrender/internal/doctree"
)

// CSVParser handles CSV files. The whole file becomes one table whose first
// record is the header row.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := newTree(filename)
	if len(records) == 0 {
		return tree, nil
	}

	table := &doctree.Node{Kind: doctree.Table}
	for i, record := range records {
		kind := doctree.TableCell
		if i == 0 {
			kind = doctree.TableHeaderCell
		}
		row := &doctree.Node{Kind: doctree.TableRow}
		for _, field := range record {
			row.Append(&doctree.Node{Kind: kind, Segments: []doctree.TextSegment{doctree.Text(field)}})
		}
		table.Append(row)
	}
	tree.Nodes = append(tree.Nodes, table)
	return tree, nil
}
