package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docrender/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tree := newTree(filename)
	for _, para := range paragraphs {
		tree.Nodes = append(tree.Nodes, textParagraph(para))
	}
	return tree, nil
}

// textParagraph keeps each source line as its own segment so wrapped lines
// rejoin with single spaces.
func textParagraph(para string) *doctree.Node {
	n := &doctree.Node{Kind: doctree.Paragraph}
	for _, line := range strings.Split(para, "\n") {
		n.Segments = append(n.Segments, doctree.Text(line))
	}
	return n
}
