package layout

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/dgallion1/docrender/internal/theme"
)

func TestCompile_A4Portrait(t *testing.T) {
	l := Compile(theme.Default().Page)
	if l.PageWidth != 11907 || l.PageHeight != 16839 {
		t.Fatalf("unexpected A4 size %dx%d", l.PageWidth, l.PageHeight)
	}
	if l.PageWidth >= l.PageHeight {
		t.Error("expected portrait width < height")
	}
	if l.Landscape {
		t.Error("did not expect landscape")
	}
	if l.Left != 1417 || l.Right != 1134 || l.Top != 1417 || l.Header != 708 {
		t.Errorf("unexpected margins %+v", l)
	}
	if l.Gutter != 0 {
		t.Errorf("expected zero gutter, got %d", l.Gutter)
	}
}

func TestCompile_LandscapeSwaps(t *testing.T) {
	p := theme.Default().Page
	portrait := Compile(p)
	p.Orientation = "Landscape"
	landscape := Compile(p)
	if !landscape.Landscape {
		t.Fatal("expected landscape flag")
	}
	if landscape.PageWidth != portrait.PageHeight || landscape.PageHeight != portrait.PageWidth {
		t.Errorf("expected exact swap, got %dx%d", landscape.PageWidth, landscape.PageHeight)
	}
}

func TestCompile_PageSizes(t *testing.T) {
	tests := []struct {
		token string
		w, h  int
	}{
		{"A4", 11907, 16839},
		{"a5", 8391, 11907},
		{"Letter", 12240, 15840},
		{"LEGAL", 12240, 20160},
		{"B5", 11907, 16839},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			l := Compile(theme.PageLayout{PageSize: tt.token, Orientation: "portrait"})
			if l.PageWidth != tt.w || l.PageHeight != tt.h {
				t.Errorf("expected %dx%d, got %dx%d", tt.w, tt.h, l.PageWidth, l.PageHeight)
			}
		})
	}
}

func TestCompile_MirroredKeepsMapping(t *testing.T) {
	p := theme.Default().Page
	standard := Compile(p)
	p.MirroredMargins = true
	mirrored := Compile(p)
	if !mirrored.Mirrored || standard.Mirrored {
		t.Error("expected mirrored flag only when requested")
	}
	if mirrored.Left != standard.Left || mirrored.Right != standard.Right {
		t.Error("expected inner/outer to map to left/right in both modes")
	}
}

func TestContentWidth(t *testing.T) {
	l := Compile(theme.PageLayout{PageSize: "A4", MarginInner: 2.5, MarginOuter: 2.5})
	if got := l.ContentWidth(); got != 11907-1417-1417 {
		t.Errorf("unexpected content width %d", got)
	}
}

func TestSectPr(t *testing.T) {
	p := theme.Default().Page
	p.Orientation = "landscape"
	out, err := xml.Marshal(Compile(p).SectPr())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, `<w:pgSz w:w="16839" w:h="11907" w:orient="landscape">`) {
		t.Errorf("unexpected page size element: %s", s)
	}
	if !strings.Contains(s, `<w:pgMar w:top="1417" w:left="1417" w:bottom="1417" w:right="1134" w:header="708" w:footer="708" w:gutter="0">`) {
		t.Errorf("unexpected margins element: %s", s)
	}
	if strings.Index(s, "pgSz") > strings.Index(s, "pgMar") {
		t.Error("expected pgSz before pgMar")
	}
}
