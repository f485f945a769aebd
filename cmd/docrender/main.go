// Command docrender renders a single source file to a .docx package.
//
// Usage:
//
//	docrender -in grammar.html [-out grammar.docx] [-theme default|theme.yaml] [-title "..."]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrender/internal/document"
	"github.com/dgallion1/docrender/internal/pipeline"
	"github.com/dgallion1/docrender/internal/source"
	"github.com/dgallion1/docrender/internal/theme"
)

func main() {
	in := flag.String("in", "", "source file (.txt, .md, .csv, .html, .pdf)")
	out := flag.String("out", "", "output .docx path (default: input name with .docx)")
	themeArg := flag.String("theme", theme.DefaultName, "theme name from -theme-dir, or a .json/.yaml theme file")
	themeDir := flag.String("theme-dir", os.Getenv("THEME_DIR"), "directory of named themes")
	title := flag.String("title", "", "document title (default: from the source)")
	pdftotext := flag.Bool("pdftotext", true, "fall back to pdftotext for PDFs the Go reader cannot handle")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, filepath.Ext(*in)) + ".docx"
	}

	if err := run(*in, *out, *themeArg, *themeDir, *title, *pdftotext, log); err != nil {
		var cfgErr *theme.ConfigurationError
		if errors.As(err, &cfgErr) {
			for _, v := range cfgErr.Violations {
				fmt.Fprintln(os.Stderr, "  "+v.String())
			}
		}
		log.Error("render failed", "in", *in, "error", err)
		os.Exit(1)
	}
}

func run(in, out, themeArg, themeDir, title string, pdftotext bool, log *slog.Logger) error {
	t, err := resolveTheme(themeArg, themeDir)
	if err != nil {
		return err
	}

	p, err := source.ForFile(in, source.Options{PDFFallbackPdftotext: pdftotext})
	if err != nil {
		return err
	}
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	tree, err := p.Parse(f, filepath.Base(in))
	if err != nil {
		return fmt.Errorf("parse %s: %w", in, err)
	}
	if title != "" {
		tree.Title = title
	}

	nodes, blocks, err := pipeline.Render(tree, t, document.ToFile(out), log)
	if err != nil {
		return err
	}
	log.Info("wrote document", "out", out, "theme", t.Name, "nodes", nodes, "blocks", blocks)
	return nil
}

// resolveTheme treats arg as a theme file when it has a theme extension and
// as a registry name otherwise.
func resolveTheme(arg, dir string) (theme.Theme, error) {
	if _, err := theme.FormatForFile(arg); err == nil {
		return theme.LoadFile(arg)
	}
	reg, err := theme.LoadDir(dir)
	if err != nil {
		return theme.Theme{}, err
	}
	t, ok := reg.Get(arg)
	if !ok {
		return theme.Theme{}, fmt.Errorf("unknown theme %q (available: %s)", arg, strings.Join(reg.Names(), ", "))
	}
	return t, nil
}
