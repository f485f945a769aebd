package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docrender/internal/doctree"
	"github.com/dgallion1/docrender/internal/document"
	"github.com/dgallion1/docrender/internal/source"
	"github.com/dgallion1/docrender/internal/theme"
)

// Creator is recorded as the author of every rendered package.
const Creator = "docrender"

// Worker processes a single render job.
type Worker struct {
	themes       *theme.Registry
	defaultTheme string
	parseOpts    source.Options
	stats        *RenderStats
	log          *slog.Logger
}

// NewWorker creates a worker. stats may be nil.
func NewWorker(themes *theme.Registry, defaultTheme string, parseOpts source.Options, stats *RenderStats, log *slog.Logger) *Worker {
	if defaultTheme == "" {
		defaultTheme = theme.DefaultName
	}
	return &Worker{
		themes:       themes,
		defaultTheme: defaultTheme,
		parseOpts:    parseOpts,
		stats:        stats,
		log:          log,
	}
}

// Process parses the upload, renders it with the job's theme and stores the
// resulting package on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()
	defer func() {
		if w.stats != nil {
			snap := job.Snapshot()
			w.stats.Record(time.Since(start), snap.Progress.Bytes, snap.Status == StatusFailed)
		}
	}()
	// A panicking parser must fail the job, not the process.
	defer func() {
		if r := recover(); r != nil {
			w.fail(log, job, job.Snapshot().Phase, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		w.fail(log, job, "queued", err)
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := source.ForFile(job.Filename, w.parseOpts)
	if err != nil {
		w.fail(log, job, "parsing", err)
		return
	}
	tree, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		w.fail(log, job, "parsing", fmt.Errorf("parse: %w", err))
		return
	}
	if job.Title != "" {
		tree.Title = job.Title
	}
	log.Info("parsed document", "nodes", tree.Count())

	// Phase 2: Render
	t, err := w.resolveTheme(job)
	if err != nil {
		w.fail(log, job, "rendering", err)
		return
	}
	job.SetStatus(StatusRendering, "rendering")

	var buf bytes.Buffer
	nodes, blocks, err := Render(tree, t, document.ToWriter(&buf), log)
	job.SetProgress(nodes, blocks)
	if err != nil {
		w.fail(log, job, "rendering", err)
		return
	}

	job.complete(buf.Bytes())
	log.Info("render complete", "theme", t.Name, "nodes", nodes, "blocks", blocks, "bytes", buf.Len())
}

func (w *Worker) resolveTheme(job *Job) (theme.Theme, error) {
	if t, ok := job.Theme(); ok {
		return t, nil
	}
	name := job.ThemeName
	if name == "" {
		name = w.defaultTheme
	}
	t, ok := w.themes.Get(name)
	if !ok {
		return theme.Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return t, nil
}

func (w *Worker) fail(log *slog.Logger, job *Job, phase string, err error) {
	log.Error("render job failed", "phase", phase, "error", err)
	job.AddError(err.Error())
	job.SetStatus(StatusFailed, phase)
}

// Render writes tree to dst with theme t: a title page naming the source
// file, then the tree's content. It returns the nodes dispatched and blocks
// added. The assembler is abandoned on every failure path.
func Render(tree *doctree.Tree, t theme.Theme, dst document.Destination, log *slog.Logger) (nodes, blocks int, err error) {
	doc := document.New(dst, log)
	defer func() {
		if err != nil {
			nodes, blocks = doc.Progress()
			doc.Abandon()
		}
	}()

	if err := doc.LoadTheme(t); err != nil {
		return 0, 0, fmt.Errorf("load theme: %w", err)
	}
	doc.SetProperties(document.Properties{Title: tree.Title, Creator: Creator})

	var lines []string
	if tree.SourceName != "" {
		lines = append(lines, tree.SourceName)
	}
	if err := doc.AddTitlePage(tree.Title, lines...); err != nil {
		return 0, 0, fmt.Errorf("title page: %w", err)
	}
	if err := doc.Render(tree); err != nil {
		return 0, 0, fmt.Errorf("render: %w", err)
	}

	nodes, blocks = doc.Progress()
	if err := doc.Finalize(); err != nil {
		return nodes, blocks, fmt.Errorf("finalize: %w", err)
	}
	return nodes, blocks, nil
}
