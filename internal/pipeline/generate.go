package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docstring2md/internal/config"
	"docstring2md/internal/crawler"
	"docstring2md/internal/extractor"
	"docstring2md/internal/generator"
	"docstring2md/internal/logger"
	"docstring2md/internal/signature"
)

// Generator turns a Python package tree into one Markdown document.
type Generator struct {
	crawler   *crawler.Crawler
	extractor *extractor.Extractor
	markdown  *generator.MarkdownGenerator

	outputDir  string
	outputFile string
	report     io.Writer
	now        func() time.Time
}

// Option customises a Generator.
type Option func(*Generator)

// WithReport redirects load-failure lines, stdout by default.
func WithReport(w io.Writer) Option {
	return func(g *Generator) { g.report = w }
}

// WithClock fixes the timestamp written into the document heading.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator wires the crawler, extractor and renderer from cfg; nil
// means config.Default().
func NewGenerator(cfg *config.Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	ext, err := extractor.NewExtractor("python")
	if err != nil {
		return nil, err
	}

	renderer := signature.NewRenderer(cfg.Render.StripPackages)
	if cfg.Render.WrapWidth > 0 {
		renderer.Width = cfg.Render.WrapWidth
	}

	g := &Generator{
		crawler:   crawler.NewCrawler(),
		extractor: ext,
		markdown: generator.NewMarkdownGenerator(renderer,
			generator.WithTitle(cfg.Render.Title),
			generator.WithTimeLayout(cfg.Render.TimestampFormat),
		),
		outputDir:  cfg.Output.Dir,
		outputFile: cfg.Output.File,
		report:     os.Stdout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Run documents every module below path and writes the result to
// <parent(path)>/<output dir>/<output file>, returning the written path.
// Modules that fail to load are reported and skipped with their subtree.
func (g *Generator) Run(ctx context.Context, path string) (string, error) {
	start := time.Now()
	fragments, err := g.renderStage(ctx, path)
	if err != nil {
		return "", err
	}

	doc := g.markdown.Document(g.now(), fragments)
	out, err := g.writeStage(path, doc)
	if err != nil {
		return "", err
	}

	counts := generator.CountKinds(generator.Outline(doc))
	logger.L().Info("document.written",
		"path", out,
		"modules", counts["module"],
		"classes", counts["class"],
		"functions", counts["function"],
		"elapsed", time.Since(start),
	)
	return out, nil
}

func (g *Generator) renderStage(ctx context.Context, path string) ([]string, error) {
	var fragments []string
	exclusions := crawler.NewExclusions()

	err := g.crawler.Walk(path, func(e crawler.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if exclusions.Excluded(e.Name) {
			// sticky, so submodules are excluded too
			exclusions.Add(e.Name)
			logger.L().Debug("module.skipped", "module", e.Name, "reason", "excluded")
			return crawler.SkipPackage
		}

		m, err := g.extractor.ExtractFromFile(ctx, e.File, e.Name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			fmt.Fprintf(g.report, "Error: Can't generate %s doc. %v\n", e.Name, err)
			exclusions.Add(e.Name)
			logger.L().Debug("module.skipped", "module", e.Name, "reason", "load", "syntax", errors.Is(err, extractor.ErrSyntax))
			return crawler.SkipPackage
		}

		fragment := g.markdown.Module(m)
		if strings.TrimSpace(fragment) == "" {
			exclusions.Add(e.Name)
			logger.L().Debug("module.skipped", "module", e.Name, "reason", "empty")
			return crawler.SkipPackage
		}
		fragments = append(fragments, fragment)
		logger.L().Debug("module.rendered", "module", e.Name, "kind", m.Kind(), "file", e.File)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if names := exclusions.Names(); len(names) > 0 {
		logger.L().Debug("modules.excluded", "names", names)
	}
	return fragments, nil
}

func (g *Generator) writeStage(path, doc string) (string, error) {
	dir := filepath.Join(filepath.Dir(filepath.Clean(path)), g.outputDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	out := filepath.Join(dir, g.outputFile)
	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}
