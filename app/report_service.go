package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"healthlab/domain/chart"
	"healthlab/domain/core"
	"healthlab/domain/health"
	"healthlab/internal"
	"healthlab/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/sync/errgroup"
)

const (
	ReportMarkdownFile = "report.md"
	ReportHTMLFile     = "report.html"
	reportTitle        = "Hälsorapport"
)

// ReportOptions controls one report run
type ReportOptions struct {
	OutputDir string `json:"output_dir"`
	Samples   int    `json:"samples"`
	Seed      int64  `json:"seed"`
}

// DefaultReportOptions returns the options used when nothing is configured
func DefaultReportOptions(outputDir string) ReportOptions {
	return ReportOptions{
		OutputDir: outputDir,
		Samples:   DefaultSimulationSamples,
		Seed:      DefaultSimulationSeed,
	}
}

// Report is everything one Generate call produced
type Report struct {
	ID          core.ReportID           `json:"id"`
	Source      string                  `json:"source"`
	Rows        int                     `json:"rows"`
	Fingerprint core.Hash               `json:"fingerprint"`
	GeneratedAt time.Time               `json:"generated_at"`
	Summary     health.SummaryResult    `json:"summary"`
	Smokers     health.ProportionResult `json:"smokers"`
	Prevalence  health.PrevalenceResult `json:"prevalence"`
	Simulation  health.SimulationResult `json:"simulation"`
	Charts      []chart.Artifact        `json:"charts"`

	MarkdownPath string `json:"markdown_path"`
	HTMLPath     string `json:"html_path"`
}

// ReportService runs every analysis of a HealthAnalyzer and writes the results
type ReportService struct {
	analyzer *HealthAnalyzer
	logger   *internal.Logger
	now      func() time.Time
}

// NewReportService creates a report service over analyzer
func NewReportService(analyzer *HealthAnalyzer, logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.Discard
	}
	return &ReportService{
		analyzer: analyzer,
		logger:   logger.With("report"),
		now:      time.Now,
	}
}

// Generate computes all statistics, renders the four charts concurrently and
// writes report.md and report.html into opts.OutputDir
func (s *ReportService) Generate(ctx context.Context, opts ReportOptions) (*Report, error) {
	if opts.OutputDir == "" {
		return nil, core.NewInvalidArgumentError("output dir", "is required")
	}
	if opts.Samples <= 0 {
		return nil, core.NewInvalidArgumentError("samples", fmt.Sprintf("must be positive, got %d", opts.Samples))
	}

	start := time.Now()
	ds := s.analyzer.Dataset()
	report := &Report{
		ID:          core.NewReportID(),
		Source:      ds.Source,
		Rows:        ds.Len(),
		Fingerprint: ds.Fingerprint(),
		GeneratedAt: s.now().UTC(),
	}
	s.logger.Info("Generating report %s for %s (%d rows, fingerprint %s)", report.ID, report.Source, report.Rows, report.Fingerprint.Short())

	var err error
	if report.Summary, err = s.analyzer.SummaryStatistics(); err != nil {
		return nil, errors.Wrap(err, "summary statistics failed")
	}
	if report.Smokers, err = s.analyzer.SmokerProportions(); err != nil {
		return nil, errors.Wrap(err, "smoker proportions failed")
	}
	if report.Prevalence, err = s.analyzer.DiseasePrevalenceBySex(); err != nil {
		return nil, errors.Wrap(err, "disease prevalence failed")
	}
	if report.Simulation, err = s.analyzer.SimulateDisease(ctx, opts.Samples, opts.Seed); err != nil {
		return nil, errors.Wrap(err, "disease simulation failed")
	}

	if report.Charts, err = s.renderCharts(ctx); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.IOFailure(opts.OutputDir, err)
	}

	md := RenderMarkdown(report, opts.OutputDir)
	report.MarkdownPath = filepath.Join(opts.OutputDir, ReportMarkdownFile)
	if err := os.WriteFile(report.MarkdownPath, md, 0o644); err != nil {
		return nil, errors.IOFailure(report.MarkdownPath, err)
	}

	report.HTMLPath = filepath.Join(opts.OutputDir, ReportHTMLFile)
	if err := os.WriteFile(report.HTMLPath, markdownToHTML(md), 0o644); err != nil {
		return nil, errors.IOFailure(report.HTMLPath, err)
	}

	s.logger.Info("Report %s written to %s in %.2fms", report.ID, opts.OutputDir, float64(time.Since(start).Nanoseconds())/1e6)
	return report, nil
}

// renderCharts renders the four figures in parallel; artifacts keep a fixed order
func (s *ReportService) renderCharts(ctx context.Context) ([]chart.Artifact, error) {
	renders := []func(context.Context) (chart.Figure, chart.Artifact, error){
		s.analyzer.BloodPressureHistogram,
		s.analyzer.WeightBySexBoxplot,
		s.analyzer.SmokerBarChart,
		s.analyzer.DiseasePrevalenceChart,
	}

	artifacts := make([]chart.Artifact, len(renders))
	g, gctx := errgroup.WithContext(ctx)
	for i, render := range renders {
		g.Go(func() error {
			_, art, err := render(gctx)
			if err != nil {
				return err
			}
			artifacts[i] = art
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "chart rendering failed")
	}
	return artifacts, nil
}

// RenderMarkdown formats report as Markdown. Chart links are relative to dir.
func RenderMarkdown(report *Report, dir string) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "- Rapport: `%s`\n", report.ID)
	fmt.Fprintf(&b, "- Källa: `%s` (%d rader)\n", report.Source, report.Rows)
	fmt.Fprintf(&b, "- Fingeravtryck: `%s`\n", report.Fingerprint.Short())
	fmt.Fprintf(&b, "- Skapad: %s\n\n", report.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Beskrivande statistik\n\n")
	b.WriteString("| Variabel | Antal | Medel | Median | Min | Max |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|\n")
	for _, f := range report.Summary.Fields {
		fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.2f | %.2f |\n", f.Column, f.Count, f.Mean, f.Median, f.Min, f.Max)
	}

	b.WriteString("\n## Andelen rökare\n\n")
	b.WriteString("| Rökare | Antal | Andel |\n|---|---:|---:|\n")
	for _, p := range report.Smokers.Values {
		fmt.Fprintf(&b, "| %s | %d | %.3f |\n", p.Category, p.Count, p.Share)
	}

	b.WriteString("\n## Sjukdomsförekomst per kön\n\n")
	b.WriteString("| Kön | Antal | Andel |\n|---|---:|---:|\n")
	for _, g := range report.Prevalence.Groups {
		fmt.Fprintf(&b, "| %s | %d | %.3f |\n", g.Group, g.Count, g.Rate)
	}

	fmt.Fprintf(&b, "\n## Simulering (n = %d, seed = %d)\n\n```\n", report.Simulation.N, report.Simulation.Seed)
	_ = WriteSimulationReport(&b, report.Simulation)
	b.WriteString("```\n")

	if len(report.Charts) > 0 {
		b.WriteString("\n## Diagram\n\n")
		for _, art := range report.Charts {
			fmt.Fprintf(&b, "![%s](%s)\n\n", art.Title, relativePath(dir, art.Path))
		}
	}

	return b.Bytes()
}

func markdownToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: reportTitle,
	})
	return markdown.ToHTML(md, p, renderer)
}

func relativePath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
