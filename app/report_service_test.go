package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"healthlab/adapters/gonumplot"
	"healthlab/adapters/rng"
	"healthlab/domain/chart"
	"healthlab/domain/core"
	"healthlab/internal/errors"
	"healthlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportServiceGenerate(t *testing.T) {
	dir := t.TempDir()
	ds := testkit.SyntheticDataset(120, 5)
	a, renderer := newAnalyzer(t, ds)
	svc := NewReportService(a, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	report, err := svc.Generate(context.Background(), DefaultReportOptions(dir))
	require.NoError(t, err)

	assert.False(t, report.ID.IsEmpty())
	assert.Equal(t, ds.Fingerprint(), report.Fingerprint)
	assert.Equal(t, 120, report.Rows)
	assert.Equal(t, DefaultSimulationSamples, report.Simulation.N)

	require.Len(t, report.Charts, 4)
	assert.Equal(t, ChartBloodPressure, report.Charts[0].Name)
	assert.Equal(t, ChartWeightBySex, report.Charts[1].Name)
	assert.Equal(t, ChartSmokers, report.Charts[2].Name)
	assert.Equal(t, ChartPrevalenceBySex, report.Charts[3].Name)
	assert.Len(t, renderer.Names(), 4)

	md, err := os.ReadFile(report.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "| systolic_bp |")
	assert.Contains(t, string(md), "Simulering av sjukdomsförekomst")
	assert.Contains(t, string(md), "2024-05-01T12:00:00Z")

	page, err := os.ReadFile(report.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<table>")
	assert.Contains(t, string(page), "<title>Hälsorapport</title>")
}

func TestReportServiceWithPlotRenderer(t *testing.T) {
	dir := t.TempDir()
	cfg := gonumplot.DefaultRendererConfig(filepath.Join(dir, "charts"))
	cfg.Format = "svg"
	renderer, err := gonumplot.NewRenderer(cfg, nil)
	require.NoError(t, err)

	a, err := NewHealthAnalyzer(testkit.SyntheticDataset(80, 9), renderer, rng.NewPCGAdapter(nil), nil)
	require.NoError(t, err)

	report, err := NewReportService(a, nil).Generate(context.Background(), DefaultReportOptions(dir))
	require.NoError(t, err)

	md, err := os.ReadFile(report.MarkdownPath)
	require.NoError(t, err)
	for _, art := range report.Charts {
		assert.FileExists(t, art.Path)
		assert.Contains(t, string(md), "charts/"+art.Name+".svg")
	}
}

func TestReportServiceRenderFailure(t *testing.T) {
	renderer := new(MockChartRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, ChartWeightBySex).
		Return(chart.Artifact{}, errors.IOFailure("weight", fmt.Errorf("read-only file system")))
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(chart.Artifact{Name: "ok"}, nil).Maybe()

	a, err := NewHealthAnalyzer(testkit.SmallDataset(), renderer, rng.NewPCGAdapter(nil), nil)
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = NewReportService(a, nil).Generate(context.Background(), DefaultReportOptions(dir))
	assert.ErrorIs(t, err, core.ErrIOFailure)
	assert.NoFileExists(t, filepath.Join(dir, ReportMarkdownFile))
}

func TestReportServiceInvalidOptions(t *testing.T) {
	a, _ := newAnalyzer(t, testkit.SmallDataset())
	svc := NewReportService(a, nil)

	_, err := svc.Generate(context.Background(), ReportOptions{OutputDir: t.TempDir(), Samples: 0})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = svc.Generate(context.Background(), ReportOptions{Samples: 10})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestReportServiceUnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	a, _ := newAnalyzer(t, testkit.SmallDataset())
	_, err := NewReportService(a, nil).Generate(context.Background(), DefaultReportOptions(filepath.Join(blocker, "out")))
	assert.ErrorIs(t, err, core.ErrIOFailure)
}

func TestRenderMarkdownRelativeLinks(t *testing.T) {
	report := &Report{
		ID:     core.NewReportID(),
		Source: "health.csv",
		Charts: []chart.Artifact{{Title: "Andelen rökare", Path: filepath.Join("out", "charts", "smokers.png")}},
	}

	md := string(RenderMarkdown(report, "out"))
	assert.Contains(t, md, "![Andelen rökare](charts/smokers.png)")
	assert.True(t, strings.HasPrefix(md, "# Hälsorapport\n"))
}
