package container

import (
	"context"
	"path/filepath"
	"testing"

	"healthlab/domain/core"
	"healthlab/internal/config"
	"healthlab/internal/healthgen"
	"healthlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir, dataFile string) *config.Config {
	return &config.Config{
		Data: config.DataConfig{File: dataFile, Sheet: "Sheet1"},
		Charts: config.ChartConfig{
			OutputDir: filepath.Join(dir, "charts"),
			Format:    "svg",
			WidthCm:   16,
			HeightCm:  12,
		},
		Simulation: config.SimulationConfig{Samples: 200, Seed: 42},
		Report:     config.ReportConfig{Enabled: true, OutputDir: dir},
	}
}

func TestContainerEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "health.csv")
	require.NoError(t, healthgen.WriteCSV(dataFile, testkit.SyntheticDataset(60, 4).Records))

	c, err := New(testConfig(dir, dataFile), nil)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))
	assert.Equal(t, 60, c.Dataset.Len())

	report, err := c.Reports.Generate(context.Background(), c.ReportOptions())
	require.NoError(t, err)
	assert.Equal(t, 200, report.Simulation.N)
	assert.FileExists(t, report.HTMLPath)
	for _, art := range report.Charts {
		assert.FileExists(t, art.Path)
	}
}

func TestContainerMissingFile(t *testing.T) {
	dir := t.TempDir()
	c, err := New(testConfig(dir, filepath.Join(dir, "nope.csv")), nil)
	require.NoError(t, err)

	err = c.Init(context.Background())
	assert.ErrorIs(t, err, core.ErrIOFailure)
}

func TestContainerBadRendererConfig(t *testing.T) {
	cfg := testConfig(t.TempDir(), "x.csv")
	cfg.Charts.Format = "bmp"

	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
