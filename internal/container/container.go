package container

import (
	"context"
	"fmt"

	"healthlab/adapters/coercer"
	"healthlab/adapters/excel"
	"healthlab/adapters/gonumplot"
	"healthlab/adapters/rng"
	"healthlab/app"
	"healthlab/domain/health"
	"healthlab/internal"
	"healthlab/internal/config"
	"healthlab/internal/errors"
	"healthlab/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Adapters
	Reader   ports.DatasetReader
	Renderer ports.ChartRenderer
	RNG      ports.RNGPort

	// Loaded on Init
	Dataset *health.Dataset

	// Services
	Analyzer *app.HealthAnalyzer
	Reports  *app.ReportService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.Discard
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initAdapters(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initAdapters() error {
	c.Reader = excel.NewDataReader(excel.ExcelConfig{
		FilePath:       c.Config.Data.File,
		Sheet:          c.Config.Data.Sheet,
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}, c.Logger)

	renderer, err := gonumplot.NewRenderer(gonumplot.RendererConfig{
		OutputDir: c.Config.Charts.OutputDir,
		Format:    c.Config.Charts.Format,
		WidthCm:   c.Config.Charts.WidthCm,
		HeightCm:  c.Config.Charts.HeightCm,
	}, c.Logger)
	if err != nil {
		return errors.Wrap(err, "failed to create chart renderer")
	}
	c.Renderer = renderer

	c.RNG = rng.NewPCGAdapter(c.Logger)
	return nil
}

// Init reads the dataset and builds the services around it
func (c *Container) Init(ctx context.Context) error {
	ds, err := c.Reader.ReadDataset(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load dataset")
	}
	c.Dataset = ds

	analyzer, err := app.NewHealthAnalyzer(ds, c.Renderer, c.RNG, c.Logger)
	if err != nil {
		return errors.Wrap(err, "failed to create analyzer")
	}
	c.Analyzer = analyzer
	c.Reports = app.NewReportService(analyzer, c.Logger)
	return nil
}

// ReportOptions maps the configuration onto report options
func (c *Container) ReportOptions() app.ReportOptions {
	return app.ReportOptions{
		OutputDir: c.Config.Report.OutputDir,
		Samples:   c.Config.Simulation.Samples,
		Seed:      c.Config.Simulation.Seed,
	}
}
