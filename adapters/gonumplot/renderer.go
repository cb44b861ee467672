package gonumplot

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"healthlab/domain/chart"
	"healthlab/domain/core"
	"healthlab/domain/health"
	"healthlab/internal"
	"healthlab/internal/errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	boxWidth = 40 // points
	barWidth = 30 // points
)

var histogramFill = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

// Renderer draws chart.Figure values with gonum/plot and saves them to disk.
// Every call builds its own *plot.Plot, so concurrent renders never share state.
type Renderer struct {
	config RendererConfig
	logger *internal.Logger
}

// NewRenderer creates a renderer writing into config.OutputDir
func NewRenderer(config RendererConfig, logger *internal.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid renderer config")
	}
	if logger == nil {
		logger = internal.Discard
	}
	config.Format = strings.ToLower(config.Format)
	return &Renderer{
		config: config,
		logger: logger.With("renderer"),
	}, nil
}

// Render draws fig and writes it to OutputDir/name.<format>
func (r *Renderer) Render(ctx context.Context, fig chart.Figure, name string) (chart.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return chart.Artifact{}, err
	}
	if strings.TrimSpace(name) == "" {
		return chart.Artifact{}, core.NewInvalidArgumentError("name", "is required")
	}

	p, err := r.Build(fig)
	if err != nil {
		return chart.Artifact{}, err
	}

	if err := os.MkdirAll(r.config.OutputDir, 0o755); err != nil {
		return chart.Artifact{}, errors.IOFailure(r.config.OutputDir, err)
	}
	path := filepath.Join(r.config.OutputDir, name+"."+r.config.Format)
	if err := p.Save(r.config.width(), r.config.height(), path); err != nil {
		return chart.Artifact{}, errors.IOFailure(path, err)
	}
	r.logger.Info("Rendered %s %q to %s", fig.Kind, fig.Title, path)

	return chart.Artifact{
		ID:     core.NewArtifactID(),
		Name:   name,
		Path:   path,
		Format: r.config.Format,
		Kind:   fig.Kind,
		Title:  fig.Title,
	}, nil
}

// Build turns fig into a fresh gonum plot without writing anything
func (r *Renderer) Build(fig chart.Figure) (*plot.Plot, error) {
	if err := fig.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel

	switch fig.Grid {
	case chart.GridBoth:
		p.Add(plotter.NewGrid())
	case chart.GridY:
		grid := plotter.NewGrid()
		grid.Vertical.Color = nil
		p.Add(grid)
	}

	var err error
	switch fig.Kind {
	case chart.KindHistogram:
		addHistogram(p, fig)
	case chart.KindBoxPlot:
		err = addBoxes(p, fig.Boxes)
	case chart.KindBar:
		err = addBars(p, fig.Bars)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s %q", fig.Kind, fig.Title)
	}
	return p, nil
}

func addHistogram(p *plot.Plot, fig chart.Figure) {
	bins := make([]plotter.HistogramBin, len(fig.Bins))
	for i, b := range fig.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
	}
	h := &plotter.Histogram{
		Bins:      bins,
		Width:     fig.Bins[0].Max - fig.Bins[0].Min,
		FillColor: histogramFill,
	}
	if fig.BarEdges {
		h.LineStyle = plotter.DefaultLineStyle
	}
	p.Add(h)
}

const summaryPoints = 5

// addBoxes draws precomputed boxes. gonum derives its own quartiles from the
// values it is given, so the summary statistics are written back afterwards.
func addBoxes(p *plot.Plot, boxes []health.BoxSummary) error {
	names := make([]string, len(boxes))
	for i, box := range boxes {
		names[i] = box.Group

		values := plotter.Values{box.LowerWhisker, box.Q1, box.Median, box.Q3, box.UpperWhisker}
		values = append(values, box.Outliers...)

		b, err := plotter.NewBoxPlot(vg.Points(boxWidth), float64(i), values)
		if err != nil {
			return fmt.Errorf("box %s: %w", box.Group, err)
		}
		b.Median = box.Median
		b.Quartile1 = box.Q1
		b.Quartile3 = box.Q3
		b.AdjLow = box.LowerWhisker
		b.AdjHigh = box.UpperWhisker
		b.Min = box.Min
		b.Max = box.Max
		// Outside indexes values; outliers follow the five summary points
		b.Outside = b.Outside[:0]
		for j := range box.Outliers {
			b.Outside = append(b.Outside, summaryPoints+j)
		}
		b.FillColor = plotutil.Color(i)
		p.Add(b)
	}
	p.NominalX(names...)
	return nil
}

func addBars(p *plot.Plot, bars []chart.Bar) error {
	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		labels[i] = b.Label
	}
	bc, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return err
	}
	bc.Color = plotutil.Color(0)
	p.Add(bc)
	p.NominalX(labels...)
	return nil
}
