package app

import (
	"context"
	"fmt"
	"io"

	"healthlab/domain/chart"
	"healthlab/domain/core"
	"healthlab/domain/health"
	"healthlab/internal"
	"healthlab/internal/errors"
	"healthlab/internal/profiling"
	"healthlab/ports"

	"github.com/montanaflynn/stats"
)

const (
	DefaultSimulationSamples = 1000
	DefaultSimulationSeed    = 42
	HistogramBins            = 25
)

// Chart file names, without extension
const (
	ChartBloodPressure   = "blood_pressure_histogram"
	ChartWeightBySex     = "weight_by_sex_boxplot"
	ChartSmokers         = "smoker_proportions"
	ChartPrevalenceBySex = "disease_prevalence_by_sex"
	simulationSourceName = "disease_simulation"
)

// HealthAnalyzer computes statistics, charts and simulations over one dataset.
// It never mutates the dataset, so a single analyzer may serve concurrent calls
// as long as its renderer does.
type HealthAnalyzer struct {
	dataset      *health.Dataset
	renderer     ports.ChartRenderer
	rng          ports.RNGPort
	profiler     *profiling.DataProfiler
	distribution *profiling.DistributionAnalyzer
	logger       *internal.Logger
}

// NewHealthAnalyzer binds an analyzer to ds. An empty dataset is accepted;
// operations that need rows report ErrEmptyDataset.
func NewHealthAnalyzer(ds *health.Dataset, renderer ports.ChartRenderer, rng ports.RNGPort, logger *internal.Logger) (*HealthAnalyzer, error) {
	if ds == nil {
		return nil, core.NewInvalidArgumentError("dataset", "is required")
	}
	if renderer == nil {
		return nil, core.NewInvalidArgumentError("renderer", "is required")
	}
	if rng == nil {
		return nil, core.NewInvalidArgumentError("rng", "is required")
	}
	if logger == nil {
		logger = internal.Discard
	}
	return &HealthAnalyzer{
		dataset:      ds,
		renderer:     renderer,
		rng:          rng,
		profiler:     profiling.NewDataProfiler(),
		distribution: profiling.NewDistributionAnalyzer(),
		logger:       logger.With("analyzer"),
	}, nil
}

// Dataset returns the analysed dataset
func (a *HealthAnalyzer) Dataset() *health.Dataset {
	return a.dataset
}

// SummaryStatistics returns mean, median, min and max of every numeric field
func (a *HealthAnalyzer) SummaryStatistics() (health.SummaryResult, error) {
	result, err := a.profiler.ProfileDataset(a.dataset)
	if err != nil {
		return health.SummaryResult{}, err
	}
	a.logger.Debug("Summarised %d fields over %d rows", len(result.Fields), a.dataset.Len())
	return result, nil
}

// BloodPressureFigure bins systolic blood pressure into HistogramBins bins
func (a *HealthAnalyzer) BloodPressureFigure() (chart.Figure, error) {
	if a.dataset.IsEmpty() {
		return chart.Figure{}, core.NewEmptyDatasetError("blood pressure histogram")
	}
	values, err := a.dataset.Values(health.ColumnSystolicBP)
	if err != nil {
		return chart.Figure{}, err
	}
	bins, err := a.distribution.Histogram(values, HistogramBins)
	if err != nil {
		return chart.Figure{}, err
	}
	return chart.Figure{
		Kind:     chart.KindHistogram,
		Title:    "Histogram över blodtryck",
		XLabel:   "Systoliskt blodtryck (mmHg)",
		YLabel:   "Antal personer",
		Grid:     chart.GridY,
		BarEdges: true,
		Bins:     bins,
	}, nil
}

// BloodPressureHistogram builds and renders the blood pressure histogram
func (a *HealthAnalyzer) BloodPressureHistogram(ctx context.Context) (chart.Figure, chart.Artifact, error) {
	return a.render(ctx, ChartBloodPressure, a.BloodPressureFigure)
}

// WeightBySexFigure computes one weight box per sex, ordered by sex
func (a *HealthAnalyzer) WeightBySexFigure() (chart.Figure, error) {
	if a.dataset.IsEmpty() {
		return chart.Figure{}, core.NewEmptyDatasetError("weight boxplot")
	}
	groups, err := a.dataset.GroupValues(health.ColumnSex, health.ColumnWeight)
	if err != nil {
		return chart.Figure{}, err
	}
	if len(groups) == 0 {
		return chart.Figure{}, core.NewNoValuesError(string(health.ColumnWeight))
	}

	fig := chart.Figure{
		Kind:   chart.KindBoxPlot,
		Title:  "Boxplot över vikt per kön",
		XLabel: "Kön",
		YLabel: "Vikt (kg)",
		Grid:   chart.GridBoth,
	}
	for _, sex := range health.SortedGroups(groups) {
		box, err := a.distribution.BoxPlot(sex, groups[sex])
		if err != nil {
			return chart.Figure{}, err
		}
		fig.Boxes = append(fig.Boxes, box)
	}
	return fig, nil
}

// WeightBySexBoxplot builds and renders the weight boxplot
func (a *HealthAnalyzer) WeightBySexBoxplot(ctx context.Context) (chart.Figure, chart.Artifact, error) {
	return a.render(ctx, ChartWeightBySex, a.WeightBySexFigure)
}

// SmokerProportions returns the relative frequency of each smoker value
func (a *HealthAnalyzer) SmokerProportions() (health.ProportionResult, error) {
	if a.dataset.IsEmpty() {
		return health.ProportionResult{}, core.NewEmptyDatasetError("smoker proportions")
	}
	values, err := a.dataset.Categories(health.ColumnSmoker)
	if err != nil {
		return health.ProportionResult{}, err
	}
	return profiling.Proportions(health.ColumnSmoker, values)
}

// SmokerFigure draws one bar per smoker value
func (a *HealthAnalyzer) SmokerFigure() (chart.Figure, error) {
	props, err := a.SmokerProportions()
	if err != nil {
		return chart.Figure{}, err
	}
	fig := chart.Figure{
		Kind:   chart.KindBar,
		Title:  "Andelen rökare",
		XLabel: "Rökare",
		YLabel: "Andel",
		Grid:   chart.GridY,
	}
	for _, p := range props.Values {
		fig.Bars = append(fig.Bars, chart.Bar{Label: p.Category, Value: p.Share})
	}
	return fig, nil
}

// SmokerBarChart builds and renders the smoker proportion chart
func (a *HealthAnalyzer) SmokerBarChart(ctx context.Context) (chart.Figure, chart.Artifact, error) {
	return a.render(ctx, ChartSmokers, a.SmokerFigure)
}

// DiseasePrevalenceBySex returns the mean of disease per sex
func (a *HealthAnalyzer) DiseasePrevalenceBySex() (health.PrevalenceResult, error) {
	if a.dataset.IsEmpty() {
		return health.PrevalenceResult{}, core.NewEmptyDatasetError("disease prevalence")
	}
	groups, err := a.dataset.GroupValues(health.ColumnSex, health.ColumnDisease)
	if err != nil {
		return health.PrevalenceResult{}, err
	}
	return profiling.GroupRates(health.ColumnSex, groups)
}

// DiseasePrevalenceFigure draws one bar per sex
func (a *HealthAnalyzer) DiseasePrevalenceFigure() (chart.Figure, error) {
	prevalence, err := a.DiseasePrevalenceBySex()
	if err != nil {
		return chart.Figure{}, err
	}
	fig := chart.Figure{
		Kind:   chart.KindBar,
		Title:  "Sjukdomsförekomst per kön (Female/Male)",
		XLabel: "Kön (Female/Male)",
		YLabel: "Andel",
		Grid:   chart.GridY,
	}
	for _, g := range prevalence.Groups {
		fig.Bars = append(fig.Bars, chart.Bar{Label: g.Group, Value: g.Rate})
	}
	return fig, nil
}

// DiseasePrevalenceChart builds and renders the prevalence chart
func (a *HealthAnalyzer) DiseasePrevalenceChart(ctx context.Context) (chart.Figure, chart.Artifact, error) {
	return a.render(ctx, ChartPrevalenceBySex, a.DiseasePrevalenceFigure)
}

// SimulateDisease draws n Bernoulli(p) samples, p being the observed disease
// rate, from a generator seeded with seed. Equal inputs give equal results.
func (a *HealthAnalyzer) SimulateDisease(ctx context.Context, n int, seed int64) (health.SimulationResult, error) {
	if n <= 0 {
		return health.SimulationResult{}, core.NewInvalidArgumentError("n", fmt.Sprintf("must be positive, got %d", n))
	}
	if a.dataset.IsEmpty() {
		return health.SimulationResult{}, core.NewEmptyDatasetError("disease simulation")
	}

	disease, err := a.dataset.Values(health.ColumnDisease)
	if err != nil {
		return health.SimulationResult{}, err
	}
	observed, err := stats.Mean(disease)
	if err != nil {
		return health.SimulationResult{}, errors.Wrap(err, "failed to compute disease rate")
	}

	src, err := a.rng.SeededSource(ctx, simulationSourceName, seed)
	if err != nil {
		return health.SimulationResult{}, err
	}
	simulated, successes, err := profiling.NewBernoulliSimulator(src).Prevalence(observed, n)
	if err != nil {
		return health.SimulationResult{}, err
	}
	a.logger.Debug("Simulated %d/%d cases (p=%.4f, seed=%d)", successes, n, observed, seed)

	return health.SimulationResult{
		Real:       observed,
		Simulation: simulated,
		Difference: observed - simulated,
		N:          n,
		Seed:       seed,
	}, nil
}

// PrintSimulationReport runs SimulateDisease and writes the result to w
func (a *HealthAnalyzer) PrintSimulationReport(ctx context.Context, w io.Writer, n int, seed int64) error {
	result, err := a.SimulateDisease(ctx, n, seed)
	if err != nil {
		return err
	}
	if err := WriteSimulationReport(w, result); err != nil {
		return errors.IOFailure("simulation report", err)
	}
	return nil
}

// WriteSimulationReport formats result as the fixed console report
func WriteSimulationReport(w io.Writer, result health.SimulationResult) error {
	_, err := fmt.Fprintf(w,
		"Simulering av sjukdomsförekomst\n"+
			"----------------------------------\n"+
			"Andelen personer i datasetet som har sjukdomen:      %.3f\n"+
			"Andelen personer i simuleringen som har sjukdomen:   %.3f\n"+
			"Skillnad:                                            %.3f\n",
		result.Real, result.Simulation, result.Difference)
	return err
}

func (a *HealthAnalyzer) render(ctx context.Context, name string, build func() (chart.Figure, error)) (chart.Figure, chart.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return chart.Figure{}, chart.Artifact{}, err
	}
	fig, err := build()
	if err != nil {
		return chart.Figure{}, chart.Artifact{}, err
	}
	artifact, err := a.renderer.Render(ctx, fig, name)
	if err != nil {
		return fig, chart.Artifact{}, errors.Wrapf(err, "failed to render %s", name)
	}
	a.logger.Info("Chart %q written to %s", fig.Title, artifact.Path)
	return fig, artifact, nil
}
