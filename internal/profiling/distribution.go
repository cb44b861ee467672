package profiling

import (
	"math"
	"sort"

	"healthlab/domain/core"
	"healthlab/domain/health"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WhiskerCoefficient is the multiple of the IQR beyond which a value is an outlier
const WhiskerCoefficient = 1.5

// DistributionAnalyzer handles distribution shape analysis of one numeric column
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Summarize computes mean, median, min and max of data. NaN values are dropped first.
func (da *DistributionAnalyzer) Summarize(col health.Column, data []float64) (health.FieldSummary, error) {
	data = dropMissing(data)
	summary := health.FieldSummary{Column: col, Count: len(data)}
	if len(data) == 0 {
		return summary, core.NewNoValuesError(string(col))
	}

	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}

	return summary, nil
}

// BoxPlot computes the Tukey box of data.
// Quartiles interpolate linearly between order statistics at rank (n-1)p,
// so a single value collapses the box onto itself.
func (da *DistributionAnalyzer) BoxPlot(group string, data []float64) (health.BoxSummary, error) {
	data = dropMissing(data)
	box := health.BoxSummary{Group: group, Count: len(data)}
	if len(data) == 0 {
		return box, core.NewNoValuesError(group)
	}

	sorted := sortedCopy(data)
	box.Min = sorted[0]
	box.Max = sorted[len(sorted)-1]
	box.Q1 = quantile(sorted, 0.25)
	box.Median = quantile(sorted, 0.5)
	box.Q3 = quantile(sorted, 0.75)

	low := box.Q1 - WhiskerCoefficient*box.IQR()
	high := box.Q3 + WhiskerCoefficient*box.IQR()
	box.LowerWhisker = math.Inf(1)
	box.UpperWhisker = math.Inf(-1)
	for _, v := range sorted {
		if v < low || v > high {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if v < box.LowerWhisker {
			box.LowerWhisker = v
		}
		if v > box.UpperWhisker {
			box.UpperWhisker = v
		}
	}

	return box, nil
}

// Histogram counts data into n equal-width bins spanning [min, max].
// The last bin is closed on the right so max is counted. When every value is
// equal the range is widened to [v-0.5, v+0.5].
func (da *DistributionAnalyzer) Histogram(data []float64, n int) ([]health.HistogramBin, error) {
	if n <= 0 {
		return nil, core.NewInvalidArgumentError("bins", "must be positive")
	}
	data = dropMissing(data)
	if len(data) == 0 {
		return nil, core.NewNoValuesError("histogram")
	}

	sorted := sortedCopy(data)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := floats.Span(make([]float64, n+1), lo, hi)
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	bins := make([]health.HistogramBin, n)
	for i := range bins {
		bins[i] = health.HistogramBin{
			Min:   edges[i],
			Max:   edges[i+1],
			Count: int(counts[i]),
		}
	}
	return bins, nil
}

// quantile returns the p-quantile of ascending data, interpolating linearly
// between the two order statistics around rank (n-1)p
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[i]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// dropMissing returns data without NaN values, reusing the slice when nothing is missing
func dropMissing(data []float64) []float64 {
	if !floats.HasNaN(data) {
		return data
	}
	kept := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// sortedCopy returns an ascending copy of data
func sortedCopy(data []float64) []float64 {
	c := make([]float64, len(data))
	copy(c, data)
	sort.Float64s(c)
	return c
}

// sortedKeys returns the keys of m in ascending order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
